package export

import (
	"strings"

	"github.com/c360studio/cnlgraph/cnl"
	"github.com/c360studio/cnlgraph/graph"
)

// Render serializes a snapshot back to controlled-language text in
// canonical form: blocks in declaration order, relations before
// attributes within each morph, one relation line per edge. Implicit
// nodes are omitted; they exist only because something referenced them.
// Rendering the output of a compile and normalizing the original text
// produce the same string.
func Render(snap *graph.Snapshot) string {
	var out []string

	for _, id := range snap.Order {
		if n := snap.Node(id); n != nil {
			out = append(out, renderNode(snap, n)...)
			out = append(out, "")
			continue
		}
		if t := snap.Transition(id); t != nil {
			out = append(out, renderTransition(snap, t)...)
			out = append(out, "")
		}
	}

	return strings.Join(out, "\n")
}

func renderNode(snap *graph.Snapshot, n *graph.PolyNode) []string {
	lines := []string{cnl.FormatHeading(cnl.Heading{
		Depth:     1,
		BaseName:  n.Name,
		Qualifier: n.Qualifier,
		Type:      n.Type,
	})}
	lines = append(lines, cnl.FormatDescription(n.Description)...)

	// Basic morph content renders at node level; named morphs get their
	// own sub-heading.
	for _, m := range n.Morphs {
		if m.ID != n.BasicMorphID {
			lines = append(lines, cnl.FormatHeading(cnl.Heading{Depth: 2, BaseName: m.Name}))
			lines = append(lines, cnl.FormatDescription(m.Description)...)
		}
		lines = append(lines, renderMorphContent(snap, &m)...)
	}

	return lines
}

func renderMorphContent(snap *graph.Snapshot, m *graph.Morph) []string {
	var lines []string
	for _, relID := range m.RelationIDs {
		r := snap.Relation(relID)
		if r == nil {
			continue
		}
		lines = append(lines, cnl.FormatRelation(cnl.RelationRecord{
			Name:       r.Name,
			Targets:    []cnl.TargetRef{{Name: displayName(snap, r.TargetID)}},
			Adjective:  r.Adjective,
			Adverb:     r.Adverb,
			Quantifier: r.Quantifier,
			Modality:   r.Modality,
		}))
	}
	for _, attrID := range m.AttributeIDs {
		a := snap.Attribute(attrID)
		if a == nil {
			continue
		}
		lines = append(lines, cnl.FormatAttribute(cnl.AttributeRecord{
			Name:       a.Name,
			Value:      a.Value,
			Unit:       a.Unit,
			Qualifier:  a.Qualifier,
			Quantifier: a.Quantifier,
			Modality:   a.Modality,
		}))
	}
	return lines
}

func renderTransition(snap *graph.Snapshot, t *graph.TransitionNode) []string {
	lines := []string{cnl.FormatHeading(cnl.Heading{
		Depth:     1,
		BaseName:  t.Name,
		Qualifier: t.Qualifier,
		Type:      t.Type,
	})}
	lines = append(lines, cnl.FormatDescription(t.Description)...)

	if entries := renderStateEntries(snap, t.PriorState); len(entries) > 0 {
		lines = append(lines, cnl.FormatState(cnl.SectionPrior, entries))
	}
	if entries := renderStateEntries(snap, t.PostState); len(entries) > 0 {
		lines = append(lines, cnl.FormatState(cnl.SectionPost, entries))
	}

	return lines
}

func renderStateEntries(snap *graph.Snapshot, entries []graph.StateEntry) []cnl.StateEntry {
	out := make([]cnl.StateEntry, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Ref != nil:
			out = append(out, cnl.StateEntry{Refs: []cnl.TargetRef{renderRef(snap, *e.Ref)}})
		case e.Operator != nil:
			refs := make([]cnl.TargetRef, 0, len(e.Operator.Operands))
			for _, ref := range e.Operator.Operands {
				refs = append(refs, renderRef(snap, ref))
			}
			out = append(out, cnl.StateEntry{Operator: e.Operator.Operator, Refs: refs})
		}
	}
	return out
}

func renderRef(snap *graph.Snapshot, ref graph.NodeRef) cnl.TargetRef {
	t := cnl.TargetRef{Name: displayName(snap, ref.NodeID)}
	if ref.MorphID != "" {
		if _, m := snap.Morph(ref.MorphID); m != nil {
			t.Morph = m.Name
		}
	}
	return t
}

// displayName spells a node reference the way a document author would:
// qualifier first when present.
func displayName(snap *graph.Snapshot, nodeID string) string {
	n := snap.Node(nodeID)
	if n == nil {
		return nodeID
	}
	if n.Qualifier != "" {
		return n.Qualifier + " " + n.Name
	}
	return n.Name
}
