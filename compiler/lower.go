package compiler

import (
	"github.com/c360studio/cnlgraph/cnl"
	"github.com/c360studio/cnlgraph/graph"
	"github.com/c360studio/cnlgraph/ident"
)

// lowerer builds a snapshot from parsed node blocks. It runs two
// passes: the first registers every declared node, morph, and
// transition so the second can resolve references regardless of
// declaration order. Targets that nothing declares become implicit
// nodes rather than errors.
type lowerer struct {
	snap *graph.Snapshot
	errs []error
}

// lowerBlocks converts a parsed document into a snapshot, collecting
// per-line errors without aborting.
func lowerBlocks(blocks []cnl.NodeBlock) (*graph.Snapshot, []error) {
	l := &lowerer{snap: graph.NewSnapshot()}

	kept := l.dedupe(blocks)
	for _, b := range kept {
		l.declare(b)
	}
	for _, b := range kept {
		l.lowerContent(b)
	}

	return l.snap, l.errs
}

// isTransitionBlock reports whether the block declares a transition: any
// state line in its top-level content marks it as one.
func isTransitionBlock(b cnl.NodeBlock) bool {
	for _, line := range b.Content {
		if cnl.IsStateLine(line.Text) {
			return true
		}
	}
	return false
}

func blockID(b cnl.NodeBlock) string {
	if isTransitionBlock(b) {
		return ident.Transition(b.Heading.Qualifier, b.Heading.BaseName)
	}
	return ident.Node(b.Heading.Qualifier, b.Heading.BaseName)
}

// dedupe drops earlier blocks that share an identity with a later one,
// warning for each collision. The surviving block keeps the position of
// the first declaration.
func (l *lowerer) dedupe(blocks []cnl.NodeBlock) []cnl.NodeBlock {
	index := make(map[string]int, len(blocks))
	kept := make([]cnl.NodeBlock, 0, len(blocks))
	for _, b := range blocks {
		id := blockID(b)
		if at, ok := index[id]; ok {
			l.errs = append(l.errs, &ConflictingDeclarationError{Line: b.LineNumber, EntityID: id})
			kept[at] = b
			continue
		}
		index[id] = len(kept)
		kept = append(kept, b)
	}
	return kept
}

// declare registers the block's identity and, for nodes, its full morph
// set before any content is parsed.
func (l *lowerer) declare(b cnl.NodeBlock) {
	if isTransitionBlock(b) {
		l.snap.UpsertTransition(graph.TransitionNode{
			ID:          ident.Transition(b.Heading.Qualifier, b.Heading.BaseName),
			Name:        b.Heading.BaseName,
			Qualifier:   b.Heading.Qualifier,
			Type:        b.Heading.Type,
			Description: b.Description,
		})
		return
	}

	nodeID := ident.Node(b.Heading.Qualifier, b.Heading.BaseName)
	basicID := ident.Morph(nodeID, ident.BasicMorphName)
	morphs := []graph.Morph{{ID: basicID, Name: ident.BasicMorphName}}
	for _, mb := range b.Morphs {
		morphs = append(morphs, graph.Morph{
			ID:          ident.Morph(nodeID, mb.Name),
			Name:        mb.Name,
			Description: mb.Description,
		})
	}

	l.snap.AddNode(graph.PolyNode{
		ID:            nodeID,
		Name:          b.Heading.BaseName,
		Qualifier:     b.Heading.Qualifier,
		Type:          b.Heading.Type,
		Description:   b.Description,
		Morphs:        morphs,
		BasicMorphID:  basicID,
		ActiveMorphID: basicID,
	})
}

func (l *lowerer) lowerContent(b cnl.NodeBlock) {
	if isTransitionBlock(b) {
		l.lowerTransition(b)
		return
	}

	nodeID := ident.Node(b.Heading.Qualifier, b.Heading.BaseName)
	l.lowerMorphContent(nodeID, ident.Morph(nodeID, ident.BasicMorphName), b.Content)
	for _, mb := range b.Morphs {
		l.lowerMorphContent(nodeID, ident.Morph(nodeID, mb.Name), mb.Content)
	}
}

// lowerMorphContent parses the lines scoped to one morph of a node.
func (l *lowerer) lowerMorphContent(nodeID, morphID string, content []cnl.Line) {
	for _, line := range content {
		switch {
		case cnl.IsStateLine(line.Text):
			l.errs = append(l.errs, &cnl.ParseError{
				Line: line.Number, Text: line.Text,
				Reason: "state sections are only valid in a transition block",
			})
		case cnl.IsAttributeLine(line.Text):
			rec, err := cnl.ParseAttribute(line.Number, line.Text)
			if err != nil {
				l.errs = append(l.errs, err)
				continue
			}
			l.addAttribute(nodeID, morphID, rec)
		case cnl.IsRelationLine(line.Text):
			rec, err := cnl.ParseRelation(line.Number, line.Text)
			if err != nil {
				l.errs = append(l.errs, err)
				continue
			}
			l.addRelations(nodeID, morphID, rec)
		default:
			l.errs = append(l.errs, &cnl.ParseError{
				Line: line.Number, Text: line.Text, Reason: "unrecognized line",
			})
		}
	}
}

// addRelations creates one edge per target. A line repeated verbatim
// lowers to the same ids, so duplicates collapse instead of doubling.
func (l *lowerer) addRelations(nodeID, morphID string, rec *cnl.RelationRecord) {
	for _, target := range rec.Targets {
		targetID := l.ensureNode(target.Name)
		relID := ident.Relation(rec.Name, rec.Adjective, rec.Quantifier, rec.Modality, morphID, nodeID, targetID)
		if l.snap.Relation(relID) != nil {
			continue
		}
		l.snap.AddRelation(graph.RelationEdge{
			ID:         relID,
			Name:       rec.Name,
			SourceID:   nodeID,
			TargetID:   targetID,
			MorphID:    morphID,
			Adjective:  rec.Adjective,
			Adverb:     rec.Adverb,
			Quantifier: rec.Quantifier,
			Modality:   rec.Modality,
		})
	}
}

func (l *lowerer) addAttribute(nodeID, morphID string, rec *cnl.AttributeRecord) {
	attrID := ident.Attribute(rec.Name, rec.Qualifier, rec.Quantifier, rec.Modality, morphID, nodeID)
	l.snap.UpsertAttribute(graph.AttributeValue{
		ID:         attrID,
		Name:       rec.Name,
		Value:      rec.Value,
		Unit:       rec.Unit,
		NodeID:     nodeID,
		MorphID:    morphID,
		Qualifier:  rec.Qualifier,
		Quantifier: rec.Quantifier,
		Modality:   rec.Modality,
	})
}

func (l *lowerer) lowerTransition(b cnl.NodeBlock) {
	transID := ident.Transition(b.Heading.Qualifier, b.Heading.BaseName)
	trans := l.snap.Transition(transID)

	for _, line := range b.Content {
		if !cnl.IsStateLine(line.Text) {
			l.errs = append(l.errs, &cnl.ParseError{
				Line: line.Number, Text: line.Text,
				Reason: "only priorState/postState lines are valid in a transition block",
			})
			continue
		}
		section, entries, err := cnl.ParseState(line.Number, line.Text)
		if err != nil {
			l.errs = append(l.errs, err)
			continue
		}
		lowered := l.lowerStateEntries(line.Number, entries)
		switch section {
		case cnl.SectionPrior:
			trans.PriorState = append(trans.PriorState, lowered...)
		case cnl.SectionPost:
			trans.PostState = append(trans.PostState, lowered...)
		}
	}

	for _, mb := range b.Morphs {
		l.errs = append(l.errs, &cnl.ParseError{
			Line: mb.LineNumber, Text: mb.Name,
			Reason: "a transition block cannot declare morphs",
		})
	}
}

func (l *lowerer) lowerStateEntries(lineNumber int, entries []cnl.StateEntry) []graph.StateEntry {
	var out []graph.StateEntry
	for _, e := range entries {
		refs := make([]graph.NodeRef, 0, len(e.Refs))
		valid := true
		for _, r := range e.Refs {
			ref, ok := l.resolveRef(lineNumber, r)
			if !ok {
				valid = false
				break
			}
			refs = append(refs, ref)
		}
		if !valid {
			continue
		}
		if e.Operator == "" {
			out = append(out, graph.StateEntry{Ref: &refs[0]})
			continue
		}
		out = append(out, graph.StateEntry{Operator: &graph.LogicalOperator{
			Operator: e.Operator,
			Operands: refs,
		}})
	}
	return out
}

// resolveRef resolves a Name[:morph] reference against declared nodes,
// creating an implicit node when nothing declares the name. A morph
// qualifier must name a declared morph.
func (l *lowerer) resolveRef(lineNumber int, r cnl.TargetRef) (graph.NodeRef, bool) {
	nodeID := l.ensureNode(r.Name)
	if r.Morph == "" {
		return graph.NodeRef{NodeID: nodeID}, true
	}

	morphID := ident.Morph(nodeID, r.Morph)
	if _, m := l.snap.Morph(morphID); m == nil {
		l.errs = append(l.errs, &UnknownMorphError{Line: lineNumber, Node: r.Name, Morph: r.Morph})
		return graph.NodeRef{}, false
	}
	return graph.NodeRef{NodeID: nodeID, MorphID: morphID}, true
}

// ensureNode resolves a name to a node id, creating an implicit node
// with only a basic morph if the submission never declares it.
func (l *lowerer) ensureNode(name string) string {
	nodeID := ident.Node("", name)
	if l.snap.Node(nodeID) != nil {
		return nodeID
	}

	basicID := ident.Morph(nodeID, ident.BasicMorphName)
	l.snap.AddNode(graph.PolyNode{
		ID:            nodeID,
		Name:          name,
		Morphs:        []graph.Morph{{ID: basicID, Name: ident.BasicMorphName}},
		BasicMorphID:  basicID,
		ActiveMorphID: basicID,
		Implicit:      true,
	})
	return nodeID
}
