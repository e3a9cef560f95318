package diff

import (
	"reflect"

	"github.com/c360studio/cnlgraph/graph"
)

// Compute diffs the previous compiled snapshot against the new one and
// returns the dependency-ordered operation list. prev may be nil for a
// fresh graph. Operations that reference ids which will not exist after
// apply are dropped and reported as UnresolvedReferenceError; everything
// else still applies.
func Compute(prev, next *graph.Snapshot) ([]Operation, []error) {
	if prev == nil {
		prev = graph.NewSnapshot()
	}
	if next == nil {
		next = graph.NewSnapshot()
	}

	var ops []Operation
	var errs []error

	prevNodes := indexNodes(prev)
	nextNodes := indexNodes(next)

	// Nodes.
	for i := range next.Nodes {
		n := &next.Nodes[i]
		old, ok := prevNodes[n.ID]
		switch {
		case !ok:
			ops = append(ops, Operation{Kind: OpAddNode, EntityID: n.ID, Node: n})
		case !nodeEqual(old, n):
			ops = append(ops, Operation{Kind: OpUpdateNode, EntityID: n.ID, Node: n})
		}
	}
	for i := range prev.Nodes {
		n := &prev.Nodes[i]
		if _, ok := nextNodes[n.ID]; !ok {
			ops = append(ops, Operation{Kind: OpDeleteNode, EntityID: n.ID})
		}
	}

	// Morphs.
	prevMorphs := indexMorphs(prev)
	nextMorphs := indexMorphs(next)
	for id, m := range nextMorphs {
		old, ok := prevMorphs[id]
		// addMorph is an upsert: a changed name or description
		// re-adds the same identity with new presentation fields.
		if !ok || old.morph.Name != m.morph.Name || old.morph.Description != m.morph.Description {
			morph := m.morph
			ops = append(ops, Operation{Kind: OpAddMorph, EntityID: id, OwnerID: m.ownerID, Morph: &morph})
		}
	}
	for id, m := range prevMorphs {
		if _, ok := nextMorphs[id]; !ok {
			ops = append(ops, Operation{Kind: OpDeleteMorph, EntityID: id, OwnerID: m.ownerID})
		}
	}

	// Relations: every distinguishing field is part of the id, so only
	// presence matters.
	prevRels := indexRelations(prev)
	nextRels := indexRelations(next)
	for id, r := range nextRels {
		if _, ok := prevRels[id]; !ok {
			if missing := missingRelationRef(r, nextNodes); missing != "" {
				errs = append(errs, &UnresolvedReferenceError{EntityID: id, Target: missing})
				continue
			}
			ops = append(ops, Operation{Kind: OpAddRelation, EntityID: id, Relation: r})
		}
	}
	for id := range prevRels {
		if _, ok := nextRels[id]; !ok {
			ops = append(ops, Operation{Kind: OpDeleteRelation, EntityID: id, Relation: prevRels[id]})
		}
	}

	// Attributes: value and unit are outside the id, so a re-declaration
	// with new content is an update of the same entity.
	prevAttrs := indexAttributes(prev)
	nextAttrs := indexAttributes(next)
	for id, a := range nextAttrs {
		old, ok := prevAttrs[id]
		switch {
		case !ok:
			ops = append(ops, Operation{Kind: OpAddAttribute, EntityID: id, Attribute: a})
		case old.Value != a.Value || old.Unit != a.Unit:
			ops = append(ops, Operation{Kind: OpUpdateAttribute, EntityID: id, Attribute: a})
		}
	}
	for id := range prevAttrs {
		if _, ok := nextAttrs[id]; !ok {
			ops = append(ops, Operation{Kind: OpDeleteAttribute, EntityID: id, Attribute: prevAttrs[id]})
		}
	}

	// Transitions.
	prevTrans := indexTransitions(prev)
	nextTrans := indexTransitions(next)
	for id, t := range nextTrans {
		if missing := missingTransitionRef(t, nextNodes); missing != "" {
			errs = append(errs, &UnresolvedReferenceError{EntityID: id, Target: missing})
			continue
		}
		old, ok := prevTrans[id]
		switch {
		case !ok:
			ops = append(ops, Operation{Kind: OpAddTransition, EntityID: id, Transition: t})
		case !transitionEqual(old, t):
			ops = append(ops, Operation{Kind: OpUpdateTransition, EntityID: id, Transition: t})
		}
	}
	for id := range prevTrans {
		if _, ok := nextTrans[id]; !ok {
			ops = append(ops, Operation{Kind: OpDeleteTransition, EntityID: id, Transition: prevTrans[id]})
		}
	}

	ordered, err := order(ops)
	if err != nil {
		errs = append(errs, err)
		return ops, errs
	}
	return ordered, errs
}

// order arranges operations so that every operation follows the
// operations it depends on: nodes before their morphs, morphs before
// the relations and attributes scoped to them, and the reverse for
// deletions so nothing is orphaned mid-apply.
func order(ops []Operation) ([]Operation, error) {
	g := newDepGraph()
	byKey := make(map[string]Operation, len(ops))
	for _, op := range ops {
		key := opKey(op)
		byKey[key] = op
		g.add(key)
	}

	for _, op := range ops {
		key := opKey(op)
		switch op.Kind {
		case OpAddMorph:
			g.edge(opKey(Operation{Kind: OpAddNode, EntityID: op.OwnerID}), key)
		case OpAddRelation:
			g.edge(opKey(Operation{Kind: OpAddNode, EntityID: op.Relation.SourceID}), key)
			g.edge(opKey(Operation{Kind: OpAddNode, EntityID: op.Relation.TargetID}), key)
			g.edge(opKey(Operation{Kind: OpAddMorph, EntityID: op.Relation.MorphID}), key)
		case OpAddAttribute, OpUpdateAttribute:
			g.edge(opKey(Operation{Kind: OpAddNode, EntityID: op.Attribute.NodeID}), key)
			g.edge(opKey(Operation{Kind: OpAddMorph, EntityID: op.Attribute.MorphID}), key)
		case OpAddTransition, OpUpdateTransition:
			for _, ref := range transitionRefs(op.Transition) {
				g.edge(opKey(Operation{Kind: OpAddNode, EntityID: ref.NodeID}), key)
			}
			// An updated transition must release references before the
			// nodes it dropped are deleted.
			for _, other := range ops {
				if other.Kind == OpDeleteNode {
					g.edge(key, opKey(other))
				}
			}
		case OpDeleteRelation:
			g.edge(key, opKey(Operation{Kind: OpDeleteMorph, EntityID: op.Relation.MorphID}))
			g.edge(key, opKey(Operation{Kind: OpDeleteNode, EntityID: op.Relation.SourceID}))
			g.edge(key, opKey(Operation{Kind: OpDeleteNode, EntityID: op.Relation.TargetID}))
		case OpDeleteAttribute:
			g.edge(key, opKey(Operation{Kind: OpDeleteMorph, EntityID: op.Attribute.MorphID}))
			g.edge(key, opKey(Operation{Kind: OpDeleteNode, EntityID: op.Attribute.NodeID}))
		case OpDeleteTransition:
			for _, ref := range transitionRefs(op.Transition) {
				g.edge(key, opKey(Operation{Kind: OpDeleteNode, EntityID: ref.NodeID}))
			}
		case OpDeleteMorph:
			g.edge(key, opKey(Operation{Kind: OpDeleteNode, EntityID: op.OwnerID}))
		}
	}

	keys, err := g.sorted(func(key string) int {
		return kindRank[byKey[key].Kind]
	})
	if err != nil {
		return nil, err
	}

	out := make([]Operation, len(keys))
	for i, key := range keys {
		out[i] = byKey[key]
	}
	return out, nil
}

func opKey(op Operation) string {
	return string(op.Kind) + "|" + op.EntityID
}

func nodeEqual(a, b *graph.PolyNode) bool {
	return a.Name == b.Name &&
		a.Qualifier == b.Qualifier &&
		a.Type == b.Type &&
		a.Description == b.Description &&
		a.BasicMorphID == b.BasicMorphID &&
		a.ActiveMorphID == b.ActiveMorphID &&
		a.Implicit == b.Implicit
}

func transitionEqual(a, b *graph.TransitionNode) bool {
	return a.Name == b.Name &&
		a.Qualifier == b.Qualifier &&
		a.Type == b.Type &&
		a.Description == b.Description &&
		reflect.DeepEqual(a.PriorState, b.PriorState) &&
		reflect.DeepEqual(a.PostState, b.PostState)
}

func missingRelationRef(r *graph.RelationEdge, nodes map[string]*graph.PolyNode) string {
	if _, ok := nodes[r.SourceID]; !ok {
		return r.SourceID
	}
	if _, ok := nodes[r.TargetID]; !ok {
		return r.TargetID
	}
	return ""
}

func missingTransitionRef(t *graph.TransitionNode, nodes map[string]*graph.PolyNode) string {
	for _, ref := range transitionRefs(t) {
		if _, ok := nodes[ref.NodeID]; !ok {
			return ref.NodeID
		}
	}
	return ""
}

func transitionRefs(t *graph.TransitionNode) []graph.NodeRef {
	var refs []graph.NodeRef
	for _, e := range append(append([]graph.StateEntry(nil), t.PriorState...), t.PostState...) {
		if e.Ref != nil {
			refs = append(refs, *e.Ref)
		}
		if e.Operator != nil {
			refs = append(refs, e.Operator.Operands...)
		}
	}
	return refs
}

type ownedMorph struct {
	ownerID string
	morph   graph.Morph
}

func indexNodes(s *graph.Snapshot) map[string]*graph.PolyNode {
	out := make(map[string]*graph.PolyNode, len(s.Nodes))
	for i := range s.Nodes {
		out[s.Nodes[i].ID] = &s.Nodes[i]
	}
	return out
}

func indexMorphs(s *graph.Snapshot) map[string]ownedMorph {
	out := make(map[string]ownedMorph)
	for i := range s.Nodes {
		for _, m := range s.Nodes[i].Morphs {
			out[m.ID] = ownedMorph{ownerID: s.Nodes[i].ID, morph: m}
		}
	}
	return out
}

func indexRelations(s *graph.Snapshot) map[string]*graph.RelationEdge {
	out := make(map[string]*graph.RelationEdge, len(s.Relations))
	for i := range s.Relations {
		out[s.Relations[i].ID] = &s.Relations[i]
	}
	return out
}

func indexAttributes(s *graph.Snapshot) map[string]*graph.AttributeValue {
	out := make(map[string]*graph.AttributeValue, len(s.Attributes))
	for i := range s.Attributes {
		out[s.Attributes[i].ID] = &s.Attributes[i]
	}
	return out
}

func indexTransitions(s *graph.Snapshot) map[string]*graph.TransitionNode {
	out := make(map[string]*graph.TransitionNode, len(s.Transitions))
	for i := range s.Transitions {
		out[s.Transitions[i].ID] = &s.Transitions[i]
	}
	return out
}
