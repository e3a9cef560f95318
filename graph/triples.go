package graph

import (
	"fmt"
	"time"

	vocab "github.com/c360studio/cnlgraph/vocabulary/cnl"
	"github.com/c360studio/semstreams/message"
)

// tripleSource identifies the compiler as the origin of published facts.
const tripleSource = "cnlgraph.compile"

// Dotted entity id helpers. Format follows the platform convention:
// <org>.<context>.graph.<kind>.<id>.
func NodeEntityID(graphID, id string) string {
	return fmt.Sprintf("cnlgraph.%s.graph.node.%s", graphID, id)
}

func RelationEntityID(graphID, id string) string {
	return fmt.Sprintf("cnlgraph.%s.graph.relation.%s", graphID, id)
}

func AttributeEntityID(graphID, id string) string {
	return fmt.Sprintf("cnlgraph.%s.graph.attribute.%s", graphID, id)
}

func TransitionEntityID(graphID, id string) string {
	return fmt.Sprintf("cnlgraph.%s.graph.transition.%s", graphID, id)
}

// NodeTriples converts a node and its morphs into triples.
func NodeTriples(graphID string, n *PolyNode, now time.Time) []message.Triple {
	subject := NodeEntityID(graphID, n.ID)
	triples := []message.Triple{
		newTriple(subject, vocab.NodeName, n.Name, now),
		newTriple(subject, vocab.NodeBasicMorph, n.BasicMorphID, now),
		newTriple(subject, vocab.NodeActiveMorph, n.ActiveMorphID, now),
	}
	if n.Qualifier != "" {
		triples = append(triples, newTriple(subject, vocab.NodeQualifier, n.Qualifier, now))
	}
	if n.Type != "" {
		triples = append(triples, newTriple(subject, vocab.NodeType, n.Type, now))
	}
	if n.Description != "" {
		triples = append(triples, newTriple(subject, vocab.NodeDescription, n.Description, now))
	}
	for _, m := range n.Morphs {
		triples = append(triples,
			newTriple(subject, vocab.MorphName, m.Name, now),
			newTriple(subject, vocab.MorphNode, m.ID, now),
		)
	}
	return triples
}

// RelationTriples converts a relation edge into triples.
func RelationTriples(graphID string, r *RelationEdge, now time.Time) []message.Triple {
	subject := RelationEntityID(graphID, r.ID)
	triples := []message.Triple{
		newTriple(subject, vocab.RelName, r.Name, now),
		newTriple(subject, vocab.RelSource, NodeEntityID(graphID, r.SourceID), now),
		newTriple(subject, vocab.RelTarget, NodeEntityID(graphID, r.TargetID), now),
		newTriple(subject, vocab.RelMorph, r.MorphID, now),
	}
	if r.Adjective != "" {
		triples = append(triples, newTriple(subject, vocab.RelAdjective, r.Adjective, now))
	}
	if r.Adverb != "" {
		triples = append(triples, newTriple(subject, vocab.RelAdverb, r.Adverb, now))
	}
	if r.Quantifier != "" {
		triples = append(triples, newTriple(subject, vocab.RelQuantifier, r.Quantifier, now))
	}
	if r.Modality != "" {
		triples = append(triples, newTriple(subject, vocab.RelModality, r.Modality, now))
	}
	return triples
}

// AttributeTriples converts an attribute value into triples.
func AttributeTriples(graphID string, a *AttributeValue, now time.Time) []message.Triple {
	subject := AttributeEntityID(graphID, a.ID)
	triples := []message.Triple{
		newTriple(subject, vocab.AttrName, a.Name, now),
		newTriple(subject, vocab.AttrValue, a.Value, now),
		newTriple(subject, vocab.AttrNode, NodeEntityID(graphID, a.NodeID), now),
		newTriple(subject, vocab.AttrMorph, a.MorphID, now),
	}
	if a.Unit != "" {
		triples = append(triples, newTriple(subject, vocab.AttrUnit, a.Unit, now))
	}
	if a.Qualifier != "" {
		triples = append(triples, newTriple(subject, vocab.AttrQualifier, a.Qualifier, now))
	}
	if a.Quantifier != "" {
		triples = append(triples, newTriple(subject, vocab.AttrQuantifier, a.Quantifier, now))
	}
	if a.Modality != "" {
		triples = append(triples, newTriple(subject, vocab.AttrModality, a.Modality, now))
	}
	return triples
}

// TransitionTriples converts a transition into triples. Operator groups
// flatten to one prior triple per operand; satisfaction semantics stay
// in the compiled model.
func TransitionTriples(graphID string, t *TransitionNode, now time.Time) []message.Triple {
	subject := TransitionEntityID(graphID, t.ID)
	triples := []message.Triple{
		newTriple(subject, vocab.NodeName, t.Name, now),
	}
	if t.Qualifier != "" {
		triples = append(triples, newTriple(subject, vocab.NodeQualifier, t.Qualifier, now))
	}
	if t.Type != "" {
		triples = append(triples, newTriple(subject, vocab.NodeType, t.Type, now))
	}
	if t.Description != "" {
		triples = append(triples, newTriple(subject, vocab.NodeDescription, t.Description, now))
	}
	for _, e := range t.PriorState {
		for _, ref := range stateRefs(e) {
			triples = append(triples, newTriple(subject, vocab.TransitionPrior, NodeEntityID(graphID, ref.NodeID), now))
		}
	}
	for _, e := range t.PostState {
		for _, ref := range stateRefs(e) {
			triples = append(triples, newTriple(subject, vocab.TransitionPost, NodeEntityID(graphID, ref.NodeID), now))
		}
	}
	return triples
}

func stateRefs(e StateEntry) []NodeRef {
	if e.Ref != nil {
		return []NodeRef{*e.Ref}
	}
	if e.Operator != nil {
		return e.Operator.Operands
	}
	return nil
}

func newTriple(subject, predicate string, object any, now time.Time) message.Triple {
	return message.Triple{
		Subject:    subject,
		Predicate:  predicate,
		Object:     object,
		Source:     tripleSource,
		Timestamp:  now,
		Confidence: 1.0,
	}
}
