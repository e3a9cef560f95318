// Package ident derives stable identifiers for graph entities from their
// declared names and qualifiers. The same declaration always produces the
// same id, so re-asserting a fact is idempotent and entities survive
// recompilation with their identity intact.
package ident

import "strings"

// BasicMorphName is the reserved name of the implicit first morph of
// every node.
const BasicMorphName = "basic"

// Id prefixes per entity class. Node and morph ids carry no prefix so
// they stay readable in rendered output and NATS subjects.
const (
	relationPrefix   = "rel:"
	attributePrefix  = "attr:"
	transitionPrefix = "trans:"
)

// Slug normalizes a display name into an id fragment: lowercased, with
// runs of non-alphanumeric characters collapsed to a single underscore.
func Slug(s string) string {
	var b strings.Builder
	lastUnderscore := true // suppress leading underscore
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// Node derives a node id from its qualifier and base name.
// The qualifier is omitted when absent: "heavy" + "water" -> "heavy_water",
// "" + "water" -> "water".
func Node(qualifier, baseName string) string {
	base := Slug(baseName)
	if qualifier == "" {
		return base
	}
	return Slug(qualifier) + "_" + base
}

// Morph derives a morph id scoped to its owning node. An empty morph
// name resolves to the node's basic morph.
func Morph(nodeID, morphName string) string {
	if morphName == "" {
		morphName = BasicMorphName
	}
	return nodeID + "." + Slug(morphName)
}

// Transition derives a transition id. Transitions share the node id
// namespace; the prefix keeps them from colliding with a plain node of
// the same name.
func Transition(qualifier, baseName string) string {
	return transitionPrefix + Node(qualifier, baseName)
}

// Relation derives a relation id from every field that distinguishes one
// fact from another. Field order is fixed; empty fields keep their slot
// so that adjacent fields cannot bleed into each other. The value-free
// fields (adjective, quantifier, modality) are part of the id: the same
// relation stated under a different modality is a different fact.
func Relation(name, adjective, quantifier, modality, morphID, sourceID, targetID string) string {
	return relationPrefix + strings.Join([]string{
		Slug(name),
		Slug(adjective),
		Slug(quantifier),
		Slug(modality),
		morphID,
		sourceID,
		targetID,
	}, ":")
}

// Attribute derives an attribute id. The value and unit are deliberately
// excluded: re-declaring the same attribute with a new value updates the
// existing entity instead of creating a sibling.
func Attribute(name, qualifier, quantifier, modality, morphID, nodeID string) string {
	return attributePrefix + strings.Join([]string{
		Slug(name),
		Slug(qualifier),
		Slug(quantifier),
		Slug(modality),
		morphID,
		nodeID,
	}, ":")
}
