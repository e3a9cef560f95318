// Package graph defines the compiled graph data model produced by the
// CNL compiler, and utilities for publishing compiled entities to the
// knowledge graph.
package graph

// Morph is one named variant neighborhood of a PolyNode. Relations and
// attributes are owned by reference: their bodies live in the snapshot's
// flat collections so a fact visible from several morphs is stored once.
type Morph struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	RelationIDs  []string `json:"relation_ids,omitempty"`
	AttributeIDs []string `json:"attribute_ids,omitempty"`
}

// PolyNode is a node whose visible neighborhood varies by morph. The
// basic morph always exists; deleting the last morph deletes the node.
type PolyNode struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Qualifier   string  `json:"qualifier,omitempty"`
	Type        string  `json:"type,omitempty"`
	Description string  `json:"description,omitempty"`
	Morphs      []Morph `json:"morphs"`

	// BasicMorphID names the basic morph explicitly. Array position is
	// never authoritative; morphs may be reordered or deleted.
	BasicMorphID string `json:"basic_morph_id"`

	// ActiveMorphID defaults to the basic morph.
	ActiveMorphID string `json:"active_morph_id"`

	// Implicit marks a node materialized from a reference rather than a
	// heading. Implicit nodes are omitted from CNL rendering.
	Implicit bool `json:"implicit,omitempty"`
}

// RelationEdge is a typed edge between two nodes, scoped to one morph
// neighborhood of its source. Every distinguishing field participates in
// the id, so re-asserting an identical relation is idempotent.
type RelationEdge struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SourceID   string `json:"source_id"`
	TargetID   string `json:"target_id"`
	MorphID    string `json:"morph_id"`
	Adjective  string `json:"adjective,omitempty"`
	Adverb     string `json:"adverb,omitempty"`
	Quantifier string `json:"quantifier,omitempty"`
	Modality   string `json:"modality,omitempty"`
}

// AttributeValue is a valued property of a node, scoped to one morph.
// Value and unit are excluded from the id so redeclaring with a new
// value updates in place.
type AttributeValue struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Value      string `json:"value"`
	Unit       string `json:"unit,omitempty"`
	NodeID     string `json:"node_id"`
	MorphID    string `json:"morph_id"`
	Qualifier  string `json:"qualifier,omitempty"`
	Quantifier string `json:"quantifier,omitempty"`
	Modality   string `json:"modality,omitempty"`
}

// NodeRef points at a node, optionally narrowed to one of its morphs.
type NodeRef struct {
	NodeID  string `json:"node_id"`
	MorphID string `json:"morph_id,omitempty"`
}

// LogicalOperator combines several node references into one trigger
// condition. Satisfaction is about existence/activation of the operands,
// not boolean values.
type LogicalOperator struct {
	// Operator is "AND" or "OR".
	Operator string    `json:"operator"`
	Operands []NodeRef `json:"operands"`
}

// StateEntry is one element of a transition's prior or post state:
// either a single reference or an operator over alternatives.
type StateEntry struct {
	Ref      *NodeRef         `json:"ref,omitempty"`
	Operator *LogicalOperator `json:"operator,omitempty"`
}

// TransitionNode models a process: its neighborhood is fixed to a
// prior-state set (preconditions and triggers) and a post-state set
// (outcomes), each holding node-or-node+morph references.
type TransitionNode struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Qualifier   string       `json:"qualifier,omitempty"`
	Type        string       `json:"type,omitempty"`
	Description string       `json:"description,omitempty"`
	PriorState  []StateEntry `json:"prior_state,omitempty"`
	PostState   []StateEntry `json:"post_state,omitempty"`
}
