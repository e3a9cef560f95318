// Package diff compares two compiled snapshots and produces a minimal,
// dependency-ordered list of graph mutations. Identity is everything:
// entities present only in the previous snapshot become deletes, only in
// the new one become adds, and in both with differing fields become
// updates. Ordering is derived from an explicit dependency graph over
// the operations, topologically sorted, so containers always precede
// their contents and contents precede their connectors.
package diff

import "github.com/c360studio/cnlgraph/graph"

// OpKind enumerates the graph mutations a submission can produce.
type OpKind string

const (
	OpAddNode          OpKind = "addNode"
	OpUpdateNode       OpKind = "updateNode"
	OpDeleteNode       OpKind = "deleteNode"
	OpAddMorph         OpKind = "addMorph"
	OpDeleteMorph      OpKind = "deleteMorph"
	OpAddRelation      OpKind = "addRelation"
	OpDeleteRelation   OpKind = "deleteRelation"
	OpAddAttribute     OpKind = "addAttribute"
	OpUpdateAttribute  OpKind = "updateAttribute"
	OpDeleteAttribute  OpKind = "deleteAttribute"
	OpAddTransition    OpKind = "addTransition"
	OpUpdateTransition OpKind = "updateTransition"
	OpDeleteTransition OpKind = "deleteTransition"
)

// Operation is one graph mutation. Add and update kinds carry the new
// entity state; deletes carry the last known state so appliers and the
// ordering pass can see what the entity referenced.
type Operation struct {
	Kind     OpKind `json:"kind"`
	EntityID string `json:"entity_id"`

	// OwnerID is the owning node for morph operations.
	OwnerID string `json:"owner_id,omitempty"`

	Node       *graph.PolyNode       `json:"node,omitempty"`
	Morph      *graph.Morph          `json:"morph,omitempty"`
	Relation   *graph.RelationEdge   `json:"relation,omitempty"`
	Attribute  *graph.AttributeValue `json:"attribute,omitempty"`
	Transition *graph.TransitionNode `json:"transition,omitempty"`
}

// IsDelete reports whether the operation removes an entity.
func (o Operation) IsDelete() bool {
	switch o.Kind {
	case OpDeleteNode, OpDeleteMorph, OpDeleteRelation, OpDeleteAttribute, OpDeleteTransition:
		return true
	}
	return false
}

// kindRank orders operations of equal dependency depth deterministically.
var kindRank = map[OpKind]int{
	OpAddNode:          0,
	OpUpdateNode:       1,
	OpAddMorph:         2,
	OpUpdateAttribute:  3,
	OpAddRelation:      4,
	OpAddAttribute:     5,
	OpAddTransition:    6,
	OpUpdateTransition: 7,
	OpDeleteRelation:   8,
	OpDeleteAttribute:  9,
	OpDeleteTransition: 10,
	OpDeleteMorph:      11,
	OpDeleteNode:       12,
}
