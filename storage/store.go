// Package storage persists compiled graph entities in an append-only
// key-value store keyed by entity id. The NATS JetStream KV backend is
// the production path; the memory backend serves tests and offline CLI
// runs.
package storage

import (
	"context"
	"encoding/json"

	"github.com/c360studio/cnlgraph/diff"
)

// Store reads and writes graph entities by id.
type Store interface {
	// Get returns the stored JSON document for an entity id, or
	// ErrNotFound.
	Get(ctx context.Context, id string) (json.RawMessage, error)

	// BatchApply persists a dependency-ordered operation list. Each
	// operation succeeds or fails independently; a failed operation
	// never aborts the batch.
	BatchApply(ctx context.Context, ops []diff.Operation) ([]OpResult, error)
}

// OpResult reports the outcome of one operation in a batch.
type OpResult struct {
	EntityID string
	Kind     diff.OpKind
	Err      error
}

// opDocument returns the JSON payload an operation writes, or nil for
// deletes.
func opDocument(op diff.Operation) (json.RawMessage, error) {
	if op.IsDelete() {
		return nil, nil
	}
	var v any
	switch {
	case op.Node != nil:
		v = op.Node
	case op.Morph != nil:
		v = op.Morph
	case op.Relation != nil:
		v = op.Relation
	case op.Attribute != nil:
		v = op.Attribute
	case op.Transition != nil:
		v = op.Transition
	default:
		return nil, ErrEmptyOperation
	}
	return json.Marshal(v)
}
