// Package apply executes an ordered operation list against a snapshot,
// enforcing schema and referential checks per operation. Failures are
// isolated: a rejected operation is recorded in the audit trail and the
// rest of the submission proceeds, so one bad line never blocks a
// valid one.
package apply

import (
	"context"
	"log/slog"

	"github.com/c360studio/cnlgraph/diff"
	"github.com/c360studio/cnlgraph/graph"
	"github.com/c360studio/cnlgraph/schema"
	"github.com/c360studio/cnlgraph/storage"
)

// Status values for audit entries.
const (
	StatusApplied = "applied"
	StatusFailed  = "failed"
)

// AuditEntry records the outcome of one operation.
type AuditEntry struct {
	Kind     diff.OpKind `json:"kind"`
	EntityID string      `json:"entity_id"`
	Status   string      `json:"status"`
	Err      error       `json:"-"`
	Reason   string      `json:"reason,omitempty"`
}

// Applier validates and executes operations. A nil store skips
// persistence; the snapshot is still mutated and audited.
type Applier struct {
	store  storage.Store
	schema schema.Schema
	logger *slog.Logger
}

// New returns an Applier. schema must not be nil; store and logger may be.
func New(store storage.Store, sch schema.Schema, logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Applier{store: store, schema: sch, logger: logger}
}

// Apply runs the ordered operations against a copy of base and returns
// the resulting snapshot with an audit entry per operation. Operations
// that fail validation are skipped and never reach the store.
func (a *Applier) Apply(ctx context.Context, base *graph.Snapshot, ops []diff.Operation) (*graph.Snapshot, []AuditEntry, error) {
	if base == nil {
		base = graph.NewSnapshot()
	}
	working := base.Clone()

	audit := make([]AuditEntry, 0, len(ops))
	applied := make([]diff.Operation, 0, len(ops))

	for _, op := range ops {
		if err := a.applyOne(working, op); err != nil {
			a.logger.Warn("operation rejected",
				"kind", op.Kind,
				"entity_id", op.EntityID,
				"error", err)
			audit = append(audit, AuditEntry{
				Kind:     op.Kind,
				EntityID: op.EntityID,
				Status:   StatusFailed,
				Err:      err,
				Reason:   err.Error(),
			})
			continue
		}
		audit = append(audit, AuditEntry{Kind: op.Kind, EntityID: op.EntityID, Status: StatusApplied})
		applied = append(applied, op)
	}

	if a.store != nil && len(applied) > 0 {
		results, err := a.store.BatchApply(ctx, applied)
		if err != nil {
			return working, audit, err
		}
		failed := make(map[string]error)
		for _, r := range results {
			if r.Err != nil {
				failed[string(r.Kind)+"|"+r.EntityID] = r.Err
			}
		}
		for i := range audit {
			if err, ok := failed[string(audit[i].Kind)+"|"+audit[i].EntityID]; ok {
				audit[i].Status = StatusFailed
				audit[i].Err = err
				audit[i].Reason = err.Error()
			}
		}
	}

	return working, audit, nil
}

func (a *Applier) applyOne(s *graph.Snapshot, op diff.Operation) error {
	switch op.Kind {
	case diff.OpAddNode, diff.OpUpdateNode:
		return a.applyNode(s, op)
	case diff.OpDeleteNode:
		if !s.RemoveNode(op.EntityID) {
			return &MissingEntityError{EntityID: op.EntityID}
		}
		return nil
	case diff.OpAddMorph:
		if s.Node(op.OwnerID) == nil {
			return &ReferenceError{EntityID: op.EntityID, Target: op.OwnerID}
		}
		s.AddMorph(op.OwnerID, *op.Morph)
		return nil
	case diff.OpDeleteMorph:
		if !s.RemoveMorph(op.EntityID) {
			return &MissingEntityError{EntityID: op.EntityID}
		}
		return nil
	case diff.OpAddRelation:
		return a.applyRelation(s, op)
	case diff.OpDeleteRelation:
		if !s.RemoveRelation(op.EntityID) {
			return &MissingEntityError{EntityID: op.EntityID}
		}
		return nil
	case diff.OpAddAttribute, diff.OpUpdateAttribute:
		return a.applyAttribute(s, op)
	case diff.OpDeleteAttribute:
		if !s.RemoveAttribute(op.EntityID) {
			return &MissingEntityError{EntityID: op.EntityID}
		}
		return nil
	case diff.OpAddTransition, diff.OpUpdateTransition:
		return a.applyTransition(s, op)
	case diff.OpDeleteTransition:
		if !s.RemoveTransition(op.EntityID) {
			return &MissingEntityError{EntityID: op.EntityID}
		}
		return nil
	default:
		return &MissingEntityError{EntityID: op.EntityID}
	}
}

func (a *Applier) applyNode(s *graph.Snapshot, op diff.Operation) error {
	n := op.Node
	if !a.schema.IsKnownType(schema.KindNodeType, n.Type) {
		return &SchemaViolationError{Kind: schema.KindNodeType, Name: n.Type, EntityID: n.ID}
	}
	a.schema.Register(schema.KindNodeType, n.Type)

	if op.Kind == diff.OpUpdateNode {
		existing := s.Node(n.ID)
		if existing == nil {
			return &MissingEntityError{EntityID: n.ID}
		}
		existing.Name = n.Name
		existing.Qualifier = n.Qualifier
		existing.Type = n.Type
		existing.Description = n.Description
		existing.BasicMorphID = n.BasicMorphID
		existing.ActiveMorphID = n.ActiveMorphID
		existing.Implicit = n.Implicit
		return nil
	}
	s.AddNode(*n)
	return nil
}

func (a *Applier) applyRelation(s *graph.Snapshot, op diff.Operation) error {
	r := op.Relation
	if !a.schema.IsKnownType(schema.KindRelation, r.Name) {
		return &SchemaViolationError{Kind: schema.KindRelation, Name: r.Name, EntityID: r.ID}
	}
	if s.Node(r.SourceID) == nil {
		return &ReferenceError{EntityID: r.ID, Target: r.SourceID}
	}
	if s.Node(r.TargetID) == nil {
		return &ReferenceError{EntityID: r.ID, Target: r.TargetID}
	}
	if _, m := s.Morph(r.MorphID); m == nil {
		return &ReferenceError{EntityID: r.ID, Target: r.MorphID}
	}
	a.schema.Register(schema.KindRelation, r.Name)
	s.AddRelation(*r)
	return nil
}

func (a *Applier) applyAttribute(s *graph.Snapshot, op diff.Operation) error {
	at := op.Attribute
	if !a.schema.IsKnownType(schema.KindAttribute, at.Name) {
		return &SchemaViolationError{Kind: schema.KindAttribute, Name: at.Name, EntityID: at.ID}
	}
	if s.Node(at.NodeID) == nil {
		return &ReferenceError{EntityID: at.ID, Target: at.NodeID}
	}
	if _, m := s.Morph(at.MorphID); m == nil {
		return &ReferenceError{EntityID: at.ID, Target: at.MorphID}
	}
	a.schema.Register(schema.KindAttribute, at.Name)
	s.UpsertAttribute(*at)
	return nil
}

func (a *Applier) applyTransition(s *graph.Snapshot, op diff.Operation) error {
	t := op.Transition
	for _, entry := range append(append([]graph.StateEntry(nil), t.PriorState...), t.PostState...) {
		for _, ref := range entryRefs(entry) {
			if s.Node(ref.NodeID) == nil {
				return &ReferenceError{EntityID: t.ID, Target: ref.NodeID}
			}
			if ref.MorphID != "" {
				if _, m := s.Morph(ref.MorphID); m == nil {
					return &ReferenceError{EntityID: t.ID, Target: ref.MorphID}
				}
			}
		}
	}
	s.UpsertTransition(*t)
	return nil
}

func entryRefs(e graph.StateEntry) []graph.NodeRef {
	if e.Ref != nil {
		return []graph.NodeRef{*e.Ref}
	}
	if e.Operator != nil {
		return e.Operator.Operands
	}
	return nil
}
