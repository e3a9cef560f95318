package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/c360studio/cnlgraph/diff"
)

// MemoryStore keeps entity documents in a map. It backs tests and
// offline CLI runs where no NATS server is available.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]json.RawMessage
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]json.RawMessage)}
}

// Get retrieves a stored entity document by id.
func (s *MemoryStore) Get(_ context.Context, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

// BatchApply applies each operation to the map in order.
func (s *MemoryStore) BatchApply(_ context.Context, ops []diff.Operation) ([]OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]OpResult, 0, len(ops))
	for _, op := range ops {
		results = append(results, OpResult{
			EntityID: op.EntityID,
			Kind:     op.Kind,
			Err:      s.applyOne(op),
		})
	}
	return results, nil
}

func (s *MemoryStore) applyOne(op diff.Operation) error {
	if op.IsDelete() {
		delete(s.entries, op.EntityID)
		return nil
	}
	data, err := opDocument(op)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", op.EntityID, err)
	}
	s.entries[op.EntityID] = data
	return nil
}

// Len reports how many entities are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
