package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/cnlgraph/diff"
)

// Bucket names for each entity class.
const (
	BucketNodes       = "CNLGRAPH_NODES"
	BucketMorphs      = "CNLGRAPH_MORPHS"
	BucketRelations   = "CNLGRAPH_RELATIONS"
	BucketAttributes  = "CNLGRAPH_ATTRIBUTES"
	BucketTransitions = "CNLGRAPH_TRANSITIONS"
)

// KVStore persists entities in NATS JetStream KV, one bucket per
// entity class. KV history keeps prior revisions, so overwrites and
// deletes stay auditable.
type KVStore struct {
	nodes       jetstream.KeyValue
	morphs      jetstream.KeyValue
	relations   jetstream.KeyValue
	attributes  jetstream.KeyValue
	transitions jetstream.KeyValue
}

// NewKVStore creates the KV buckets if they don't exist and returns a
// store over them.
func NewKVStore(ctx context.Context, js jetstream.JetStream) (*KVStore, error) {
	s := &KVStore{}
	for _, b := range []struct {
		name string
		kv   *jetstream.KeyValue
	}{
		{BucketNodes, &s.nodes},
		{BucketMorphs, &s.morphs},
		{BucketRelations, &s.relations},
		{BucketAttributes, &s.attributes},
		{BucketTransitions, &s.transitions},
	} {
		kv, err := getOrCreateBucket(ctx, js, b.name)
		if err != nil {
			return nil, fmt.Errorf("create %s bucket: %w", strings.ToLower(b.name), err)
		}
		*b.kv = kv
	}
	return s, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("cnlgraph %s storage", strings.ToLower(strings.TrimPrefix(name, "CNLGRAPH_"))),
		History:     5, // Keep last 5 revisions
	})
}

// Get retrieves a stored entity document by id.
func (s *KVStore) Get(ctx context.Context, id string) (json.RawMessage, error) {
	entry, err := s.bucketFor(id).Get(ctx, kvKey(id))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get entity %s: %w", id, err)
	}
	return json.RawMessage(entry.Value()), nil
}

// BatchApply writes each operation to its bucket in order. Operations
// fail independently; the returned results mirror the input order.
func (s *KVStore) BatchApply(ctx context.Context, ops []diff.Operation) ([]OpResult, error) {
	results := make([]OpResult, 0, len(ops))
	for _, op := range ops {
		results = append(results, OpResult{
			EntityID: op.EntityID,
			Kind:     op.Kind,
			Err:      s.applyOne(ctx, op),
		})
	}
	return results, nil
}

func (s *KVStore) applyOne(ctx context.Context, op diff.Operation) error {
	kv := s.bucketFor(op.EntityID)
	key := kvKey(op.EntityID)

	if op.IsDelete() {
		if err := kv.Delete(ctx, key); err != nil && !isNotFound(err) {
			return fmt.Errorf("delete %s: %w", op.EntityID, err)
		}
		return nil
	}

	data, err := opDocument(op)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", op.EntityID, err)
	}
	if _, err := kv.Put(ctx, key, data); err != nil {
		return fmt.Errorf("put %s: %w", op.EntityID, err)
	}
	return nil
}

// bucketFor routes an entity id to its class bucket. Relation,
// attribute, and transition ids carry a class prefix; morph ids are
// dotted; everything else is a node.
func (s *KVStore) bucketFor(id string) jetstream.KeyValue {
	switch {
	case strings.HasPrefix(id, "rel:"):
		return s.relations
	case strings.HasPrefix(id, "attr:"):
		return s.attributes
	case strings.HasPrefix(id, "trans:"):
		return s.transitions
	case strings.Contains(id, "."):
		return s.morphs
	default:
		return s.nodes
	}
}

// kvKey rewrites an entity id into a valid KV key. Colons separate id
// segments but are not legal in KV keys, so they map to '='.
func kvKey(id string) string {
	return strings.ReplaceAll(id, ":", "=")
}

func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted)
}
