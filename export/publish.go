package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/cnlgraph/graph"
	vocab "github.com/c360studio/cnlgraph/vocabulary/cnl"
)

// PublishTypeTriples publishes rdf:type assertions for every entity in
// the snapshot to the graph ingest stream, so downstream consumers see
// the ontology alignment without running an export themselves.
func PublishTypeTriples(ctx context.Context, nc *natsclient.Client, graphID string, snap *graph.Snapshot, profile Profile) error {
	if nc == nil {
		return nil
	}

	now := time.Now()
	publish := func(entityID string, entityType vocab.EntityType) error {
		triples := TypeTriples(entityID, entityType, profile)
		if len(triples) == 0 {
			return nil
		}
		payload := &graph.EntityPayload{
			EntityID_:  entityID,
			TripleData: triples,
			UpdatedAt:  now,
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal type triples: %w", err)
		}
		return nc.PublishToStream(ctx, graph.GraphIngestSubject, data)
	}

	for i := range snap.Nodes {
		if err := publish(graph.NodeEntityID(graphID, snap.Nodes[i].ID), vocab.EntityTypeNode); err != nil {
			return err
		}
	}
	for i := range snap.Relations {
		if err := publish(graph.RelationEntityID(graphID, snap.Relations[i].ID), vocab.EntityTypeRelation); err != nil {
			return err
		}
	}
	for i := range snap.Attributes {
		if err := publish(graph.AttributeEntityID(graphID, snap.Attributes[i].ID), vocab.EntityTypeAttribute); err != nil {
			return err
		}
	}
	for i := range snap.Transitions {
		if err := publish(graph.TransitionEntityID(graphID, snap.Transitions[i].ID), vocab.EntityTypeTransition); err != nil {
			return err
		}
	}

	return nil
}
