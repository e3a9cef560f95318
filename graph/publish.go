package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
)

// GraphIngestSubject is the stream subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// Publisher publishes compiled entities to the knowledge graph stream.
// A nil NATS client degrades gracefully: publishing becomes a no-op so
// local compilation works without a running server.
type Publisher struct {
	nc      *natsclient.Client
	graphID string
}

// NewPublisher creates a publisher for the given graph.
func NewPublisher(nc *natsclient.Client, graphID string) *Publisher {
	return &Publisher{nc: nc, graphID: graphID}
}

// PublishSnapshot publishes every entity in the snapshot.
func (p *Publisher) PublishSnapshot(ctx context.Context, snap *Snapshot) error {
	if p.nc == nil {
		return nil
	}

	now := time.Now()
	for i := range snap.Nodes {
		n := &snap.Nodes[i]
		if err := p.publish(ctx, NodeEntityID(p.graphID, n.ID), NodeTriples(p.graphID, n, now), now); err != nil {
			return fmt.Errorf("publish node %s: %w", n.ID, err)
		}
	}
	for i := range snap.Relations {
		r := &snap.Relations[i]
		if err := p.publish(ctx, RelationEntityID(p.graphID, r.ID), RelationTriples(p.graphID, r, now), now); err != nil {
			return fmt.Errorf("publish relation %s: %w", r.ID, err)
		}
	}
	for i := range snap.Attributes {
		a := &snap.Attributes[i]
		if err := p.publish(ctx, AttributeEntityID(p.graphID, a.ID), AttributeTriples(p.graphID, a, now), now); err != nil {
			return fmt.Errorf("publish attribute %s: %w", a.ID, err)
		}
	}
	for i := range snap.Transitions {
		t := &snap.Transitions[i]
		if err := p.publish(ctx, TransitionEntityID(p.graphID, t.ID), TransitionTriples(p.graphID, t, now), now); err != nil {
			return fmt.Errorf("publish transition %s: %w", t.ID, err)
		}
	}

	return nil
}

func (p *Publisher) publish(ctx context.Context, entityID string, triples []message.Triple, now time.Time) error {
	payload := &EntityPayload{
		EntityID_:  entityID,
		TripleData: triples,
		UpdatedAt:  now,
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid entity payload: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal entity: %w", err)
	}

	return p.nc.PublishToStream(ctx, GraphIngestSubject, data)
}
