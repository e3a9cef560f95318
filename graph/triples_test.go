package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIDConventions(t *testing.T) {
	assert.Equal(t, "cnlgraph.demo.graph.node.water", NodeEntityID("demo", "water"))
	assert.Equal(t, "cnlgraph.demo.graph.relation.rel:contains", RelationEntityID("demo", "rel:contains"))
	assert.Equal(t, "cnlgraph.demo.graph.transition.trans:freezing", TransitionEntityID("demo", "trans:freezing"))
}

func TestTransitionTriplesCarryHeadingMarkers(t *testing.T) {
	now := time.Now()
	trans := &TransitionNode{
		ID:        "trans:rapid_combustion",
		Name:      "Combustion",
		Qualifier: "rapid",
		Type:      "Transition",
	}

	triples := TransitionTriples("demo", trans, now)

	byPredicate := make(map[string]any)
	for _, tr := range triples {
		byPredicate[tr.Predicate] = tr.Object
	}
	assert.Equal(t, "rapid", byPredicate["cnl.node.qualifier"])
	assert.Equal(t, "Transition", byPredicate["cnl.node.type"])
}

func TestTransitionTriplesFlattenOperators(t *testing.T) {
	now := time.Now()
	trans := &TransitionNode{
		ID:   "trans:ignition",
		Name: "Ignition",
		PriorState: []StateEntry{
			{Operator: &LogicalOperator{Operator: "OR", Operands: []NodeRef{{NodeID: "spark"}, {NodeID: "flame"}}}},
			{Ref: &NodeRef{NodeID: "fuel"}},
		},
		PostState: []StateEntry{{Ref: &NodeRef{NodeID: "fire"}}},
	}

	triples := TransitionTriples("demo", trans, now)

	var priors, posts []string
	for _, tr := range triples {
		switch tr.Predicate {
		case "cnl.transition.prior":
			priors = append(priors, tr.Object.(string))
		case "cnl.transition.post":
			posts = append(posts, tr.Object.(string))
		}
	}
	require.Len(t, priors, 3)
	assert.Contains(t, priors, NodeEntityID("demo", "spark"))
	assert.Contains(t, priors, NodeEntityID("demo", "fuel"))
	assert.Equal(t, []string{NodeEntityID("demo", "fire")}, posts)
}
