package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/cnlgraph/graph"
	"github.com/c360studio/cnlgraph/ident"
)

// buildWaterWorld assembles the snapshot for a small two-node graph:
// Water with a Frozen morph, and Ice which Frozen resembles.
func buildWaterWorld(t *testing.T) *graph.Snapshot {
	t.Helper()

	s := graph.NewSnapshot()

	waterID := ident.Node("", "Water")
	iceID := ident.Node("", "Ice")
	basicID := ident.Morph(waterID, ident.BasicMorphName)
	frozenID := ident.Morph(waterID, "Frozen")

	s.AddNode(graph.PolyNode{
		ID:            waterID,
		Name:          "Water",
		BasicMorphID:  basicID,
		ActiveMorphID: basicID,
		Morphs: []graph.Morph{
			{ID: basicID, Name: ident.BasicMorphName},
			{ID: frozenID, Name: "Frozen"},
		},
	})
	s.AddNode(graph.PolyNode{
		ID:            iceID,
		Name:          "Ice",
		BasicMorphID:  ident.Morph(iceID, ident.BasicMorphName),
		ActiveMorphID: ident.Morph(iceID, ident.BasicMorphName),
		Morphs: []graph.Morph{
			{ID: ident.Morph(iceID, ident.BasicMorphName), Name: ident.BasicMorphName},
		},
	})

	relID := ident.Relation("resembles", "", "", "", frozenID, waterID, iceID)
	s.AddRelation(graph.RelationEdge{
		ID:       relID,
		Name:     "resembles",
		SourceID: waterID,
		TargetID: iceID,
		MorphID:  frozenID,
	})

	return s
}

func TestComputeIdenticalSnapshotsProduceNoOperations(t *testing.T) {
	prev := buildWaterWorld(t)
	next := buildWaterWorld(t)

	ops, errs := Compute(prev, next)
	assert.Empty(t, errs)
	assert.Empty(t, ops)
}

func TestComputeFreshGraphOrdersContainersFirst(t *testing.T) {
	next := buildWaterWorld(t)

	ops, errs := Compute(nil, next)
	require.Empty(t, errs)

	pos := positions(ops)
	waterID := ident.Node("", "Water")
	iceID := ident.Node("", "Ice")
	frozenID := ident.Morph(waterID, "Frozen")
	relID := ident.Relation("resembles", "", "", "", frozenID, waterID, iceID)

	require.Contains(t, pos, opKey(Operation{Kind: OpAddRelation, EntityID: relID}))
	assert.Less(t, pos[opKey(Operation{Kind: OpAddNode, EntityID: waterID})],
		pos[opKey(Operation{Kind: OpAddMorph, EntityID: frozenID})])
	assert.Less(t, pos[opKey(Operation{Kind: OpAddMorph, EntityID: frozenID})],
		pos[opKey(Operation{Kind: OpAddRelation, EntityID: relID})])
	assert.Less(t, pos[opKey(Operation{Kind: OpAddNode, EntityID: iceID})],
		pos[opKey(Operation{Kind: OpAddRelation, EntityID: relID})])
}

func TestComputeDeletionOrdersContentsFirst(t *testing.T) {
	prev := buildWaterWorld(t)
	next := graph.NewSnapshot()

	ops, errs := Compute(prev, next)
	require.Empty(t, errs)

	pos := positions(ops)
	waterID := ident.Node("", "Water")
	frozenID := ident.Morph(waterID, "Frozen")
	relID := ident.Relation("resembles", "", "", "", frozenID, waterID, ident.Node("", "Ice"))

	assert.Less(t, pos[opKey(Operation{Kind: OpDeleteRelation, EntityID: relID})],
		pos[opKey(Operation{Kind: OpDeleteMorph, EntityID: frozenID})])
	assert.Less(t, pos[opKey(Operation{Kind: OpDeleteMorph, EntityID: frozenID})],
		pos[opKey(Operation{Kind: OpDeleteNode, EntityID: waterID})])

	// Tearing down the world deletes every entity, not just the nodes.
	kinds := map[OpKind]int{}
	for _, op := range ops {
		kinds[op.Kind]++
	}
	assert.Equal(t, 2, kinds[OpDeleteNode])
	assert.Equal(t, 3, kinds[OpDeleteMorph])
	assert.Equal(t, 1, kinds[OpDeleteRelation])
}

func TestComputeAttributeValueChangeIsUpdate(t *testing.T) {
	nodeID := ident.Node("", "Reactor")
	basicID := ident.Morph(nodeID, ident.BasicMorphName)
	attrID := ident.Attribute("temperature", "", "", "", basicID, nodeID)

	build := func(value string) *graph.Snapshot {
		s := graph.NewSnapshot()
		s.AddNode(graph.PolyNode{
			ID: nodeID, Name: "Reactor",
			BasicMorphID:  basicID,
			ActiveMorphID: basicID,
			Morphs:        []graph.Morph{{ID: basicID, Name: ident.BasicMorphName}},
		})
		s.UpsertAttribute(graph.AttributeValue{
			ID: attrID, Name: "temperature", Value: value, Unit: "C",
			NodeID: nodeID, MorphID: basicID,
		})
		return s
	}

	ops, errs := Compute(build("300"), build("350"))
	require.Empty(t, errs)
	require.Len(t, ops, 1)
	assert.Equal(t, OpUpdateAttribute, ops[0].Kind)
	assert.Equal(t, attrID, ops[0].EntityID)
	assert.Equal(t, "350", ops[0].Attribute.Value)
}

func TestComputeNodeFieldChangeIsUpdate(t *testing.T) {
	prev := buildWaterWorld(t)
	next := buildWaterWorld(t)
	next.Nodes[0].Description = "A liquid at room temperature."

	ops, errs := Compute(prev, next)
	require.Empty(t, errs)
	require.Len(t, ops, 1)
	assert.Equal(t, OpUpdateNode, ops[0].Kind)
	assert.Equal(t, ident.Node("", "Water"), ops[0].EntityID)
}

func TestComputeUnresolvedRelationReferenceIsReportedAndDropped(t *testing.T) {
	next := buildWaterWorld(t)
	// Point the relation at a node the snapshot never declares.
	next.Relations[0].TargetID = ident.Node("", "Steam")

	ops, errs := Compute(nil, next)
	require.Len(t, errs, 1)
	var unresolved *UnresolvedReferenceError
	require.ErrorAs(t, errs[0], &unresolved)
	assert.Equal(t, ident.Node("", "Steam"), unresolved.Target)

	for _, op := range ops {
		assert.NotEqual(t, OpAddRelation, op.Kind)
	}
}

func TestComputeTransitionTypeChangeIsUpdate(t *testing.T) {
	transID := ident.Transition("", "Combustion")
	build := func(typ string) *graph.Snapshot {
		s := graph.NewSnapshot()
		s.AddNode(graph.PolyNode{ID: ident.Node("", "Spark"), Name: "Spark"})
		s.UpsertTransition(graph.TransitionNode{
			ID:   transID,
			Name: "Combustion",
			Type: typ,
			PriorState: []graph.StateEntry{
				{Ref: &graph.NodeRef{NodeID: ident.Node("", "Spark")}},
			},
		})
		return s
	}

	ops, errs := Compute(build(""), build("Transition"))
	require.Empty(t, errs)
	require.Len(t, ops, 1)
	assert.Equal(t, OpUpdateTransition, ops[0].Kind)
	assert.Equal(t, "Transition", ops[0].Transition.Type)
}

func TestComputeTransitionAddedAfterItsNodes(t *testing.T) {
	waterID := ident.Node("", "Water")
	iceID := ident.Node("", "Ice")
	transID := ident.Transition("", "Freezing")

	next := graph.NewSnapshot()
	next.AddNode(graph.PolyNode{ID: waterID, Name: "Water"})
	next.AddNode(graph.PolyNode{ID: iceID, Name: "Ice"})
	next.UpsertTransition(graph.TransitionNode{
		ID:   transID,
		Name: "Freezing",
		PriorState: []graph.StateEntry{
			{Ref: &graph.NodeRef{NodeID: waterID}},
		},
		PostState: []graph.StateEntry{
			{Ref: &graph.NodeRef{NodeID: iceID}},
		},
	})

	ops, errs := Compute(nil, next)
	require.Empty(t, errs)

	pos := positions(ops)
	assert.Less(t, pos[opKey(Operation{Kind: OpAddNode, EntityID: waterID})],
		pos[opKey(Operation{Kind: OpAddTransition, EntityID: transID})])
	assert.Less(t, pos[opKey(Operation{Kind: OpAddNode, EntityID: iceID})],
		pos[opKey(Operation{Kind: OpAddTransition, EntityID: transID})])
}

func positions(ops []Operation) map[string]int {
	pos := make(map[string]int, len(ops))
	for i, op := range ops {
		pos[opKey(op)] = i
	}
	return pos
}
