package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/cnlgraph/ident"
)

func waterSnapshot() *Snapshot {
	s := NewSnapshot()

	waterID := ident.Node("", "Water")
	basicID := ident.Morph(waterID, ident.BasicMorphName)
	frozenID := ident.Morph(waterID, "Frozen")
	s.AddNode(PolyNode{
		ID:   waterID,
		Name: "Water",
		Type: "Substance",
		Morphs: []Morph{
			{ID: basicID, Name: ident.BasicMorphName},
			{ID: frozenID, Name: "Frozen"},
		},
		BasicMorphID:  basicID,
		ActiveMorphID: basicID,
	})

	iceID := ident.Node("", "Ice")
	iceBasic := ident.Morph(iceID, ident.BasicMorphName)
	s.AddNode(PolyNode{
		ID:            iceID,
		Name:          "Ice",
		Morphs:        []Morph{{ID: iceBasic, Name: ident.BasicMorphName}},
		BasicMorphID:  iceBasic,
		ActiveMorphID: iceBasic,
		Implicit:      true,
	})

	relID := ident.Relation("resembles", "", "", "", frozenID, waterID, iceID)
	s.AddRelation(RelationEdge{
		ID:       relID,
		Name:     "resembles",
		SourceID: waterID,
		TargetID: iceID,
		MorphID:  frozenID,
	})

	attrID := ident.Attribute("temperature", "", "", "", basicID, waterID)
	s.UpsertAttribute(AttributeValue{
		ID:      attrID,
		Name:    "temperature",
		Value:   "20",
		Unit:    "celsius",
		NodeID:  waterID,
		MorphID: basicID,
	})

	return s
}

func TestSnapshotLookups(t *testing.T) {
	s := waterSnapshot()
	waterID := ident.Node("", "Water")
	frozenID := ident.Morph(waterID, "Frozen")

	require.NotNil(t, s.Node(waterID))
	assert.Nil(t, s.Node("no_such_node"))

	owner, m := s.Morph(frozenID)
	require.NotNil(t, m)
	assert.Equal(t, waterID, owner.ID)
	assert.Equal(t, "Frozen", m.Name)

	owner, m = s.Morph("no.such")
	assert.Nil(t, owner)
	assert.Nil(t, m)
}

func TestSnapshotOrderExcludesImplicitNodes(t *testing.T) {
	s := waterSnapshot()
	// Ice was materialized implicitly, so only Water is in declaration order.
	assert.Equal(t, []string{ident.Node("", "Water")}, s.Order)
}

func TestSnapshotMorphLinks(t *testing.T) {
	s := waterSnapshot()
	waterID := ident.Node("", "Water")
	frozenID := ident.Morph(waterID, "Frozen")
	basicID := ident.Morph(waterID, ident.BasicMorphName)

	_, frozen := s.Morph(frozenID)
	require.Len(t, frozen.RelationIDs, 1)

	_, basic := s.Morph(basicID)
	require.Len(t, basic.AttributeIDs, 1)

	// Re-adding the same relation does not duplicate the link.
	rel := *s.Relation(frozen.RelationIDs[0])
	s.AddRelation(rel)
	_, frozen = s.Morph(frozenID)
	assert.Len(t, frozen.RelationIDs, 1)
}

func TestSnapshotAddMorphUpsert(t *testing.T) {
	s := waterSnapshot()
	waterID := ident.Node("", "Water")
	frozenID := ident.Morph(waterID, "Frozen")

	ok := s.AddMorph(waterID, Morph{ID: frozenID, Name: "Frozen", Description: "solid phase"})
	require.True(t, ok)

	water := s.Node(waterID)
	assert.Len(t, water.Morphs, 2)
	_, frozen := s.Morph(frozenID)
	assert.Equal(t, "solid phase", frozen.Description)

	assert.False(t, s.AddMorph("missing_node", Morph{ID: "missing_node.x", Name: "x"}))
}

func TestSnapshotRemoveRelationUnlinks(t *testing.T) {
	s := waterSnapshot()
	waterID := ident.Node("", "Water")
	frozenID := ident.Morph(waterID, "Frozen")

	_, frozen := s.Morph(frozenID)
	relID := frozen.RelationIDs[0]

	require.True(t, s.RemoveRelation(relID))
	assert.Nil(t, s.Relation(relID))
	_, frozen = s.Morph(frozenID)
	assert.Empty(t, frozen.RelationIDs)

	assert.False(t, s.RemoveRelation(relID))
}

func TestSnapshotUpsertAttributeReplacesValue(t *testing.T) {
	s := waterSnapshot()
	waterID := ident.Node("", "Water")
	basicID := ident.Morph(waterID, ident.BasicMorphName)
	attrID := ident.Attribute("temperature", "", "", "", basicID, waterID)

	updated := *s.Attribute(attrID)
	updated.Value = "0"
	s.UpsertAttribute(updated)

	require.Len(t, s.Attributes, 1)
	assert.Equal(t, "0", s.Attribute(attrID).Value)

	_, basic := s.Morph(basicID)
	assert.Len(t, basic.AttributeIDs, 1)
}

func TestSnapshotRemoveNodeDropsOrder(t *testing.T) {
	s := waterSnapshot()
	waterID := ident.Node("", "Water")

	require.True(t, s.RemoveNode(waterID))
	assert.Nil(t, s.Node(waterID))
	assert.Empty(t, s.Order)
	assert.False(t, s.RemoveNode(waterID))
}

func TestSnapshotTransitions(t *testing.T) {
	s := NewSnapshot()
	waterID := ident.Node("", "Water")
	frozenID := ident.Morph(waterID, "Frozen")
	transID := ident.Transition("", "Freezing")

	s.UpsertTransition(TransitionNode{
		ID:         transID,
		Name:       "Freezing",
		PriorState: []StateEntry{{Ref: &NodeRef{NodeID: waterID}}},
		PostState:  []StateEntry{{Ref: &NodeRef{NodeID: waterID, MorphID: frozenID}}},
	})
	require.NotNil(t, s.Transition(transID))
	assert.Equal(t, []string{transID}, s.Order)

	// Upsert replaces in place without duplicating the order entry.
	s.UpsertTransition(TransitionNode{ID: transID, Name: "Freezing", Description: "phase change"})
	require.Len(t, s.Transitions, 1)
	assert.Equal(t, "phase change", s.Transition(transID).Description)
	assert.Equal(t, []string{transID}, s.Order)

	require.True(t, s.RemoveTransition(transID))
	assert.Empty(t, s.Order)
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	s := waterSnapshot()
	waterID := ident.Node("", "Water")
	frozenID := ident.Morph(waterID, "Frozen")
	transID := ident.Transition("", "Freezing")
	s.UpsertTransition(TransitionNode{
		ID:         transID,
		Name:       "Freezing",
		PriorState: []StateEntry{{Operator: &LogicalOperator{Operator: "OR", Operands: []NodeRef{{NodeID: waterID}}}}},
		PostState:  []StateEntry{{Ref: &NodeRef{NodeID: waterID, MorphID: frozenID}}},
	})

	c := s.Clone()

	// Mutating the clone leaves the original untouched.
	c.Node(waterID).Name = "Steam"
	_, frozen := c.Morph(frozenID)
	frozen.RelationIDs = append(frozen.RelationIDs, "rel:extra")
	c.Transition(transID).PriorState[0].Operator.Operands[0].NodeID = "other"
	c.Order[0] = "changed"

	assert.Equal(t, "Water", s.Node(waterID).Name)
	_, origFrozen := s.Morph(frozenID)
	assert.Len(t, origFrozen.RelationIDs, 1)
	assert.Equal(t, waterID, s.Transition(transID).PriorState[0].Operator.Operands[0].NodeID)
	assert.Equal(t, waterID, s.Order[0])
}
