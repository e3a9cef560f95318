package graph

// Snapshot is the compiled graph state for one document: the flat
// entity collections plus the declaration order of top-level blocks.
// It is the unit the diff engine compares and the applier mutates.
type Snapshot struct {
	Nodes       []PolyNode       `json:"nodes"`
	Relations   []RelationEdge   `json:"relations"`
	Attributes  []AttributeValue `json:"attributes"`
	Transitions []TransitionNode `json:"transitions"`

	// Order lists top-level block ids (nodes and transitions) in
	// declaration order, for deterministic rendering. Implicit nodes
	// are excluded.
	Order []string `json:"order,omitempty"`
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Node returns the node with the given id, or nil.
func (s *Snapshot) Node(id string) *PolyNode {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i]
		}
	}
	return nil
}

// Morph returns the morph with the given id and its owning node, or nils.
func (s *Snapshot) Morph(id string) (*PolyNode, *Morph) {
	for i := range s.Nodes {
		for j := range s.Nodes[i].Morphs {
			if s.Nodes[i].Morphs[j].ID == id {
				return &s.Nodes[i], &s.Nodes[i].Morphs[j]
			}
		}
	}
	return nil, nil
}

// Relation returns the relation with the given id, or nil.
func (s *Snapshot) Relation(id string) *RelationEdge {
	for i := range s.Relations {
		if s.Relations[i].ID == id {
			return &s.Relations[i]
		}
	}
	return nil
}

// Attribute returns the attribute with the given id, or nil.
func (s *Snapshot) Attribute(id string) *AttributeValue {
	for i := range s.Attributes {
		if s.Attributes[i].ID == id {
			return &s.Attributes[i]
		}
	}
	return nil
}

// Transition returns the transition with the given id, or nil.
func (s *Snapshot) Transition(id string) *TransitionNode {
	for i := range s.Transitions {
		if s.Transitions[i].ID == id {
			return &s.Transitions[i]
		}
	}
	return nil
}

// AddNode appends a node and records it in declaration order unless it
// was materialized implicitly.
func (s *Snapshot) AddNode(n PolyNode) {
	s.Nodes = append(s.Nodes, n)
	if !n.Implicit {
		s.Order = append(s.Order, n.ID)
	}
}

// RemoveNode deletes a node by id.
func (s *Snapshot) RemoveNode(id string) bool {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			s.Nodes = append(s.Nodes[:i], s.Nodes[i+1:]...)
			s.removeFromOrder(id)
			return true
		}
	}
	return false
}

// AddMorph attaches a morph to its owning node, replacing any existing
// morph with the same id.
func (s *Snapshot) AddMorph(nodeID string, m Morph) bool {
	n := s.Node(nodeID)
	if n == nil {
		return false
	}
	for i := range n.Morphs {
		if n.Morphs[i].ID == m.ID {
			n.Morphs[i] = m
			return true
		}
	}
	n.Morphs = append(n.Morphs, m)
	return true
}

// RemoveMorph detaches a morph from its owning node. The caller is
// responsible for the last-morph invariant.
func (s *Snapshot) RemoveMorph(id string) bool {
	n, _ := s.Morph(id)
	if n == nil {
		return false
	}
	for i := range n.Morphs {
		if n.Morphs[i].ID == id {
			n.Morphs = append(n.Morphs[:i], n.Morphs[i+1:]...)
			return true
		}
	}
	return false
}

// AddRelation appends a relation and links it into its morph.
func (s *Snapshot) AddRelation(r RelationEdge) {
	s.Relations = append(s.Relations, r)
	if _, m := s.Morph(r.MorphID); m != nil && !contains(m.RelationIDs, r.ID) {
		m.RelationIDs = append(m.RelationIDs, r.ID)
	}
}

// RemoveRelation deletes a relation and unlinks it from its morph.
func (s *Snapshot) RemoveRelation(id string) bool {
	for i := range s.Relations {
		if s.Relations[i].ID == id {
			if _, m := s.Morph(s.Relations[i].MorphID); m != nil {
				m.RelationIDs = remove(m.RelationIDs, id)
			}
			s.Relations = append(s.Relations[:i], s.Relations[i+1:]...)
			return true
		}
	}
	return false
}

// UpsertAttribute adds the attribute or replaces the existing entity
// with the same id.
func (s *Snapshot) UpsertAttribute(a AttributeValue) {
	if existing := s.Attribute(a.ID); existing != nil {
		*existing = a
		return
	}
	s.Attributes = append(s.Attributes, a)
	if _, m := s.Morph(a.MorphID); m != nil && !contains(m.AttributeIDs, a.ID) {
		m.AttributeIDs = append(m.AttributeIDs, a.ID)
	}
}

// RemoveAttribute deletes an attribute and unlinks it from its morph.
func (s *Snapshot) RemoveAttribute(id string) bool {
	for i := range s.Attributes {
		if s.Attributes[i].ID == id {
			if _, m := s.Morph(s.Attributes[i].MorphID); m != nil {
				m.AttributeIDs = remove(m.AttributeIDs, id)
			}
			s.Attributes = append(s.Attributes[:i], s.Attributes[i+1:]...)
			return true
		}
	}
	return false
}

// UpsertTransition adds the transition or replaces the existing entity
// with the same id.
func (s *Snapshot) UpsertTransition(t TransitionNode) {
	if existing := s.Transition(t.ID); existing != nil {
		*existing = t
		return
	}
	s.Transitions = append(s.Transitions, t)
	s.Order = append(s.Order, t.ID)
}

// RemoveTransition deletes a transition by id.
func (s *Snapshot) RemoveTransition(id string) bool {
	for i := range s.Transitions {
		if s.Transitions[i].ID == id {
			s.Transitions = append(s.Transitions[:i], s.Transitions[i+1:]...)
			s.removeFromOrder(id)
			return true
		}
	}
	return false
}

// Clone returns a deep copy. The diff engine always computes against a
// snapshot taken before any mutation begins.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Nodes:       make([]PolyNode, len(s.Nodes)),
		Relations:   append([]RelationEdge(nil), s.Relations...),
		Attributes:  append([]AttributeValue(nil), s.Attributes...),
		Transitions: make([]TransitionNode, len(s.Transitions)),
		Order:       append([]string(nil), s.Order...),
	}
	for i, n := range s.Nodes {
		cn := n
		cn.Morphs = make([]Morph, len(n.Morphs))
		for j, m := range n.Morphs {
			cm := m
			cm.RelationIDs = append([]string(nil), m.RelationIDs...)
			cm.AttributeIDs = append([]string(nil), m.AttributeIDs...)
			cn.Morphs[j] = cm
		}
		c.Nodes[i] = cn
	}
	for i, t := range s.Transitions {
		ct := t
		ct.PriorState = cloneState(t.PriorState)
		ct.PostState = cloneState(t.PostState)
		c.Transitions[i] = ct
	}
	return c
}

func cloneState(entries []StateEntry) []StateEntry {
	out := make([]StateEntry, len(entries))
	for i, e := range entries {
		ce := StateEntry{}
		if e.Ref != nil {
			ref := *e.Ref
			ce.Ref = &ref
		}
		if e.Operator != nil {
			op := LogicalOperator{
				Operator: e.Operator.Operator,
				Operands: append([]NodeRef(nil), e.Operator.Operands...),
			}
			ce.Operator = &op
		}
		out[i] = ce
	}
	return out
}

func (s *Snapshot) removeFromOrder(id string) {
	s.Order = remove(s.Order, id)
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func remove(list []string, id string) []string {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
