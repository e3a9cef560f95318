// Package schema governs which node types, relation names, and
// attribute names a graph accepts. An open schema learns vocabulary
// from whatever it sees; a strict schema is loaded from a definition
// file and rejects anything outside it.
package schema

import "sync"

// Kind distinguishes the vocabularies a schema tracks.
type Kind string

const (
	KindNodeType  Kind = "nodeType"
	KindRelation  Kind = "relation"
	KindAttribute Kind = "attribute"
)

// Schema answers whether a vocabulary term is acceptable for a graph.
// Implementations must be safe for concurrent readers; Register may be
// called during apply for open schemas.
type Schema interface {
	// IsKnownType reports whether the term is part of the schema.
	IsKnownType(kind Kind, name string) bool

	// Register adds the term. Strict schemas ignore registration;
	// terms enter a strict schema only through its definition file.
	Register(kind Kind, name string)
}

// Open is a per-graph schema that accepts everything and remembers
// what it has seen. Vocabulary learned this way is scoped to the one
// graph that registered it.
type Open struct {
	mu    sync.RWMutex
	terms map[Kind]map[string]struct{}
}

// NewOpen returns an empty open schema.
func NewOpen() *Open {
	return &Open{terms: make(map[Kind]map[string]struct{})}
}

// IsKnownType always reports true: an open schema treats unknown terms
// as new vocabulary rather than violations.
func (o *Open) IsKnownType(Kind, string) bool { return true }

// Register records the term for introspection.
func (o *Open) Register(kind Kind, name string) {
	if name == "" {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.terms[kind] == nil {
		o.terms[kind] = make(map[string]struct{})
	}
	o.terms[kind][name] = struct{}{}
}

// Seen reports whether the term has been registered on this graph.
func (o *Open) Seen(kind Kind, name string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.terms[kind][name]
	return ok
}
