package diff

import (
	"fmt"
	"sort"
)

// depGraph is a small DAG over operation keys. Edges point from an
// operation to the operations that must wait for it.
type depGraph struct {
	nodes map[string]*depNode
}

type depNode struct {
	key        string
	deps       map[string]*depNode
	dependents map[string]*depNode
}

func newDepGraph() *depGraph {
	return &depGraph{nodes: make(map[string]*depNode)}
}

// add registers a key. Adding an existing key does nothing.
func (g *depGraph) add(key string) {
	if _, ok := g.nodes[key]; ok {
		return
	}
	g.nodes[key] = &depNode{
		key:        key,
		deps:       make(map[string]*depNode),
		dependents: make(map[string]*depNode),
	}
}

// edge records that `before` must be applied before `after`. Edges to
// unknown keys are ignored: a dependency outside this submission is
// already satisfied by the existing graph state.
func (g *depGraph) edge(before, after string) {
	if before == after {
		return
	}
	b, ok := g.nodes[before]
	if !ok {
		return
	}
	a, ok := g.nodes[after]
	if !ok {
		return
	}
	a.deps[before] = b
	b.dependents[after] = a
}

// sorted returns every key in topological order. Ties break on the rank
// function and then lexically, so the order is fully deterministic.
// A cycle is an internal invariant violation and returns an error.
func (g *depGraph) sorted(rank func(key string) int) ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	for key, n := range g.nodes {
		indegree[key] = len(n.deps)
	}

	var ready []string
	for key, deg := range indegree {
		if deg == 0 {
			ready = append(ready, key)
		}
	}

	less := func(a, b string) bool {
		ra, rb := rank(a), rank(b)
		if ra != rb {
			return ra < rb
		}
		return a < b
	}

	out := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return less(ready[i], ready[j]) })
		key := ready[0]
		ready = ready[1:]
		out = append(out, key)

		for depKey := range g.nodes[key].dependents {
			indegree[depKey]--
			if indegree[depKey] == 0 {
				ready = append(ready, depKey)
			}
		}
	}

	if len(out) != len(g.nodes) {
		return nil, fmt.Errorf("dependency cycle among %d operations", len(g.nodes)-len(out))
	}
	return out, nil
}
