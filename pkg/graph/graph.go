// Package graph provides the in-memory undirected simple graph used by the
// triangle and clustering analyses.
//
// A Graph is built by repeated AddEdge calls and then frozen. Once frozen it
// is read-only and may be shared by any number of concurrent readers. Graph is
// not safe for concurrent mutation.
package graph

import (
	"cmp"
	"slices"
)

// Graph is an undirected simple graph stored as a set-valued adjacency map.
//
// Invariants after every mutation:
//   - v ∈ Neighbors(u) iff u ∈ Neighbors(v)
//   - u ∉ Neighbors(u)
//   - a node is present iff it has at least one edge
type Graph struct {
	adjacency map[NodeID]NeighborSet
	edgeCount int
	frozen    bool

	selfLoops  uint64
	duplicates uint64
	rejected   uint64
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[NodeID]NeighborSet),
	}
}

// AddEdge inserts the undirected edge {u, v}. Self-loops are ignored and
// re-inserting an existing edge leaves the graph unchanged. Returns true iff a
// new edge was added. A frozen graph rejects every insertion.
func (g *Graph) AddEdge(u, v NodeID) bool {
	if g.frozen {
		g.rejected++
		return false
	}
	if u == v {
		g.selfLoops++
		return false
	}

	nu := g.adjacency[u]
	if nu == nil {
		nu = make(NeighborSet)
		g.adjacency[u] = nu
	} else if nu.Contains(v) {
		g.duplicates++
		return false
	}

	nv := g.adjacency[v]
	if nv == nil {
		nv = make(NeighborSet)
		g.adjacency[v] = nv
	}

	nu[v] = struct{}{}
	nv[u] = struct{}{}
	g.edgeCount++
	return true
}

// AddEdgeChecked is AddEdge with the ignored cases reported as errors.
// Duplicate edges are not an error.
func (g *Graph) AddEdgeChecked(u, v NodeID) error {
	if g.frozen {
		g.rejected++
		return &GraphError{Op: "AddEdge", Edge: Edge{U: u, V: v}, Cause: ErrFrozen}
	}
	if u == v {
		g.selfLoops++
		return &GraphError{Op: "AddEdge", Edge: Edge{U: u, V: v}, Cause: ErrSelfLoop}
	}
	g.AddEdge(u, v)
	return nil
}

// Neighbors returns the live neighbor set of u. ok is false when u is not in
// the graph. Callers must not modify the returned set.
func (g *Graph) Neighbors(u NodeID) (NeighborSet, bool) {
	n, ok := g.adjacency[u]
	return n, ok
}

// SortedNeighbors returns the neighbors of u in ascending order, or nil when u
// is unknown.
func (g *Graph) SortedNeighbors(u NodeID) []NodeID {
	n, ok := g.adjacency[u]
	if !ok {
		return nil
	}
	out := make([]NodeID, 0, len(n))
	for id := range n {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// HasEdge reports whether {u, v} is an edge.
func (g *Graph) HasEdge(u, v NodeID) bool {
	return g.adjacency[u].Contains(v)
}

// HasNode reports whether u has at least one edge.
func (g *Graph) HasNode(u NodeID) bool {
	_, ok := g.adjacency[u]
	return ok
}

// Degree returns the number of distinct neighbors of u, or 0 if u is unknown.
func (g *Graph) Degree(u NodeID) int {
	return len(g.adjacency[u])
}

// Nodes returns every node exactly once in ascending order.
func (g *Graph) Nodes() []NodeID {
	nodes := make([]NodeID, 0, len(g.adjacency))
	for id := range g.adjacency {
		nodes = append(nodes, id)
	}
	slices.Sort(nodes)
	return nodes
}

// Edges returns every edge once in canonical form, sorted by (U, V).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edgeCount)
	for u, n := range g.adjacency {
		for v := range n {
			if u < v {
				edges = append(edges, Edge{U: u, V: v})
			}
		}
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		return cmp.Or(cmp.Compare(a.U, b.U), cmp.Compare(a.V, b.V))
	})
	return edges
}

// NodeCount returns the number of nodes with at least one edge.
func (g *Graph) NodeCount() int {
	return len(g.adjacency)
}

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Freeze ends the build phase. Subsequent insertions are rejected.
func (g *Graph) Freeze() {
	g.frozen = true
}

// Frozen reports whether the graph has been frozen.
func (g *Graph) Frozen() bool {
	return g.frozen
}

// Statistics returns a snapshot of the graph's structure and build diagnostics.
func (g *Graph) Statistics() Statistics {
	stats := Statistics{
		NodeCount:         len(g.adjacency),
		EdgeCount:         g.edgeCount,
		SelfLoopsIgnored:  g.selfLoops,
		DuplicateInserts:  g.duplicates,
		RejectedMutations: g.rejected,
	}
	for _, n := range g.adjacency {
		if len(n) > stats.MaxDegree {
			stats.MaxDegree = len(n)
		}
	}
	if stats.NodeCount > 0 {
		stats.AverageDegree = float64(2*stats.EdgeCount) / float64(stats.NodeCount)
	}
	return stats
}
