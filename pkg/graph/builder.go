package graph

// Option configures a Graph built by NewWithOptions.
type Option func(*Graph)

// WithExpectedNodes pre-sizes the adjacency map for n nodes. It has no effect
// once edges have been inserted.
func WithExpectedNodes(n int) Option {
	return func(g *Graph) {
		if n > 0 && len(g.adjacency) == 0 {
			g.adjacency = make(map[NodeID]NeighborSet, n)
		}
	}
}

// WithEdges inserts the given edges during construction.
func WithEdges(edges ...Edge) Option {
	return func(g *Graph) {
		for _, e := range edges {
			g.AddEdge(e.U, e.V)
		}
	}
}

// NewWithOptions creates a graph and applies opts in order.
func NewWithOptions(opts ...Option) *Graph {
	g := New()
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FromEdges builds a frozen graph from an edge slice.
func FromEdges(edges []Edge) *Graph {
	g := NewWithOptions(WithEdges(edges...))
	g.Freeze()
	return g
}
