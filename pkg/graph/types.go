package graph

// NodeID identifies a node. IDs are opaque labels and need not be contiguous.
type NodeID uint32

// MaxNodeID is the largest representable node identifier.
const MaxNodeID = ^NodeID(0)

// NeighborSet holds the distinct neighbors of a node.
type NeighborSet map[NodeID]struct{}

// Contains reports whether id is in the set.
func (s NeighborSet) Contains(id NodeID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of neighbors in the set.
func (s NeighborSet) Len() int {
	return len(s)
}

// Edge is an unordered pair of distinct nodes. Canonical edges have U < V.
type Edge struct {
	U NodeID
	V NodeID
}

// Canonical returns the edge with its endpoints ordered so that U <= V.
func (e Edge) Canonical() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

// IsSelfLoop reports whether both endpoints are the same node.
func (e Edge) IsSelfLoop() bool {
	return e.U == e.V
}

// Statistics summarises the adjacency structure and the build phase.
type Statistics struct {
	NodeCount     int
	EdgeCount     int
	MaxDegree     int
	AverageDegree float64
	// Build-phase diagnostics
	SelfLoopsIgnored  uint64
	DuplicateInserts  uint64
	RejectedMutations uint64
}
