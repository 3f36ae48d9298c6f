package pools

import (
	"sync"

	"github.com/dd0wney/cluso-triangles/pkg/graph"
)

// Size classes for NodeID slices
const (
	SmallSize  = 64
	MediumSize = 1024
	LargeSize  = 16384
	MaxPool    = 1 << 20 // Don't pool slices larger than this
)

// NodeIDPool pools slices of graph.NodeID by capacity class.
type NodeIDPool struct {
	small  sync.Pool // <= 64 elements
	medium sync.Pool // <= 1024 elements
	large  sync.Pool // <= 16384 elements
	huge   sync.Pool // <= MaxPool elements, any capacity
}

func newClass(size int) sync.Pool {
	return sync.Pool{
		New: func() any {
			s := make([]graph.NodeID, 0, size)
			return &s
		},
	}
}

// NewNodeIDPool creates a new NodeID slice pool.
func NewNodeIDPool() *NodeIDPool {
	return &NodeIDPool{
		small:  newClass(SmallSize),
		medium: newClass(MediumSize),
		large:  newClass(LargeSize),
		huge:   sync.Pool{},
	}
}

// Get returns an empty slice with at least the requested capacity.
func (p *NodeIDPool) Get(size int) []graph.NodeID {
	var pool *sync.Pool
	switch {
	case size <= SmallSize:
		pool = &p.small
	case size <= MediumSize:
		pool = &p.medium
	case size <= LargeSize:
		pool = &p.large
	case size <= MaxPool:
		pool = &p.huge
	default:
		return make([]graph.NodeID, 0, size)
	}

	sp, ok := pool.Get().(*[]graph.NodeID)
	if !ok || cap(*sp) < size {
		return make([]graph.NodeID, 0, size)
	}
	return (*sp)[:0]
}

// Put returns a slice to the pool. A slice is filed under the largest class
// its capacity fully covers, so Get never hands out one that is too small.
func (p *NodeIDPool) Put(s []graph.NodeID) {
	c := cap(s)
	if c < SmallSize || c > MaxPool {
		return
	}

	s = s[:0]

	var pool *sync.Pool
	switch {
	case c > LargeSize:
		pool = &p.huge
	case c >= LargeSize:
		pool = &p.large
	case c >= MediumSize:
		pool = &p.medium
	default:
		pool = &p.small
	}

	pool.Put(&s)
}

// Default global NodeID pool
var defaultNodeIDPool = NewNodeIDPool()

// GetNodeIDs returns a NodeID slice from the default pool.
func GetNodeIDs(size int) []graph.NodeID {
	return defaultNodeIDPool.Get(size)
}

// PutNodeIDs returns a NodeID slice to the default pool.
func PutNodeIDs(s []graph.NodeID) {
	defaultNodeIDPool.Put(s)
}
