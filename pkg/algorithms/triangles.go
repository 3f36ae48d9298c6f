// Package algorithms counts triangles and computes clustering coefficients
// over a frozen undirected graph.
//
// Every entry point uses the same per-node count: the number of unordered
// neighbor pairs {x, y} of v that are themselves adjacent. Each triangle is
// therefore counted once per vertex, and the graph total is the sum of the
// per-node counts divided by three.
package algorithms

import (
	"context"
	"slices"

	"github.com/dd0wney/cluso-triangles/pkg/graph"
	"github.com/dd0wney/cluso-triangles/pkg/pools"
)

// TriangleCountResult holds per-node and global triangle counts together with
// the nodes that take part in the most triangles.
type TriangleCountResult struct {
	PerNode     map[graph.NodeID]uint64
	GlobalCount uint64
	TopNodes    []RankedNode
}

// nodeCounter counts triangles around single nodes, reusing a pooled scratch
// buffer between calls. It is not safe for concurrent use; each worker owns
// one and calls release when done.
type nodeCounter struct {
	g       *graph.Graph
	scratch []graph.NodeID
}

func newNodeCounter(g *graph.Graph) *nodeCounter {
	return &nodeCounter{g: g, scratch: pools.GetNodeIDs(pools.SmallSize)}
}

func (c *nodeCounter) release() {
	pools.PutNodeIDs(c.scratch)
	c.scratch = nil
}

// count returns the number of adjacent unordered pairs {x, y} ⊂ N(v).
func (c *nodeCounter) count(v graph.NodeID) uint64 {
	neighbors, ok := c.g.Neighbors(v)
	if !ok || len(neighbors) < 2 {
		return 0
	}

	buf := c.scratch[:0]
	for x := range neighbors {
		buf = append(buf, x)
	}
	slices.Sort(buf)
	c.scratch = buf

	var count uint64
	for i, x := range buf {
		later := buf[i+1:]
		if len(later) == 0 {
			break
		}
		nx, _ := c.g.Neighbors(x)

		// Probe whichever side is smaller. Both enumerate exactly the pairs
		// (x, y) with x < y and y ∈ N(v) ∩ N(x).
		if len(nx) < len(later) {
			for y := range nx {
				if y > x && neighbors.Contains(y) {
					count++
				}
			}
		} else {
			for _, y := range later {
				if nx.Contains(y) {
					count++
				}
			}
		}
	}
	return count
}

// CountTrianglesForNode returns the number of triangles incident on v.
// Unknown nodes and nodes with fewer than two neighbors yield 0.
func CountTrianglesForNode(g *graph.Graph, v graph.NodeID) uint64 {
	c := newNodeCounter(g)
	defer c.release()
	return c.count(v)
}

// CountAllTriangles returns the number of distinct triangles in g.
func CountAllTriangles(g *graph.Graph) uint64 {
	c := newNodeCounter(g)
	defer c.release()
	var sum uint64
	for _, v := range g.Nodes() {
		sum += c.count(v)
	}
	return sum / 3
}

// CountTriangles counts triangles per node and globally, and ranks the nodes
// with the highest participation. opts.Workers > 1 runs the pass in parallel.
func CountTriangles(ctx context.Context, g *graph.Graph, opts Options) (*TriangleCountResult, error) {
	result, err := Analyze(ctx, g, opts)
	if err != nil {
		return nil, err
	}

	return &TriangleCountResult{
		PerNode:     result.PerNode,
		GlobalCount: result.TotalTriangles,
		TopNodes:    result.TopNodes,
	}, nil
}
