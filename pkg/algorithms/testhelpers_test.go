package algorithms

import (
	"testing"

	"github.com/dd0wney/cluso-triangles/pkg/graph"
)

// buildGraph creates an unfrozen graph from endpoint pairs.
func buildGraph(t *testing.T, pairs ...[2]graph.NodeID) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, p := range pairs {
		g.AddEdge(p[0], p[1])
	}
	return g
}

func completeGraph(t *testing.T, n int) *graph.Graph {
	t.Helper()
	g := graph.New()
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			g.AddEdge(graph.NodeID(u), graph.NodeID(v))
		}
	}
	return g
}

// graphFromIDs consumes ids two at a time as edge endpoints.
func graphFromIDs(ids []uint32) *graph.Graph {
	g := graph.New()
	for i := 0; i+1 < len(ids); i += 2 {
		g.AddEdge(graph.NodeID(ids[i]), graph.NodeID(ids[i+1]))
	}
	return g
}

// bruteForceTriangles checks every triple of nodes.
func bruteForceTriangles(g *graph.Graph) uint64 {
	nodes := g.Nodes()
	var count uint64
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if !g.HasEdge(nodes[i], nodes[j]) {
				continue
			}
			for k := j + 1; k < len(nodes); k++ {
				if g.HasEdge(nodes[i], nodes[k]) && g.HasEdge(nodes[j], nodes[k]) {
					count++
				}
			}
		}
	}
	return count
}
