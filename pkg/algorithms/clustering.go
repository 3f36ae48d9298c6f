package algorithms

import (
	"github.com/dd0wney/cluso-triangles/pkg/graph"
)

// CoefficientFromTriangles returns the local clustering coefficient of a node
// with degree k that takes part in t triangles: 2t / (k(k-1)), or 0 when k < 2.
func CoefficientFromTriangles(t uint64, k int) float64 {
	if k < 2 {
		return 0.0
	}
	return 2.0 * float64(t) / (float64(k) * float64(k-1))
}

// LocalClusteringCoefficient returns the fraction of v's neighbor pairs that
// are adjacent. Unknown nodes and nodes of degree < 2 yield 0.
func LocalClusteringCoefficient(g *graph.Graph, v graph.NodeID) float64 {
	return CoefficientFromTriangles(CountTrianglesForNode(g, v), g.Degree(v))
}

// ClusteringCoefficients computes the local clustering coefficient of every node
func ClusteringCoefficients(g *graph.Graph) map[graph.NodeID]float64 {
	c := newNodeCounter(g)
	defer c.release()
	nodes := g.Nodes()

	coefficients := make(map[graph.NodeID]float64, len(nodes))
	for _, v := range nodes {
		coefficients[v] = CoefficientFromTriangles(c.count(v), g.Degree(v))
	}
	return coefficients
}

// AverageClusteringCoefficient returns the mean local clustering coefficient
// over every node with at least one edge, or 0 for an empty graph. Nodes are
// summed in ascending order so the result is reproducible.
func AverageClusteringCoefficient(g *graph.Graph) float64 {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return 0.0
	}

	c := newNodeCounter(g)
	defer c.release()
	sum := 0.0
	for _, v := range nodes {
		sum += CoefficientFromTriangles(c.count(v), g.Degree(v))
	}
	return sum / float64(len(nodes))
}
