package algorithms

import (
	"container/heap"
	"slices"

	"github.com/dd0wney/cluso-triangles/pkg/graph"
)

// RankedNode is a node with a score, used for top-N listings.
type RankedNode struct {
	NodeID graph.NodeID
	Score  float64
	Degree int
}

// ranksBelow orders nodes by ascending score; ties put the larger ID lower so
// that equal scores are listed by ascending ID.
func ranksBelow(a, b RankedNode) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.NodeID > b.NodeID
}

// rankedNodeHeap implements a min-heap for RankedNode by score.
// Keep at most N elements; the weakest is at the root and is replaced when a
// stronger node arrives. Time complexity: O(n log k).
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int           { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool { return ranksBelow(h[i], h[j]) }
func (h rankedNodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// findTopNodes returns the n highest-scoring nodes in descending score order.
// Nodes with a zero score are never ranked.
func findTopNodes(g *graph.Graph, nodes []graph.NodeID, score func(i int) float64, n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	heap.Init(&h)

	for i, id := range nodes {
		s := score(i)
		if s <= 0 {
			continue
		}
		rn := RankedNode{NodeID: id, Score: s, Degree: g.Degree(id)}

		if h.Len() < n {
			heap.Push(&h, rn)
		} else if ranksBelow(h[0], rn) {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	// Pop yields ascending order; fill from the back
	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}
	return result
}

func sortNodeIDs(ids []graph.NodeID) {
	slices.Sort(ids)
}
