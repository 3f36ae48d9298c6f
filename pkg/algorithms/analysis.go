package algorithms

import (
	"context"
	"time"

	"github.com/dd0wney/cluso-triangles/pkg/graph"
	"github.com/dd0wney/cluso-triangles/pkg/logging"
	"github.com/dd0wney/cluso-triangles/pkg/metrics"
	"github.com/dd0wney/cluso-triangles/pkg/parallel"
)

// cancelCheckInterval is how many nodes a sequential pass processes between
// context checks.
const cancelCheckInterval = 1024

// Options configures an analysis pass.
type Options struct {
	// Workers > 1 splits the node list into chunks processed concurrently.
	// Results are identical to the sequential pass.
	Workers int
	// ChunkSize overrides the number of nodes per parallel task.
	ChunkSize int
	// TopN is the number of nodes ranked by triangle participation.
	TopN int

	Logger  logging.Logger
	Metrics *metrics.Registry
}

// DefaultOptions returns sequential options ranking the top 10 nodes.
func DefaultOptions() Options {
	return Options{
		Workers: 1,
		TopN:    10,
	}
}

// Result holds the triangle and clustering statistics of one graph.
type Result struct {
	TotalTriangles     uint64
	PerNode            map[graph.NodeID]uint64
	Coefficients       map[graph.NodeID]float64
	Degrees            map[graph.NodeID]int
	AverageCoefficient float64

	// ConnectedTriples is Σ k(k-1)/2 over all nodes; GlobalTransitivity is
	// 3·TotalTriangles / ConnectedTriples.
	ConnectedTriples   uint64
	GlobalTransitivity float64

	NodeCount int
	EdgeCount int
	TopNodes  []RankedNode
	Workers   int
	Duration  time.Duration
}

// Nodes returns the analysed nodes in ascending order.
func (r *Result) Nodes() []graph.NodeID {
	nodes := make([]graph.NodeID, 0, len(r.PerNode))
	for id := range r.PerNode {
		nodes = append(nodes, id)
	}
	sortNodeIDs(nodes)
	return nodes
}

// Analyze freezes g and computes per-node triangle counts, local clustering
// coefficients, the triangle total and the average coefficient in a single
// traversal. The clustering coefficients are derived from the same per-node
// counts that make up the total.
func Analyze(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	logger := logging.OrNop(opts.Logger).With(logging.Component("analyzer"))
	start := time.Now()

	g.Freeze()
	nodes := g.Nodes()
	perNode := make([]uint64, len(nodes))

	workers := opts.Workers
	if workers <= 1 || len(nodes) < 2 {
		workers = 1
	}

	logger.Debug("analysis started",
		logging.Count(len(nodes)),
		logging.Int("edges", g.EdgeCount()),
		logging.Workers(workers))

	count := logging.StartTimer(logger, "triangles counted", logging.Phase("count"))
	var err error
	if workers == 1 {
		err = countSequential(ctx, g, nodes, perNode)
	} else {
		err = countParallel(ctx, g, nodes, perNode, workers, opts.ChunkSize, logger)
	}
	if err != nil {
		count.EndError(err)
		if opts.Metrics != nil {
			opts.Metrics.RecordAnalysisFailure()
		}
		return nil, err
	}
	countElapsed := count.End(logging.Workers(workers))

	// The reduction always runs sequentially in ascending node order so that
	// the float sums do not depend on the worker count.
	reduce := logging.StartTimer(logger, "coefficients reduced", logging.Phase("reduce"))
	result := reduceCounts(g, nodes, perNode)
	result.TopNodes = findTopNodes(g, nodes, func(i int) float64 { return float64(perNode[i]) }, opts.TopN)
	result.Workers = workers
	reduceElapsed := reduce.End()
	result.Duration = time.Since(start)

	if opts.Metrics != nil {
		opts.Metrics.RecordPhase("count", countElapsed)
		opts.Metrics.RecordPhase("reduce", reduceElapsed)
		opts.Metrics.RecordAnalysis(result.TotalTriangles, result.AverageCoefficient, result.GlobalTransitivity, result.NodeCount)
	}

	if len(result.TopNodes) > 0 {
		top := result.TopNodes[0]
		logger.Debug("most triangles",
			logging.NodeID(uint32(top.NodeID)),
			logging.Triangles(uint64(top.Score)),
			logging.Int("degree", top.Degree))
	}

	logger.Info("analysis complete",
		logging.Triangles(result.TotalTriangles),
		logging.Float64("average_clustering", result.AverageCoefficient),
		logging.Float64("transitivity", result.GlobalTransitivity),
		logging.Latency(result.Duration))

	return result, nil
}

func countSequential(ctx context.Context, g *graph.Graph, nodes []graph.NodeID, perNode []uint64) error {
	c := newNodeCounter(g)
	defer c.release()
	for i, v := range nodes {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		perNode[i] = c.count(v)
	}
	return nil
}

func countParallel(ctx context.Context, g *graph.Graph, nodes []graph.NodeID, perNode []uint64, workers, chunkSize int, logger logging.Logger) error {
	pool, err := parallel.NewWorkerPool(workers, logger)
	if err != nil {
		return err
	}

	// Each chunk writes only its own slice of perNode.
	return parallel.ForEachChunk(ctx, pool, len(nodes), chunkSize, func(ctx context.Context, ch parallel.Chunk) error {
		c := newNodeCounter(g)
		defer c.release()
		for i := ch.Start; i < ch.End; i++ {
			perNode[i] = c.count(nodes[i])
		}
		return ctx.Err()
	})
}

func reduceCounts(g *graph.Graph, nodes []graph.NodeID, perNode []uint64) *Result {
	result := &Result{
		PerNode:      make(map[graph.NodeID]uint64, len(nodes)),
		Coefficients: make(map[graph.NodeID]float64, len(nodes)),
		Degrees:      make(map[graph.NodeID]int, len(nodes)),
		NodeCount:    len(nodes),
		EdgeCount:    g.EdgeCount(),
	}

	var sum uint64
	coefficientSum := 0.0
	for i, v := range nodes {
		t := perNode[i]
		k := g.Degree(v)
		c := CoefficientFromTriangles(t, k)

		result.PerNode[v] = t
		result.Coefficients[v] = c
		result.Degrees[v] = k
		sum += t
		coefficientSum += c
		if k >= 2 {
			result.ConnectedTriples += uint64(k) * uint64(k-1) / 2
		}
	}

	result.TotalTriangles = sum / 3
	if len(nodes) > 0 {
		result.AverageCoefficient = coefficientSum / float64(len(nodes))
	}
	if result.ConnectedTriples > 0 {
		result.GlobalTransitivity = float64(sum) / float64(result.ConnectedTriples)
	}
	return result
}
