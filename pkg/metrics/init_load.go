package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLoadMetrics() {
	r.LinesReadTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "cluso_lines_read_total",
			Help: "Total number of edge-list lines read",
		},
	)

	r.LinesSkippedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cluso_lines_skipped_total",
			Help: "Edge-list lines skipped, by reason",
		},
		[]string{"reason"},
	)

	r.EdgesLoadedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "cluso_edges_loaded_total",
			Help: "Distinct undirected edges inserted into the graph",
		},
	)

	r.BytesReadTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "cluso_bytes_read_total",
			Help: "Decompressed bytes read from edge-list sources",
		},
	)

	r.LoadDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cluso_load_duration_seconds",
			Help:    "Time spent loading an edge list",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 60.0},
		},
	)

	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cluso_graph_nodes",
			Help: "Nodes with at least one edge",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cluso_graph_edges",
			Help: "Distinct undirected edges in the graph",
		},
	)

	r.GraphMaxDegree = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cluso_graph_max_degree",
			Help: "Largest node degree in the graph",
		},
	)
}
