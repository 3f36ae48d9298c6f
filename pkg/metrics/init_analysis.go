package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.TrianglesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cluso_triangles_total",
			Help: "Triangles found by the last analysis",
		},
	)

	r.AverageClusteringCoefficient = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cluso_average_clustering_coefficient",
			Help: "Average local clustering coefficient from the last analysis",
		},
	)

	r.GlobalTransitivity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cluso_global_transitivity",
			Help: "Ratio of closed to connected triples from the last analysis",
		},
	)

	r.NodesAnalyzedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "cluso_nodes_analyzed_total",
			Help: "Nodes visited by the triangle and clustering pass",
		},
	)

	r.PhaseDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cluso_phase_duration_seconds",
			Help:    "Duration of each analysis phase in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
		[]string{"phase"},
	)

	r.AnalysisRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cluso_analysis_runs_total",
			Help: "Analysis runs by outcome",
		},
		[]string{"status"},
	)
}
