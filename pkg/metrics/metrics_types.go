package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for one analysis process
type Registry struct {
	// Load Metrics
	LinesReadTotal    prometheus.Counter
	LinesSkippedTotal *prometheus.CounterVec
	EdgesLoadedTotal  prometheus.Counter
	BytesReadTotal    prometheus.Counter
	LoadDuration      prometheus.Histogram

	// Graph Metrics
	GraphNodes     prometheus.Gauge
	GraphEdges     prometheus.Gauge
	GraphMaxDegree prometheus.Gauge

	// Analysis Metrics
	TrianglesTotal               prometheus.Gauge
	AverageClusteringCoefficient prometheus.Gauge
	GlobalTransitivity           prometheus.Gauge
	NodesAnalyzedTotal           prometheus.Counter
	PhaseDuration                *prometheus.HistogramVec
	AnalysisRunsTotal            *prometheus.CounterVec

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	started  time.Time
	mu       sync.Mutex
}
