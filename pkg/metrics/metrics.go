// Package metrics exposes Prometheus metrics for edge-list loading and
// triangle/clustering analysis. Batch runs have no scrape endpoint, so the
// registry is written out in the text exposition format for the node_exporter
// textfile collector.
package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
	}

	r.initLoadMetrics()
	r.initAnalysisMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// LoadSummary is the subset of loader statistics recorded as metrics.
type LoadSummary struct {
	Lines      uint64
	Inserted   uint64
	Bytes      uint64
	Blank      uint64
	Comments   uint64
	Malformed  uint64
	OutOfRange uint64
	SelfLoops  uint64
	Duplicates uint64
}

// RecordLoad records one completed edge-list load
func (r *Registry) RecordLoad(s LoadSummary, duration time.Duration) {
	r.LinesReadTotal.Add(float64(s.Lines))
	r.EdgesLoadedTotal.Add(float64(s.Inserted))
	r.BytesReadTotal.Add(float64(s.Bytes))
	r.LinesSkippedTotal.WithLabelValues("blank").Add(float64(s.Blank))
	r.LinesSkippedTotal.WithLabelValues("comment").Add(float64(s.Comments))
	r.LinesSkippedTotal.WithLabelValues("malformed").Add(float64(s.Malformed))
	r.LinesSkippedTotal.WithLabelValues("out_of_range").Add(float64(s.OutOfRange))
	r.LinesSkippedTotal.WithLabelValues("self_loop").Add(float64(s.SelfLoops))
	r.LinesSkippedTotal.WithLabelValues("duplicate").Add(float64(s.Duplicates))
	r.LoadDuration.Observe(duration.Seconds())
}

// SetGraphSize records the shape of the frozen graph
func (r *Registry) SetGraphSize(nodes, edges, maxDegree int) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	r.GraphMaxDegree.Set(float64(maxDegree))
}

// RecordPhase records the duration of an analysis phase
func (r *Registry) RecordPhase(phase string, duration time.Duration) {
	r.PhaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RecordAnalysis records the outcome of a triangle/clustering pass
func (r *Registry) RecordAnalysis(triangles uint64, average, transitivity float64, nodes int) {
	r.TrianglesTotal.Set(float64(triangles))
	r.AverageClusteringCoefficient.Set(average)
	r.GlobalTransitivity.Set(transitivity)
	r.NodesAnalyzedTotal.Add(float64(nodes))
	r.AnalysisRunsTotal.WithLabelValues("success").Inc()
}

// RecordAnalysisFailure counts an analysis that did not complete
func (r *Registry) RecordAnalysisFailure() {
	r.AnalysisRunsTotal.WithLabelValues("failure").Inc()
}

// UpdateSystemMetrics samples runtime statistics
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.UptimeSeconds.Set(time.Since(r.started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}

// WriteTextfile samples system metrics and writes the registry to path in
// the Prometheus text format. The file is replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	r.UpdateSystemMetrics()
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
