package main

import (
	"context"
	"os"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-triangles/pkg/algorithms"
	"github.com/dd0wney/cluso-triangles/pkg/config"
	"github.com/dd0wney/cluso-triangles/pkg/edgelist"
	"github.com/dd0wney/cluso-triangles/pkg/graph"
	"github.com/dd0wney/cluso-triangles/pkg/logging"
	"github.com/dd0wney/cluso-triangles/pkg/metrics"
	"github.com/dd0wney/cluso-triangles/pkg/parallel"
	"github.com/dd0wney/cluso-triangles/pkg/report"
)

// run loads source, analyses it unless only statistics were asked for, and
// writes the report to s.out. Diagnostics go to s.err.
func run(ctx context.Context, s streams, cfg *config.Config, source string, sections report.Section) error {
	if err := cfg.ValidateSource(source, os.LookupEnv); err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := logging.New(s.err, logging.ParseLevel(cfg.Log.Level), logging.ParseFormat(cfg.Log.Format)).
		With(logging.RunID(runID))

	var registry *metrics.Registry
	if cfg.Metrics.File != "" {
		registry = metrics.NewRegistry()
	}

	g := graph.New()
	stats, err := edgelist.Load(ctx, source, g, edgelist.LoadOptions{
		Source: edgelist.SourceOptions{
			Stdin: s.in,
			Mmap:  cfg.Input.Mmap,
			S3Config: edgelist.S3Config{
				Region:          cfg.Input.S3.Region,
				Endpoint:        cfg.Input.S3.Endpoint,
				AccessKeyID:     cfg.Input.S3.AccessKeyID,
				SecretAccessKey: cfg.Input.S3.SecretAccessKey,
				SessionToken:    cfg.Input.S3.SessionToken,
				UsePathStyle:    cfg.Input.S3.UsePathStyle,
			},
		},
		PostgresQuery: cfg.Input.Postgres.Query,
		MaxLineBytes:  cfg.Input.MaxLineBytes,
		Logger:        logger,
		Metrics:       registry,
	})
	if err != nil {
		return err
	}

	g.Freeze()
	graphStats := g.Statistics()
	if registry != nil {
		registry.SetGraphSize(graphStats.NodeCount, graphStats.EdgeCount, graphStats.MaxDegree)
	}

	rep := &report.Report{
		RunID:    runID,
		Source:   displaySource(source),
		Graph:    graphStats,
		Load:     stats,
		Sections: sections,
	}

	if !sections.Has(report.SectionGraph) {
		workers := cfg.Workers
		if workers == 0 {
			workers = parallel.DefaultWorkers()
		}
		rep.Result, err = algorithms.Analyze(ctx, g, algorithms.Options{
			Workers:   workers,
			ChunkSize: cfg.ChunkSize,
			TopN:      cfg.Output.Top,
			Logger:    logger,
			Metrics:   registry,
		})
		if err != nil {
			logger.Error("analysis failed", logging.Error(err))
			writeMetrics(registry, cfg.Metrics.File, logger)
			return err
		}
	}

	if err := report.Write(s.out, rep, report.Options{
		Format:    format,
		Precision: cfg.Output.Precision,
		Top:       cfg.Output.Top,
	}); err != nil {
		return err
	}

	writeMetrics(registry, cfg.Metrics.File, logger)
	return nil
}

// writeMetrics exports the registry when a textfile was configured. A failed
// export is logged and does not fail the run.
func writeMetrics(registry *metrics.Registry, path string, logger logging.Logger) {
	if registry == nil {
		return
	}
	if err := registry.WriteTextfile(path); err != nil {
		logger.Warn("metrics export failed", logging.Error(err))
		return
	}
	logger.Debug("metrics written", logging.String("path", path))
}

// displaySource hides database credentials.
func displaySource(source string) string {
	if edgelist.ClassifySource(source) == edgelist.SourcePostgres {
		return edgelist.RedactURL(source)
	}
	return source
}
