package edgelist

import (
	"context"
	"net/url"
	"time"

	"github.com/dd0wney/cluso-triangles/pkg/graph"
	"github.com/dd0wney/cluso-triangles/pkg/logging"
	"github.com/dd0wney/cluso-triangles/pkg/metrics"
)

// LoadOptions configures Load.
type LoadOptions struct {
	Source        SourceOptions
	PostgresQuery string
	MaxLineBytes  int

	Logger  logging.Logger
	Metrics *metrics.Registry
}

// RedactURL masks the password of a database URL for logs and reports.
func RedactURL(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return "postgres://<unparseable>"
	}
	return u.Redacted()
}

// Load reads the edge list at location into g. Files, stdin and S3 objects
// are decompressed transparently; postgres:// URLs are queried with
// opts.PostgresQuery.
func Load(ctx context.Context, location string, g *graph.Graph, opts LoadOptions) (LoadStats, error) {
	kind := ClassifySource(location)
	name := location
	if kind == SourcePostgres {
		name = RedactURL(location)
	}

	logger := logging.OrNop(opts.Logger).With(logging.Component("loader"), logging.Source(name))
	start := time.Now()
	readOpts := ReadOptions{
		Source:       name,
		MaxLineBytes: opts.MaxLineBytes,
		Logger:       logger,
	}

	var (
		stats LoadStats
		err   error
	)
	if kind == SourcePostgres {
		stats, err = loadPostgres(ctx, location, g, opts.PostgresQuery, readOpts)
	} else {
		stats, err = loadStream(ctx, location, g, opts.Source, readOpts, logger)
	}
	elapsed := time.Since(start)

	if err != nil {
		logger.Error("load failed", logging.Error(err), logging.Line(int(stats.Lines)), logging.Latency(elapsed))
		return stats, err
	}

	if opts.Metrics != nil {
		opts.Metrics.RecordLoad(stats.Summary(), elapsed)
	}
	if skipped := stats.Malformed + stats.OutOfRange; skipped > 0 {
		logger.Warn("skipped unparseable lines",
			logging.Uint64("malformed", stats.Malformed),
			logging.Uint64("out_of_range", stats.OutOfRange))
	}
	logger.Info("edge list loaded",
		logging.String("kind", kind.String()),
		logging.Uint64("lines", stats.Lines),
		logging.Uint64("edges", stats.Inserted),
		logging.Uint64("duplicates", stats.Duplicates),
		logging.Uint64("self_loops", stats.SelfLoops),
		logging.Int("nodes", g.NodeCount()),
		logging.Latency(elapsed))
	return stats, nil
}

func loadStream(ctx context.Context, location string, g *graph.Graph, src SourceOptions, readOpts ReadOptions, logger logging.Logger) (LoadStats, error) {
	raw, err := Open(ctx, location, src)
	if err != nil {
		return LoadStats{}, err
	}

	rc, compression, err := Decompress(raw)
	if err != nil {
		raw.Close()
		return LoadStats{}, unavailable("decompress", location, 0, err)
	}
	defer rc.Close()
	logger.Debug("source opened",
		logging.String("compression", compression.String()),
		logging.Bool("mmap", src.Mmap && ClassifySource(location) == SourceFile))

	return Read(ctx, rc, g, readOpts)
}

func loadPostgres(ctx context.Context, location string, g *graph.Graph, query string, readOpts ReadOptions) (LoadStats, error) {
	pool, err := ConnectPostgres(ctx, location)
	if err != nil {
		return LoadStats{}, err
	}
	defer pool.Close()

	return LoadPostgres(ctx, pool, query, g, readOpts)
}
