package edgelist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/cluso-triangles/pkg/graph"
	"github.com/dd0wney/cluso-triangles/pkg/logging"
)

// DefaultPostgresQuery selects the two endpoint columns of an edge table.
const DefaultPostgresQuery = "SELECT source, target FROM edges"

// RowQuerier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type RowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ConnectPostgres opens a connection pool and verifies connectivity.
func ConnectPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, unavailable("connect", RedactURL(databaseURL), 0, fmt.Errorf("failed to parse database URL: %w", err))
	}
	// One sequential reader
	config.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, unavailable("connect", RedactURL(databaseURL), 0, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, unavailable("connect", RedactURL(databaseURL), 0, fmt.Errorf("database unreachable: %w", err))
	}
	return pool, nil
}

// classifyColumn applies the edge-list ID policy to a database value.
func classifyColumn(v *int64) (graph.NodeID, LineStatus) {
	switch {
	case v == nil || *v < 0:
		return 0, StatusMalformed
	case *v > int64(graph.MaxNodeID):
		return 0, StatusOutOfRange
	}
	return graph.NodeID(*v), StatusEdge
}

// LoadPostgres runs query and inserts each (u, v) row into g. The query must
// return two integer columns. Each row counts as one line: NULL or negative
// values are malformed, values beyond 32 bits are out of range.
func LoadPostgres(ctx context.Context, q RowQuerier, query string, g *graph.Graph, opts ReadOptions) (LoadStats, error) {
	var stats LoadStats
	if g.Frozen() {
		return stats, fmt.Errorf("%s: %w", opts.Source, ErrGraphFrozen)
	}
	if query == "" {
		query = DefaultPostgresQuery
	}
	logger := logging.OrNop(opts.Logger)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return stats, unavailable("query", opts.Source, 0, err)
	}
	defer rows.Close()

	for rows.Next() {
		stats.Lines++

		var a, b *int64
		if err := rows.Scan(&a, &b); err != nil {
			return stats, unavailable("scan", opts.Source, int(stats.Lines), err)
		}

		u, su := classifyColumn(a)
		v, sv := classifyColumn(b)
		status := StatusEdge
		switch {
		case su == StatusMalformed || sv == StatusMalformed:
			status = StatusMalformed
		case su == StatusOutOfRange || sv == StatusOutOfRange:
			status = StatusOutOfRange
		}
		if status != StatusEdge {
			logger.Debug("skipping row", logging.Source(opts.Source),
				logging.Line(int(stats.Lines)), logging.String("reason", status.String()))
		}
		stats.record(g, u, v, status)
	}
	if err := rows.Err(); err != nil {
		return stats, unavailable("query", opts.Source, int(stats.Lines), err)
	}
	return stats, nil
}
