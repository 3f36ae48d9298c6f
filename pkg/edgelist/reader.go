package edgelist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dd0wney/cluso-triangles/pkg/graph"
	"github.com/dd0wney/cluso-triangles/pkg/logging"
	"github.com/dd0wney/cluso-triangles/pkg/metrics"
)

const (
	// DefaultMaxLineBytes bounds the length of a single input line.
	DefaultMaxLineBytes = 1 << 20

	readCancelInterval = 4096
)

// LoadStats counts what happened to each input line.
type LoadStats struct {
	Lines      uint64 // lines read, including skipped ones
	Bytes      uint64 // decompressed bytes read
	Edges      uint64 // lines that parsed as an edge
	Inserted   uint64 // edges that were new to the graph
	Duplicates uint64 // edges already present
	SelfLoops  uint64 // edges with u == v, ignored by the graph
	Blank      uint64
	Comments   uint64
	Malformed  uint64
	OutOfRange uint64
}

// Skipped returns the number of lines that did not produce an edge.
func (s LoadStats) Skipped() uint64 {
	return s.Blank + s.Comments + s.Malformed + s.OutOfRange
}

// Add accumulates o into s.
func (s *LoadStats) Add(o LoadStats) {
	s.Lines += o.Lines
	s.Bytes += o.Bytes
	s.Edges += o.Edges
	s.Inserted += o.Inserted
	s.Duplicates += o.Duplicates
	s.SelfLoops += o.SelfLoops
	s.Blank += o.Blank
	s.Comments += o.Comments
	s.Malformed += o.Malformed
	s.OutOfRange += o.OutOfRange
}

// Summary converts the stats into the metrics package's load summary.
func (s LoadStats) Summary() metrics.LoadSummary {
	return metrics.LoadSummary{
		Lines:      s.Lines,
		Inserted:   s.Inserted,
		Bytes:      s.Bytes,
		Blank:      s.Blank,
		Comments:   s.Comments,
		Malformed:  s.Malformed,
		OutOfRange: s.OutOfRange,
		SelfLoops:  s.SelfLoops,
		Duplicates: s.Duplicates,
	}
}

// ReadOptions configures Read.
type ReadOptions struct {
	// Source names the input in logs and errors.
	Source       string
	MaxLineBytes int
	Logger       logging.Logger
}

// record applies one parsed line to the graph and the stats.
func (s *LoadStats) record(g *graph.Graph, u, v graph.NodeID, status LineStatus) {
	switch status {
	case StatusBlank:
		s.Blank++
	case StatusComment:
		s.Comments++
	case StatusMalformed:
		s.Malformed++
	case StatusOutOfRange:
		s.OutOfRange++
	case StatusEdge:
		s.Edges++
		switch {
		case u == v:
			g.AddEdge(u, v)
			s.SelfLoops++
		case g.AddEdge(u, v):
			s.Inserted++
		default:
			s.Duplicates++
		}
	}
}

// Read parses an edge list from r and inserts every edge into g. Malformed
// and out-of-range lines are skipped and counted; read failures are returned
// as a *LoadError matching ErrInputUnavailable. Only the first MaxLineBytes of
// a line are parsed and the rest is discarded.
func Read(ctx context.Context, r io.Reader, g *graph.Graph, opts ReadOptions) (LoadStats, error) {
	var stats LoadStats
	if g.Frozen() {
		return stats, fmt.Errorf("%s: %w", opts.Source, ErrGraphFrozen)
	}

	logger := logging.OrNop(opts.Logger)
	maxLine := opts.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}

	br := bufio.NewReaderSize(r, maxLine)
	for {
		if stats.Lines%readCancelInterval == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}

		line, err := br.ReadSlice('\n')
		switch {
		case err == io.EOF && len(line) == 0:
			return stats, nil
		case err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull):
			return stats, unavailable("read", opts.Source, int(stats.Lines)+1, err)
		}
		stats.Lines++
		stats.Bytes += uint64(len(line))

		var (
			u, v   graph.NodeID
			status LineStatus
		)
		if errors.Is(err, bufio.ErrBufferFull) {
			u, v, status = parseTruncated(string(line))
			logger.Debug("truncating overlong line",
				logging.Source(opts.Source), logging.Line(int(stats.Lines)), logging.Int("max_bytes", maxLine))
			skipped, derr := discardLine(br)
			stats.Bytes += skipped
			if derr != nil && derr != io.EOF {
				return stats, unavailable("read", opts.Source, int(stats.Lines), derr)
			}
		} else {
			u, v, status = ParseLine(string(line))
		}

		switch status {
		case StatusMalformed:
			logger.Debug("skipping malformed line", logging.Source(opts.Source), logging.Line(int(stats.Lines)))
		case StatusOutOfRange:
			logger.Debug("skipping edge with out-of-range node ID",
				logging.Source(opts.Source), logging.Line(int(stats.Lines)))
		}
		stats.record(g, u, v, status)
	}
}

// discardLine consumes the remainder of the current line, including its
// newline, and reports how many bytes it skipped.
func discardLine(br *bufio.Reader) (uint64, error) {
	var n uint64
	for {
		rest, err := br.ReadSlice('\n')
		n += uint64(len(rest))
		if !errors.Is(err, bufio.ErrBufferFull) {
			return n, err
		}
	}
}
