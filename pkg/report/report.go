// Package report renders analysis results as plain text, JSON, a styled
// terminal table, or a one-screen summary.
//
// Every format lists nodes in ascending ID order, so two runs over the same
// graph produce byte-identical output regardless of worker count.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dd0wney/cluso-triangles/pkg/algorithms"
	"github.com/dd0wney/cluso-triangles/pkg/edgelist"
	"github.com/dd0wney/cluso-triangles/pkg/graph"
)

// Format selects a renderer.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatTable   Format = "table"
	FormatSummary Format = "summary"
)

// DefaultPrecision is the number of decimals printed for coefficients.
const DefaultPrecision = 4

// ErrUnknownFormat is returned for format names ParseFormat does not know.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatTable, FormatSummary:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Section selects which parts of a report are rendered.
type Section uint

const (
	SectionBanner Section = 1 << iota
	SectionTotal
	SectionPerNode
	SectionCoefficients
	SectionAverage
	SectionGraph
)

// Section presets for the CLI commands
const (
	SectionsAnalyze    = SectionBanner | SectionTotal | SectionCoefficients | SectionAverage
	SectionsTriangles  = SectionTotal
	SectionsClustering = SectionCoefficients | SectionAverage
	SectionsStats      = SectionGraph
)

// Has reports whether every bit of o is set in s.
func (s Section) Has(o Section) bool {
	return s&o == o
}

// Report is everything a renderer may print about one run.
type Report struct {
	RunID  string
	Source string

	// Result is nil when no analysis ran (the stats command).
	Result *algorithms.Result
	Graph  graph.Statistics
	Load   edgelist.LoadStats

	Sections Section
}

// Options configures rendering.
type Options struct {
	Format    Format
	Precision int
	// Top caps the ranked node listing of the table and JSON formats.
	Top int
}

// Write renders r to w.
func Write(w io.Writer, r *Report, opts Options) error {
	if opts.Precision < 0 {
		opts.Precision = DefaultPrecision
	}

	switch opts.Format {
	case FormatText, "":
		return writeText(w, r, opts)
	case FormatJSON:
		return writeJSON(w, r, opts)
	case FormatTable:
		return writeTable(w, r, opts)
	case FormatSummary:
		return writeSummary(w, r, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// topNodes trims the ranked listing to the requested length.
func topNodes(r *Report, top int) []algorithms.RankedNode {
	if r.Result == nil {
		return nil
	}
	nodes := r.Result.TopNodes
	if top >= 0 && len(nodes) > top {
		nodes = nodes[:top]
	}
	return nodes
}
