// Package edgelist loads undirected edge lists into a graph.
//
// An edge list is text with one edge per line. The first two whitespace
// separated tokens are the endpoint IDs; further tokens are ignored. Any
// Unicode whitespace separates tokens, and an ID may carry a single leading
// '+'. Blank lines, comment lines starting with '#' or '%', lines with fewer
// than two tokens and lines whose tokens are not non-negative integers are
// skipped. Integers that do not fit in 32 bits are skipped and counted
// separately.
package edgelist

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/dd0wney/cluso-triangles/pkg/graph"
)

// LineStatus classifies one input line.
type LineStatus int

const (
	StatusEdge LineStatus = iota
	StatusBlank
	StatusComment
	StatusMalformed
	StatusOutOfRange
)

// String returns the metric label of a status
func (s LineStatus) String() string {
	switch s {
	case StatusEdge:
		return "edge"
	case StatusBlank:
		return "blank"
	case StatusComment:
		return "comment"
	case StatusMalformed:
		return "malformed"
	case StatusOutOfRange:
		return "out_of_range"
	default:
		return "unknown"
	}
}

// nextToken returns the first whitespace-delimited token of s and the rest.
func nextToken(s string) (tok, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}

func parseID(tok string) (graph.NodeID, LineStatus) {
	if len(tok) > 1 && tok[0] == '+' {
		tok = tok[1:]
	}
	n, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, StatusOutOfRange
		}
		return 0, StatusMalformed
	}
	return graph.NodeID(n), StatusEdge
}

// ParseLine extracts an edge from one line of an edge list. u and v are only
// meaningful when the status is StatusEdge. Self-loops parse as edges; the
// graph ignores them.
func ParseLine(line string) (u, v graph.NodeID, status LineStatus) {
	first, rest := nextToken(line)
	if first == "" {
		return 0, 0, StatusBlank
	}
	if first[0] == '#' || first[0] == '%' {
		return 0, 0, StatusComment
	}

	second, _ := nextToken(rest)
	if second == "" {
		return 0, 0, StatusMalformed
	}

	u, su := parseID(first)
	v, sv := parseID(second)
	switch {
	case su == StatusMalformed || sv == StatusMalformed:
		return 0, 0, StatusMalformed
	case su == StatusOutOfRange || sv == StatusOutOfRange:
		return 0, 0, StatusOutOfRange
	}
	return u, v, StatusEdge
}

// parseTruncated classifies a line of which only prefix was read. The
// endpoints count only when both tokens end inside the prefix; a cut token
// makes the line malformed.
func parseTruncated(prefix string) (u, v graph.NodeID, status LineStatus) {
	first, _ := nextToken(prefix)
	if first != "" && (first[0] == '#' || first[0] == '%') {
		return 0, 0, StatusComment
	}

	cut := strings.LastIndexFunc(prefix, unicode.IsSpace)
	if cut < 0 {
		return 0, 0, StatusMalformed
	}
	u, v, status = ParseLine(prefix[:cut])
	if status == StatusBlank {
		status = StatusMalformed
	}
	return u, v, status
}
