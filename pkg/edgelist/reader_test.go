package edgelist

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-triangles/pkg/graph"
	"github.com/dd0wney/cluso-triangles/pkg/logging"
)

func TestRead_MalformedLineTolerance(t *testing.T) {
	input := "0 1\ngarbage\n2\n1 2\n"
	g := graph.New()

	stats, err := Read(context.Background(), strings.NewReader(input), g, ReadOptions{Source: "test"})
	require.NoError(t, err)

	assert.Equal(t, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}}, g.Edges())
	assert.Equal(t, uint64(4), stats.Lines)
	assert.Equal(t, uint64(2), stats.Edges)
	assert.Equal(t, uint64(2), stats.Inserted)
	assert.Equal(t, uint64(2), stats.Malformed)
	assert.Equal(t, uint64(2), stats.Skipped())
}

func TestRead_DuplicatesAndSelfLoops(t *testing.T) {
	input := "0 1\n1 0\n0 1\n5 5\n"
	g := graph.New()

	stats, err := Read(context.Background(), strings.NewReader(input), g, ReadOptions{})
	require.NoError(t, err)

	n0, _ := g.Neighbors(0)
	n1, _ := g.Neighbors(1)
	assert.Equal(t, 1, n0.Len())
	assert.Equal(t, 1, n1.Len())
	assert.False(t, g.HasNode(5))

	assert.Equal(t, uint64(4), stats.Edges)
	assert.Equal(t, uint64(1), stats.Inserted)
	assert.Equal(t, uint64(2), stats.Duplicates)
	assert.Equal(t, uint64(1), stats.SelfLoops)
}

func TestRead_SNAPHeaderAndOutOfRange(t *testing.T) {
	input := strings.Join([]string{
		"# Directed graph (each unordered pair of nodes is saved once): facebook_combined.txt",
		"# Nodes: 4039 Edges: 88234",
		"",
		"0 1",
		"0 2",
		"1 2",
		"4294967296 3",
		"3 2",
	}, "\n")

	var logs bytes.Buffer
	g := graph.New()
	stats, err := Read(context.Background(), strings.NewReader(input), g, ReadOptions{
		Source: "snap.txt",
		Logger: logging.NewJSONLogger(&logs, logging.DebugLevel),
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(8), stats.Lines)
	assert.Equal(t, uint64(2), stats.Comments)
	assert.Equal(t, uint64(1), stats.Blank)
	assert.Equal(t, uint64(1), stats.OutOfRange)
	assert.Equal(t, uint64(4), stats.Inserted)
	assert.Equal(t, 4, g.EdgeCount())
	assert.Contains(t, logs.String(), "out-of-range")
	assert.Contains(t, logs.String(), `"line":7`)
}

func TestRead_NoTrailingNewline(t *testing.T) {
	g := graph.New()
	stats, err := Read(context.Background(), strings.NewReader("1 2\n2 3"), g, ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, uint64(2), stats.Inserted)
	assert.True(t, g.HasEdge(2, 3))
}

func TestRead_FrozenGraph(t *testing.T) {
	g := graph.New()
	g.Freeze()

	_, err := Read(context.Background(), strings.NewReader("1 2\n"), g, ReadOptions{Source: "x"})
	assert.ErrorIs(t, err, ErrGraphFrozen)
}

func TestRead_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Read(ctx, strings.NewReader("1 2\n"), graph.New(), ReadOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRead_OverlongLineKeepsLeadingEdge(t *testing.T) {
	input := "0 1 " + strings.Repeat("7 ", 600_000) + "\n1 2\n2 0\n"
	g := graph.New()

	stats, err := Read(context.Background(), strings.NewReader(input), g, ReadOptions{Source: "wide.txt"})
	require.NoError(t, err)

	assert.Equal(t, []graph.Edge{{U: 0, V: 1}, {U: 0, V: 2}, {U: 1, V: 2}}, g.Edges())
	assert.Equal(t, uint64(3), stats.Lines)
	assert.Equal(t, uint64(3), stats.Inserted)
	assert.Equal(t, uint64(len(input)), stats.Bytes)
}

func TestRead_OverlongLineWithCutToken(t *testing.T) {
	input := "1 2\n3 " + strings.Repeat("9", 200) + "\n# " + strings.Repeat("x", 200) + "\n2 3\n"

	var logs bytes.Buffer
	g := graph.New()
	stats, err := Read(context.Background(), strings.NewReader(input), g, ReadOptions{
		Source:       "long.txt",
		MaxLineBytes: 64,
		Logger:       logging.NewJSONLogger(&logs, logging.DebugLevel),
	})
	require.NoError(t, err)

	assert.Equal(t, []graph.Edge{{U: 1, V: 2}, {U: 2, V: 3}}, g.Edges())
	assert.Equal(t, uint64(4), stats.Lines)
	assert.Equal(t, uint64(1), stats.Malformed)
	assert.Equal(t, uint64(1), stats.Comments)
	assert.Equal(t, uint64(len(input)), stats.Bytes)
	assert.Contains(t, logs.String(), "truncating overlong line")
	assert.Contains(t, logs.String(), `"line":2`)
}

func TestRead_ByteCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"lf", "0 1\n1 2\n"},
		{"crlf", "0 1\r\n1 2\r\n"},
		{"unterminated last line", "0 1\n1 2"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := Read(context.Background(), strings.NewReader(tt.input), graph.New(), ReadOptions{})
			require.NoError(t, err)
			assert.Equal(t, uint64(len(tt.input)), stats.Bytes)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestRead_ReaderFailure(t *testing.T) {
	_, err := Read(context.Background(), failingReader{}, graph.New(), ReadOptions{Source: "broken"})
	assert.ErrorIs(t, err, ErrInputUnavailable)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestLoadStats_Add(t *testing.T) {
	a := LoadStats{Lines: 2, Inserted: 1, Malformed: 1}
	a.Add(LoadStats{Lines: 3, Inserted: 2, OutOfRange: 1, Bytes: 9})

	assert.Equal(t, LoadStats{Lines: 5, Inserted: 3, Malformed: 1, OutOfRange: 1, Bytes: 9}, a)
	assert.Equal(t, uint64(3), a.Summary().Inserted)
}
