package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// tableStyles are bound to a renderer for the output writer, so colour is
// dropped automatically when the writer is not a terminal.
type tableStyles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	box     lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
	warning lipgloss.Style
}

func newTableStyles(re *lipgloss.Renderer) tableStyles {
	return tableStyles{
		title: re.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginBottom(1),
		label: re.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(24),
		value: re.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		box: re.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1),
		header: re.NewStyle().
			Foreground(lipgloss.Color("#00FFFF")).
			Bold(true).
			Padding(0, 1),
		cell: re.NewStyle().
			Padding(0, 1),
		border: re.NewStyle().
			Foreground(lipgloss.Color("#00FFFF")),
		warning: re.NewStyle().
			Foreground(lipgloss.Color("#FFFF00")),
	}
}

// writeTable renders a summary box and the top-ranked nodes.
func writeTable(w io.Writer, r *Report, opts Options) error {
	s := newTableStyles(lipgloss.NewRenderer(w))
	prec := opts.Precision

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(label), s.value.Render(value))
	}
	rows := []string{
		row("Nodes", strconv.Itoa(r.Graph.NodeCount)),
		row("Edges", strconv.Itoa(r.Graph.EdgeCount)),
		row("Max degree", strconv.Itoa(r.Graph.MaxDegree)),
	}
	if res := r.Result; res != nil {
		rows = append(rows,
			row("Triangles", strconv.FormatUint(res.TotalTriangles, 10)),
			row("Average clustering", strconv.FormatFloat(res.AverageCoefficient, 'f', prec, 64)),
			row("Global transitivity", strconv.FormatFloat(res.GlobalTransitivity, 'f', prec, 64)),
			row("Workers", strconv.Itoa(res.Workers)),
		)
	}

	title := "Graph analysis"
	if r.Source != "" {
		title = fmt.Sprintf("Graph analysis: %s", r.Source)
	}
	out := lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render(title),
		s.box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
	)

	if top := topNodes(r, opts.Top); len(top) > 0 {
		res := r.Result
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(s.border).
			Headers("Rank", "Node", "Degree", "Triangles", "Coefficient").
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return s.header
				}
				return s.cell
			})
		for i, rn := range top {
			t.Row(
				strconv.Itoa(i+1),
				strconv.FormatUint(uint64(rn.NodeID), 10),
				strconv.Itoa(rn.Degree),
				strconv.FormatUint(res.PerNode[rn.NodeID], 10),
				strconv.FormatFloat(res.Coefficients[rn.NodeID], 'f', prec, 64),
			)
		}
		out = lipgloss.JoinVertical(lipgloss.Left, out, "", t.String())
	}

	if skipped := r.Load.Malformed + r.Load.OutOfRange; skipped > 0 {
		out = lipgloss.JoinVertical(lipgloss.Left, out, "",
			s.warning.Render(fmt.Sprintf("%d unparseable lines skipped", skipped)))
	}

	_, err := fmt.Fprintln(w, out)
	return err
}
