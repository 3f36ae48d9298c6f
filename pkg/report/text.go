package report

import (
	"bufio"
	"fmt"
	"io"
)

// writeText prints the classic line-oriented report.
func writeText(w io.Writer, r *Report, opts Options) error {
	bw := bufio.NewWriter(w)
	prec := opts.Precision
	res := r.Result

	if r.Sections.Has(SectionBanner) {
		fmt.Fprintln(bw, "Graph successfully loaded!")
	}
	if r.Sections.Has(SectionGraph) {
		writeGraphText(bw, r, prec)
	}

	if res != nil {
		if r.Sections.Has(SectionTotal) {
			fmt.Fprintf(bw, "Total triangles in the graph: %d\n", res.TotalTriangles)
		}

		nodes := res.Nodes()
		if r.Sections.Has(SectionPerNode) {
			fmt.Fprintln(bw, "Triangles per node:")
			for _, v := range nodes {
				fmt.Fprintf(bw, "Node %d: Triangles = %d\n", v, res.PerNode[v])
			}
		}
		if r.Sections.Has(SectionCoefficients) {
			fmt.Fprintln(bw, "Local Clustering Coefficients:")
			for _, v := range nodes {
				fmt.Fprintf(bw, "Node %d: Local Clustering Coefficient = %.*f\n", v, prec, res.Coefficients[v])
			}
		}
		if r.Sections.Has(SectionAverage) {
			fmt.Fprintf(bw, "Average (Global) Clustering Coefficient: %.*f\n", prec, res.AverageCoefficient)
		}
	}

	return bw.Flush()
}

func writeGraphText(w io.Writer, r *Report, prec int) {
	g := r.Graph
	l := r.Load

	if r.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", r.Source)
	}
	fmt.Fprintf(w, "Nodes: %d\n", g.NodeCount)
	fmt.Fprintf(w, "Edges: %d\n", g.EdgeCount)
	fmt.Fprintf(w, "Max degree: %d\n", g.MaxDegree)
	fmt.Fprintf(w, "Average degree: %.*f\n", prec, g.AverageDegree)
	fmt.Fprintf(w, "Lines read: %d\n", l.Lines)
	fmt.Fprintf(w, "Edges inserted: %d\n", l.Inserted)
	fmt.Fprintf(w, "Duplicate edges: %d\n", l.Duplicates)
	fmt.Fprintf(w, "Self-loops ignored: %d\n", l.SelfLoops)
	fmt.Fprintf(w, "Lines skipped: %d (blank %d, comment %d, malformed %d, out of range %d)\n",
		l.Skipped(), l.Blank, l.Comments, l.Malformed, l.OutOfRange)
}

// writeSummary prints totals only.
func writeSummary(w io.Writer, r *Report, opts Options) error {
	bw := bufio.NewWriter(w)
	prec := opts.Precision

	fmt.Fprintf(bw, "Nodes: %d\n", r.Graph.NodeCount)
	fmt.Fprintf(bw, "Edges: %d\n", r.Graph.EdgeCount)
	if res := r.Result; res != nil {
		fmt.Fprintf(bw, "Triangles: %d\n", res.TotalTriangles)
		fmt.Fprintf(bw, "Average clustering coefficient: %.*f\n", prec, res.AverageCoefficient)
		fmt.Fprintf(bw, "Global transitivity: %.*f\n", prec, res.GlobalTransitivity)
		fmt.Fprintf(bw, "Duration: %s\n", res.Duration)
	}
	if skipped := r.Load.Malformed + r.Load.OutOfRange; skipped > 0 {
		fmt.Fprintf(bw, "Unparseable lines skipped: %d\n", skipped)
	}
	return bw.Flush()
}
