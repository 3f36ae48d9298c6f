package report

import (
	"encoding/json"
	"io"
	"strconv"
)

// fixed is a float marshalled with a fixed number of decimals.
type fixed struct {
	v    float64
	prec int
}

func (f fixed) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, f.v, 'f', f.prec, 64), nil
}

type jsonReport struct {
	RunID  string     `json:"run_id,omitempty"`
	Source string     `json:"source,omitempty"`
	Graph  jsonGraph  `json:"graph"`
	Load   *jsonLoad  `json:"load,omitempty"`
	Result *jsonStats `json:"analysis,omitempty"`
}

type jsonGraph struct {
	Nodes         int   `json:"nodes"`
	Edges         int   `json:"edges"`
	MaxDegree     int   `json:"max_degree"`
	AverageDegree fixed `json:"average_degree"`
}

type jsonLoad struct {
	Lines      uint64 `json:"lines"`
	Bytes      uint64 `json:"bytes"`
	Inserted   uint64 `json:"inserted"`
	Duplicates uint64 `json:"duplicates"`
	SelfLoops  uint64 `json:"self_loops"`
	Blank      uint64 `json:"blank"`
	Comments   uint64 `json:"comments"`
	Malformed  uint64 `json:"malformed"`
	OutOfRange uint64 `json:"out_of_range"`
}

type jsonStats struct {
	TotalTriangles     uint64     `json:"total_triangles"`
	AverageCoefficient *fixed     `json:"average_clustering_coefficient,omitempty"`
	GlobalTransitivity fixed      `json:"global_transitivity"`
	ConnectedTriples   uint64     `json:"connected_triples"`
	Workers            int        `json:"workers"`
	DurationMillis     int64      `json:"duration_ms"`
	TopNodes           []jsonNode `json:"top_nodes"`
	Nodes              []jsonNode `json:"nodes,omitempty"`
}

type jsonNode struct {
	ID          uint32 `json:"id"`
	Degree      int    `json:"degree"`
	Triangles   uint64 `json:"triangles"`
	Coefficient *fixed `json:"clustering_coefficient,omitempty"`
}

// writeJSON emits a single indented JSON document.
func writeJSON(w io.Writer, r *Report, opts Options) error {
	prec := opts.Precision
	out := jsonReport{
		RunID:  r.RunID,
		Source: r.Source,
		Graph: jsonGraph{
			Nodes:         r.Graph.NodeCount,
			Edges:         r.Graph.EdgeCount,
			MaxDegree:     r.Graph.MaxDegree,
			AverageDegree: fixed{r.Graph.AverageDegree, prec},
		},
	}
	if r.Load.Lines > 0 {
		l := r.Load
		out.Load = &jsonLoad{
			Lines:      l.Lines,
			Bytes:      l.Bytes,
			Inserted:   l.Inserted,
			Duplicates: l.Duplicates,
			SelfLoops:  l.SelfLoops,
			Blank:      l.Blank,
			Comments:   l.Comments,
			Malformed:  l.Malformed,
			OutOfRange: l.OutOfRange,
		}
	}

	if res := r.Result; res != nil {
		withCoefficients := r.Sections.Has(SectionCoefficients) || r.Sections.Has(SectionAverage)
		node := func(id uint32, degree int, triangles uint64, c float64) jsonNode {
			n := jsonNode{ID: id, Degree: degree, Triangles: triangles}
			if withCoefficients {
				n.Coefficient = &fixed{c, prec}
			}
			return n
		}

		stats := &jsonStats{
			TotalTriangles:     res.TotalTriangles,
			GlobalTransitivity: fixed{res.GlobalTransitivity, prec},
			ConnectedTriples:   res.ConnectedTriples,
			Workers:            res.Workers,
			DurationMillis:     res.Duration.Milliseconds(),
			TopNodes:           []jsonNode{},
		}
		if withCoefficients {
			stats.AverageCoefficient = &fixed{res.AverageCoefficient, prec}
		}
		for _, rn := range topNodes(r, opts.Top) {
			stats.TopNodes = append(stats.TopNodes,
				node(uint32(rn.NodeID), rn.Degree, res.PerNode[rn.NodeID], res.Coefficients[rn.NodeID]))
		}
		if r.Sections.Has(SectionPerNode) || r.Sections.Has(SectionCoefficients) {
			nodes := res.Nodes()
			stats.Nodes = make([]jsonNode, 0, len(nodes))
			for _, v := range nodes {
				stats.Nodes = append(stats.Nodes, node(uint32(v), res.Degrees[v], res.PerNode[v], res.Coefficients[v]))
			}
		}
		out.Result = stats
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
