package io

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/graph"
)

// EdgeListOptions configures edge-list parsing and writing.
type EdgeListOptions struct {
	// Delimiter separates the two vertex names. Defaults to ",".
	Delimiter string
	// Comment starts a comment line. Empty disables comments.
	Comment string
	// ParseTags reads leading "-" markers as copy generations.
	ParseTags bool
}

// DefaultEdgeListOptions returns comma-separated rows with "#" comments.
func DefaultEdgeListOptions() EdgeListOptions {
	return EdgeListOptions{Delimiter: ",", Comment: "#"}
}

// EdgeListStats summarizes what [ReadEdgeList] consumed.
type EdgeListStats struct {
	Rows       int `json:"rows" yaml:"rows"`
	Edges      int `json:"edges" yaml:"edges"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`
	SelfLoops  int `json:"self_loops" yaml:"self_loops"`
}

func (o EdgeListOptions) runes() (delim, comment rune, err error) {
	d := o.Delimiter
	if d == "" {
		d = ","
	}
	if err := kerrors.ValidateDelimiter(d); err != nil {
		return 0, 0, err
	}
	delim, _ = utf8.DecodeRuneInString(d)
	if o.Comment != "" {
		if utf8.RuneCountInString(o.Comment) != 1 {
			return 0, 0, kerrors.New(kerrors.ErrCodeInvalidConfig, "comment must be a single character, got %q", o.Comment)
		}
		comment, _ = utf8.DecodeRuneInString(o.Comment)
		if comment == delim {
			return 0, 0, kerrors.New(kerrors.ErrCodeInvalidConfig, "comment and delimiter must differ")
		}
	}
	return delim, comment, nil
}

// ReadEdgeList parses a delimited edge list from r into a new graph.
// Vertices are added in order of first appearance.
func ReadEdgeList(r io.Reader, opts EdgeListOptions) (*graph.Graph, EdgeListStats, error) {
	var stats EdgeListStats
	delim, comment, err := opts.runes()
	if err != nil {
		return nil, stats, err
	}

	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.Comment = comment
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	vertex := graph.V
	if opts.ParseTags {
		vertex = graph.ParseVertex
	}

	g := graph.New()
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line, _ := cr.FieldPos(0)
		if err != nil {
			return nil, stats, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		stats.Rows++
		if len(rec) < 2 {
			return nil, stats, kerrors.New(kerrors.ErrCodeInvalidFormat, "line %d: want two vertices, got %d field(s)", line, len(rec))
		}
		a, b := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		if a == "" || b == "" {
			return nil, stats, kerrors.New(kerrors.ErrCodeInvalidFormat, "line %d: empty vertex name", line)
		}
		va, vb := vertex(a), vertex(b)
		if va == vb {
			stats.SelfLoops++
			g.AddVertex(va)
			continue
		}
		added, err := g.AddEdge(g.AddVertex(va), g.AddVertex(vb))
		if err != nil {
			return nil, stats, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		if added {
			stats.Edges++
		} else {
			stats.Duplicates++
		}
	}
	return g, stats, nil
}

// WriteEdgeList writes one row per edge in [graph.Graph.Edges] order using
// the marker form of each vertex. Labels that would collide get the same
// "#n" suffix as JSON ids. Isolated vertices are not written.
func WriteEdgeList(g *graph.Graph, w io.Writer, opts EdgeListOptions) error {
	delim, _, err := opts.runes()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = delim
	ids := labels(g)
	for _, e := range g.Edges() {
		if err := cw.Write([]string{ids[e.U], ids[e.V]}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
