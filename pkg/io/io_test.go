package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/graph"
)

func TestReadEdgeList(t *testing.T) {
	in := `# comment
alice,bob
bob , carol

carol,alice,extra
alice,bob
dave,dave
`
	g, stats, err := ReadEdgeList(strings.NewReader(in), DefaultEdgeListOptions())
	if err != nil {
		t.Fatalf("ReadEdgeList: %v", err)
	}
	want := EdgeListStats{Rows: 5, Edges: 3, Duplicates: 1, SelfLoops: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if g.VertexCount() != 4 || g.EdgeCount() != 3 {
		t.Errorf("graph has %d vertices, %d edges; want 4, 3", g.VertexCount(), g.EdgeCount())
	}
	names := make([]string, 0, g.VertexCount())
	for _, v := range g.Vertices() {
		names = append(names, v.Name)
	}
	if !slices.Equal(names, []string{"alice", "bob", "carol", "dave"}) {
		t.Errorf("vertex order = %v", names)
	}
	if dave, _ := g.Lookup(graph.V("dave")); g.Degree(dave) != 0 {
		t.Error("self-loop row must not add an edge")
	}
}

func TestReadEdgeListErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts EdgeListOptions
		code kerrors.Code
		msg  string
	}{
		{"single field", "a,b\nc\n", DefaultEdgeListOptions(), kerrors.ErrCodeInvalidFormat, "line 2"},
		{"empty name", "a,\n", DefaultEdgeListOptions(), kerrors.ErrCodeInvalidFormat, "line 1"},
		{"bad delimiter", "a,b\n", EdgeListOptions{Delimiter: "\n"}, kerrors.ErrCodeInvalidConfig, ""},
		{"long comment", "a,b\n", EdgeListOptions{Comment: "//"}, kerrors.ErrCodeInvalidConfig, ""},
		{"comment equals delimiter", "a,b\n", EdgeListOptions{Delimiter: "#", Comment: "#"}, kerrors.ErrCodeInvalidConfig, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadEdgeList(strings.NewReader(tt.in), tt.opts)
			if !kerrors.Is(err, tt.code) {
				t.Fatalf("error = %v, want code %s", err, tt.code)
			}
			if tt.msg != "" && !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q should mention %q", err, tt.msg)
			}
		})
	}
}

func TestReadEdgeListTabsAndTags(t *testing.T) {
	in := "a\t-a\n-a\t--b\n"
	g, _, err := ReadEdgeList(strings.NewReader(in), EdgeListOptions{Delimiter: "\t", ParseTags: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.Lookup(graph.Vertex{Name: "b", Generation: 2}); !ok {
		t.Errorf("vertices = %v, want --b parsed as generation 2", g.Vertices())
	}

	plain, _, err := ReadEdgeList(strings.NewReader(in), EdgeListOptions{Delimiter: "\t"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := plain.Lookup(graph.V("--b")); !ok {
		t.Error("without ParseTags markers stay part of the name")
	}
}

func TestEdgeListRoundTrip(t *testing.T) {
	g := graph.New()
	a := g.AddVertex(graph.V("a"))
	ca := g.AddVertex(graph.V("a").Tag(1))
	b := g.AddVertex(graph.V("b"))
	_, _ = g.AddEdge(a, ca)
	_, _ = g.AddEdge(ca, b)

	var buf bytes.Buffer
	if err := WriteEdgeList(g, &buf, EdgeListOptions{Delimiter: ";"}); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "a;-a\n-a;b\n"; got != want {
		t.Errorf("WriteEdgeList = %q, want %q", got, want)
	}

	back, _, err := ReadEdgeList(&buf, EdgeListOptions{Delimiter: ";", ParseTags: true})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(back.Vertices(), g.Vertices()) || !slices.Equal(back.Edges(), g.Edges()) {
		t.Errorf("round trip changed graph: %v %v", back.Vertices(), back.Edges())
	}
}

func TestEdgeListKeepsLookalikeNamesApart(t *testing.T) {
	g := graph.New()
	plain := g.AddVertex(graph.V("-a"))
	x := g.AddVertex(graph.V("x"))
	copied := g.AddVertex(graph.V("a").Tag(1))
	y := g.AddVertex(graph.V("y"))
	_, _ = g.AddEdge(plain, x)
	_, _ = g.AddEdge(copied, y)

	for _, parseTags := range []bool{false, true} {
		var buf bytes.Buffer
		if err := WriteEdgeList(g, &buf, DefaultEdgeListOptions()); err != nil {
			t.Fatal(err)
		}
		if got, want := buf.String(), "-a,x\n-a#2,y\n"; got != want {
			t.Errorf("WriteEdgeList = %q, want %q", got, want)
		}
		opts := DefaultEdgeListOptions()
		opts.ParseTags = parseTags
		back, _, err := ReadEdgeList(&buf, opts)
		if err != nil {
			t.Fatal(err)
		}
		if back.VertexCount() != 4 || back.EdgeCount() != 2 {
			t.Errorf("parseTags=%v: round trip has %d vertices, %d edges, want 4 and 2",
				parseTags, back.VertexCount(), back.EdgeCount())
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := graph.New()
	a := g.AddVertex(graph.V("a"))
	ca := g.AddVertex(graph.V("a").Tag(1))
	lit := g.AddVertex(graph.V("-a")) // a real name that looks like a copy
	g.AddVertex(graph.V("lonely"))
	_, _ = g.AddEdge(a, ca)
	_, _ = g.AddEdge(ca, lit)

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatal(err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !slices.Equal(back.Vertices(), g.Vertices()) {
		t.Errorf("vertices = %v, want %v", back.Vertices(), g.Vertices())
	}
	if !slices.Equal(back.Edges(), g.Edges()) {
		t.Errorf("edges = %v, want %v", back.Edges(), g.Edges())
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"nodes": [`},
		{"missing id", `{"nodes": [{"name": "a"}]}`},
		{"duplicate id", `{"nodes": [{"id": "a"}, {"id": "a"}]}`},
		{"duplicate vertex", `{"nodes": [{"id": "a"}, {"id": "x", "name": "a"}]}`},
		{"negative generation", `{"nodes": [{"id": "a", "generation": -1}]}`},
		{"unknown endpoint", `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`},
		{"self loop", `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "a"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !kerrors.Is(err, kerrors.ErrCodeInvalidFormat) {
				t.Errorf("error = %v, want INVALID_FORMAT", err)
			}
		})
	}
	_, err := ReadJSON(strings.NewReader(`{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "a"}]}`))
	if !errors.Is(err, graph.ErrSelfLoop) {
		t.Errorf("self loop error should wrap graph.ErrSelfLoop: %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"g.json":       FormatJSON,
		"g.JSON":       FormatJSON,
		"g.dot":        FormatDOT,
		"g.gv":         FormatDOT,
		"out.svg":      FormatSVG,
		"edges.csv":    FormatEdgeList,
		"edges.tsv":    FormatEdgeList,
		"no-extension": FormatEdgeList,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", path, got, want)
		}
	}

	if f, err := ParseFormat("TSV"); err != nil || f != FormatEdgeList {
		t.Errorf("ParseFormat(TSV) = %s, %v", f, err)
	}
	if _, err := ParseFormat("xml"); !kerrors.Is(err, kerrors.ErrCodeUnsupported) {
		t.Errorf("ParseFormat(xml) error = %v", err)
	}
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	g := graph.New()
	_ = g.AddEdgeByName("x", "y")
	_ = g.AddEdgeByName("y", "z")

	for _, name := range []string{"g.json", "g.csv"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(g, path, FormatFromPath(path), DefaultEdgeListOptions()); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
		back, stats, err := ReadFile(path, DefaultEdgeListOptions())
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		if back.EdgeCount() != 2 || stats.Edges != 2 {
			t.Errorf("%s: %d edges (stats %d), want 2", name, back.EdgeCount(), stats.Edges)
		}
	}

	tsv := filepath.Join(dir, "g.tsv")
	if err := os.WriteFile(tsv, []byte("p\tq\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if back, _, err := ReadFile(tsv, EdgeListOptions{}); err != nil || back.EdgeCount() != 1 {
		t.Errorf("tsv read: %v", err)
	}

	if _, _, err := ReadFile(filepath.Join(dir, "missing.csv"), DefaultEdgeListOptions()); !kerrors.Is(err, kerrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
	if err := WriteFile(g, filepath.Join(dir, "g.dot"), FormatDOT, DefaultEdgeListOptions()); !kerrors.Is(err, kerrors.ErrCodeUnsupported) {
		t.Errorf("WriteFile dot error = %v, want UNSUPPORTED", err)
	}
}
