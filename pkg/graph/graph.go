package graph

import (
	"cmp"
	"errors"
	"slices"
	"strings"
)

var (
	// ErrUnknownVertex is returned by [Graph.AddEdge] when a handle does not
	// refer to a vertex of the graph.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same vertex. Graphs are simple: self-loops are never stored.
	ErrSelfLoop = errors.New("self-loop not allowed")

	// ErrEmptyName is returned by [Graph.AddEdgeByName] when a vertex name is
	// empty.
	ErrEmptyName = errors.New("vertex name must not be empty")

	// ErrInconsistentAdjacency is returned by [Graph.Validate] when the
	// adjacency sets and the edge set disagree. This indicates corruption.
	ErrInconsistentAdjacency = errors.New("adjacency inconsistent with edge set")
)

// TagMarker is the character prepended once per copy generation when a
// vertex is rendered as a string.
const TagMarker = "-"

// Vertex is the immutable identity of a graph vertex.
//
// Generation 0 denotes an original vertex. A vertex with Generation g > 0 is
// the g-th generation copy of the original vertex Name, created by orbit
// copying. Two vertices are equal when both fields are equal.
type Vertex struct {
	Name       string
	Generation int
}

// V returns the original (generation 0) vertex with the given name.
func V(name string) Vertex { return Vertex{Name: name} }

// IsTagged reports whether the vertex is a copy rather than an original.
func (v Vertex) IsTagged() bool { return v.Generation > 0 }

// Tag returns the copy of v that lives depth generations further down.
func (v Vertex) Tag(depth int) Vertex {
	return Vertex{Name: v.Name, Generation: v.Generation + depth}
}

// String renders the vertex with one [TagMarker] per generation, e.g. "--a"
// for the second generation copy of "a".
func (v Vertex) String() string {
	if v.Generation <= 0 {
		return v.Name
	}
	return strings.Repeat(TagMarker, v.Generation) + v.Name
}

// ParseVertex is the inverse of [Vertex.String]: every leading [TagMarker]
// counts as one generation. A name made only of markers is kept as is.
func ParseVertex(s string) Vertex {
	name := strings.TrimLeft(s, TagMarker)
	if name == "" {
		return Vertex{Name: s}
	}
	return Vertex{Name: name, Generation: len(s) - len(name)}
}

// Edge is an undirected edge between two vertex handles, normalized so that
// U < V.
type Edge struct {
	U int
	V int
}

// NewEdge returns the normalized edge between a and b.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{U: a, V: b}
}

// Graph is a simple undirected graph with stable integer vertex handles.
//
// Vertices are stored in an arena in insertion order; the handle of a vertex
// is its index in [Graph.Vertices]. Handles never change because the graph
// only grows: there are no removal operations.
//
// The zero value is not usable - use New to create a graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	vertices []Vertex
	index    map[Vertex]int
	adj      []map[int]struct{}
	edges    map[Edge]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[Vertex]int),
		edges: make(map[Edge]struct{}),
	}
}

// AddVertex inserts v and returns its handle. Adding a vertex that already
// exists is a no-op returning the existing handle.
func (g *Graph) AddVertex(v Vertex) int {
	if h, ok := g.index[v]; ok {
		return h
	}
	h := len(g.vertices)
	g.vertices = append(g.vertices, v)
	g.adj = append(g.adj, make(map[int]struct{}))
	g.index[v] = h
	return h
}

// AddEdge connects the vertices with handles u and v. It reports whether a
// new edge was created; adding an existing edge is a no-op returning false.
//
// Returns ErrUnknownVertex if either handle is out of range, or ErrSelfLoop
// if u == v.
func (g *Graph) AddEdge(u, v int) (bool, error) {
	if !g.valid(u) || !g.valid(v) {
		return false, ErrUnknownVertex
	}
	if u == v {
		return false, ErrSelfLoop
	}
	e := NewEdge(u, v)
	if _, exists := g.edges[e]; exists {
		return false, nil
	}
	g.edges[e] = struct{}{}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	return true, nil
}

// AddEdgeByName adds the original vertices a and b (if missing) and the edge
// between them. This is the entry point used by loaders.
func (g *Graph) AddEdgeByName(a, b string) error {
	if a == "" || b == "" {
		return ErrEmptyName
	}
	_, err := g.AddEdge(g.AddVertex(V(a)), g.AddVertex(V(b)))
	return err
}

// Vertices returns a snapshot of all vertices in handle order.
// Modifying the returned slice does not affect the graph.
func (g *Graph) Vertices() []Vertex { return slices.Clone(g.vertices) }

// Vertex returns the vertex with handle h. It panics if h is out of range.
func (g *Graph) Vertex(h int) Vertex { return g.vertices[h] }

// Lookup returns the handle of v and true, or -1 and false if v is not in
// the graph.
func (g *Graph) Lookup(v Vertex) (int, bool) {
	h, ok := g.index[v]
	if !ok {
		return -1, false
	}
	return h, true
}

// Neighbors returns the handles adjacent to h in ascending order.
// Returns nil for an unknown handle.
func (g *Graph) Neighbors(h int) []int {
	if !g.valid(h) {
		return nil
	}
	out := make([]int, 0, len(g.adj[h]))
	for n := range g.adj[h] {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	if !g.valid(u) || !g.valid(v) {
		return false
	}
	_, ok := g.adj[u][v]
	return ok
}

// Degree returns the number of neighbors of h, or 0 for an unknown handle.
func (g *Graph) Degree(h int) int {
	if !g.valid(h) {
		return 0
	}
	return len(g.adj[h])
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edges returns all edges sorted by (U, V).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for e := range g.edges {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Edge) int {
		if c := cmp.Compare(a.U, b.U); c != 0 {
			return c
		}
		return cmp.Compare(a.V, b.V)
	})
	return out
}

// Clone returns a deep copy of the graph. Handles are preserved.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		vertices: slices.Clone(g.vertices),
		index:    make(map[Vertex]int, len(g.index)),
		adj:      make([]map[int]struct{}, len(g.adj)),
		edges:    make(map[Edge]struct{}, len(g.edges)),
	}
	for v, h := range g.index {
		c.index[v] = h
	}
	for h, ns := range g.adj {
		c.adj[h] = make(map[int]struct{}, len(ns))
		for n := range ns {
			c.adj[h][n] = struct{}{}
		}
	}
	for e := range g.edges {
		c.edges[e] = struct{}{}
	}
	return c
}

// Validate checks the structural invariants of the graph: no self-loops,
// every edge is present in both adjacency sets, and every adjacency entry is
// backed by an edge. Returns ErrSelfLoop or ErrInconsistentAdjacency.
func (g *Graph) Validate() error {
	half := 0
	for h, ns := range g.adj {
		for n := range ns {
			if n == h {
				return ErrSelfLoop
			}
			if _, ok := g.edges[NewEdge(h, n)]; !ok {
				return ErrInconsistentAdjacency
			}
			half++
		}
	}
	if half != 2*len(g.edges) {
		return ErrInconsistentAdjacency
	}
	for e := range g.edges {
		if e.U == e.V {
			return ErrSelfLoop
		}
		if !g.valid(e.U) || !g.valid(e.V) {
			return ErrInconsistentAdjacency
		}
	}
	return nil
}

func (g *Graph) valid(h int) bool { return h >= 0 && h < len(g.vertices) }
