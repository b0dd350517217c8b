package io

import (
	"encoding/json"
	"fmt"
	"io"

	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/graph"
)

type document struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Generation int    `json:"generation,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ReadJSON decodes a JSON graph from r.
//
// Errors carry code INVALID_FORMAT and name the offending node or edge:
// malformed JSON, empty or duplicate ids, negative generations, edges to
// unknown ids and self-loops. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "decode graph")
	}

	g := graph.New()
	ids := make(map[string]int, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n.ID == "" {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "node without id")
		}
		if _, dup := ids[n.ID]; dup {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "duplicate node %s", n.ID)
		}
		if n.Generation < 0 {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "node %s: negative generation %d", n.ID, n.Generation)
		}
		v := graph.Vertex{Name: n.Name, Generation: n.Generation}
		if v.Name == "" {
			v.Name = n.ID
		}
		if _, exists := g.Lookup(v); exists {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "node %s: vertex %s listed twice", n.ID, v)
		}
		ids[n.ID] = g.AddVertex(v)
	}

	for _, e := range doc.Edges {
		u, ok := ids[e.From]
		if !ok {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "edge %s-%s: unknown node %s", e.From, e.To, e.From)
		}
		v, ok := ids[e.To]
		if !ok {
			return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "edge %s-%s: unknown node %s", e.From, e.To, e.To)
		}
		if _, err := g.AddEdge(u, v); err != nil {
			return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "edge %s-%s", e.From, e.To)
		}
	}
	return g, nil
}

// WriteJSON encodes g as indented JSON. Node ids are the marker form of each
// vertex, see [graph.Vertex.String].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	vertices := g.Vertices()
	out := document{
		Nodes: make([]node, len(vertices)),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	ids := labels(g)
	for h, v := range vertices {
		id := ids[h]
		nd := node{ID: id}
		if v.IsTagged() || id != v.Name {
			nd.Name = v.Name
			nd.Generation = v.Generation
		}
		out.Nodes[h] = nd
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{From: ids[e.U], To: ids[e.V]})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
