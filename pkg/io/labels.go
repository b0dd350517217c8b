package io

import (
	"fmt"

	"github.com/matzehuels/kanon/pkg/graph"
)

// labels returns a distinct text label per vertex handle. Each label is the
// marker form of the vertex; a real name that already looks like a copy,
// e.g. "-a" next to the first copy of "a", gets a "#n" suffix.
func labels(g *graph.Graph) []string {
	vertices := g.Vertices()
	out := make([]string, len(vertices))
	used := make(map[string]bool, len(vertices))
	for h, v := range vertices {
		id := v.String()
		for i := 2; used[id]; i++ {
			id = fmt.Sprintf("%s#%d", v, i)
		}
		used[id] = true
		out[h] = id
	}
	return out
}
