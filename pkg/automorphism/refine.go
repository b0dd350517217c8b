package automorphism

import (
	"slices"

	"github.com/matzehuels/kanon/pkg/graph"
)

// adjacency snapshots the sorted neighbor lists of g.
func adjacency(g *graph.Graph) [][]int {
	adj := make([][]int, g.VertexCount())
	for h := range adj {
		adj[h] = g.Neighbors(h)
	}
	return adj
}

type signature struct {
	side   int
	vertex int
	key    []int
}

// refine splits the colorings in place until no cell can be split further.
// All colorings share one color space: after refine, equal colors on
// different colorings denote cells with the same refinement history.
//
// It returns false when the colorings stop agreeing on cell sizes, which
// means no automorphism maps one onto the other.
func refine(adj [][]int, colorings ...[]int) bool {
	n := len(adj)
	colors := distinct(colorings)
	sigs := make([]signature, 0, n*len(colorings))
	for {
		sigs = sigs[:0]
		for side, c := range colorings {
			for v := range n {
				key := make([]int, 1, len(adj[v])+1)
				key[0] = c[v]
				for _, u := range adj[v] {
					key = append(key, c[u])
				}
				slices.Sort(key[1:])
				sigs = append(sigs, signature{side: side, vertex: v, key: key})
			}
		}
		slices.SortStableFunc(sigs, func(a, b signature) int { return slices.Compare(a.key, b.key) })

		next := -1
		for i, s := range sigs {
			if i == 0 || slices.Compare(sigs[i-1].key, s.key) != 0 {
				next++
			}
			colorings[s.side][s.vertex] = next
		}
		next++

		if !balanced(colorings, next) {
			return false
		}
		if next == colors {
			return true
		}
		colors = next
	}
}

func distinct(colorings [][]int) int {
	seen := make(map[int]struct{})
	for _, c := range colorings {
		for _, col := range c {
			seen[col] = struct{}{}
		}
	}
	return len(seen)
}

// balanced reports whether every coloring has the same number of vertices
// of each color in [0, colors).
func balanced(colorings [][]int, colors int) bool {
	if len(colorings) < 2 {
		return true
	}
	want := cellSizes(colorings[0], colors)
	for _, c := range colorings[1:] {
		if !slices.Equal(want, cellSizes(c, colors)) {
			return false
		}
	}
	return true
}

func cellSizes(c []int, colors int) []int {
	sizes := make([]int, colors)
	for _, col := range c {
		sizes[col]++
	}
	return sizes
}

// cells groups vertices by color, ordered by color. Members are ascending.
func cells(c []int) [][]int {
	colors := 0
	for _, col := range c {
		colors = max(colors, col+1)
	}
	out := make([][]int, colors)
	for v, col := range c {
		out[col] = append(out[col], v)
	}
	return out
}
