package orbit_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/kanon/pkg/anonymize/orbit"
	"github.com/matzehuels/kanon/pkg/automorphism"
	"github.com/matzehuels/kanon/pkg/graph"
)

func randomGraph(n int, pairs []int) *graph.Graph {
	g := graph.New()
	for i := range n {
		g.AddVertex(graph.V(strconv.Itoa(i)))
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		_, _ = g.AddEdge(pairs[i], pairs[i+1])
	}
	return g
}

func TestAnonymizeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	const n = 7
	ctx := context.Background()

	properties.Property("under-sized orbits grow to k and copies mirror their source", prop.ForAll(
		func(pairs []int, k int) bool {
			orig := randomGraph(n, pairs)
			orbits, err := automorphism.New(automorphism.Options{}).Orbits(ctx, orig)
			if err != nil {
				return false
			}
			g := orig.Clone()
			engine := automorphism.New(automorphism.Options{})
			if _, err := orbit.New(engine, orbit.Options{}).Anonymize(ctx, g, k); err != nil {
				return false
			}

			orbitOf := make(map[int]int, n)
			for i, o := range orbits {
				for _, h := range o {
					orbitOf[h] = i
				}
			}

			// Every original edge survives.
			for _, e := range orig.Edges() {
				if !g.HasEdge(e.U, e.V) {
					return false
				}
			}

			// Originals and their copies make every orbit at least k strong.
			for _, o := range orbits {
				if len(o) >= k {
					continue
				}
				names := make(map[string]bool, len(o))
				for _, h := range o {
					names[orig.Vertex(h).Name] = true
				}
				size := 0
				for _, v := range g.Vertices() {
					if names[v.Name] {
						size++
					}
				}
				if size < k {
					return false
				}
			}

			// A copy keeps every edge of its source: in-orbit neighbors
			// through their copy of the same generation, others directly.
			for c, v := range g.Vertices() {
				if !v.IsTagged() {
					continue
				}
				s, ok := orig.Lookup(graph.V(v.Name))
				if !ok {
					return false
				}
				for _, nb := range orig.Neighbors(s) {
					target := nb
					if orbitOf[nb] == orbitOf[s] {
						mirror, ok := g.Lookup(orig.Vertex(nb).Tag(v.Generation))
						if !ok {
							return false
						}
						target = mirror
					}
					if !g.HasEdge(c, target) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, n-1)),
		gen.IntRange(2, 3),
	))

	properties.TestingRun(t)
}
