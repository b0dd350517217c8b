package orbit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/kanon/pkg/anonymize"
	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/graph"
)

// fixed returns an engine that always reports the given orbits.
func fixed(orbits [][]int) Engine {
	return EngineFunc(func(context.Context, *graph.Graph) ([][]int, error) { return orbits, nil })
}

func build(t *testing.T, edges ...[2]string) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, e := range edges {
		require.NoError(t, g.AddEdgeByName(e[0], e[1]))
	}
	return g
}

func handle(t *testing.T, g *graph.Graph, name string, gen int) int {
	t.Helper()
	h, ok := g.Lookup(graph.Vertex{Name: name, Generation: gen})
	require.Truef(t, ok, "vertex %s/%d missing", name, gen)
	return h
}

func hasEdge(t *testing.T, g *graph.Graph, a graph.Vertex, b graph.Vertex) bool {
	t.Helper()
	ha, ok := g.Lookup(a)
	require.Truef(t, ok, "vertex %v missing", a)
	hb, ok := g.Lookup(b)
	require.Truef(t, ok, "vertex %v missing", b)
	return g.HasEdge(ha, hb)
}

func TestAnonymizeNilOrbitsLeavesGraph(t *testing.T) {
	g := build(t, [2]string{"a", "b"}, [2]string{"b", "c"})
	got, err := New(fixed(nil), Options{}).Anonymize(context.Background(), g, 3)
	require.NoError(t, err)
	assert.Same(t, g, got)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, g.EdgeCount())
}

func TestAnonymizePathBecomesCycle(t *testing.T) {
	g := build(t, [2]string{"a", "b"}, [2]string{"b", "c"})
	orbits := [][]int{{0, 2}, {1}}

	_, err := New(fixed(orbits), Options{}).Anonymize(context.Background(), g, 2)
	require.NoError(t, err)

	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 4, g.EdgeCount())
	copyB := handle(t, g, "b", 1)
	assert.True(t, g.HasEdge(copyB, 0), "copy of b mirrors edge to a")
	assert.True(t, g.HasEdge(copyB, 2), "copy of b mirrors edge to c")
	for h := range g.VertexCount() {
		assert.Equal(t, 2, g.Degree(h), "vertex %v", g.Vertex(h))
	}
	assert.Equal(t, "-b", g.Vertex(copyB).String())
}

func TestAnonymizeIntraOrbitEdgesFollowCopies(t *testing.T) {
	g := build(t, [2]string{"a", "b"})

	_, err := New(fixed([][]int{{0, 1}}), Options{}).Anonymize(context.Background(), g, 3)
	require.NoError(t, err)

	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.True(t, hasEdge(t, g, graph.Vertex{Name: "a", Generation: 1}, graph.Vertex{Name: "b", Generation: 1}))
	assert.False(t, hasEdge(t, g, graph.V("a"), graph.Vertex{Name: "b", Generation: 1}))
	require.NoError(t, g.Validate())
}

func TestAnonymizeSeveralGenerations(t *testing.T) {
	// star h-x, h-y: orbits {h} and {x, y}
	g := build(t, [2]string{"h", "x"}, [2]string{"h", "y"})

	_, err := New(fixed([][]int{{0}, {1, 2}}), Options{}).Anonymize(context.Background(), g, 3)
	require.NoError(t, err)

	// h grows to h, -h, --h; x and y gain one copy each
	assert.Equal(t, 7, g.VertexCount())
	for gen := 1; gen <= 2; gen++ {
		for _, leaf := range []string{"x", "y"} {
			assert.True(t, hasEdge(t, g, graph.Vertex{Name: "h", Generation: gen}, graph.V(leaf)))
		}
	}
	// copies of x mirror every hub neighbor x had at copy time
	for _, hub := range []graph.Vertex{graph.V("h"), {Name: "h", Generation: 1}, {Name: "h", Generation: 2}} {
		assert.True(t, hasEdge(t, g, graph.Vertex{Name: "x", Generation: 1}, hub))
		assert.True(t, hasEdge(t, g, graph.Vertex{Name: "y", Generation: 1}, hub))
	}
	_, exists := g.Lookup(graph.Vertex{Name: "x", Generation: 2})
	assert.False(t, exists, "x orbit reached k after one generation")
}

func TestAnonymizeSkipsLargeAndEmptyOrbits(t *testing.T) {
	g := build(t, [2]string{"a", "b"}, [2]string{"b", "c"})
	_, err := New(fixed([][]int{{0, 2}, {}, {1}}), Options{}).Anonymize(context.Background(), g, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, g.VertexCount())
}

func TestAnonymizeCopiesOfCopies(t *testing.T) {
	g := graph.New()
	a := g.AddVertex(graph.Vertex{Name: "a", Generation: 1})
	b := g.AddVertex(graph.V("b"))
	_, err := g.AddEdge(a, b)
	require.NoError(t, err)

	_, err = New(fixed([][]int{{a}, {b}}), Options{}).Anonymize(context.Background(), g, 2)
	require.NoError(t, err)

	assert.True(t, hasEdge(t, g, graph.Vertex{Name: "a", Generation: 2}, graph.V("b")),
		"an orbit without originals copies its tagged members")
	assert.True(t, hasEdge(t, g, graph.Vertex{Name: "b", Generation: 1}, graph.Vertex{Name: "a", Generation: 1}))
}

func TestAnonymizeErrors(t *testing.T) {
	g := build(t, [2]string{"a", "b"})

	_, err := New(fixed(nil), Options{}).Anonymize(context.Background(), g, 0)
	assert.ErrorIs(t, err, anonymize.ErrInvalidK)

	boom := errors.New("boom")
	failing := EngineFunc(func(context.Context, *graph.Graph) ([][]int, error) { return nil, boom })
	_, err = New(failing, Options{}).Anonymize(context.Background(), g, 2)
	assert.ErrorIs(t, err, boom)
	assert.True(t, kerrors.Is(err, kerrors.ErrCodeInternal))

	_, err = New(fixed([][]int{{0, 7}}), Options{}).Anonymize(context.Background(), g, 3)
	assert.True(t, kerrors.Is(err, kerrors.ErrCodeInternal))

	_, err = New(nil, Options{}).Anonymize(context.Background(), g, 2)
	assert.True(t, kerrors.Is(err, kerrors.ErrCodeInvalidConfig))
}

func TestAnonymizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := build(t, [2]string{"a", "b"}, [2]string{"b", "c"})
	_, err := New(fixed([][]int{{0, 2}, {1}}), Options{}).Anonymize(ctx, g, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, g.VertexCount())
}

func TestCopyOrbitReturnsNewCopies(t *testing.T) {
	g := build(t, [2]string{"a", "b"}, [2]string{"b", "c"})
	a, c := handle(t, g, "a", 0), handle(t, g, "c", 0)

	added, err := copyOrbit(g, []int{a, c}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{handle(t, g, "a", 1), handle(t, g, "c", 1)}, added)
	assert.True(t, hasEdge(t, g, graph.V("a").Tag(1), graph.V("b")))
	assert.True(t, hasEdge(t, g, graph.V("c").Tag(1), graph.V("b")))
	assert.Equal(t, 4, g.EdgeCount())
}
