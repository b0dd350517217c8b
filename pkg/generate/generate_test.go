package generate

import (
	"errors"
	"slices"
	"testing"
)

func TestBuilders(t *testing.T) {
	tests := []struct {
		kind     string
		n        int
		vertices int
		edges    int
	}{
		{KindPath, 5, 5, 4},
		{KindCycle, 6, 6, 6},
		{KindStar, 4, 4, 3},
		{KindComplete, 5, 5, 10},
		{KindComplete, 1, 1, 0},
		{KindRandom, 6, 6, 0}, // p = 0 below
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			g, err := ByName(tt.kind, tt.n, 0, 1)
			if err != nil {
				t.Fatalf("ByName: %v", err)
			}
			if g.VertexCount() != tt.vertices || g.EdgeCount() != tt.edges {
				t.Errorf("got %d vertices, %d edges; want %d, %d",
					g.VertexCount(), g.EdgeCount(), tt.vertices, tt.edges)
			}
			if err := g.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestRandom(t *testing.T) {
	full, err := Random(6, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if full.EdgeCount() != 15 {
		t.Errorf("p=1 gives %d edges, want 15", full.EdgeCount())
	}

	a, _ := Random(20, 0.3, 42)
	b, _ := Random(20, 0.3, 42)
	if !slices.Equal(a.Edges(), b.Edges()) {
		t.Error("same seed should give the same graph")
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"path", func() error { _, err := Path(1); return err }(), ErrTooFewVertices},
		{"cycle", func() error { _, err := Cycle(2); return err }(), ErrTooFewVertices},
		{"star", func() error { _, err := Star(1); return err }(), ErrTooFewVertices},
		{"complete", func() error { _, err := Complete(0); return err }(), ErrTooFewVertices},
		{"random n", func() error { _, err := Random(0, 0.5, 1); return err }(), ErrTooFewVertices},
		{"random p", func() error { _, err := Random(3, 1.5, 1); return err }(), ErrInvalidProbability},
		{"kind", func() error { _, err := ByName("wheel", 5, 0, 1); return err }(), ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Errorf("error = %v, want %v", tt.err, tt.want)
			}
		})
	}
}
