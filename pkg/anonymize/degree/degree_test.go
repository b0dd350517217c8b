package degree

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/kanon/pkg/anonymize"
	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/graph"
	"github.com/matzehuels/kanon/pkg/observability"
)

type recordingHooks struct {
	observability.NoopAnonymizeHooks
	mu       sync.Mutex
	attempts int
	causes   []string
	noise    int
	done     int
}

func (h *recordingHooks) OnAttempt(_ context.Context, _ string, attempt int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attempts = attempt
}

func (h *recordingHooks) OnRealizationFailure(_ context.Context, _ string, cause string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.causes = append(h.causes, cause)
}

func (h *recordingHooks) OnNoise(_ context.Context, _ string, edges int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.noise += edges
}

func (h *recordingHooks) OnComplete(context.Context, string, int, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.done++
}

func withHooks(t *testing.T) *recordingHooks {
	t.Helper()
	h := &recordingHooks{}
	observability.SetAnonymizeHooks(h)
	t.Cleanup(observability.Reset)
	return h
}

func allDegrees(g *graph.Graph) []int {
	out := make([]int, g.VertexCount())
	for h := range out {
		out[h] = g.Degree(h)
	}
	return out
}

func TestAnonymizePathIsUnchanged(t *testing.T) {
	hooks := withHooks(t)
	g := path5(t)

	got, err := New(Options{}).Anonymize(context.Background(), g, 2)
	if err != nil {
		t.Fatalf("Anonymize: %v", err)
	}
	if got != g {
		t.Error("Anonymize should return the graph it was given")
	}
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount = %d, want 4", g.EdgeCount())
	}
	if hooks.attempts != 1 || len(hooks.causes) != 0 || hooks.done != 1 {
		t.Errorf("hooks = %+v, want a single clean attempt", hooks)
	}
}

func TestAnonymizeStarRetriesWithNoise(t *testing.T) {
	hooks := withHooks(t)
	g := star3(t)
	before := allDegrees(g)

	if _, err := New(Options{Seed: 7}).Anonymize(context.Background(), g, 2); err != nil {
		t.Fatalf("Anonymize: %v", err)
	}
	if len(hooks.causes) == 0 || hooks.causes[0] != string(CauseNoCandidate) {
		t.Fatalf("first failure = %v, want %q", hooks.causes, CauseNoCandidate)
	}
	if hooks.attempts < 2 {
		t.Errorf("attempts = %d, want a retry", hooks.attempts)
	}
	if !anonymize.IsKDegreeAnonymous(g, 2) {
		t.Errorf("degrees %v are not 2-anonymous", allDegrees(g))
	}
	for h, d := range before {
		if g.Degree(h) < d {
			t.Errorf("degree of %v dropped from %d to %d", g.Vertex(h), d, g.Degree(h))
		}
	}
}

func TestAnonymizeOddSumTriggersRetry(t *testing.T) {
	hooks := withHooks(t)
	// degrees a3 b2 c2 d1 e0 anonymize to 3 3 3 1 1: delta sum 3
	g := build(t, [2]string{"a", "b"}, [2]string{"a", "c"}, [2]string{"a", "d"}, [2]string{"b", "c"})
	g.AddVertex(graph.V("e"))

	if _, err := New(Options{}).Anonymize(context.Background(), g, 2); err != nil {
		t.Fatalf("Anonymize: %v", err)
	}
	if len(hooks.causes) == 0 || hooks.causes[0] != string(CauseOddSum) {
		t.Fatalf("first failure = %v, want %q", hooks.causes, CauseOddSum)
	}
	if !anonymize.IsKDegreeAnonymous(g, 2) {
		t.Errorf("degrees %v are not 2-anonymous", allDegrees(g))
	}
}

func TestAnonymizeAttemptsExhausted(t *testing.T) {
	withHooks(t)
	_, err := New(Options{MaxAttempts: 1}).Anonymize(context.Background(), star3(t), 2)
	if !kerrors.Is(err, kerrors.ErrCodeAttemptsExhausted) {
		t.Fatalf("error = %v, want ATTEMPTS_EXHAUSTED", err)
	}
	var rerr *RealizationError
	if !errors.As(err, &rerr) || rerr.Cause != CauseNoCandidate {
		t.Errorf("wrapped cause = %v, want %q", rerr, CauseNoCandidate)
	}
}

func TestAnonymizeInvalidInput(t *testing.T) {
	a := New(Options{})
	if _, err := a.Anonymize(context.Background(), path5(t), 0); !errors.Is(err, anonymize.ErrInvalidK) {
		t.Errorf("k=0 error = %v, want ErrInvalidK", err)
	}
	if _, err := a.Anonymize(context.Background(), graph.New(), 2); !errors.Is(err, anonymize.ErrEmptyGraph) {
		t.Errorf("empty graph error = %v, want ErrEmptyGraph", err)
	}
}

func TestAnonymizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := star3(t)
	if _, err := New(Options{Unbounded: true}).Anonymize(ctx, g, 2); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if g.EdgeCount() != 3 {
		t.Error("cancelled run should not touch the graph")
	}
}

func TestAnonymizeDeterministicForSeed(t *testing.T) {
	a, b := star3(t), star3(t)
	if _, err := New(Options{Seed: 99}).Anonymize(context.Background(), a, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := New(Options{Seed: 99}).Anonymize(context.Background(), b, 2); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Edges(), b.Edges()) {
		t.Errorf("same seed produced %v and %v", a.Edges(), b.Edges())
	}
}

func TestAnonymizeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40
	properties := gopter.NewProperties(parameters)

	const n = 10
	randomGraph := func(pairs []int) *graph.Graph {
		g := graph.New()
		for i := range n {
			g.AddVertex(graph.V(string(rune('a' + i))))
		}
		for i := 0; i+1 < len(pairs); i += 2 {
			_, _ = g.AddEdge(pairs[i], pairs[i+1])
		}
		return g
	}

	properties.Property("result is k-degree anonymous", prop.ForAll(
		func(pairs []int, k int) bool {
			g := randomGraph(pairs)
			if _, err := New(Options{}).Anonymize(context.Background(), g, k); err != nil {
				return false
			}
			return anonymize.IsKDegreeAnonymous(g, k)
		},
		gen.SliceOf(gen.IntRange(0, n-1)),
		gen.IntRange(1, 4),
	))

	properties.Property("degrees never decrease and graph stays simple", prop.ForAll(
		func(pairs []int, k int) bool {
			g := randomGraph(pairs)
			before := allDegrees(g)
			if _, err := New(Options{}).Anonymize(context.Background(), g, k); err != nil {
				return false
			}
			for h, d := range before {
				if g.Degree(h) < d {
					return false
				}
			}
			return g.Validate() == nil
		},
		gen.SliceOf(gen.IntRange(0, n-1)),
		gen.IntRange(1, 4),
	))

	properties.TestingRun(t)
}

func TestAnonymizeRegularGraphIsNoop(t *testing.T) {
	cycle := build(t, [2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "d"},
		[2]string{"d", "e"}, [2]string{"e", "f"}, [2]string{"f", "a"})
	complete := build(t, [2]string{"a", "b"}, [2]string{"a", "c"}, [2]string{"a", "d"},
		[2]string{"b", "c"}, [2]string{"b", "d"}, [2]string{"c", "d"})

	tests := []struct {
		name string
		g    *graph.Graph
		k    int
	}{
		{"cycle k=3", cycle, 3},
		{"cycle k=6", cycle, 6},
		{"complete k=2", complete, 2},
		{"complete k=4", complete, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges := tt.g.Edges()
			if _, err := New(Options{}).Anonymize(context.Background(), tt.g, tt.k); err != nil {
				t.Fatalf("Anonymize: %v", err)
			}
			if !slices.Equal(tt.g.Edges(), edges) {
				t.Errorf("edges changed from %v to %v", edges, tt.g.Edges())
			}
		})
	}
}

func TestAddNoiseCountsNewEdges(t *testing.T) {
	g := graph.New()
	g.AddVertex(graph.V("a"))

	a := New(Options{NoiseAddition: 50, Seed: 3})
	if added, err := a.addNoise(g); err != nil || added != 0 {
		t.Fatalf("addNoise on one vertex = %d, %v; want 0, nil", added, err)
	}

	g.AddVertex(graph.V("b"))
	total := 0
	for range 5 {
		added, err := a.addNoise(g)
		if err != nil {
			t.Fatalf("addNoise: %v", err)
		}
		total += added
	}
	if total != g.EdgeCount() || total > 1 {
		t.Errorf("addNoise added %d edges, graph has %d", total, g.EdgeCount())
	}
}
