// Package generate builds small synthetic graphs for demos and tests.
//
// Vertices are named "0".."n-1" and inserted in ascending order, so handle
// i is vertex "i". Randomized builders are deterministic for a fixed seed.
package generate

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/matzehuels/kanon/pkg/graph"
)

// Minimum vertex counts per topology.
const (
	MinPathNodes     = 2
	MinCycleNodes    = 3
	MinStarNodes     = 2
	MinCompleteNodes = 1
	MinRandomNodes   = 1
)

// Kinds accepted by [ByName].
const (
	KindPath     = "path"
	KindCycle    = "cycle"
	KindStar     = "star"
	KindComplete = "complete"
	KindRandom   = "random"
)

var (
	// ErrTooFewVertices is returned when n is below the topology minimum.
	ErrTooFewVertices = errors.New("too few vertices")
	// ErrInvalidProbability is returned when p is outside [0, 1].
	ErrInvalidProbability = errors.New("probability out of range")
	// ErrUnknownKind is returned by [ByName] for an unsupported topology.
	ErrUnknownKind = errors.New("unknown graph kind")
)

// Kinds lists the topologies [ByName] understands.
func Kinds() []string {
	return []string{KindPath, KindCycle, KindStar, KindComplete, KindRandom}
}

func vertices(n int) *graph.Graph {
	g := graph.New()
	for i := range n {
		g.AddVertex(graph.V(strconv.Itoa(i)))
	}
	return g
}

func check(method string, n, least int) error {
	if n < least {
		return fmt.Errorf("%s: n=%d < min=%d: %w", method, n, least, ErrTooFewVertices)
	}
	return nil
}

// Path returns the path 0-1-...-(n-1).
func Path(n int) (*graph.Graph, error) {
	if err := check(KindPath, n, MinPathNodes); err != nil {
		return nil, err
	}
	g := vertices(n)
	for i := 1; i < n; i++ {
		_, _ = g.AddEdge(i-1, i)
	}
	return g, nil
}

// Cycle returns the ring 0-1-...-(n-1)-0.
func Cycle(n int) (*graph.Graph, error) {
	if err := check(KindCycle, n, MinCycleNodes); err != nil {
		return nil, err
	}
	g, _ := Path(n)
	_, _ = g.AddEdge(n-1, 0)
	return g, nil
}

// Star returns vertex 0 joined to n-1 leaves.
func Star(n int) (*graph.Graph, error) {
	if err := check(KindStar, n, MinStarNodes); err != nil {
		return nil, err
	}
	g := vertices(n)
	for i := 1; i < n; i++ {
		_, _ = g.AddEdge(0, i)
	}
	return g, nil
}

// Complete returns K_n.
func Complete(n int) (*graph.Graph, error) {
	if err := check(KindComplete, n, MinCompleteNodes); err != nil {
		return nil, err
	}
	g := vertices(n)
	for i := range n {
		for j := i + 1; j < n; j++ {
			_, _ = g.AddEdge(i, j)
		}
	}
	return g, nil
}

// Random returns an Erdős–Rényi graph G(n, p): each unordered pair is an
// edge independently with probability p. Pairs are tried in ascending order
// so a seed always yields the same graph.
func Random(n int, p float64, seed uint64) (*graph.Graph, error) {
	if err := check(KindRandom, n, MinRandomNodes); err != nil {
		return nil, err
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%s: p=%.6f not in [0,1]: %w", KindRandom, p, ErrInvalidProbability)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	g := vertices(n)
	for i := range n {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				_, _ = g.AddEdge(i, j)
			}
		}
	}
	return g, nil
}

// ByName dispatches to the builder for kind. p and seed are used by
// [KindRandom] only.
func ByName(kind string, n int, p float64, seed uint64) (*graph.Graph, error) {
	switch kind {
	case KindPath:
		return Path(n)
	case KindCycle:
		return Cycle(n)
	case KindStar:
		return Star(n)
	case KindComplete:
		return Complete(n)
	case KindRandom:
		return Random(n, p, seed)
	}
	return nil, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
}
