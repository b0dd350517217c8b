package automorphism

import (
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kanon/pkg/anonymize/orbit"
	"github.com/matzehuels/kanon/pkg/graph"
	"github.com/matzehuels/kanon/pkg/observability"
)

// EngineName identifies the orbit algorithm in cache keys.
const EngineName = "refine-individualize/v1"

// DefaultNodeBudget bounds the search nodes spent on a single vertex pair.
const DefaultNodeBudget = 20000

// Options configures an [Engine].
type Options struct {
	NodeBudget int
	Logger     *log.Logger
}

// Engine computes exact orbits within the search budget.
type Engine struct {
	budget int
	logger *log.Logger
}

// New returns an Engine.
func New(opts Options) *Engine {
	if opts.NodeBudget <= 0 {
		opts.NodeBudget = DefaultNodeBudget
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{budget: opts.NodeBudget, logger: opts.Logger}
}

// Name returns [EngineName] qualified by the node budget. A smaller budget
// can split orbits, so results from different budgets must not share keys.
func (e *Engine) Name() string { return EngineName + "/budget=" + strconv.Itoa(e.budget) }

// Orbits returns the automorphism orbits of g. Every vertex appears in
// exactly one orbit, singletons included. Orbits are ordered by their
// smallest member and list members in ascending order.
func (e *Engine) Orbits(ctx context.Context, g *graph.Graph) ([][]int, error) {
	start := time.Now()
	n := g.VertexCount()
	if n == 0 {
		return [][]int{}, nil
	}

	adj := adjacency(g)
	base := make([]int, n)
	refine(adj, base)

	uf := newUnionFind(n)
	s := &searcher{ctx: ctx, adj: adj, budget: e.budget}
	exhausted := 0
	for _, cell := range cells(base) {
		if len(cell) < 2 {
			continue
		}
		reps := []int{cell[0]}
		for _, v := range cell[1:] {
			if joined(uf, reps, v) {
				continue
			}
			matched := false
			for _, r := range reps {
				perm, err := s.mapping(base, r, v)
				if errors.Is(err, errBudget) {
					exhausted++
					continue
				}
				if err != nil {
					return nil, err
				}
				if perm != nil {
					for i, p := range perm {
						uf.union(i, p)
					}
					matched = true
					break
				}
			}
			if !matched {
				reps = append(reps, v)
			}
		}
	}
	if exhausted > 0 {
		e.logger.Warn("orbit search budget exhausted, orbits may be split", "pairs", exhausted, "budget", e.budget)
	}

	orbits := uf.sets()
	elapsed := time.Since(start)
	e.logger.Debug("orbits computed", "vertices", n, "orbits", len(orbits), "took", elapsed)
	observability.Engine().OnOrbitsComputed(ctx, n, len(orbits), elapsed)
	return orbits, nil
}

func joined(uf *unionFind, reps []int, v int) bool {
	root := uf.find(v)
	for _, r := range reps {
		if uf.find(r) == root {
			return true
		}
	}
	return false
}

var _ orbit.Engine = (*Engine)(nil)
