package automorphism

import (
	"context"
	"errors"
	"slices"
)

var errBudget = errors.New("search budget exhausted")

// searcher looks for automorphisms by individualization and refinement.
type searcher struct {
	ctx    context.Context
	adj    [][]int
	budget int
	nodes  int
}

// mapping returns an automorphism of the graph that maps u to v and agrees
// with the equitable coloring base, or nil if there is none.
func (s *searcher) mapping(base []int, u, v int) ([]int, error) {
	s.nodes = 0
	return s.extend(base, base, u, v)
}

// extend individualizes x in a and y in b and searches below that node.
func (s *searcher) extend(a, b []int, x, y int) ([]int, error) {
	s.nodes++
	if s.nodes > s.budget {
		return nil, errBudget
	}
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}

	a, b = slices.Clone(a), slices.Clone(b)
	fresh := slices.Max(a) + 1
	a[x], b[y] = fresh, fresh
	if !refine(s.adj, a, b) {
		return nil, nil
	}

	cellsA, cellsB := cells(a), cells(b)
	target := -1
	for col, members := range cellsA {
		if len(members) > 1 {
			target = col
			break
		}
	}
	if target < 0 {
		perm := make([]int, len(a))
		for col, members := range cellsA {
			perm[members[0]] = cellsB[col][0]
		}
		if s.preserves(perm) {
			return perm, nil
		}
		return nil, nil
	}

	next := cellsA[target][0]
	for _, cand := range cellsB[target] {
		perm, err := s.extend(a, b, next, cand)
		if err != nil || perm != nil {
			return perm, err
		}
	}
	return nil, nil
}

// preserves reports whether perm maps every edge onto an edge. perm is a
// bijection on a graph with a fixed edge count, so this suffices.
func (s *searcher) preserves(perm []int) bool {
	for u, nbrs := range s.adj {
		pu := perm[u]
		for _, w := range nbrs {
			if _, ok := slices.BinarySearch(s.adj[pu], perm[w]); !ok {
				return false
			}
		}
	}
	return true
}
