package degree

import (
	"errors"
	"fmt"

	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/graph"
)

// Cause names the reason a delta vector could not be realized.
type Cause string

const (
	CauseOddSum        Cause = "odd delta sum"
	CauseNegativeDelta Cause = "negative delta"
	CauseNoCandidate   Cause = "no more edges to connect"
)

// ErrNotRealizable is the sentinel matched by every [RealizationError].
var ErrNotRealizable = errors.New("degree sequence not realizable")

// RealizationError reports why [Realize] gave up.
type RealizationError struct {
	Cause Cause
	// Vertex is the handle being served when the failure happened, or -1
	// when the failure is a property of the whole vector.
	Vertex int
	// Remaining is the delta sum still unrealized at failure time.
	Remaining int
}

func (e *RealizationError) Error() string {
	if e.Vertex >= 0 {
		return fmt.Sprintf("%s (vertex %d, %d remaining)", e.Cause, e.Vertex, e.Remaining)
	}
	return fmt.Sprintf("%s (%d remaining)", e.Cause, e.Remaining)
}

func (e *RealizationError) Unwrap() error { return ErrNotRealizable }

// Realize adds edges to g until every vertex has gained the number of edges
// given by its delta entry. Candidates are chosen first-fit in delta order.
//
// On failure the returned error carries code NOT_REALIZABLE and wraps a
// *RealizationError. Edges added before the failure stay in g.
func Realize(g *graph.Graph, delta []DegreeContext) error {
	rem := make([]int, len(delta))
	for i, d := range delta {
		rem[i] = d.Degree
	}

	total := Sum(delta)
	if total%2 != 0 {
		return notRealizable(&RealizationError{Cause: CauseOddSum, Vertex: -1, Remaining: total})
	}

	for {
		total = 0
		target := -1
		for i, r := range rem {
			if r < 0 {
				return notRealizable(&RealizationError{Cause: CauseNegativeDelta, Vertex: delta[i].Vertex, Remaining: r})
			}
			total += r
			if target < 0 && r > 0 {
				target = i
			}
		}
		if total == 0 {
			return nil
		}

		t := delta[target].Vertex
		for range rem[target] {
			c := candidate(g, delta, rem, target)
			if c < 0 {
				return notRealizable(&RealizationError{Cause: CauseNoCandidate, Vertex: t, Remaining: total})
			}
			if _, err := g.AddEdge(t, delta[c].Vertex); err != nil {
				return kerrors.Wrap(kerrors.ErrCodeInternal, err, "add edge %d-%d", t, delta[c].Vertex)
			}
			rem[c]--
			total--
		}
		rem[target] = 0
	}
}

// candidate returns the first index other than target that still needs
// edges and is not yet adjacent to target, or -1.
func candidate(g *graph.Graph, delta []DegreeContext, rem []int, target int) int {
	t := delta[target].Vertex
	for i, r := range rem {
		if i == target || r <= 0 {
			continue
		}
		if !g.HasEdge(t, delta[i].Vertex) {
			return i
		}
	}
	return -1
}

func notRealizable(e *RealizationError) error {
	return kerrors.Wrap(kerrors.ErrCodeNotRealizable, e, "realize degree sequence")
}
