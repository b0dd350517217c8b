// Package orbit implements k-symmetry anonymization by orbit copying.
//
// An automorphism [Engine] partitions the vertices into orbits. Every orbit
// with fewer than k members is grown by copying its original members, one
// generation at a time, until it reaches k. A copy mirrors the edges of its
// source: neighbors inside the orbit are replaced by their copy of the same
// generation, neighbors outside the orbit are shared.
package orbit

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kanon/pkg/anonymize"
	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/graph"
	"github.com/matzehuels/kanon/pkg/observability"
)

// Engine computes the automorphism orbits of a graph.
//
// Each orbit lists vertex handles of g. A nil result with a nil error means
// no orbit analysis is available; the anonymizer then leaves g unchanged.
type Engine interface {
	Orbits(ctx context.Context, g *graph.Graph) ([][]int, error)
}

// EngineFunc adapts a function to [Engine].
type EngineFunc func(ctx context.Context, g *graph.Graph) ([][]int, error)

// Orbits implements [Engine].
func (f EngineFunc) Orbits(ctx context.Context, g *graph.Graph) ([][]int, error) { return f(ctx, g) }

// Options configures an [Anonymizer].
type Options struct {
	Logger *log.Logger
}

// Anonymizer makes graphs k-orbit anonymous.
type Anonymizer struct {
	engine Engine
	logger *log.Logger
}

// New returns an Anonymizer that takes its orbits from engine.
func New(engine Engine, opts Options) *Anonymizer {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Anonymizer{engine: engine, logger: opts.Logger}
}

// Name implements [anonymize.Algorithm].
func (a *Anonymizer) Name() string { return anonymize.AlgorithmOrbit }

// Anonymize grows every orbit of g below size k and returns g.
func (a *Anonymizer) Anonymize(ctx context.Context, g *graph.Graph, k int) (*graph.Graph, error) {
	if err := anonymize.ValidateInput(g, k); err != nil {
		return nil, err
	}
	if a.engine == nil {
		return nil, kerrors.New(kerrors.ErrCodeInvalidConfig, "orbit anonymizer has no automorphism engine")
	}
	hooks := observability.Anonymize()
	start := time.Now()
	finish := func(err error) {
		hooks.OnComplete(ctx, a.Name(), g.VertexCount(), g.EdgeCount(), time.Since(start), err)
	}
	hooks.OnAttempt(ctx, a.Name(), 1)

	orbits, err := a.engine.Orbits(ctx, g)
	if err != nil {
		if ctx.Err() == nil {
			err = kerrors.Wrap(kerrors.ErrCodeInternal, err, "compute orbits")
		}
		finish(err)
		return nil, err
	}
	if orbits == nil {
		a.logger.Debug("no orbit analysis available, graph unchanged")
		finish(nil)
		return g, nil
	}

	if err := checkOrbits(orbits, g.VertexCount()); err != nil {
		finish(err)
		return nil, err
	}

	for i, o := range orbits {
		if len(o) == 0 || len(o) >= k {
			continue
		}
		if err := ctx.Err(); err != nil {
			finish(err)
			return nil, err
		}
		working := slices.Clone(o)
		for counter := 1; len(working) < k; counter++ {
			added, err := copyOrbit(g, working, counter)
			if err != nil {
				finish(err)
				return nil, err
			}
			working = append(working, added...)
			hooks.OnOrbitCopy(ctx, i, counter, len(added))
			a.logger.Debug("orbit copied", "orbit", i, "generation", counter, "size", len(working))
		}
	}
	finish(nil)
	return g, nil
}

func checkOrbits(orbits [][]int, n int) error {
	for i, o := range orbits {
		for _, h := range o {
			if h < 0 || h >= n {
				return kerrors.New(kerrors.ErrCodeInternal, "orbit %d references vertex %d of %d", i, h, n)
			}
		}
	}
	return nil
}

// copyOrbit adds one generation of copies for the members of orbit and
// returns the handles of the new copies.
//
// Only original members are copied. If the orbit has none, every member is.
func copyOrbit(g *graph.Graph, orbit []int, counter int) ([]int, error) {
	members := make(map[int]struct{}, len(orbit))
	for _, h := range orbit {
		members[h] = struct{}{}
	}

	sources := make([]int, 0, len(orbit))
	for _, h := range orbit {
		if !g.Vertex(h).IsTagged() {
			sources = append(sources, h)
		}
	}
	if len(sources) == 0 {
		sources = slices.Clone(orbit)
	}

	neighbors := make([][]int, len(sources))
	for i, s := range sources {
		neighbors[i] = g.Neighbors(s)
	}

	var added []int
	for i, s := range sources {
		c := g.AddVertex(g.Vertex(s).Tag(counter))
		if _, inOrbit := members[c]; !inOrbit && !slices.Contains(added, c) {
			added = append(added, c)
		}
		for _, n := range neighbors[i] {
			target := n
			if _, inOrbit := members[n]; inOrbit {
				target = g.AddVertex(g.Vertex(n).Tag(counter))
			}
			if target == c {
				continue
			}
			if _, err := g.AddEdge(c, target); err != nil {
				return nil, kerrors.Wrap(kerrors.ErrCodeInternal, err, "connect copy %s", g.Vertex(c))
			}
		}
	}
	return added, nil
}

var _ anonymize.Algorithm = (*Anonymizer)(nil)
