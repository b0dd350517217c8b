// Package degree implements k-degree anonymization.
//
// A run snapshots the degree sequence ([BuildVector]), raises it to a
// k-anonymous sequence ([AnonymizeVector]), and adds the missing edges to the
// graph ([Realize]). When the first-fit realizer gets stuck, the
// [Anonymizer] perturbs the graph with a few random edges and starts over.
//
// Anonymization only adds edges, so every vertex keeps at least its original
// degree.
package degree

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kanon/pkg/anonymize"
	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/graph"
	"github.com/matzehuels/kanon/pkg/observability"
)

// Default option values.
const (
	DefaultNoiseAddition = 10
	DefaultMaxAttempts   = 1000
	DefaultSeed          = 42
)

// Options configures an [Anonymizer]. Zero values select the defaults.
type Options struct {
	// MaxAttempts caps realization attempts. Ignored when Unbounded is set.
	MaxAttempts int
	// Unbounded retries until success or ctx cancellation.
	Unbounded bool
	// NoiseAddition is the exclusive upper bound on random edges added after
	// a failed attempt.
	NoiseAddition int
	// Seed seeds the noise generator.
	Seed   uint64
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.NoiseAddition <= 0 {
		o.NoiseAddition = DefaultNoiseAddition
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Anonymizer makes graphs k-degree anonymous.
type Anonymizer struct {
	opts Options
	rng  *rand.Rand
}

// New returns an Anonymizer with opts, defaults filled in.
func New(opts Options) *Anonymizer {
	opts.setDefaults()
	return &Anonymizer{
		opts: opts,
		rng:  rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef)),
	}
}

// Name implements [anonymize.Algorithm].
func (a *Anonymizer) Name() string { return anonymize.AlgorithmDegree }

// Anonymize adds edges to g until every degree is shared by at least k
// vertices and returns g.
//
// Each failed attempt leaves its partial edges and a round of noise in g
// before retrying. Once MaxAttempts is spent the error carries code
// ATTEMPTS_EXHAUSTED and wraps the last *RealizationError.
func (a *Anonymizer) Anonymize(ctx context.Context, g *graph.Graph, k int) (*graph.Graph, error) {
	if err := anonymize.ValidateInput(g, k); err != nil {
		return nil, err
	}
	hooks := observability.Anonymize()
	start := time.Now()
	logger := a.opts.Logger

	var lastErr error
	for attempt := 1; a.opts.Unbounded || attempt <= a.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			hooks.OnComplete(ctx, a.Name(), g.VertexCount(), g.EdgeCount(), time.Since(start), err)
			return nil, err
		}
		hooks.OnAttempt(ctx, a.Name(), attempt)

		orig := BuildVector(g)
		delta := Delta(orig, AnonymizeVector(orig, k))
		err := Realize(g, delta)
		if err == nil {
			logger.Debug("degree sequence realized", "attempt", attempt, "edges", g.EdgeCount())
			hooks.OnComplete(ctx, a.Name(), g.VertexCount(), g.EdgeCount(), time.Since(start), nil)
			return g, nil
		}

		var rerr *RealizationError
		if !kerrors.Retryable(err) || !errors.As(err, &rerr) {
			hooks.OnComplete(ctx, a.Name(), g.VertexCount(), g.EdgeCount(), time.Since(start), err)
			return nil, err
		}
		lastErr = err
		hooks.OnRealizationFailure(ctx, a.Name(), string(rerr.Cause))

		added, err := a.addNoise(g)
		if err != nil {
			hooks.OnComplete(ctx, a.Name(), g.VertexCount(), g.EdgeCount(), time.Since(start), err)
			return nil, err
		}
		hooks.OnNoise(ctx, a.Name(), added)
		logger.Debug("realization failed", "attempt", attempt, "cause", rerr.Cause, "noise", added)
	}

	err := kerrors.Wrap(kerrors.ErrCodeAttemptsExhausted, lastErr,
		"no %d-degree anonymous supergraph after %d attempts", k, a.opts.MaxAttempts)
	hooks.OnComplete(ctx, a.Name(), g.VertexCount(), g.EdgeCount(), time.Since(start), err)
	return nil, err
}

// addNoise inserts up to NoiseAddition-1 random edges and returns how many
// were new. Self pairs are drawn but skipped.
func (a *Anonymizer) addNoise(g *graph.Graph) (int, error) {
	n := g.VertexCount()
	if n < 2 {
		return 0, nil
	}
	added := 0
	for range a.rng.IntN(a.opts.NoiseAddition) {
		u, v := a.rng.IntN(n), a.rng.IntN(n)
		if u == v {
			continue
		}
		ok, err := g.AddEdge(u, v)
		if err != nil {
			return added, kerrors.Wrap(kerrors.ErrCodeInternal, err, "add noise edge %d-%d", u, v)
		}
		if ok {
			added++
		}
	}
	return added, nil
}

var _ anonymize.Algorithm = (*Anonymizer)(nil)
