package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kanon/pkg/anonymize"
	"github.com/matzehuels/kanon/pkg/anonymize/degree"
	"github.com/matzehuels/kanon/pkg/anonymize/orbit"
	"github.com/matzehuels/kanon/pkg/automorphism"
	"github.com/matzehuels/kanon/pkg/cache"
	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/graph"
	kio "github.com/matzehuels/kanon/pkg/io"
	"github.com/matzehuels/kanon/pkg/render"
)

// Runner executes pipeline stages against a shared orbit cache.
//
// The Runner keeps no per-run state. Algorithms are built fresh for every
// call, so one Runner can serve any number of runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs load, anonymize, verify and write in order.
//
// When opts.Output is empty the encoded graph is returned in Result.Output
// instead of being written.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{RunID: newRunID()}
	logger := r.Logger.With("run", result.RunID[:8])

	loadStart := time.Now()
	g, inStats, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.Input = inStats
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.VerticesBefore = g.VertexCount()
	result.Stats.EdgesBefore = g.EdgeCount()
	logger.Info("loaded graph",
		"vertices", g.VertexCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.LoadTime)
	if inStats.Duplicates > 0 || inStats.SelfLoops > 0 {
		logger.Warn("skipped input rows", "duplicates", inStats.Duplicates, "self_loops", inStats.SelfLoops)
	}

	anonStart := time.Now()
	g, err = r.Anonymize(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.AnonymizeTime = time.Since(anonStart)
	result.Stats.VerticesAfter = g.VertexCount()
	result.Stats.EdgesAfter = g.EdgeCount()
	logger.Info("anonymized graph",
		"algorithm", opts.Algorithm,
		"k", opts.K,
		"added_vertices", result.Stats.AddedVertices(),
		"added_edges", result.Stats.AddedEdges(),
		"duration", result.Stats.AnonymizeTime)

	orbits, err := r.Verify(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Orbits = orbits
	result.Verified = true
	logger.Debug("verified anonymity", "k", opts.K)

	if opts.Output == "" {
		result.Output, err = r.Encode(ctx, g, orbits, opts)
		return result, err
	}
	if err := r.Write(ctx, g, orbits, opts); err != nil {
		return nil, err
	}
	logger.Info("wrote graph", "path", opts.Output, "format", opts.Format)
	return result, nil
}

// Load reads the input graph named by opts.Input.
func (r *Runner) Load(ctx context.Context, opts Options) (*graph.Graph, kio.EdgeListStats, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, kio.EdgeListStats{}, err
	}
	if opts.Input == "" {
		return nil, kio.EdgeListStats{}, kerrors.New(kerrors.ErrCodeInvalidInput, "no input file")
	}
	if err := ctx.Err(); err != nil {
		return nil, kio.EdgeListStats{}, err
	}
	return kio.ReadFile(opts.Input, opts.EdgeListOptions())
}

// Engine returns the orbit engine for opts: the reference automorphism
// engine, cached unless opts.NoCache is set.
func (r *Runner) Engine(opts Options) orbit.Engine {
	r.applyLogger(&opts)
	inner := automorphism.New(automorphism.Options{NodeBudget: opts.NodeBudget, Logger: opts.Logger})
	if opts.NoCache {
		return inner
	}
	return automorphism.NewCachedEngine(inner, r.Cache, automorphism.CacheOptions{
		Keyer:  r.Keyer,
		Logger: opts.Logger,
	})
}

// Algorithm builds the anonymizer selected by opts.Algorithm.
func (r *Runner) Algorithm(opts Options) (anonymize.Algorithm, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	switch opts.Algorithm {
	case anonymize.AlgorithmDegree:
		return degree.New(opts.DegreeOptions()), nil
	case anonymize.AlgorithmOrbit:
		return orbit.New(r.Engine(opts), orbit.Options{Logger: opts.Logger}), nil
	}
	return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "unknown algorithm %q", opts.Algorithm)
}

// Anonymize runs the selected algorithm on g. The graph is modified in
// place and returned.
func (r *Runner) Anonymize(ctx context.Context, g *graph.Graph, opts Options) (*graph.Graph, error) {
	algo, err := r.Algorithm(opts)
	if err != nil {
		return nil, err
	}
	return algo.Anonymize(ctx, g, opts.K)
}

// Orbits computes the orbits of g with the engine of opts.
func (r *Runner) Orbits(ctx context.Context, g *graph.Graph, opts Options) ([][]int, error) {
	return r.Engine(opts).Orbits(ctx, g)
}

// Verify checks that g is simple and satisfies the guarantee of
// opts.Algorithm at level opts.K. For the orbit algorithm it returns the
// orbits it checked.
func (r *Runner) Verify(ctx context.Context, g *graph.Graph, opts Options) ([][]int, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInternal, err, "anonymized graph is not simple")
	}
	switch opts.Algorithm {
	case anonymize.AlgorithmDegree:
		if !anonymize.IsKDegreeAnonymous(g, opts.K) {
			return nil, kerrors.New(kerrors.ErrCodeInternal, "graph is not %d-degree anonymous", opts.K)
		}
		return nil, nil
	case anonymize.AlgorithmOrbit:
		orbits, err := r.Orbits(ctx, g, opts)
		if err != nil {
			return nil, err
		}
		if orbits != nil && !anonymize.IsKOrbitAnonymous(orbits, opts.K) {
			return nil, kerrors.New(kerrors.ErrCodeInternal, "graph is not %d-orbit anonymous: smallest orbit has %d vertices",
				opts.K, anonymize.MinOrbitSize(orbits))
		}
		return orbits, nil
	}
	return nil, kerrors.New(kerrors.ErrCodeInvalidInput, "unknown algorithm %q", opts.Algorithm)
}

// Encode serializes g in opts.Format. Orbits, if any, color the DOT and SVG
// output.
func (r *Runner) Encode(ctx context.Context, g *graph.Graph, orbits [][]int, opts Options) ([]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	format, err := kio.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	switch format {
	case kio.FormatEdgeList:
		err = kio.WriteEdgeList(g, &buf, opts.EdgeListOptions())
	case kio.FormatJSON:
		err = kio.WriteJSON(g, &buf)
	case kio.FormatDOT:
		buf.WriteString(render.ToDOT(g, render.Options{Detailed: opts.Detailed, Orbits: orbits}))
	case kio.FormatSVG:
		return render.RenderSVG(ctx, render.ToDOT(g, render.Options{Detailed: opts.Detailed, Orbits: orbits}))
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes g and writes it to opts.Output.
func (r *Runner) Write(ctx context.Context, g *graph.Graph, orbits [][]int, opts Options) error {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.Output == "" {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "no output file")
	}
	format, err := kio.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	if format == kio.FormatEdgeList || format == kio.FormatJSON {
		return kio.WriteFile(g, opts.Output, format, opts.EdgeListOptions())
	}
	data, err := r.Encode(ctx, g, orbits, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidPath, err, "write %s", opts.Output)
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
