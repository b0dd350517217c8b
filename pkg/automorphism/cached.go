package automorphism

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kanon/pkg/anonymize/orbit"
	"github.com/matzehuels/kanon/pkg/cache"
	"github.com/matzehuels/kanon/pkg/graph"
	"github.com/matzehuels/kanon/pkg/observability"
)

const orbitsKeyType = "orbits"

// Digest returns a content hash of g that changes whenever the vertex list,
// its order, or the edge set changes. Orbits are expressed in handles, so
// vertex order is part of the identity.
func Digest(g *graph.Graph) string {
	var b strings.Builder
	for _, v := range g.Vertices() {
		b.WriteString(strconv.Quote(v.Name))
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(v.Generation))
		b.WriteByte('\n')
	}
	b.WriteString("--\n")
	for _, e := range g.Edges() {
		b.WriteString(strconv.Itoa(e.U))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(e.V))
		b.WriteByte('\n')
	}
	return cache.Hash([]byte(b.String()))
}

// CacheOptions configures a [CachedEngine].
type CacheOptions struct {
	Keyer  cache.Keyer
	TTL    time.Duration
	Logger *log.Logger
}

// CachedEngine memoizes the orbits computed by an inner engine.
//
// Cache failures are logged and fall through to the inner engine.
type CachedEngine struct {
	inner  orbit.Engine
	name   string
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

// NewCachedEngine wraps inner with c. The inner engine's Name method, if
// present, scopes the cache keys.
func NewCachedEngine(inner orbit.Engine, c cache.Cache, opts CacheOptions) *CachedEngine {
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.TTL <= 0 {
		opts.TTL = cache.OrbitsTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	name := "engine"
	if named, ok := inner.(interface{ Name() string }); ok {
		name = named.Name()
	}
	return &CachedEngine{
		inner:  inner,
		name:   name,
		cache:  c,
		keyer:  opts.Keyer,
		ttl:    opts.TTL,
		logger: opts.Logger,
	}
}

// Orbits implements [orbit.Engine].
func (e *CachedEngine) Orbits(ctx context.Context, g *graph.Graph) ([][]int, error) {
	hooks := observability.Engine()
	key := e.keyer.OrbitsKey(e.name, Digest(g))

	data, hit, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.Warn("orbit cache read failed", "err", err)
	}
	if hit {
		var orbits [][]int
		if err := json.Unmarshal(data, &orbits); err == nil && inRange(orbits, g.VertexCount()) {
			hooks.OnCacheHit(ctx, orbitsKeyType)
			e.logger.Debug("orbit cache hit", "orbits", len(orbits))
			return orbits, nil
		}
		e.logger.Warn("discarding unusable orbit cache entry")
		_ = e.cache.Delete(ctx, key)
	}
	hooks.OnCacheMiss(ctx, orbitsKeyType)

	orbits, err := e.inner.Orbits(ctx, g)
	if err != nil {
		return nil, err
	}
	if orbits == nil {
		return nil, nil
	}
	if data, err := json.Marshal(orbits); err == nil {
		if err := e.cache.Set(ctx, key, data, e.ttl); err != nil {
			e.logger.Warn("orbit cache write failed", "err", err)
		}
	}
	return orbits, nil
}

func inRange(orbits [][]int, n int) bool {
	for _, o := range orbits {
		for _, h := range o {
			if h < 0 || h >= n {
				return false
			}
		}
	}
	return true
}

var _ orbit.Engine = (*CachedEngine)(nil)
