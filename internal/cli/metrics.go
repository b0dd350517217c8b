package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	kerrors "github.com/matzehuels/kanon/pkg/errors"
	"github.com/matzehuels/kanon/pkg/observability"
)

// metrics records anonymization and engine events in a Prometheus registry.
// It implements both observability.AnonymizeHooks and
// observability.EngineHooks.
type metrics struct {
	registry *prometheus.Registry

	attempts       *prometheus.CounterVec
	failures       *prometheus.CounterVec
	noiseEdges     *prometheus.CounterVec
	orbitCopies    prometheus.Counter
	copiedVertices prometheus.Counter
	runs           *prometheus.CounterVec
	runDuration    *prometheus.HistogramVec
	graphVertices  *prometheus.GaugeVec
	graphEdges     *prometheus.GaugeVec

	orbitComputations prometheus.Counter
	orbitDuration     prometheus.Histogram
	orbitCount        prometheus.Gauge
	cacheRequests     *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{registry: prometheus.NewRegistry()}
	f := promauto.With(m.registry)

	m.attempts = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanon_realization_attempts_total",
			Help: "Total number of anonymization attempts",
		},
		[]string{"algorithm"},
	)
	m.failures = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanon_realization_failures_total",
			Help: "Total number of failed degree realizations by cause",
		},
		[]string{"algorithm", "cause"},
	)
	m.noiseEdges = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanon_noise_edges_total",
			Help: "Total number of random edges added between attempts",
		},
		[]string{"algorithm"},
	)
	m.orbitCopies = f.NewCounter(prometheus.CounterOpts{
		Name: "kanon_orbit_copies_total",
		Help: "Total number of orbit copying passes",
	})
	m.copiedVertices = f.NewCounter(prometheus.CounterOpts{
		Name: "kanon_copied_vertices_total",
		Help: "Total number of vertices added by orbit copying",
	})
	m.runs = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanon_runs_total",
			Help: "Total number of anonymization runs by outcome",
		},
		[]string{"algorithm", "status"},
	)
	m.runDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kanon_run_duration_seconds",
			Help:    "Anonymization run duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"algorithm"},
	)
	m.graphVertices = f.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kanon_graph_vertices",
			Help: "Vertex count of the last anonymized graph",
		},
		[]string{"algorithm"},
	)
	m.graphEdges = f.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kanon_graph_edges",
			Help: "Edge count of the last anonymized graph",
		},
		[]string{"algorithm"},
	)

	m.orbitComputations = f.NewCounter(prometheus.CounterOpts{
		Name: "kanon_orbit_computations_total",
		Help: "Total number of orbit computations",
	})
	m.orbitDuration = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "kanon_orbit_duration_seconds",
		Help:    "Orbit computation duration in seconds",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
	})
	m.orbitCount = f.NewGauge(prometheus.GaugeOpts{
		Name: "kanon_orbits",
		Help: "Number of orbits found by the last computation",
	})
	m.cacheRequests = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanon_cache_requests_total",
			Help: "Total number of orbit cache lookups by result",
		},
		[]string{"key_type", "result"},
	)
	return m
}

// register installs m as the global observability hooks and returns a
// function restoring the no-op hooks.
func (m *metrics) register() func() {
	observability.SetAnonymizeHooks(m)
	observability.SetEngineHooks(m)
	return observability.Reset
}

// writeFile writes the registry in the text exposition format.
func (m *metrics) writeFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidPath, err, "write metrics %s", path)
	}
	return nil
}

func (m *metrics) OnAttempt(_ context.Context, algorithm string, _ int) {
	m.attempts.WithLabelValues(algorithm).Inc()
}

func (m *metrics) OnRealizationFailure(_ context.Context, algorithm, cause string) {
	m.failures.WithLabelValues(algorithm, cause).Inc()
}

func (m *metrics) OnNoise(_ context.Context, algorithm string, edges int) {
	m.noiseEdges.WithLabelValues(algorithm).Add(float64(edges))
}

func (m *metrics) OnOrbitCopy(_ context.Context, _, _, added int) {
	m.orbitCopies.Inc()
	m.copiedVertices.Add(float64(added))
}

func (m *metrics) OnComplete(_ context.Context, algorithm string, vertices, edges int, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = string(kerrors.GetCode(err))
		if status == "" {
			status = "error"
		}
	}
	m.runs.WithLabelValues(algorithm, status).Inc()
	m.runDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	m.graphVertices.WithLabelValues(algorithm).Set(float64(vertices))
	m.graphEdges.WithLabelValues(algorithm).Set(float64(edges))
}

func (m *metrics) OnOrbitsComputed(_ context.Context, _, orbits int, duration time.Duration) {
	m.orbitComputations.Inc()
	m.orbitDuration.Observe(duration.Seconds())
	m.orbitCount.Set(float64(orbits))
}

func (m *metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (m *metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheRequests.WithLabelValues(keyType, "miss").Inc()
}

var (
	_ observability.AnonymizeHooks = (*metrics)(nil)
	_ observability.EngineHooks    = (*metrics)(nil)
)
