// Package metrics exposes Prometheus collectors describing a verification run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/harrison/levelverify/internal/models"
)

const namespace = "levelverify"

// Metrics holds the collectors for one registry. All methods are safe to call
// on a nil *Metrics.
type Metrics struct {
	levels        *prometheus.CounterVec
	levelDuration prometheus.Histogram
	actions       prometheus.Counter
	transitions   *prometheus.CounterVec
	cacheRequests *prometheus.CounterVec
}

// MustNewMetrics registers the collectors with reg, reusing collectors that
// are already registered under the same names. Any other registration error
// panics.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		levels: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "levels_total",
				Help:      "Levels verified, partitioned by result.",
			},
			[]string{"result"},
		),
		levelDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "level_duration_seconds",
				Help:      "Time from level load to its outcome being recorded.",
				Buckets:   []float64{0.5, 1, 2, 4, 6, 8, 10, 15, 20, 30},
			},
		),
		actions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "session_actions_total",
				Help:      "Robot actions applied by execution sessions.",
			},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "state_transitions_total",
				Help:      "Orchestrator state entries, partitioned by state.",
			},
			[]string{"state"},
		),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extract_cache_requests_total",
				Help:      "Extraction cache lookups, partitioned by hit or miss.",
			},
			[]string{"result"},
		),
	}

	m.levels = register(reg, m.levels)
	m.levelDuration = register(reg, m.levelDuration)
	m.actions = register(reg, m.actions)
	m.transitions = register(reg, m.transitions)
	m.cacheRequests = register(reg, m.cacheRequests)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(fmt.Sprintf("register metrics collector: %v", err))
	}
	return c
}

// ObserveLevel records one level outcome.
func (m *Metrics) ObserveLevel(outcome models.LevelTestOutcome) {
	if m == nil {
		return
	}
	result := "pass"
	if !outcome.Success {
		result = "fail"
	}
	m.levels.WithLabelValues(result).Inc()
	m.levelDuration.Observe(outcome.Duration.Seconds())
}

// AddActions counts robot actions applied by a session.
func (m *Metrics) AddActions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.actions.Add(float64(n))
}

// ObserveTransition counts an entry into state.
func (m *Metrics) ObserveTransition(state models.OrchestratorState) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(state.String()).Inc()
}

// ObserveCache records the hit and miss deltas of an extraction cache.
func (m *Metrics) ObserveCache(hits, misses uint64) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues("hit").Add(float64(hits))
	m.cacheRequests.WithLabelValues("miss").Add(float64(misses))
}

// WriteTextfile gathers reg and writes it in the node exporter textfile
// format.
func WriteTextfile(path string, reg prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
