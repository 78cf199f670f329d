// Package metrics exposes Prometheus collectors for reconciliation sessions.
//
// A nil *Metrics records nothing, so callers can keep metrics optional
// without guarding every call.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agentstation/bimdiff/pkg/errors"
)

// Namespace prefixes every metric name.
const Namespace = "bimdiff"

// Session outcomes used as the status label.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Metrics holds the collectors of one registry.
type Metrics struct {
	sessions           *prometheus.CounterVec
	duration           prometheus.Histogram
	comparatorDuration *prometheus.HistogramVec
	candidates         *prometheus.CounterVec
	failures           *prometheus.CounterVec
	groups             *prometheus.CounterVec
	conflicts          *prometheus.CounterVec
}

// New creates unregistered collectors.
func New() *Metrics {
	return &Metrics{
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "reconcile",
				Name:      "sessions_total",
				Help:      "Reconciliation sessions by outcome.",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "reconcile",
				Name:      "duration_seconds",
				Help:      "Reconciliation session duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		comparatorDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "comparator",
				Name:      "duration_seconds",
				Help:      "Time one comparator spent on a session in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"comparator", "category"},
		),
		candidates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "comparator",
				Name:      "candidates_total",
				Help:      "Candidates proposed by comparators.",
			},
			[]string{"comparator", "category"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "comparator",
				Name:      "failures_total",
				Help:      "Per-object comparator failures.",
			},
			[]string{"comparator"},
		),
		groups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "groups_total",
				Help:      "Reconciled baseline objects by verdict, plus added revision objects.",
			},
			[]string{"verdict"},
		),
		conflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "conflicts_resolved_total",
				Help:      "Candidates removed by conflict resolution.",
			},
			[]string{"rule"},
		),
	}
}

// Collectors returns every collector.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.sessions, m.duration, m.comparatorDuration, m.candidates, m.failures, m.groups, m.conflicts,
	}
}

// Register adds the collectors to reg. Collectors already registered are
// left in place.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the process-wide collectors, registered with the default
// Prometheus registerer on first use.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New()
		_ = defaultMetrics.Register(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// RecordSession records a finished session.
func (m *Metrics) RecordSession(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues(status).Inc()
	m.duration.Observe(d.Seconds())
}

// RecordComparator records one comparator's work over a session.
func (m *Metrics) RecordComparator(name, category string, d time.Duration, candidates, failures int) {
	if m == nil {
		return
	}
	m.comparatorDuration.WithLabelValues(name, category).Observe(d.Seconds())
	m.candidates.WithLabelValues(name, category).Add(float64(candidates))
	if failures > 0 {
		m.failures.WithLabelValues(name).Add(float64(failures))
	}
}

// RecordVerdict adds n objects to a verdict.
func (m *Metrics) RecordVerdict(verdict string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.groups.WithLabelValues(verdict).Add(float64(n))
}

// RecordConflicts adds n removals to a resolution rule.
func (m *Metrics) RecordConflicts(rule string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.conflicts.WithLabelValues(rule).Add(float64(n))
}
