// Package observability provides Prometheus instrumentation for sequence
// solves. Register the Metrics collector set once per process and feed it
// from wherever solves run.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the collector set for the solve pipeline.
type Metrics struct {
	Solves         *prometheus.CounterVec
	SolveDuration  prometheus.Histogram
	Segments       prometheus.Histogram
	DedupedPoints  prometheus.Counter
	DegradedBlends prometheus.Counter
}

// NewMetrics creates and registers the collectors on the given registerer.
// Pass prometheus.DefaultRegisterer unless tests need isolation.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seqplan",
			Name:      "solves_total",
			Help:      "Sequence solve calls by outcome.",
		}, []string{"outcome"}),
		SolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seqplan",
			Name:      "solve_duration_seconds",
			Help:      "Wall time of sequence solves.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		Segments: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seqplan",
			Name:      "solve_segments",
			Help:      "Number of segments per solved sequence.",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		}),
		DedupedPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seqplan",
			Name:      "deduplicated_waypoints_total",
			Help:      "Waypoints removed for sharing a timestamp with their predecessor.",
		}),
		DegradedBlends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seqplan",
			Name:      "degraded_blend_radii_total",
			Help:      "Blend radii reset to zero for cross-group or solver-less transitions.",
		}),
	}
	reg.MustRegister(m.Solves, m.SolveDuration, m.Segments, m.DedupedPoints, m.DegradedBlends)
	return m
}

// ObserveSolve records one finished solve call.
func (m *Metrics) ObserveSolve(outcome string, segments int, elapsed time.Duration) {
	m.Solves.WithLabelValues(outcome).Inc()
	m.SolveDuration.Observe(elapsed.Seconds())
	m.Segments.Observe(float64(segments))
}

// BlendDegraded counts one transition whose blend radius was reset to zero.
func (m *Metrics) BlendDegraded() {
	m.DegradedBlends.Inc()
}

// WaypointDeduped counts one waypoint removed during assembly.
func (m *Metrics) WaypointDeduped() {
	m.DedupedPoints.Inc()
}

// Outcome labels for ObserveSolve.
const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid_request"
	OutcomePlanFailed = "planning_failed"
	OutcomeOverlap    = "overlapping_radii"
	OutcomeError      = "error"
)
