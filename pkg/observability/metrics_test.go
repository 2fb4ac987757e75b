package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSolve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveSolve(OutcomeOK, 3, 20*time.Millisecond)
	m.ObserveSolve(OutcomeOK, 5, 10*time.Millisecond)
	m.ObserveSolve(OutcomeOverlap, 4, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Solves.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Solves.WithLabelValues(OutcomeOverlap)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SolveDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Segments))
}

func TestPipelineCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.BlendDegraded()
	m.WaypointDeduped()
	m.WaypointDeduped()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DegradedBlends))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DedupedPoints))
}

func TestNewMetrics_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	assert.Panics(t, func() { NewMetrics(reg) }, "double registration must panic")
}
