package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/periodic/internal/stats"
	"github.com/randomizedcoder/periodic/internal/timer"
)

func TestExporter_Register(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	e := NewExporter(prometheus.Labels{"mode": "signal"})
	require.NoError(t, reg.Register(e))

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"periodic_cycle_dt_seconds",
		"periodic_cycle_duration_seconds",
		"periodic_cycles_total",
		"periodic_stats_n",
		"periodic_stats_min",
		"periodic_stats_max",
		"periodic_stats_mean",
		"periodic_stats_sd",
		"periodic_stats_tet",
	} {
		assert.True(t, names[want], "missing %s", want)
	}
}

func TestExporter_Observe(t *testing.T) {
	e := NewExporter(nil)
	acc := stats.New()

	for i, dt := range []time.Duration{100 * time.Millisecond, 100 * time.Millisecond, 120 * time.Millisecond} {
		res := timer.Ok
		if i == 2 {
			res = timer.MaxWaitExceeded
		}
		acc.Observe(dt, 0, res == timer.Ok)
		e.Observe(timer.Sample{Seq: uint64(i + 1), DT: dt, Result: res}, acc.Snapshot())
	}

	assert.InDelta(t, 0.12, testutil.ToFloat64(e.dt), 1e-9)
	assert.Equal(t, 2.0, testutil.ToFloat64(e.cycles.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.cycles.WithLabelValues("max_wait_exceeded")))
	assert.Equal(t, 0.0, testutil.ToFloat64(e.cycles.WithLabelValues("signal_late")))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.n))
	assert.InDelta(t, 0.1, testutil.ToFloat64(e.min), 1e-9)
	assert.InDelta(t, 0.12, testutil.ToFloat64(e.max), 1e-9)
	assert.InDelta(t, 0.1, testutil.ToFloat64(e.mean), 1e-9)
}

func TestExporter_ObserveWithoutStats(t *testing.T) {
	e := NewExporter(nil)
	e.Observe(timer.Sample{Seq: 1, DT: 50 * time.Millisecond, Result: timer.SignalLate}, stats.Snapshot{})

	assert.InDelta(t, 0.05, testutil.ToFloat64(e.dt), 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(e.cycles.WithLabelValues("signal_late")))
	assert.Equal(t, 0.0, testutil.ToFloat64(e.n))
	assert.Equal(t, 0.0, testutil.ToFloat64(e.min))
}
