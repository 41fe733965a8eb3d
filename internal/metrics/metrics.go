// Package metrics exposes live periodic timer diagnostics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/randomizedcoder/periodic/internal/stats"
	"github.com/randomizedcoder/periodic/internal/timer"
)

const namespace = "periodic"

// Exporter is a prometheus.Collector fed by the control loop.
//
// Observe is safe to call from the loop while a scrape is in progress.
type Exporter struct {
	dt     prometheus.Gauge
	dtHist prometheus.Histogram
	cycles *prometheus.CounterVec

	n    prometheus.Gauge
	min  prometheus.Gauge
	max  prometheus.Gauge
	mean prometheus.Gauge
	sd   prometheus.Gauge
	tet  prometheus.Gauge
}

var _ prometheus.Collector = (*Exporter)(nil)

// NewExporter creates an Exporter. constLabels are attached to every metric,
// typically the interval and the wake-up mode.
func NewExporter(constLabels prometheus.Labels) *Exporter {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "stats",
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}

	e := &Exporter{
		dt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "cycle_dt_seconds",
			Help:        "Elapsed time of the latest cycle.",
			ConstLabels: constLabels,
		}),
		dtHist: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "cycle_duration_seconds",
			Help:        "Distribution of cycle elapsed times.",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(0.0001, 2, 16),
		}),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "cycles_total",
			Help:        "Cycles by classification.",
			ConstLabels: constLabels,
		}, []string{"result"}),

		n:    gauge("n", "Samples in the running statistics."),
		min:  gauge("min", "Shortest cycle since start, in the statistics unit."),
		max:  gauge("max", "Longest cycle since start, in the statistics unit."),
		mean: gauge("mean", "Running mean of fault-free cycles, in the statistics unit."),
		sd:   gauge("sd", "Running standard deviation of fault-free cycles, in the statistics unit."),
		tet:  gauge("tet", "Running mean task execution time, in the statistics unit."),
	}

	// Expose every result with a zero count from the start.
	for _, r := range timer.Results {
		e.cycles.WithLabelValues(r.String())
	}
	return e
}

// Observe records one cycle and the statistics that followed it.
//
// A zero Snapshot, as obtained from a timer without statistics, leaves the
// stats gauges untouched.
func (e *Exporter) Observe(s timer.Sample, snap stats.Snapshot) {
	e.dt.Set(s.DT.Seconds())
	e.dtHist.Observe(s.DT.Seconds())
	e.cycles.WithLabelValues(s.Result.String()).Inc()

	if snap.Unit == 0 {
		return
	}
	e.n.Set(float64(snap.N))
	if snap.Warm() {
		e.min.Set(snap.Min)
		e.max.Set(snap.Max)
	}
	e.mean.Set(snap.Mean)
	e.sd.Set(snap.SD)
	e.tet.Set(snap.TET)
}

func (e *Exporter) collectors() []prometheus.Collector {
	return []prometheus.Collector{e.dt, e.dtHist, e.cycles, e.n, e.min, e.max, e.mean, e.sd, e.tet}
}

// Describe implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range e.collectors() {
		c.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	for _, c := range e.collectors() {
		c.Collect(ch)
	}
}
