package stats

import (
	"math"
	"time"

	"github.com/spenczar/tdigest"
)

// TETMode selects how the reported TET is derived.
type TETMode uint8

const (
	// TETMean reports the running mean of the instantaneous task execution
	// time over ok samples.
	TETMean TETMode = iota

	// TETLegacy reproduces the historic behavior, where the instantaneous
	// TET was folded into a running mean fed with the raw cycle duration.
	// Kept for comparison with traces produced by older tooling.
	TETLegacy
)

// String returns the mode name used in configuration.
func (m TETMode) String() string {
	switch m {
	case TETMean:
		return "mean"
	case TETLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParseTETMode parses a configuration name into a TETMode.
func ParseTETMode(s string) (TETMode, bool) {
	switch s {
	case "", "mean":
		return TETMean, true
	case "legacy":
		return TETLegacy, true
	default:
		return TETMean, false
	}
}

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithUnit sets the unit in which values are reported (default time.Second).
func WithUnit(unit time.Duration) Option {
	return func(a *Accumulator) {
		if unit > 0 {
			a.unit = unit
		}
	}
}

// WithTETMode selects the TET derivation (default TETMean).
func WithTETMode(m TETMode) Option {
	return func(a *Accumulator) { a.tetMode = m }
}

// Accumulator computes online cycle statistics.
//
// Not safe for concurrent use; it is owned by the goroutine driving the timer.
type Accumulator struct {
	unit    time.Duration
	tetMode TETMode

	n       int
	min     float64
	max     float64
	mean    float64
	sd      float64
	tet     float64 // reported TET, per tetMode
	lastTET float64 // instantaneous TET of the latest sample
	first   bool

	digest *tdigest.TDigest
}

// New creates an Accumulator in its initial state.
func New(opts ...Option) *Accumulator {
	a := &Accumulator{unit: time.Second}
	for _, opt := range opts {
		opt(a)
	}
	a.Reset()
	return a
}

// Reset returns the accumulator to n=0, min=+Inf, max=0, mean=0, sd=0, tet=0
// and re-arms the warm-up sample.
func (a *Accumulator) Reset() {
	a.n = 0
	a.min = math.Inf(1)
	a.max = 0
	a.mean = 0
	a.sd = 0
	a.tet = 0
	a.lastTET = 0
	a.first = true
	a.digest = tdigest.New()
}

// Unit returns the reporting unit.
func (a *Accumulator) Unit() time.Duration {
	return a.unit
}

// Observe folds one cycle into the statistics.
//
// dt is the elapsed time since the previous wake-up, tet the portion of it
// spent before entering the blocking wait. ok reports whether the cycle was
// classified as fault free.
func (a *Accumulator) Observe(dt, tet time.Duration, ok bool) {
	x := a.convert(dt)
	a.lastTET = a.convert(tet)
	if a.tetMode == TETLegacy {
		a.tet = a.lastTET
	}

	if a.first {
		a.first = false
		return
	}

	a.min = math.Min(a.min, x)
	a.max = math.Max(a.max, x)
	a.digest.Add(x, 1)

	if ok {
		a.update(x)
	}
}

// update applies the recursive mean / standard deviation formulas for the
// n-th ok sample x.
func (a *Accumulator) update(x float64) {
	a.n++
	if a.n <= 1 {
		a.mean = x
		a.sd = 0
		if a.tetMode == TETLegacy {
			a.tet = 0
		} else {
			a.tet = a.lastTET
		}
		return
	}

	n := float64(a.n)
	n1 := n - 1
	n2 := n - 2

	a.mean = (n1*a.mean + x) / n
	a.sd = math.Sqrt((n2*a.sd*a.sd + (n/n1)*(a.mean-x)*(a.mean-x)) / n1)

	switch a.tetMode {
	case TETLegacy:
		a.tet = (n1*a.tet + x) / n
	default:
		a.tet = (n1*a.tet + a.lastTET) / n
	}
}

func (a *Accumulator) convert(d time.Duration) float64 {
	return float64(d) / float64(a.unit)
}

// Snapshot returns a copy of the current statistics.
func (a *Accumulator) Snapshot() Snapshot {
	s := Snapshot{
		N:       a.n,
		Min:     a.min,
		Max:     a.max,
		Mean:    a.mean,
		SD:      a.sd,
		TET:     a.tet,
		LastTET: a.lastTET,
		Unit:    a.unit,
	}
	if a.min <= a.max {
		s.P50 = a.digest.Quantile(0.50)
		s.P95 = a.digest.Quantile(0.95)
		s.P99 = a.digest.Quantile(0.99)
	}
	return s
}
