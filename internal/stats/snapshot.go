package stats

import (
	"math"
	"time"
)

// Snapshot is a point-in-time copy of an Accumulator.
//
// All values except N are expressed in Unit.
type Snapshot struct {
	N       int     `yaml:"n"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Mean    float64 `yaml:"mean"`
	SD      float64 `yaml:"sd"`
	TET     float64 `yaml:"tet"`
	LastTET float64 `yaml:"last_tet"`
	P50     float64 `yaml:"p50"`
	P95     float64 `yaml:"p95"`
	P99     float64 `yaml:"p99"`

	Unit time.Duration `yaml:"-"`
}

// Map returns the statistics keyed by "n", "min", "max", "mean", "sd" and "tet".
func (s Snapshot) Map() map[string]float64 {
	return map[string]float64{
		"n":    float64(s.N),
		"min":  s.Min,
		"max":  s.Max,
		"mean": s.Mean,
		"sd":   s.SD,
		"tet":  s.TET,
	}
}

// Warm reports whether at least one sample has moved min/max.
func (s Snapshot) Warm() bool {
	return !math.IsInf(s.Min, 1)
}

// Duration converts a value of the snapshot back into a time.Duration.
func (s Snapshot) Duration(v float64) time.Duration {
	unit := s.Unit
	if unit <= 0 {
		unit = time.Second
	}
	return time.Duration(v * float64(unit))
}
