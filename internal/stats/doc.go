// Package stats accumulates online statistics of periodic cycle durations.
//
// An Accumulator tracks sample count, min, max, running mean, running
// standard deviation and mean task execution time (TET) with an O(1)
// recursive update, plus a t-digest of all samples for quantiles.
//
// # Warm-up
//
// The first observation after New or Reset is a warm-up sample: it has no
// valid predecessor wake-up, so it only records the instantaneous TET.
//
// # Fault samples
//
// Samples observed with ok=false (late signals, overruns, interruptions)
// still move min, max and the quantile digest, but are excluded from the
// mean, standard deviation and TET mean so that faults do not corrupt the
// steady-state estimate.
package stats
