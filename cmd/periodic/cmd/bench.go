package cmd

import (
	"fmt"
	"io"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/randomizedcoder/periodic/internal/clock"
	"github.com/randomizedcoder/periodic/internal/stats"
	"github.com/randomizedcoder/periodic/internal/timer"
)

var (
	benchCycles   int
	benchInterval time.Duration
	benchMaxWait  time.Duration
	benchRealTime bool
)

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVarP(&benchCycles, "cycles", "n", 200, "cycles per strategy")
	benchCmd.Flags().DurationVar(&benchInterval, "interval", 5*time.Millisecond, "nominal cycle duration")
	benchCmd.Flags().DurationVar(&benchMaxWait, "max-wait", 0, "longest tolerable cycle (default 1.1 x interval)")
	benchCmd.Flags().BoolVar(&benchRealTime, "realtime", true, "request SCHED_FIFO scheduling")
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare the wake-up strategies over a fixed number of cycles",
	RunE: func(cmd *cobra.Command, args []string) error {
		maxWait := benchMaxWait
		if maxWait == 0 {
			maxWait = benchInterval + benchInterval/10
		}
		return bench(cmd.OutOrStdout(), benchCycles, benchInterval, maxWait, benchRealTime)
	},
}

type benchResult struct {
	strategy timer.Strategy
	realTime bool
	elapsed  time.Duration
	faults   int
	snap     stats.Snapshot
}

func bench(w io.Writer, cycles int, interval, maxWait time.Duration, realTime bool) error {
	if cycles < 2 {
		return fmt.Errorf("bench: need at least 2 cycles, got %d", cycles)
	}

	fmt.Fprintf(w, "Benchmarking wake-up strategies (%d cycles of %v)\n", cycles, interval)
	fmt.Fprintf(w, "Architecture: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "Clock resolution: %v\n", clock.Resolution(clock.Monotonic()))
	fmt.Fprintln(w, "─────────────────────────────────────────────────")

	var results []benchResult
	for _, s := range []timer.Strategy{timer.StrategyAbsolute, timer.StrategySignal} {
		r, err := benchStrategy(s, cycles, interval, maxWait, realTime)
		if err != nil {
			return err
		}
		results = append(results, r)
	}

	fmt.Fprintf(w, "\nResults (ms):\n")
	fmt.Fprintf(w, "  %-10s %4s %12s %9s %9s %9s %9s %9s %7s\n",
		"strategy", "rt", "elapsed", "mean", "sd", "min", "max", "p99", "faults")
	for _, r := range results {
		fmt.Fprintf(w, "  %-10s %4t %12v %9.4f %9.4f %9.4f %9.4f %9.4f %7d\n",
			r.strategy, r.realTime, r.elapsed.Round(time.Microsecond),
			r.snap.Mean, r.snap.SD, r.snap.Min, r.snap.Max, r.snap.P99, r.faults)
	}
	fmt.Fprintf(w, "\nNote: mean and sd exclude faulty cycles; min, max and p99 include them.\n")
	return nil
}

func benchStrategy(s timer.Strategy, cycles int, interval, maxWait time.Duration, realTime bool) (benchResult, error) {
	t, err := timer.New(interval, maxWait,
		timer.WithStats(true),
		timer.WithUnit(time.Millisecond),
		timer.WithStrategy(s),
		timer.WithLogger(log.StandardLogger()),
	)
	if err != nil {
		return benchResult{}, err
	}
	if realTime {
		if err := t.EnableRealTimeScheduling(); err != nil {
			log.WithError(err).Debug("bench: running without real-time scheduling")
		}
	}

	if err := t.Start(); err != nil {
		return benchResult{}, err
	}
	defer t.Stop()

	r := benchResult{strategy: s, realTime: t.RealTime()}
	clk := t.Clock()
	start := clk.Nanotime()
	for i := 0; i < cycles; i++ {
		res, err := t.Wait()
		if err != nil {
			return r, err
		}
		if res != timer.Ok {
			r.faults++
		}
	}
	r.elapsed = clock.Since(clk, start)
	r.snap, err = t.Stats()
	return r, err
}
