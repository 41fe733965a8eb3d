package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/randomizedcoder/periodic/internal/cancel"
	"github.com/randomizedcoder/periodic/internal/config"
	"github.com/randomizedcoder/periodic/internal/metrics"
	"github.com/randomizedcoder/periodic/internal/queue"
	"github.com/randomizedcoder/periodic/internal/record"
	"github.com/randomizedcoder/periodic/internal/report"
	"github.com/randomizedcoder/periodic/internal/stats"
	"github.com/randomizedcoder/periodic/internal/timer"
)

func init() {
	rootCmd.AddCommand(runCmd)
	config.AddFlags(runCmd.Flags())
}

var runCmd = &cobra.Command{
	Use:   "run [interval-seconds]",
	Short: "Run a paced loop, printing one CSV row per cycle and a summary",
	Long: `Run paces a loop at --interval until interrupted (SIGINT/SIGTERM),
until --count cycles have elapsed, or until the first timing fault unless
--tolerate is set. The optional argument gives the interval in seconds.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		if len(args) == 1 {
			secs, err := strconv.ParseFloat(args[0], 64)
			if err != nil || secs <= 0 {
				return fmt.Errorf("invalid interval %q: want seconds > 0", args[0])
			}
			v.Set("interval", time.Duration(secs*float64(time.Second)))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		log.SetLevel(cfg.LogLevel)

		c := cancel.NewAtomic()
		watch := cancel.OnSignal(c, os.Interrupt, syscall.SIGTERM)
		defer watch.Stop()

		err = run(cfg, c, cmd.OutOrStdout())
		if sig := watch.Signal(); sig != nil {
			log.WithField("signal", sig).Info("stopped by signal")
		}
		return err
	},
}

// row is what the loop hands to the output goroutine for each cycle.
type row struct {
	sample timer.Sample
	snap   stats.Snapshot
}

// output drains rows written by the control loop into CSV.
type output struct {
	q    *queue.RingBuffer[row]
	csv  *report.CSVWriter
	wake chan struct{}
	stop chan struct{}
	done chan error
}

func newOutput(w io.Writer, size int) *output {
	o := &output{
		q:    queue.NewRingBuffer[row](size),
		csv:  report.NewCSVWriter(w),
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan error, 1),
	}
	go o.consume()
	return o
}

// offer is called from the control loop. It never blocks.
func (o *output) offer(r row) {
	o.q.Offer(r)
	select {
	case o.wake <- struct{}{}:
	default:
	}
}

func (o *output) consume() {
	var err error
	write := func(r row) {
		if err == nil {
			err = o.csv.Write(r.sample, r.snap)
		}
	}
	for {
		select {
		case <-o.wake:
			o.q.Drain(write)
			if err == nil {
				err = o.csv.Flush()
			}
		case <-o.stop:
			o.q.Drain(write)
			if ferr := o.csv.Flush(); err == nil {
				err = ferr
			}
			o.done <- err
			return
		}
	}
}

func (o *output) close() error {
	close(o.stop)
	return <-o.done
}

func serveMetrics(addr string, e *metrics.Exporter) *http.Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(e)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		log.WithField("addr", addr).Info("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics listener failed")
		}
	}()
	return srv
}

// snapshot returns the timer statistics, or a zero Snapshot and false when
// the timer was built without them.
func snapshot(t *timer.Timer) (stats.Snapshot, bool) {
	snap, err := t.Stats()
	if errors.Is(err, timer.ErrStatsDisabled) {
		return stats.Snapshot{}, false
	}
	if err != nil {
		log.WithError(err).Warn("reading timer statistics")
		return stats.Snapshot{}, false
	}
	return snap, true
}

// run executes the control loop on the calling goroutine.
func run(cfg config.Config, c cancel.Canceler, stdout io.Writer) error {
	opts, err := cfg.TimerOptions(log.StandardLogger())
	if err != nil {
		return err
	}
	t, err := timer.New(cfg.Interval, cfg.MaxWait, opts...)
	if err != nil {
		return err
	}

	if cfg.RealTime {
		if err := t.EnableRealTimeScheduling(); err != nil {
			log.WithError(err).Warn("continuing without real-time scheduling")
		}
	}
	fmt.Fprint(os.Stderr, t)

	var exporter *metrics.Exporter
	if cfg.MetricsAddr != "" {
		exporter = metrics.NewExporter(prometheus.Labels{"interval": cfg.Interval.String()})
		srv := serveMetrics(cfg.MetricsAddr, exporter)
		defer func() {
			ctx, cancelShutdown := context.WithTimeout(context.Background(), time.Second)
			defer cancelShutdown()
			if err := srv.Shutdown(ctx); err != nil {
				log.WithError(err).Warn("metrics listener shutdown")
			}
		}()
	}

	var out *output
	if cfg.CSV {
		out = newOutput(stdout, cfg.QueueSize)
	}

	if err := t.Start(); err != nil {
		if out != nil {
			out.close()
		}
		return err
	}
	defer t.Stop()

	var rec *record.Writer
	if cfg.Record != "" {
		rec, err = record.Create(cfg.Record, record.NewHeader(t.Config(), t.Mode()))
		if err != nil {
			if out != nil {
				out.close()
			}
			return err
		}
		defer rec.Close()
	}

	lg := log.WithFields(log.Fields{"mode": t.Mode(), "real_time": t.RealTime()})
	lg.Info("timer started")

	counts := make(map[string]uint64)
	var runErr error
	for !c.Done() {
		if cfg.Work > 0 {
			time.Sleep(cfg.Work)
		}

		err := t.WaitOrError()
		s := t.LastSample()
		snap, _ := snapshot(t)
		counts[s.Result.String()]++

		if exporter != nil {
			exporter.Observe(s, snap)
		}
		if rec != nil {
			if werr := rec.Write(s); werr != nil {
				lg.WithError(werr).Error("recording stopped")
				rec.Close()
				rec = nil
			}
		}
		if out != nil {
			out.offer(row{sample: s, snap: snap})
		}

		if err != nil {
			if !errors.Is(err, timer.ErrCycle) {
				runErr = err
				break
			}
			lg.WithFields(log.Fields{"seq": s.Seq, "dt": s.DT, "result": s.Result}).Warn(err)
			if !cfg.Tolerate {
				runErr = err
				break
			}
		}
		if cfg.Count > 0 && s.Seq >= cfg.Count {
			break
		}
	}

	sum := report.Summary{
		Interval: cfg.Interval,
		MaxWait:  cfg.MaxWait,
		Mode:     t.Mode().String(),
		RealTime: t.RealTime(),
		Cycles:   t.LastSample().Seq,
		Results:  counts,
		Unit:     report.UnitName(cfg.Unit),
	}
	if snap, ok := snapshot(t); ok {
		sum.Stats = &snap
	}
	if out != nil {
		if err := out.close(); err != nil {
			lg.WithError(err).Error("writing rows failed")
		}
		sum.Dropped = out.q.Dropped()
		fmt.Fprintln(stdout)
	}
	if err := report.WriteSummary(stdout, cfg.Format, sum); err != nil {
		return err
	}
	return runErr
}
