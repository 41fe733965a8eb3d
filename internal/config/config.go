// Package config loads the settings of the periodic binary from flags,
// PERIODIC_* environment variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/randomizedcoder/periodic/internal/clock"
	"github.com/randomizedcoder/periodic/internal/report"
	"github.com/randomizedcoder/periodic/internal/stats"
	"github.com/randomizedcoder/periodic/internal/timer"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PERIODIC"

// DefaultName is the config file searched for in $HOME, without extension.
const DefaultName = ".periodic"

// DefaultInterval is the cycle duration when none is configured.
const DefaultInterval = 100 * time.Millisecond

// MaxWaitFactor derives the default max wait from the interval.
const MaxWaitFactor = 1.1

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Config is the resolved configuration of one run.
type Config struct {
	Interval time.Duration
	MaxWait  time.Duration

	Strategy timer.Strategy
	Stats    bool
	Unit     time.Duration
	TETMode  stats.TETMode
	RealTime bool
	Priority int
	Clock    string

	Work     time.Duration
	Count    uint64
	Tolerate bool

	Format      report.Format
	CSV         bool
	QueueSize   int
	Record      string
	MetricsAddr string

	LogLevel logrus.Level
}

// AddFlags registers the run flags on fs. Bind them with v.BindPFlags once
// the command that owns fs is selected.
func AddFlags(fs *pflag.FlagSet) {
	fs.Duration("interval", DefaultInterval, "nominal cycle duration")
	fs.Duration("max-wait", 0, "longest tolerable cycle (default 1.1 x interval)")
	fs.String("strategy", "auto", "wake-up strategy: auto|absolute|signal")
	fs.Bool("stats", true, "accumulate cycle statistics")
	fs.Duration("unit", time.Second, "unit of reported statistics")
	fs.String("tet-mode", "mean", "task execution time statistic: mean|legacy")
	fs.Bool("realtime", true, "request SCHED_FIFO scheduling")
	fs.Int("priority", timer.DefaultPriority, "SCHED_FIFO priority (1-99)")
	fs.String("clock", "monotonic", "cycle clock: monotonic|std|tsc")
	fs.Duration("work", 0, "simulated work per cycle")
	fs.Uint64("count", 0, "stop after this many cycles (0 runs until interrupted)")
	fs.Bool("tolerate", false, "keep running through timing faults")
	fs.String("format", "text", "summary format: text|yaml")
	fs.Bool("csv", true, "write one CSV row per cycle to stdout")
	fs.Int("queue-size", 1024, "rows buffered between the loop and the output writer")
	fs.String("record", "", "write a CBOR cycle trace to this file")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
}

// InitViper configures env lookup and reads cfgFile, or $HOME/.periodic.yaml
// when cfgFile is empty. A missing default file is not an error. It returns
// the file used, if any.
func InitViper(v *viper.Viper, cfgFile string) (string, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return "", err
		}
		v.AddConfigPath(home)
		v.SetConfigName(DefaultName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("config: read %s: %w", cfgFile, err)
	}
	return v.ConfigFileUsed(), nil
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	c := Config{
		Interval:    v.GetDuration("interval"),
		MaxWait:     v.GetDuration("max-wait"),
		Stats:       v.GetBool("stats"),
		Unit:        v.GetDuration("unit"),
		RealTime:    v.GetBool("realtime"),
		Priority:    v.GetInt("priority"),
		Clock:       v.GetString("clock"),
		Work:        v.GetDuration("work"),
		Count:       v.GetUint64("count"),
		Tolerate:    v.GetBool("tolerate"),
		CSV:         v.GetBool("csv"),
		QueueSize:   v.GetInt("queue-size"),
		Record:      v.GetString("record"),
		MetricsAddr: v.GetString("metrics-addr"),
		LogLevel:    logrus.InfoLevel,
	}

	if c.Interval <= 0 {
		return c, fmt.Errorf("%w: interval %v must be > 0", ErrInvalid, c.Interval)
	}
	if c.MaxWait == 0 {
		c.MaxWait = time.Duration(float64(c.Interval) * MaxWaitFactor)
	}
	if c.MaxWait < 0 {
		return c, fmt.Errorf("%w: max-wait %v must be > 0", ErrInvalid, c.MaxWait)
	}
	if c.Unit <= 0 {
		return c, fmt.Errorf("%w: unit %v must be > 0", ErrInvalid, c.Unit)
	}
	if c.Work < 0 {
		return c, fmt.Errorf("%w: work %v must be >= 0", ErrInvalid, c.Work)
	}
	if c.QueueSize < 1 {
		return c, fmt.Errorf("%w: queue-size %d must be >= 1", ErrInvalid, c.QueueSize)
	}
	if c.Priority < 1 || c.Priority > 99 {
		return c, fmt.Errorf("%w: priority %d out of range 1-99", ErrInvalid, c.Priority)
	}

	var err error
	if c.Strategy, err = timer.ParseStrategy(v.GetString("strategy")); err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var ok bool
	if c.TETMode, ok = stats.ParseTETMode(v.GetString("tet-mode")); !ok {
		return c, fmt.Errorf("%w: unknown tet-mode %q", ErrInvalid, v.GetString("tet-mode"))
	}
	if c.Format, err = report.ParseFormat(v.GetString("format")); err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch c.Clock {
	case "", "monotonic", "std", "tsc":
	default:
		return c, fmt.Errorf("%w: unknown clock %q", ErrInvalid, c.Clock)
	}
	if lvl := v.GetString("log-level"); lvl != "" {
		if c.LogLevel, err = logrus.ParseLevel(lvl); err != nil {
			return c, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	return c, nil
}

// TimerOptions translates c into timer options.
func (c Config) TimerOptions(log logrus.FieldLogger) ([]timer.Option, error) {
	clk, err := clock.ByName(c.Clock)
	if err != nil {
		return nil, err
	}
	return []timer.Option{
		timer.WithStats(c.Stats),
		timer.WithUnit(c.Unit),
		timer.WithTETMode(c.TETMode),
		timer.WithStrategy(c.Strategy),
		timer.WithPriority(c.Priority),
		timer.WithClock(clk),
		timer.WithLogger(log),
	}, nil
}
