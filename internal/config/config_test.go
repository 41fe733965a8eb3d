package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/periodic/internal/config"
	"github.com/randomizedcoder/periodic/internal/report"
	"github.com/randomizedcoder/periodic/internal/stats"
	"github.com/randomizedcoder/periodic/internal/timer"
)

func newViper(t *testing.T, args ...string) *viper.Viper {
	t.Helper()
	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.AddFlags(fs)
	require.NoError(t, v.BindPFlags(fs))
	require.NoError(t, fs.Parse(args))
	return v
}

func TestLoad_Defaults(t *testing.T) {
	c, err := config.Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, c.Interval)
	assert.Equal(t, 110*time.Millisecond, c.MaxWait)
	assert.Equal(t, timer.StrategyAuto, c.Strategy)
	assert.Equal(t, stats.TETMean, c.TETMode)
	assert.Equal(t, report.FormatText, c.Format)
	assert.Equal(t, timer.DefaultPriority, c.Priority)
	assert.True(t, c.Stats)
	assert.True(t, c.RealTime)
	assert.Equal(t, logrus.InfoLevel, c.LogLevel)
}

func TestLoad_Flags(t *testing.T) {
	c, err := config.Load(newViper(t,
		"--interval=10ms", "--max-wait=12ms", "--strategy=signal",
		"--tet-mode=legacy", "--format=yaml", "--count=5", "--work=2ms",
	))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Millisecond, c.Interval)
	assert.Equal(t, 12*time.Millisecond, c.MaxWait)
	assert.Equal(t, timer.StrategySignal, c.Strategy)
	assert.Equal(t, stats.TETLegacy, c.TETMode)
	assert.Equal(t, report.FormatYAML, c.Format)
	assert.Equal(t, uint64(5), c.Count)
	assert.Equal(t, 2*time.Millisecond, c.Work)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][]string{
		"interval":   {"--interval=0s"},
		"max-wait":   {"--max-wait=-1s"},
		"strategy":   {"--strategy=busy"},
		"tet-mode":   {"--tet-mode=median"},
		"format":     {"--format=xml"},
		"clock":      {"--clock=hpet"},
		"priority":   {"--priority=100"},
		"queue-size": {"--queue-size=0"},
		"work":       {"--work=-1ms"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(newViper(t, args...))
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestInitViper_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "periodic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interval: 20ms\nstrategy: absolute\n"), 0644))
	t.Setenv("PERIODIC_MAX_WAIT", "30ms")

	v := newViper(t)
	used, err := config.InitViper(v, path)
	require.NoError(t, err)
	assert.Equal(t, path, used)

	c, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, c.Interval)
	assert.Equal(t, 30*time.Millisecond, c.MaxWait)
	assert.Equal(t, timer.StrategyAbsolute, c.Strategy)
}

func TestInitViper_MissingDefaultFile(t *testing.T) {
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())
	used, err := config.InitViper(viper.New(), "")
	require.NoError(t, err)
	assert.Empty(t, used)
}

func TestInitViper_MissingExplicitFile(t *testing.T) {
	_, err := config.InitViper(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTimerOptions(t *testing.T) {
	c, err := config.Load(newViper(t, "--interval=5ms", "--stats=false", "--clock=std"))
	require.NoError(t, err)

	opts, err := c.TimerOptions(logrus.New())
	require.NoError(t, err)

	tm, err := timer.New(c.Interval, c.MaxWait, opts...)
	require.NoError(t, err)
	_, err = tm.Stats()
	assert.ErrorIs(t, err, timer.ErrStatsDisabled)
}
