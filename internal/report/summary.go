package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/randomizedcoder/periodic/internal/stats"
	"github.com/randomizedcoder/periodic/internal/timer"
)

// Format selects the summary layout.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat parses "text" or "yaml".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("report: unknown format %q", s)
	}
}

// Summary describes a finished run.
type Summary struct {
	Interval time.Duration     `yaml:"interval"`
	MaxWait  time.Duration     `yaml:"max_wait"`
	Mode     string            `yaml:"mode"`
	RealTime bool              `yaml:"real_time"`
	Cycles   uint64            `yaml:"cycles"`
	Results  map[string]uint64 `yaml:"results,omitempty"`
	Dropped  uint64            `yaml:"dropped_rows,omitempty"`
	Unit     string            `yaml:"unit"`
	Stats    *stats.Snapshot   `yaml:"stats,omitempty"`
}

// UnitName returns the short name of a statistics unit.
func UnitName(unit time.Duration) string {
	switch unit {
	case time.Second:
		return "sec"
	case time.Millisecond:
		return "ms"
	case time.Microsecond:
		return "us"
	case time.Nanosecond:
		return "ns"
	default:
		return unit.String()
	}
}

// WriteSummary writes s to w in the requested format.
func WriteSummary(w io.Writer, f Format, s Summary) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return writeText(w, s)
	default:
		return fmt.Errorf("report: unknown format %q", f)
	}
}

func writeText(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Timer stopped after %d cycles.\n", s.Cycles)
	fmt.Fprintf(tw, "Interval:\t%v\n", s.Interval)
	fmt.Fprintf(tw, "Max wait:\t%v\n", s.MaxWait)
	fmt.Fprintf(tw, "Mode:\t%s\n", s.Mode)
	fmt.Fprintf(tw, "Real-time:\t%t\n", s.RealTime)
	for _, r := range timer.Results {
		if n, ok := s.Results[r.String()]; ok {
			fmt.Fprintf(tw, "Cycles %s:\t%d\n", r, n)
		}
	}
	if s.Dropped > 0 {
		fmt.Fprintf(tw, "Dropped rows:\t%d\n", s.Dropped)
	}
	if st := s.Stats; st != nil {
		fmt.Fprintf(tw, "Events:\t%d\n", st.N)
		if st.Warm() {
			fmt.Fprintf(tw, "Min time:\t%g %s\n", st.Min, s.Unit)
			fmt.Fprintf(tw, "Max time:\t%g %s\n", st.Max, s.Unit)
		}
		fmt.Fprintf(tw, "Mean time:\t%g %s\n", st.Mean, s.Unit)
		fmt.Fprintf(tw, "Mean TET:\t%g %s\n", st.TET, s.Unit)
		fmt.Fprintf(tw, "Standard deviation:\t%g %s\n", st.SD, s.Unit)
		if st.Warm() {
			fmt.Fprintf(tw, "p50 / p95 / p99:\t%g / %g / %g %s\n", st.P50, st.P95, st.P99, s.Unit)
		}
	}
	return tw.Flush()
}
