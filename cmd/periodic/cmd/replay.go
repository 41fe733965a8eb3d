package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/randomizedcoder/periodic/internal/record"
	"github.com/randomizedcoder/periodic/internal/report"
	"github.com/randomizedcoder/periodic/internal/stats"
)

var (
	replayFormat  string
	replayTETMode string
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVar(&replayFormat, "format", "text", "summary format: text|yaml")
	replayCmd.Flags().StringVar(&replayTETMode, "tet-mode", "mean", "task execution time statistic: mean|legacy")
}

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Recompute statistics from a recorded cycle trace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(replayFormat)
		if err != nil {
			return err
		}
		mode, ok := stats.ParseTETMode(replayTETMode)
		if !ok {
			return fmt.Errorf("unknown tet-mode %q", replayTETMode)
		}

		r, err := record.Open(args[0])
		if err != nil {
			return err
		}
		defer r.Close()

		h := r.Header()
		log.WithField("session", h.Session).Debug(h.String())

		acc := stats.New(stats.WithTETMode(mode))
		n, err := record.Replay(r, acc)
		if err != nil {
			return fmt.Errorf("replay %s after %d samples: %w", args[0], n, err)
		}

		snap := acc.Snapshot()
		return report.WriteSummary(cmd.OutOrStdout(), format, report.Summary{
			Interval: h.Interval,
			MaxWait:  h.MaxWait,
			Mode:     h.Mode,
			Cycles:   uint64(n),
			Unit:     report.UnitName(acc.Unit()),
			Stats:    &snap,
		})
	},
}
