package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randomizedcoder/periodic/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "periodic",
	Short: "Drift-free periodic timer for control loops",
	Long: `periodic paces a loop at a fixed nominal rate, classifies late and
overrunning cycles, and reports period, jitter and task execution time.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		used, err := config.InitViper(v, cfgFile)
		if err != nil {
			return err
		}
		lvl, err := log.ParseLevel(v.GetString("log-level"))
		if err != nil {
			return err
		}
		log.SetOutput(os.Stderr)
		log.SetLevel(lvl)
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		if used != "" {
			log.WithField("file", used).Info("using config file")
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	cfgFile string
	v       = viper.New()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.periodic.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace|debug|info|warn|error")
	if err := v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		panic(err)
	}
}
