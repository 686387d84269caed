package main

import (
	"github.com/spf13/cobra"

	"github.com/copyleftdev/STEPPE/internal/logging"
)

var (
	logLevel  string
	logFormat string
	logger    *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "steppe",
	Short: "Benchmark black-box search algorithms on synthetic objectives",
	Long: `STEPPE runs hyperparameter-search algorithms against a catalogue of
synthetic objective functions and records their convergence traces, so
algorithms can be compared on known ground truth.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.NewLogger(&logging.Config{
			Level:  logLevel,
			Format: logFormat,
			Output: "stderr",
		})
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (json, console)")
}
