package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/circuitlab/dcsim/internal/logging"
)

var (
	logLevel  string
	logFormat string
	version   = "dev" // set by build flags
)

var rootCmd = &cobra.Command{
	Use:     "dcsimctl",
	Short:   "Drive the DC circuit solver core from the command line",
	Long:    `dcsimctl loads a persisted circuit, runs the MNA solver or a goal-seek search over it, and prints the result.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log output format (console, json)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(goalseekCmd)
	rootCmd.AddCommand(validateCmd)
}

// newLogger builds the CLI's logger from DCSIM_LOG_LEVEL/DCSIM_LOG_FORMAT
// (logging.FromEnv), then lets --log-level/--log-format override whichever
// of those the caller actually passed on the command line.
func newLogger() zerolog.Logger {
	cfg := logging.FromEnv()
	cfg.Output = os.Stderr

	if rootCmd.PersistentFlags().Changed("log-level") {
		if level, err := zerolog.ParseLevel(logLevel); err == nil {
			cfg.Level = level
		}
	}
	if rootCmd.PersistentFlags().Changed("log-format") {
		cfg.Format = logging.FormatConsole
		if logFormat == "json" {
			cfg.Format = logging.FormatJSON
		}
	}

	return logging.New(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
