package cmd

import (
	"fmt"
	"os"

	"github.com/rustyeddy/resample/config"
	"github.com/rustyeddy/resample/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "resample",
	Short: "Resample OHLC price bars into coarser timeframes",
	Long: `Resample reads fixed-interval OHLC bars from CSV and merges every N
consecutive bars into one: first open, highest high, lowest low, last close.

It provides tools for:
  - Converting CSV files to JSON, CSV, Parquet or MessagePack
  - Serving an HTTP upload form that returns the converted bars
  - Generating and validating configuration files`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	cfgPath  string
	logLevel string

	cfg    *config.Config
	logger = zap.NewNop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	_ = logger.Sync()
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: off|debug|info|warn|error (overrides config)")
}

// setup loads the configuration and builds the logger before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.Default()
	if cfgPath != "" {
		loaded, err := config.LoadFromFile(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	l, err := logging.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger = l
	return nil
}
