// Package cli implements the giiscope command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/giilab/giiscope/internal/config"
	"github.com/giilab/giiscope/pkg/log"
)

var (
	cfgFile      string
	flagDataPath string
	flagSeed     int64
	flagLogLevel string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "giiscope",
	Short: "Analyze and model the country-level Gender Inequality Index",
	Long: `giiscope loads the UNDP Gender Inequality Index table, cleans it,
engineers gender-gap features, trains a random-forest regressor, and answers
what-if questions about indicator changes.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main().
func Execute() {
	cobra.OnInitialize(initialize)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./giiscope.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDataPath, "data", "", "GII CSV path (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "random seed (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn, or error (overrides config)")
}

func initialize() {
	c, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("data") {
		cfg.DataPath = flagDataPath
	}
	if f.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}

	log.SetupLogger(cfg.LogLevel)
}
