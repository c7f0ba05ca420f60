// Package main provides the carbon_agent command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/terrago/carbon-advisor/internal/config"
	"github.com/terrago/carbon-advisor/internal/logging"
)

var (
	configPath string
	logLevel   string

	// appConfig and logger are set before any subcommand runs
	appConfig *config.Config
	logger    zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "carbon_agent",
	Short: "Household carbon footprint calculator and action advisor",
	Long: `carbon_agent estimates a household's annual CO2e footprint from a short profile
(postcode, adults, cars, fuel type, weekly trips, diet, solar) and recommends
eight small, low-cost actions to reduce it.

Configuration can be loaded from a JSON or YAML file using --config. Environment
variables (and a .env file) override the file; flags override both.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	appConfig = cfg

	logger = logging.Init(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    cmd.ErrOrStderr(),
	})
	cmd.SetContext(logging.WithContext(cmd.Context(), logger))
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
