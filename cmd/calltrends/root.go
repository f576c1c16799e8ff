package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"call-insights-go/internal/config"
	"call-insights-go/internal/dataset"
	"call-insights-go/internal/logger"
	"call-insights-go/internal/types"
)

// app holds what every subcommand needs once setup has run.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	records []types.CallRecord
	summary dataset.Summary
}

var state = &app{}

var rootCmd = &cobra.Command{
	Use:                "calltrends",
	Short:              "Explore call topic trends by skill group and time of day.",
	Long:               `calltrends loads a call dataset and shows which topics callers raise, when they raise them, and sample calls behind each trend.`,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PersistentPreRunE:  setup,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(skillGroupsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(callCmd)

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default .callinsights.yaml)")
	rootCmd.PersistentFlags().String("dataset", "", "Dataset path or http(s) URL (.csv, .xlsx, .parquet)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().Int("min-values", 0, "Minimum calls a bucket or selection needs to be shown")
}

// setup resolves config from file, env and flags, then loads the dataset.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	configFile, _ := flags.GetString("config")

	v, err := config.NewViper(configFile)
	if err != nil {
		return err
	}
	bindings := map[string]string{
		"dataset_path":        "dataset",
		"log_level":           "log-level",
		"min_values_required": "min-values",
	}
	for key, name := range bindings {
		if f := flags.Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	state.cfg = cfg
	state.log = logger.NewWithOutput(cfg.Environment, cfg.LogLevel, os.Stderr).Component("cli")

	records, err := dataset.Load(cmd.Context(), cfg.DatasetPath, dataset.Options{FetchTimeout: cfg.FetchTimeout, Log: state.log})
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	state.records = records
	state.summary = dataset.Summarize(records)
	return nil
}
