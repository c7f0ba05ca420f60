package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terrago/carbon-advisor/internal/household"
	"github.com/terrago/carbon-advisor/internal/observability"
	"github.com/terrago/carbon-advisor/internal/pipeline"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a household's footprint and recommended actions",
	Long:  "Runs a full assessment for one household and prints a summary, or the assessment JSON with --json.",
	RunE:  runReport,
}

var (
	reportInput string
	reportJSON  bool
)

func init() {
	reportCmd.Flags().StringVarP(&reportInput, "input", "i", "", "Path to household profile file (required)")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Print the assessment as JSON")

	if err := reportCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	profile, err := household.Load(reportInput)
	if err != nil {
		return err
	}

	assessment, err := pipeline.Assess(cmd.Context(), profile, pipeline.Options{})
	if err != nil {
		return fmt.Errorf("assessment failed: %w", err)
	}

	if reportJSON {
		data, err := json.MarshalIndent(assessment, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintAssessment(assessment)
	return nil
}
