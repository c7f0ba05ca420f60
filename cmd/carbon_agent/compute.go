package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terrago/carbon-advisor/internal/footprint"
	"github.com/terrago/carbon-advisor/internal/household"
	schemafiles "github.com/terrago/carbon-advisor/schemas"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Estimate a household's annual CO2e footprint",
	Long: `Reads a household profile (JSON or YAML) and writes {"annual_total_kgco2e": n} to the output file.
With --breakdown the transport, diet and electricity subtotals are included.`,
	RunE: runCompute,
}

var (
	computeInput     string
	computeOutput    string
	computeBreakdown bool
)

func init() {
	computeCmd.Flags().StringVarP(&computeInput, "input", "i", "", "Path to household profile file (required)")
	computeCmd.Flags().StringVarP(&computeOutput, "output", "o", "", "Path to output footprint JSON file (required)")
	computeCmd.Flags().BoolVar(&computeBreakdown, "breakdown", false, "Include the per-category subtotals")

	if err := computeCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}
	if err := computeCmd.MarkFlagRequired("output"); err != nil {
		panic(fmt.Sprintf("failed to mark output flag as required: %v", err))
	}

	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, _ []string) error {
	profile, err := household.Load(computeInput)
	if err != nil {
		return err
	}

	fp, err := footprint.Compute(profile)
	if err != nil {
		return fmt.Errorf("failed to compute footprint: %w", err)
	}

	data, err := json.Marshal(fp.Document(computeBreakdown))
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := writeOutput(computeOutput, data); err != nil {
		return err
	}
	checkOutput(cmd, schemafiles.Footprint, data)

	logger.Debug().
		Str("postcode", profile.Postcode).
		Float64("total_kgco2e", fp.TotalAnnual).
		Msg("footprint computed")

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", computeOutput)
	return nil
}
