package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terrago/carbon-advisor/internal/household"
	"github.com/terrago/carbon-advisor/internal/pipeline"
	"github.com/terrago/carbon-advisor/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch -o DIR FILE...",
	Short: "Assess many households concurrently",
	Long: `Assesses every household profile given on the command line and writes one
<name>.assessment.json per input to the output directory. All inputs are loaded
before any work starts; the first failure stops the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchOutputDir   string
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringVarP(&batchOutputDir, "out-dir", "o", "", "Directory for the assessment files (required)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Assessments to run at once (defaults to BATCH_CONCURRENCY or 4)")

	if err := batchCmd.MarkFlagRequired("out-dir"); err != nil {
		panic(fmt.Sprintf("failed to mark out-dir flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

// assessmentFileName maps profiles/home.json to home.assessment.json
func assessmentFileName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".assessment.json"
}

func runBatch(cmd *cobra.Command, args []string) error {
	outputs := make(map[string]string, len(args))
	profiles := make([]*types.HouseholdProfile, 0, len(args))
	for _, input := range args {
		name := assessmentFileName(input)
		if prev, ok := outputs[name]; ok {
			return fmt.Errorf("%s and %s would both write %s", prev, input, name)
		}
		outputs[name] = input

		profile, err := household.Load(input)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		profiles = append(profiles, profile)
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = appConfig.Concurrency
	}

	opts := pipeline.Options{
		OnProgress: func(event pipeline.ProgressEvent) {
			logger.Debug().Str("step", event.Step).Msg(event.Message)
		},
	}
	assessments, err := pipeline.AssessBatch(cmd.Context(), profiles, opts, concurrency)
	if err != nil {
		var batchErr *pipeline.BatchError
		if errors.As(err, &batchErr) {
			return fmt.Errorf("%s: %w", args[batchErr.Index], batchErr.Cause)
		}
		return fmt.Errorf("batch failed: %w", err)
	}

	for i, assessment := range assessments {
		data, err := json.MarshalIndent(assessment, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := writeOutput(filepath.Join(batchOutputDir, assessmentFileName(args[i])), data); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d assessments to %s\n", len(assessments), batchOutputDir)
	return nil
}
