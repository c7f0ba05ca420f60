package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terrago/carbon-advisor/internal/household"
	"github.com/terrago/carbon-advisor/internal/pipeline"
	"github.com/terrago/carbon-advisor/internal/rewriting"
	schemafiles "github.com/terrago/carbon-advisor/schemas"
)

var actionsCmd = &cobra.Command{
	Use:   "actions INPUT OUTPUT",
	Short: "Recommend eight low-cost actions for a household",
	Long: `Reads a household profile (JSON or YAML) and writes {"actions": [...]} with eight
short recommendations to OUTPUT.

With --rewrite the sentences are restyled by a text generation provider. The same
actions are always returned in the same order; if the provider fails the catalog
text is used.`,
	Args: cobra.ExactArgs(2),
	RunE: runActions,
}

var (
	actionsRewrite  bool
	actionsProvider string
	actionsModel    string
)

func init() {
	actionsCmd.Flags().BoolVar(&actionsRewrite, "rewrite", false, "Restyle the sentences with an LLM (needs an API key)")
	actionsCmd.Flags().StringVar(&actionsProvider, "provider", "", "LLM provider: openai or gemini (defaults to LLM_PROVIDER or openai)")
	actionsCmd.Flags().StringVar(&actionsModel, "model", "", "Model override (defaults to OPENAI_MODEL / GEMINI_MODEL)")

	rootCmd.AddCommand(actionsCmd)
}

func runActions(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]
	ctx := cmd.Context()

	var renderer rewriting.Renderer = rewriting.FixedRenderer{}
	if actionsRewrite || appConfig.Rewrite {
		r, closeRenderer, err := newRenderer(ctx, actionsProvider, actionsModel)
		if err != nil {
			return err
		}
		defer closeRenderer()
		renderer = r
	}

	profile, err := household.Load(input)
	if err != nil {
		return err
	}

	assessment, err := pipeline.Assess(ctx, profile, pipeline.Options{Renderer: renderer})
	if err != nil {
		return fmt.Errorf("failed to select actions: %w", err)
	}

	data, err := json.MarshalIndent(assessment.Actions.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}
	checkOutput(cmd, schemafiles.Actions, data)

	logger.Debug().
		Str("renderer", assessment.Renderer).
		Int("count", len(assessment.Actions.Actions)).
		Msg("actions selected")

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote actions to %s\n", output)
	return nil
}
