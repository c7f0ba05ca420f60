package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terrago/carbon-advisor/internal/household"
	"github.com/terrago/carbon-advisor/internal/schemas"
	schemafiles "github.com/terrago/carbon-advisor/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a household profile and report every problem",
	Long: `Checks a household profile file without computing anything. JSON files are checked
against the household schema first so that every missing or mistyped field is listed.`,
	RunE: runValidate,
}

var validateInput string

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "Path to household profile file (required)")

	if err := validateCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	ext := strings.ToLower(filepath.Ext(validateInput))
	if ext != ".yaml" && ext != ".yml" {
		err := schemas.ValidateFile(schemafiles.Household, validateInput)
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			for _, fe := range validationErr.Errors {
				_, _ = fmt.Fprintf(out, "  %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("%s: invalid household profile (%d problems)", validateInput, len(validationErr.Errors))
		}
	}

	profile, err := household.Load(validateInput)
	if err != nil {
		var invalid *household.InvalidProfileError
		if errors.As(err, &invalid) {
			_, _ = fmt.Fprintf(out, "  %s: %s\n", invalid.Field, invalid.Message)
			return fmt.Errorf("%s: invalid household profile", validateInput)
		}
		return err
	}

	_, _ = fmt.Fprintf(out, "%s: ok (%s, %d adults, %s diet)\n", validateInput, profile.Postcode, profile.Adults, profile.Diet)
	return nil
}
