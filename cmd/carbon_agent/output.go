package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/terrago/carbon-advisor/internal/schemas"
)

// writeOutput writes data to path, creating the parent directory first
func writeOutput(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// checkOutput validates a written document against its schema.
// Failures are reported on stderr and never fail the command.
func checkOutput(cmd *cobra.Command, schemaName string, data []byte) {
	err := schemas.ValidateDocument(schemaName, data)
	if err == nil {
		return
	}

	var validationErr *schemas.ValidationError
	var schemaLoadErr *schemas.SchemaLoadError
	switch {
	case errors.As(err, &validationErr):
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: output does not validate against %s: %v\n", schemaName, err)
	case errors.As(err, &schemaLoadErr):
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not validate output against schema (schema loading failed): %v\n", err)
	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not validate output against schema: %v\n", err)
	}
}
