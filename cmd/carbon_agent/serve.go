package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terrago/carbon-advisor/internal/rewriting"
	"github.com/terrago/carbon-advisor/internal/server"
)

var (
	servePort    int
	serveRewrite bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the footprint, actions and assessment endpoints.
Assessments are stored when DATABASE_URL is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT or 8080)")
	serveCmd.Flags().BoolVar(&serveRewrite, "rewrite", false, "Restyle action text with the configured LLM provider")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	port := servePort
	if port == 0 {
		port = appConfig.Port
	}

	var renderer rewriting.Renderer
	if serveRewrite || appConfig.Rewrite {
		r, closeRenderer, err := newRenderer(ctx, "", "")
		if err != nil {
			return err
		}
		defer closeRenderer()
		renderer = r
	}

	srv, err := server.New(ctx, server.Config{
		Port:        port,
		DatabaseURL: appConfig.DatabaseURL,
		Renderer:    renderer,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
