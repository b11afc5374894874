package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/startup-pack-agent/internal/app"
	"github.com/BerylCAtieno/startup-pack-agent/internal/config"
	"github.com/BerylCAtieno/startup-pack-agent/internal/models"
	"github.com/BerylCAtieno/startup-pack-agent/internal/render"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

type generateOptions struct {
	idea        string
	description string
	format      string
	raw         bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a startup pack for an idea",
		Long: `Runs prompt building, the model call and normalization locally and prints
the resulting pack.

Example:
  packgen generate --idea "Dog walking app" --description "On-demand walks for busy owners"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.idea, "idea", "", "Startup idea (required)")
	cmd.Flags().StringVar(&opts.description, "description", "", "Short description of the idea (required)")
	cmd.Flags().StringVar(&opts.format, "format", formatMarkdown, "Output format: markdown or json")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print markdown without terminal styling")
	_ = cmd.MarkFlagRequired("idea")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	if opts.format != formatMarkdown && opts.format != formatJSON {
		return fmt.Errorf("unknown format %q (want markdown or json)", opts.format)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	log, err := cliLogger()
	if err != nil {
		return err
	}
	application, err := app.New(ctx, config.Load(), log)
	if err != nil {
		return err
	}
	defer application.Close()

	pack, err := application.Generator.Generate(ctx, models.GenerationRequest{
		Idea:        opts.idea,
		Description: opts.description,
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return writePack(cmd.OutOrStdout(), pack, opts)
}

func writePack(w io.Writer, pack *models.StartupPack, opts *generateOptions) error {
	if opts.format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pack)
	}

	md := render.Markdown(pack, opts.idea)
	if opts.raw {
		_, err := io.WriteString(w, md)
		return err
	}
	_, err := io.WriteString(w, styleMarkdown(md))
	return err
}

// styleMarkdown renders md for the terminal, falling back to the plain text
// when no renderer can be built.
func styleMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
