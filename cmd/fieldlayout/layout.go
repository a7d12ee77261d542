package main

import (
	"context"
	"io"

	"github.com/flexile/fieldlayout"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout <form-id>",
	Short: "Print the grouped layout of a form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		render, _ := cmd.Flags().GetBool("render")

		engine, cleanup, err := setupEngine(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		return runLayout(cmd.Context(), cmd.OutOrStdout(), engine, args[0], format, render)
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().String("format", formatJSON, "Output format: json, text, markdown, mermaid")
	layoutCmd.Flags().Bool("render", false, "Render as styled markdown when writing to a terminal")
}

func runLayout(ctx context.Context, w io.Writer, engine *fieldlayout.Engine, id, format string, render bool) error {
	form, err := engine.Form(ctx, id)
	if err != nil {
		return err
	}
	layout, err := engine.Layout(ctx, id)
	if err != nil {
		return err
	}

	if render {
		return renderMarkdown(w, form, layout)
	}
	return writeLayout(w, format, form, layout)
}
