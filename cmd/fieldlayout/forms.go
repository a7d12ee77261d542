package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/flexile/fieldlayout"
	"github.com/spf13/cobra"
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List the available forms",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cleanup, err := setupEngine(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		return runForms(cmd.Context(), cmd.OutOrStdout(), engine)
	},
}

func init() {
	rootCmd.AddCommand(formsCmd)
}

func runForms(ctx context.Context, w io.Writer, engine *fieldlayout.Engine) error {
	ids, err := engine.Forms(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tFIELDS")
	for _, id := range ids {
		form, err := engine.Form(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", form.ID, form.Title, len(form.Fields))
	}
	return tw.Flush()
}
