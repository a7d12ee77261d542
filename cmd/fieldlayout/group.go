package main

import (
	"fmt"
	"io"
	"os"

	"github.com/flexile/fieldlayout"
	"github.com/flexile/fieldlayout/pkg/adapters/loam"
	"github.com/flexile/fieldlayout/pkg/domain"
	"github.com/flexile/fieldlayout/pkg/grouping"
	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Group an ad hoc list of fields",
	Long: `Reads a list of fields (JSON or YAML, or "-" for JSON on stdin) and prints
the grouped layout. Without --pair the configured default pairs apply.`,
	Example: `  fieldlayout group --file fields.yaml --pair abartn,accountNumber --format text`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		specs, _ := cmd.Flags().GetStringArray("pair")
		format, _ := cmd.Flags().GetString("format")

		engine, cleanup, err := setupEngine(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		fields, err := readFields(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}

		var pairs []grouping.Pair
		if len(specs) > 0 {
			if pairs, err = grouping.ParsePairs(specs); err != nil {
				return err
			}
		}

		return runGroup(cmd.OutOrStdout(), engine, fields, pairs, format)
	},
}

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.Flags().StringP("file", "f", "", "Fields file (.json, .yaml) or - for stdin")
	groupCmd.Flags().StringArray("pair", nil, "Pair rule as key1,key2 (repeatable)")
	groupCmd.Flags().String("format", formatJSON, "Output format: json, text, markdown, mermaid")
	_ = groupCmd.MarkFlagRequired("file")
}

func readFields(stdin io.Reader, path string) ([]domain.Field, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return loam.ParseFields("stdin.json", data)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fields: %w", err)
	}
	return loam.ParseFields(path, data)
}

func runGroup(w io.Writer, engine *fieldlayout.Engine, fields []domain.Field, pairs []grouping.Pair, format string) error {
	layout := engine.Group(fields, pairs)
	return writeLayout(w, format, domain.Form{ID: "fields"}, layout)
}
