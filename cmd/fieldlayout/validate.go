package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/flexile/fieldlayout"
	"github.com/flexile/fieldlayout/pkg/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var validateCmd = &cobra.Command{
	Use:   "validate <form-id>",
	Short: "Validate submitted values against a form",
	Long:  `Checks a JSON or YAML values file against the field rules of a form. Exits with status 1 when any rule fails.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("values")

		engine, cleanup, err := setupEngine(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		values, err := readValues(path)
		if err != nil {
			return err
		}
		return runValidate(cmd.Context(), cmd.OutOrStdout(), engine, args[0], values)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("values", "", "Values file (.json, .yaml)")
	_ = validateCmd.MarkFlagRequired("values")
}

func readValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values: %w", err)
	}

	values := make(map[string]any)
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &values)
	} else {
		err = yaml.Unmarshal(data, &values)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return values, nil
}

func runValidate(ctx context.Context, w io.Writer, engine *fieldlayout.Engine, id string, values map[string]any) error {
	err := engine.Validate(ctx, id, values)
	fieldErrs := schema.FieldErrors(err)
	if len(fieldErrs) == 0 {
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: valid\n", id)
		return nil
	}

	for _, fe := range fieldErrs {
		fmt.Fprintf(w, "  %s: %s\n", fe.Key, fe.Reason)
	}
	return fmt.Errorf("%s: %d validation error(s)", id, len(fieldErrs))
}
