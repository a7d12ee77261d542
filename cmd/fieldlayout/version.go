package main

import (
	"fmt"
	"strings"

	"github.com/flexile/fieldlayout"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fieldlayout",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fieldlayout version %s\n", strings.TrimSpace(fieldlayout.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
