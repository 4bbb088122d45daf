// ABOUTME: CLI command for importing CSV exports.
// ABOUTME: Record type is detected from the header row; bad rows are skipped.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pulsekit/pulse/internal/importer"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a CSV export",
	Long: `Import records from a CSV file. The record type is detected from the
header row, so wearable and nutrition exports work without flags.

Common wearable headers are recognized directly, e.g. "Recovery score %",
"Heart rate variability (ms)", "Sleep efficiency %", "Activity Strain".

Rows that fail to parse are skipped and reported; the rest import.

EXAMPLES:

  pulse import physiological_cycles.csv
  pulse import meals.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := importer.New(repo).ImportFile(args[0])
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d %s records from %s", result.Imported, result.Type, args[0])
		if result.Skipped > 0 {
			color.Yellow("⚠ Skipped %d rows:", result.Skipped)
			for _, e := range result.Errors {
				fmt.Printf("  %s\n", e)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
