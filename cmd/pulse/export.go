// ABOUTME: CLI commands for JSON backup and restore.
// ABOUTME: The export format is shared by every storage backend.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pulsekit/pulse/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON",
	Long: `Export all records as a JSON backup.

The backup is backend-independent: data exported from a sqlite store
restores into a markdown or charm store unchanged.

EXAMPLES:

  pulse export                    # Write JSON to stdout
  pulse export -o backup.json     # Save to file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			f, err := os.OpenFile(exportOutput, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}
			defer f.Close()
			if err := data.WriteJSON(f); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
			color.Green("✓ Exported %d records to %s", data.Count(), exportOutput)
			return nil
		}

		return data.WriteJSON(os.Stdout)
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file.json>",
	Short: "Restore data from a JSON backup",
	Long: `Restore records from a previously exported JSON backup.

Restored records keep their original IDs, so restoring the same backup
twice duplicates nothing on sqlite but is not deduplicated on other
backends. Backups from a newer format version are rejected.

EXAMPLES:

  pulse restore backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		defer f.Close()

		data, err := storage.ReadJSON(f)
		if err != nil {
			return fmt.Errorf("failed to parse backup: %w", err)
		}

		if err := repo.ImportData(data); err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}

		color.Green("✓ Restored %d records from %s", data.Count(), args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(restoreCmd)
}
