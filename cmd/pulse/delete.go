// ABOUTME: CLI command for deleting records.
// ABOUTME: Supports deletion by full ID or ID prefix.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pulsekit/pulse/internal/models"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <type> <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a record",
	Long: `Delete a record by its ID or ID prefix.

You can use either the full UUID or just the first few characters.
The ID prefix is shown in the first column of 'pulse list' output.

EXAMPLES:

  pulse delete workout abc12345     # Delete by 8-char prefix
  pulse rm sleep abc1               # Short prefix (if unique)

CAUTION:

  This permanently deletes the record. There is no undo.
  If the prefix matches multiple records, an error is returned.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidRecordType(args[0]) {
			return fmt.Errorf("unknown record type: %s (use recovery, sleep, workout, nutrition, or body)", args[0])
		}

		if err := repo.DeleteRecord(models.RecordType(args[0]), args[1]); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}

		color.Yellow("✗ Deleted %s record %s", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
