// ABOUTME: Root Cobra command for pulse CLI.
// ABOUTME: Handles config and storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/pulsekit/pulse/internal/config"
	"github.com/pulsekit/pulse/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg  *config.Config
	repo storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Recovery and training insight tracker",
	Long: `Pulse tracks recovery, sleep, training, nutrition, and body data,
then tells you which of your metrics actually move together.

WHAT IT TRACKS:

  Recovery   recovery score, HRV, resting heart rate
  Sleep      efficiency, hours slept
  Training   workouts with kind, strain, duration
  Nutrition  calories, protein, carbs, fats (per meal, summed per day)
  Body       weight, plan adherence

QUICK START:

  $ pulse log recovery 72 --hrv 48 --rhr 55   # Log this morning's reading
  $ pulse log sleep 88 7.5                    # Efficiency and hours
  $ pulse log workout run --strain 62         # Log a session
  $ pulse log meal 650 --protein 42           # Log a meal
  $ pulse analyze                             # Full report
  $ pulse correlations                        # Just the correlations
  $ pulse score                               # Composite health score

IMPORT:

  Wearable and nutrition CSV exports import directly; the record type
  is detected from the header row:

  $ pulse import physiological_cycles.csv

SYNC:

  With the charm backend, data syncs across devices via Charm Cloud,
  E2E encrypted with your SSH key:

  $ pulse sync link
  $ pulse sync status

MCP INTEGRATION:

  Run 'pulse mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "pulse": { "command": "pulse", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  The backend is set in ~/.config/pulse/config.json: sqlite (default),
  markdown (plain files with frontmatter), or charm (synced KV).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that never touch storage.
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
