// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pulsekit/pulse/internal/analysis"
	"github.com/pulsekit/pulse/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to interact with your pulse data through
a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "pulse": {
        "command": "pulse",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_recovery       Record a daily recovery reading
  log_sleep          Record one night of sleep
  log_workout        Record a training session
  log_meal           Record a meal with macros
  log_body           Record weight and/or adherence
  delete_record      Delete a record by type and ID
  list_days          List recent aligned days
  get_correlations   Compute metric-pair correlations
  get_insights       Run the rule battery
  get_health_score   Compute the composite health score

AVAILABLE RESOURCES:

  pulse://days/recent       Aligned daily metrics
  pulse://report/summary    Full analysis report`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := analysis.Options{Cutoff: cfg.GetCorrelationCutoff()}
		server, err := mcp.NewServer(repo, opts, cfg.GetAnalysisWindowDays())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
