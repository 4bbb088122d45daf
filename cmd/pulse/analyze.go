// ABOUTME: CLI commands for the analysis engine.
// ABOUTME: 'analyze' prints the full report; correlations/insights/score slice it.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/pulsekit/pulse/internal/align"
	"github.com/pulsekit/pulse/internal/analysis"
	"github.com/pulsekit/pulse/internal/storage"
	"github.com/spf13/cobra"
)

var (
	analyzeCutoff float64
	analyzeDays   int
	analyzeJSON   bool
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze",
	Aliases: []string{"report"},
	Short:   "Run the full analysis report",
	Long: `Run the correlation engine and rule battery over the recent window
and print everything: correlations, insights, recommendations, alerts,
and the composite health score.

Correlations use Pearson's r over the days where both metrics have
data. Pairs need at least 3 overlapping days; pairs below the cutoff
are dropped.

EXAMPLES:

  pulse analyze                  # Report over the configured window
  pulse analyze --days 90        # Longer window
  pulse analyze --cutoff 0.3     # Only stronger correlations
  pulse analyze --json           # Machine-readable output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := runAnalysis()
		if err != nil {
			return err
		}

		if analyzeJSON {
			return json.NewEncoder(os.Stdout).Encode(report)
		}

		printScore(report)
		fmt.Println()
		printNotifications(report.Notifications)
		printInsights(report.Insights)
		printRecommendations(report.Recommendations)
		printCorrelations(report.Notable, "NOTABLE CORRELATIONS")
		return nil
	},
}

var correlationsCmd = &cobra.Command{
	Use:   "correlations",
	Short: "Show metric-pair correlations",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := runAnalysis()
		if err != nil {
			return err
		}

		if analyzeJSON {
			return json.NewEncoder(os.Stdout).Encode(report.Correlations)
		}
		printCorrelations(report.Correlations, "CORRELATIONS")
		return nil
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show insights, recommendations, and alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := runAnalysis()
		if err != nil {
			return err
		}

		if analyzeJSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"insights":        report.Insights,
				"recommendations": report.Recommendations,
				"notifications":   report.Notifications,
			})
		}
		printNotifications(report.Notifications)
		printInsights(report.Insights)
		printRecommendations(report.Recommendations)
		if len(report.Insights) == 0 && len(report.Recommendations) == 0 && len(report.Notifications) == 0 {
			fmt.Println("No insights yet. Log a few more days of data.")
		}
		return nil
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the composite health score",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := runAnalysis()
		if err != nil {
			return err
		}

		if analyzeJSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"score":     report.HealthScore,
				"has_score": report.HasHealthScore,
				"day_count": report.DayCount,
			})
		}
		printScore(report)
		return nil
	},
}

func runAnalysis() (*analysis.Report, error) {
	window := analyzeDays
	if window <= 0 {
		window = cfg.GetAnalysisWindowDays()
	}
	since := time.Now().UTC().AddDate(0, 0, -window)

	recs, err := storage.LoadRecords(repo, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	cutoff := analyzeCutoff
	if cutoff == 0 {
		cutoff = cfg.GetCorrelationCutoff()
	}

	days := align.Align(recs)
	return analysis.Analyze(days, analysis.Options{Cutoff: cutoff}), nil
}

func printScore(report *analysis.Report) {
	if !report.HasHealthScore {
		fmt.Println("Not enough data for a health score yet.")
		return
	}

	c := color.New(color.FgGreen, color.Bold)
	switch {
	case report.HealthScore < 50:
		c = color.New(color.FgRed, color.Bold)
	case report.HealthScore < 70:
		c = color.New(color.FgYellow, color.Bold)
	}
	fmt.Printf("Health score: %s  %s\n",
		c.Sprintf("%.1f/100", report.HealthScore),
		color.New(color.Faint).Sprintf("(%d days)", report.DayCount))
}

func printNotifications(notifications []analysis.Notification) {
	if len(notifications) == 0 {
		return
	}
	color.New(color.Bold).Println("ALERTS")
	for _, n := range notifications {
		marker := color.YellowString("!")
		if n.Level == analysis.LevelCritical {
			marker = color.RedString("!!")
		}
		fmt.Printf("  %s %s: %s\n", marker, n.Title, n.Message)
	}
	fmt.Println()
}

func printInsights(insights []analysis.Insight) {
	if len(insights) == 0 {
		return
	}
	color.New(color.Bold).Println("INSIGHTS")
	for _, in := range insights {
		marker := "•"
		switch in.Level {
		case analysis.LevelSuccess:
			marker = color.GreenString("✓")
		case analysis.LevelWarning:
			marker = color.YellowString("!")
		case analysis.LevelCritical:
			marker = color.RedString("!!")
		}
		fmt.Printf("  %s %s: %s\n", marker, in.Title, in.Message)
	}
	fmt.Println()
}

func printRecommendations(recommendations []analysis.Recommendation) {
	if len(recommendations) == 0 {
		return
	}
	color.New(color.Bold).Println("RECOMMENDATIONS")
	faint := color.New(color.Faint)
	for _, r := range recommendations {
		fmt.Printf("  [%s] %s %s\n", r.Priority, r.Text, faint.Sprintf("(%s)", r.Category))
	}
	fmt.Println()
}

func printCorrelations(correlations []analysis.Correlation, header string) {
	if len(correlations) == 0 {
		fmt.Println("No correlations found. More overlapping data may be needed.")
		return
	}
	color.New(color.Bold).Println(header)
	faint := color.New(color.Faint)
	for _, c := range correlations {
		rStr := fmt.Sprintf("r=%+.2f", c.Coefficient)
		switch c.Strength {
		case analysis.StrengthStrong:
			rStr = color.New(color.FgGreen).Sprint(rStr)
		case analysis.StrengthModerate:
			rStr = color.New(color.FgCyan).Sprint(rStr)
		}
		fmt.Printf("  %s %s × %s %s\n",
			rStr, c.Metric1, c.Metric2,
			faint.Sprintf("(%s %s, n=%d)", c.Strength, c.Direction, c.SampleSize))
		if c.Explanation != "" {
			fmt.Printf("    %s\n", faint.Sprint(c.Explanation))
		}
	}
	fmt.Println()
}

func init() {
	for _, cmd := range []*cobra.Command{analyzeCmd, correlationsCmd, insightsCmd, scoreCmd} {
		cmd.Flags().Float64Var(&analyzeCutoff, "cutoff", 0, "minimum |r| to report (default from config)")
		cmd.Flags().IntVar(&analyzeDays, "days", 0, "analysis window in days (default from config)")
		cmd.Flags().BoolVar(&analyzeJSON, "json", false, "output JSON")
		rootCmd.AddCommand(cmd)
	}
}
