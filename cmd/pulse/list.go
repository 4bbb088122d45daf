// ABOUTME: CLI commands for listing records and aligned days.
// ABOUTME: 'list' shows raw records per type; 'days' shows the daily join.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pulsekit/pulse/internal/align"
	"github.com/pulsekit/pulse/internal/models"
	"github.com/pulsekit/pulse/internal/storage"
	"github.com/spf13/cobra"
)

var (
	listLimit int
	listSince string

	daysLimit int
)

var listCmd = &cobra.Command{
	Use:     "list <type>",
	Aliases: []string{"ls"},
	Short:   "List records of a type",
	Long: `List recent records of one type, most recent first.

Each line starts with an 8-character ID prefix you can pass to
'pulse delete'.

TYPES:

  recovery, sleep, workout, nutrition, body

EXAMPLES:

  pulse list recovery               # Last 20 recovery readings
  pulse list workout -n 50          # Last 50 workouts
  pulse list sleep --since 2026-08-01`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"recovery", "sleep", "workout", "nutrition", "body"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidRecordType(args[0]) {
			return fmt.Errorf("unknown record type: %s (use recovery, sleep, workout, nutrition, or body)", args[0])
		}

		var since time.Time
		if listSince != "" {
			var err error
			since, err = time.Parse("2006-01-02", listSince)
			if err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", listSince)
			}
		}

		return listRecords(models.RecordType(args[0]), since, listLimit)
	},
}

func listRecords(rt models.RecordType, since time.Time, limit int) error {
	faint := color.New(color.Faint)
	count := 0

	line := func(id, date, detail string, notes *string) {
		suffix := ""
		if notes != nil && *notes != "" {
			suffix = faint.Sprintf(" (%s)", truncate(*notes, 30))
		}
		fmt.Printf("%s %s %s%s\n", faint.Sprint(id[:8]), faint.Sprint(date), detail, suffix)
		count++
	}

	switch rt {
	case models.RecordRecovery:
		records, err := repo.ListRecoveries(since, limit)
		if err != nil {
			return fmt.Errorf("failed to list recoveries: %w", err)
		}
		for _, r := range records {
			detail := fmt.Sprintf("recovery %.0f  hrv %.0fms  rhr %.0fbpm",
				r.RecoveryScore, r.HRVMilli, r.RestingHeartRate)
			line(r.ID.String(), r.RecordedOn.Format("2006-01-02"), detail, r.Notes)
		}
	case models.RecordSleep:
		records, err := repo.ListSleeps(since, limit)
		if err != nil {
			return fmt.Errorf("failed to list sleeps: %w", err)
		}
		for _, s := range records {
			detail := fmt.Sprintf("sleep %.1fh  efficiency %.0f%%", s.Hours(), s.Efficiency)
			line(s.ID.String(), s.RecordedOn.Format("2006-01-02"), detail, s.Notes)
		}
	case models.RecordWorkout:
		records, err := repo.ListWorkouts(since, limit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}
		for _, w := range records {
			detail := fmt.Sprintf("%s  strain %.0f  %.0fmin", padRight(w.Kind, 10), w.Strain, w.DurationMinutes)
			line(w.ID.String(), w.RecordedOn.Format("2006-01-02"), detail, w.Notes)
		}
	case models.RecordNutrition:
		records, err := repo.ListNutrition(since, limit)
		if err != nil {
			return fmt.Errorf("failed to list nutrition: %w", err)
		}
		for _, n := range records {
			detail := fmt.Sprintf("%.0f kcal  p%.0f c%.0f f%.0f", n.Calories, n.Protein, n.Carbs, n.Fats)
			line(n.ID.String(), n.RecordedOn.Format("2006-01-02"), detail, n.Notes)
		}
	case models.RecordBody:
		records, err := repo.ListBody(since, limit)
		if err != nil {
			return fmt.Errorf("failed to list body records: %w", err)
		}
		for _, b := range records {
			parts := []string{}
			if b.Weight != nil {
				parts = append(parts, fmt.Sprintf("weight %.1fkg", *b.Weight))
			}
			if b.Adherence != nil {
				parts = append(parts, fmt.Sprintf("adherence %.0f%%", *b.Adherence))
			}
			line(b.ID.String(), b.RecordedOn.Format("2006-01-02"), strings.Join(parts, "  "), b.Notes)
		}
	}

	if count == 0 {
		fmt.Println("No records found.")
	}
	return nil
}

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "Show aligned daily metrics",
	Long: `Show the daily metric join: one row per date with every metric that
has data that day. Nutrition entries and workouts are summed per day;
other sources keep the latest value.

EXAMPLES:

  pulse days           # Last 14 days
  pulse days -n 30     # Last 30 days`,
	RunE: func(cmd *cobra.Command, args []string) error {
		since := time.Now().UTC().AddDate(0, 0, -cfg.GetAnalysisWindowDays())
		recs, err := storage.LoadRecords(repo, since)
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		days := align.Align(recs)
		if len(days) == 0 {
			fmt.Println("No data found.")
			return nil
		}
		if len(days) > daysLimit {
			days = days[len(days)-daysLimit:]
		}

		faint := color.New(color.Faint)
		for i := len(days) - 1; i >= 0; i-- {
			d := days[i]
			fmt.Println(color.New(color.Bold).Sprint(d.Date.Format("2006-01-02")))
			for _, m := range align.AllMetrics {
				if v, ok := d.Value(m); ok {
					fmt.Printf("  %s %.1f %s\n", padRight(string(m), 16), v, faint.Sprint(align.MetricUnits[m]))
				}
			}
			if d.StrengthSessions > 0 {
				fmt.Printf("  %s %d\n", padRight("strength", 16), d.StrengthSessions)
			}
		}
		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	listCmd.Flags().StringVar(&listSince, "since", "", "only include records since date (YYYY-MM-DD)")
	daysCmd.Flags().IntVarP(&daysLimit, "limit", "n", 14, "max number of days")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(daysCmd)
}
