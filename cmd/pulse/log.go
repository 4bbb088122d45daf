// ABOUTME: CLI commands for logging pulse records.
// ABOUTME: One subcommand per record type under 'pulse log'.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/pulsekit/pulse/internal/models"
	"github.com/spf13/cobra"
)

var (
	logDate  string
	logNotes string

	logHRV       float64
	logRestingHR float64

	logStrain   float64
	logDuration float64

	logProtein float64
	logCarbs   float64
	logFats    float64

	logWeight    float64
	logAdherence float64
)

var logCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"l"},
	Short:   "Log a record",
	Long: `Log a record for a day. Each record type has its own subcommand.

All subcommands accept --date (YYYY-MM-DD, default today) and --notes.

EXAMPLES:

  pulse log recovery 72 --hrv 48 --rhr 55
  pulse log sleep 88 7.5
  pulse log workout lift --strain 55 --duration 45
  pulse log meal 650 --protein 42 --carbs 60 --fats 20
  pulse log body --weight 81.2 --adherence 90`,
}

var logRecoveryCmd = &cobra.Command{
	Use:   "recovery <score>",
	Short: "Log a daily recovery reading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid recovery score: %s", args[0])
		}

		date, err := resolveDate(logDate)
		if err != nil {
			return err
		}

		r := models.NewRecovery(date, score, logHRV, logRestingHR)
		if logNotes != "" {
			r.WithNotes(logNotes)
		}

		if err := repo.CreateRecovery(r); err != nil {
			return fmt.Errorf("failed to create recovery: %w", err)
		}

		color.Green("✓ Logged recovery %.0f", score)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(r.ID.String()[:8]),
			r.RecordedOn.Format("2006-01-02"))
		return nil
	},
}

var logSleepCmd = &cobra.Command{
	Use:   "sleep <efficiency> <hours>",
	Short: "Log one night of sleep",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		efficiency, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid efficiency: %s", args[0])
		}
		hours, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid hours: %s", args[1])
		}

		date, err := resolveDate(logDate)
		if err != nil {
			return err
		}

		s := models.NewSleep(date, efficiency, hours*60*60*1000)
		if logNotes != "" {
			s.WithNotes(logNotes)
		}

		if err := repo.CreateSleep(s); err != nil {
			return fmt.Errorf("failed to create sleep: %w", err)
		}

		color.Green("✓ Logged %.1fh sleep at %.0f%% efficiency", hours, efficiency)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(s.ID.String()[:8]),
			s.RecordedOn.Format("2006-01-02"))
		return nil
	},
}

var logWorkoutCmd = &cobra.Command{
	Use:   "workout <kind>",
	Short: "Log a training session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(logDate)
		if err != nil {
			return err
		}

		w := models.NewWorkout(date, args[0], logStrain, logDuration)
		if logNotes != "" {
			w.WithNotes(logNotes)
		}

		if err := repo.CreateWorkout(w); err != nil {
			return fmt.Errorf("failed to create workout: %w", err)
		}

		color.Green("✓ Logged %s workout", w.Kind)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(w.ID.String()[:8]),
			w.RecordedOn.Format("2006-01-02"))
		return nil
	},
}

var logMealCmd = &cobra.Command{
	Use:     "meal <calories>",
	Aliases: []string{"nutrition"},
	Short:   "Log a meal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calories, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid calories: %s", args[0])
		}

		date, err := resolveDate(logDate)
		if err != nil {
			return err
		}

		n := models.NewNutrition(date, calories, logProtein, logCarbs, logFats)
		if logNotes != "" {
			n.WithNotes(logNotes)
		}

		if err := repo.CreateNutrition(n); err != nil {
			return fmt.Errorf("failed to create nutrition entry: %w", err)
		}

		color.Green("✓ Logged %.0f kcal", calories)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(n.ID.String()[:8]),
			n.RecordedOn.Format("2006-01-02"))
		return nil
	},
}

var logBodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Log weight and/or plan adherence",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("weight") && !cmd.Flags().Changed("adherence") {
			return fmt.Errorf("provide --weight and/or --adherence")
		}

		date, err := resolveDate(logDate)
		if err != nil {
			return err
		}

		b := models.NewBody(date)
		if cmd.Flags().Changed("weight") {
			b.WithWeight(logWeight)
		}
		if cmd.Flags().Changed("adherence") {
			b.WithAdherence(logAdherence)
		}
		if logNotes != "" {
			b.WithNotes(logNotes)
		}

		if err := repo.CreateBody(b); err != nil {
			return fmt.Errorf("failed to create body record: %w", err)
		}

		color.Green("✓ Logged body record")
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(b.ID.String()[:8]),
			b.RecordedOn.Format("2006-01-02"))
		return nil
	},
}

// resolveDate parses an optional YYYY-MM-DD flag, defaulting to today.
func resolveDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", s)
	}
	return t, nil
}

func init() {
	logCmd.PersistentFlags().StringVar(&logDate, "date", "", "date of the record (YYYY-MM-DD, default today)")
	logCmd.PersistentFlags().StringVar(&logNotes, "notes", "", "notes for the record")

	logRecoveryCmd.Flags().Float64Var(&logHRV, "hrv", 0, "heart rate variability (ms)")
	logRecoveryCmd.Flags().Float64Var(&logRestingHR, "rhr", 0, "resting heart rate (bpm)")

	logWorkoutCmd.Flags().Float64Var(&logStrain, "strain", 0, "strain score")
	logWorkoutCmd.Flags().Float64Var(&logDuration, "duration", 0, "duration in minutes")

	logMealCmd.Flags().Float64Var(&logProtein, "protein", 0, "protein in grams")
	logMealCmd.Flags().Float64Var(&logCarbs, "carbs", 0, "carbs in grams")
	logMealCmd.Flags().Float64Var(&logFats, "fats", 0, "fats in grams")

	logBodyCmd.Flags().Float64Var(&logWeight, "weight", 0, "weight in kg")
	logBodyCmd.Flags().Float64Var(&logAdherence, "adherence", 0, "plan adherence percentage")

	logCmd.AddCommand(logRecoveryCmd)
	logCmd.AddCommand(logSleepCmd)
	logCmd.AddCommand(logWorkoutCmd)
	logCmd.AddCommand(logMealCmd)
	logCmd.AddCommand(logBodyCmd)
	rootCmd.AddCommand(logCmd)
}
