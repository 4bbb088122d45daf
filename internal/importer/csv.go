// ABOUTME: CSV import for wearable exports and nutrition logs.
// ABOUTME: Detects the record type from headers; bad rows are skipped, not fatal.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pulsekit/pulse/internal/models"
	"github.com/pulsekit/pulse/internal/storage"
)

// Result summarizes one import run.
type Result struct {
	Type     models.RecordType
	Imported int
	Skipped  int
	Errors   []string
}

// Importer writes parsed CSV rows into a repository.
type Importer struct {
	repo storage.Repository
}

// New creates an Importer backed by the given repository.
func New(repo storage.Repository) *Importer {
	return &Importer{repo: repo}
}

// ImportFile reads a CSV file and imports its rows. The record type is
// detected from the header row.
func (im *Importer) ImportFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return im.Import(f)
}

// Import reads CSV rows from r and imports them.
func (im *Importer) Import(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := indexColumns(header)
	rt, err := detectType(cols)
	if err != nil {
		return nil, err
	}

	result := &Result{Type: rt}
	line := 1
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		if err := im.importRow(rt, cols, row); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}

// Header aliases, normalized form. Wearable exports name columns with
// units and capitals; normalization strips those.
var columnAliases = map[string]string{
	"cycle_start_time":          "date",
	"sleep_onset":               "date",
	"workout_start_time":        "date",
	"recovery_score_pct":        "recovery_score",
	"heart_rate_variability_ms": "hrv_milli",
	"hrv":                       "hrv_milli",
	"resting_heart_rate_bpm":    "resting_hr",
	"resting_heart_rate":        "resting_hr",
	"sleep_efficiency_pct":      "efficiency",
	"sleep_efficiency":          "efficiency",
	"asleep_duration_min":       "sleep_minutes",
	"activity":                  "kind",
	"activity_strain":           "strain",
	"duration_min":              "duration_minutes",
	"energy_kcal":               "calories",
	"protein_g":                 "protein",
	"carbs_g":                   "carbs",
	"fat_g":                     "fats",
	"fat":                       "fats",
}

// indexColumns maps normalized column names to their positions.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		n := normalize(name)
		if alias, ok := columnAliases[n]; ok {
			n = alias
		}
		cols[n] = i
	}
	return cols
}

// normalize lowercases a header and collapses punctuation to underscores,
// so "Recovery score %" becomes "recovery_score_pct".
func normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "%", "pct")
	var b strings.Builder
	lastUnderscore := false
	for _, r := range n {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// detectType decides the record type from which columns are present.
func detectType(cols map[string]int) (models.RecordType, error) {
	has := func(names ...string) bool {
		for _, n := range names {
			if _, ok := cols[n]; !ok {
				return false
			}
		}
		return true
	}

	switch {
	case has("date", "recovery_score"):
		return models.RecordRecovery, nil
	case has("date", "efficiency"):
		return models.RecordSleep, nil
	case has("date", "strain"):
		return models.RecordWorkout, nil
	case has("date", "calories"):
		return models.RecordNutrition, nil
	case has("date") && (has("weight") || has("adherence")):
		return models.RecordBody, nil
	default:
		return "", fmt.Errorf("unrecognized csv header: need a date column plus recovery, sleep, workout, nutrition, or body columns")
	}
}

func (im *Importer) importRow(rt models.RecordType, cols map[string]int, row []string) error {
	date, err := parseDate(field(cols, row, "date"))
	if err != nil {
		return err
	}

	switch rt {
	case models.RecordRecovery:
		score, err := parseFloat(field(cols, row, "recovery_score"))
		if err != nil {
			return fmt.Errorf("recovery_score: %w", err)
		}
		hrv, _ := parseFloat(field(cols, row, "hrv_milli"))
		rhr, _ := parseFloat(field(cols, row, "resting_hr"))
		return im.repo.CreateRecovery(models.NewRecovery(date, score, hrv, rhr))

	case models.RecordSleep:
		eff, err := parseFloat(field(cols, row, "efficiency"))
		if err != nil {
			return fmt.Errorf("efficiency: %w", err)
		}
		var totalMilli float64
		if minutes, err := parseFloat(field(cols, row, "sleep_minutes")); err == nil {
			totalMilli = minutes * 60 * 1000
		} else if milli, err := parseFloat(field(cols, row, "total_sleep_milli")); err == nil {
			totalMilli = milli
		}
		return im.repo.CreateSleep(models.NewSleep(date, eff, totalMilli))

	case models.RecordWorkout:
		strain, err := parseFloat(field(cols, row, "strain"))
		if err != nil {
			return fmt.Errorf("strain: %w", err)
		}
		kind := field(cols, row, "kind")
		if kind == "" {
			kind = "workout"
		}
		duration, _ := parseFloat(field(cols, row, "duration_minutes"))
		return im.repo.CreateWorkout(models.NewWorkout(date, kind, strain, duration))

	case models.RecordNutrition:
		calories, err := parseFloat(field(cols, row, "calories"))
		if err != nil {
			return fmt.Errorf("calories: %w", err)
		}
		protein, _ := parseFloat(field(cols, row, "protein"))
		carbs, _ := parseFloat(field(cols, row, "carbs"))
		fats, _ := parseFloat(field(cols, row, "fats"))
		return im.repo.CreateNutrition(models.NewNutrition(date, calories, protein, carbs, fats))

	case models.RecordBody:
		b := models.NewBody(date)
		if w, err := parseFloat(field(cols, row, "weight")); err == nil {
			b.WithWeight(w)
		}
		if a, err := parseFloat(field(cols, row, "adherence")); err == nil {
			b.WithAdherence(a)
		}
		if b.Weight == nil && b.Adherence == nil {
			return fmt.Errorf("body row has neither weight nor adherence")
		}
		return im.repo.CreateBody(b)
	}
	return fmt.Errorf("unknown record type: %s", rt)
}

func field(cols map[string]int, row []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(s, 64)
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", s)
}
