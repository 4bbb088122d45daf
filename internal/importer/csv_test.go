// ABOUTME: Tests for CSV import with header detection.
// ABOUTME: Covers wearable-style headers, bad rows, and type dispatch.
package importer

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pulsekit/pulse/internal/models"
	"github.com/pulsekit/pulse/internal/storage"
)

func setupImporter(t *testing.T) (*Importer, storage.Repository) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestImportRecoveryCSV(t *testing.T) {
	im, repo := setupImporter(t)

	csvData := `date,recovery_score,hrv_milli,resting_hr
2024-06-01,72,55,48
2024-06-02,65,50,50
`
	result, err := im.Import(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Type != models.RecordRecovery {
		t.Errorf("detected type %s, want recovery", result.Type)
	}
	if result.Imported != 2 || result.Skipped != 0 {
		t.Errorf("imported=%d skipped=%d, want 2/0", result.Imported, result.Skipped)
	}

	got, err := repo.ListRecoveries(time.Time{}, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recoveries, got %d", len(got))
	}
	if got[0].RecoveryScore != 65 {
		t.Errorf("most recent recovery: got %v, want 65", got[0].RecoveryScore)
	}
}

func TestImportWearableStyleHeaders(t *testing.T) {
	im, repo := setupImporter(t)

	csvData := `Cycle start time,Recovery score %,Heart rate variability (ms),Resting heart rate (bpm)
2024-06-03,80,62,46
`
	result, err := im.Import(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("imported=%d, want 1; errors: %v", result.Imported, result.Errors)
	}

	got, _ := repo.ListRecoveries(time.Time{}, 0)
	if len(got) != 1 || got[0].HRVMilli != 62 {
		t.Errorf("wearable headers not mapped: %+v", got)
	}
}

func TestImportSleepCSV(t *testing.T) {
	im, repo := setupImporter(t)

	csvData := `date,sleep efficiency %,asleep duration (min)
2024-06-01,88,450
`
	result, err := im.Import(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Type != models.RecordSleep {
		t.Errorf("detected type %s, want sleep", result.Type)
	}

	got, _ := repo.ListSleeps(time.Time{}, 0)
	if len(got) != 1 {
		t.Fatalf("expected 1 sleep, got %d", len(got))
	}
	if got[0].Hours() != 7.5 {
		t.Errorf("sleep hours: got %v, want 7.5", got[0].Hours())
	}
}

func TestImportWorkoutCSV(t *testing.T) {
	im, repo := setupImporter(t)

	csvData := `date,activity,activity strain,duration (min)
2024-06-01,strength,9.5,50
2024-06-02,run,12,40
`
	if _, err := im.Import(strings.NewReader(csvData)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	got, _ := repo.ListWorkouts(time.Time{}, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 workouts, got %d", len(got))
	}
	if !got[1].IsStrength() {
		t.Error("strength workout not recognized")
	}
}

func TestImportNutritionCSV(t *testing.T) {
	im, repo := setupImporter(t)

	csvData := `date,calories,protein (g),carbs (g),fat (g)
2024-06-01,300,20,30,10
2024-06-01,500,35,40,18
`
	if _, err := im.Import(strings.NewReader(csvData)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	got, _ := repo.ListNutrition(time.Time{}, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 nutrition entries, got %d", len(got))
	}
}

func TestImportSkipsBadRows(t *testing.T) {
	im, _ := setupImporter(t)

	csvData := `date,recovery_score
2024-06-01,72
not-a-date,65
2024-06-03,not-a-number
2024-06-04,60
`
	result, err := im.Import(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("imported=%d, want 2", result.Imported)
	}
	if result.Skipped != 2 {
		t.Errorf("skipped=%d, want 2", result.Skipped)
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 error messages, got %d", len(result.Errors))
	}
}

func TestImportUnknownHeader(t *testing.T) {
	im, _ := setupImporter(t)

	if _, err := im.Import(strings.NewReader("foo,bar\n1,2\n")); err == nil {
		t.Error("expected error for unrecognized header")
	}
}

func TestNormalizeHeaders(t *testing.T) {
	cases := map[string]string{
		"Recovery score %":            "recovery_score_pct",
		"Heart rate variability (ms)": "heart_rate_variability_ms",
		"date":                        "date",
		"Duration (min)":              "duration_min",
	}
	for in, want := range cases {
		if got := normalize(in); got != want {
			t.Errorf("normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
