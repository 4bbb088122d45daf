// ABOUTME: JSON export/import of all health records.
// ABOUTME: ExportData is the versioned interchange format between backends.
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pulsekit/pulse/internal/models"
)

// ExportFormatVersion is bumped when the export shape changes.
const ExportFormatVersion = 1

// ExportData holds every record for export, import, and backend migration.
type ExportData struct {
	Version    int                 `json:"version"`
	ExportedAt time.Time           `json:"exported_at"`
	Recoveries []*models.Recovery  `json:"recoveries"`
	Sleeps     []*models.Sleep     `json:"sleeps"`
	Workouts   []*models.Workout   `json:"workouts"`
	Nutrition  []*models.Nutrition `json:"nutrition"`
	Body       []*models.Body      `json:"body"`
}

// Count returns the total number of records in the export.
func (e *ExportData) Count() int {
	return len(e.Recoveries) + len(e.Sleeps) + len(e.Workouts) + len(e.Nutrition) + len(e.Body)
}

// GetAllData collects every record for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return CollectAll(d)
}

// ImportData inserts every record from an export. Records with IDs already
// present fail the whole import; exports are expected to target an empty
// or disjoint store.
func (d *DB) ImportData(data *ExportData) error {
	return InsertAll(d, data)
}

// CollectAll gathers all records from a repository into an ExportData.
// Shared by every backend.
func CollectAll(repo Repository) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportFormatVersion,
		ExportedAt: time.Now().UTC(),
	}
	var err error

	if data.Recoveries, err = repo.ListRecoveries(time.Time{}, 0); err != nil {
		return nil, fmt.Errorf("export recoveries: %w", err)
	}
	if data.Sleeps, err = repo.ListSleeps(time.Time{}, 0); err != nil {
		return nil, fmt.Errorf("export sleeps: %w", err)
	}
	if data.Workouts, err = repo.ListWorkouts(time.Time{}, 0); err != nil {
		return nil, fmt.Errorf("export workouts: %w", err)
	}
	if data.Nutrition, err = repo.ListNutrition(time.Time{}, 0); err != nil {
		return nil, fmt.Errorf("export nutrition: %w", err)
	}
	if data.Body, err = repo.ListBody(time.Time{}, 0); err != nil {
		return nil, fmt.Errorf("export body: %w", err)
	}
	return data, nil
}

// InsertAll writes all records from an export into a repository.
func InsertAll(repo Repository, data *ExportData) error {
	if data.Version > ExportFormatVersion {
		return fmt.Errorf("export version %d is newer than supported version %d", data.Version, ExportFormatVersion)
	}

	for _, r := range data.Recoveries {
		if err := repo.CreateRecovery(r); err != nil {
			return fmt.Errorf("import recovery %s: %w", r.ID, err)
		}
	}
	for _, s := range data.Sleeps {
		if err := repo.CreateSleep(s); err != nil {
			return fmt.Errorf("import sleep %s: %w", s.ID, err)
		}
	}
	for _, w := range data.Workouts {
		if err := repo.CreateWorkout(w); err != nil {
			return fmt.Errorf("import workout %s: %w", w.ID, err)
		}
	}
	for _, n := range data.Nutrition {
		if err := repo.CreateNutrition(n); err != nil {
			return fmt.Errorf("import nutrition %s: %w", n.ID, err)
		}
	}
	for _, b := range data.Body {
		if err := repo.CreateBody(b); err != nil {
			return fmt.Errorf("import body %s: %w", b.ID, err)
		}
	}
	return nil
}

// WriteJSON writes an export as indented JSON.
func (e *ExportData) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// ReadJSON parses an export from JSON.
func ReadJSON(r io.Reader) (*ExportData, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	return &data, nil
}
