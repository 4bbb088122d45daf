// ABOUTME: Repository interface for health record storage.
// ABOUTME: Defines the contract shared by the sqlite, markdown, and charm backends.
package storage

import (
	"time"

	"github.com/pulsekit/pulse/internal/align"
	"github.com/pulsekit/pulse/internal/models"
)

// Repository defines the storage interface for health records.
// List methods return records with RecordedOn >= since (zero time means
// all), most recent first; limit 0 means no limit.
type Repository interface {
	CreateRecovery(r *models.Recovery) error
	ListRecoveries(since time.Time, limit int) ([]*models.Recovery, error)

	CreateSleep(s *models.Sleep) error
	ListSleeps(since time.Time, limit int) ([]*models.Sleep, error)

	CreateWorkout(w *models.Workout) error
	ListWorkouts(since time.Time, limit int) ([]*models.Workout, error)

	CreateNutrition(n *models.Nutrition) error
	ListNutrition(since time.Time, limit int) ([]*models.Nutrition, error)

	CreateBody(b *models.Body) error
	ListBody(since time.Time, limit int) ([]*models.Body, error)

	// DeleteRecord removes a record of the given type by ID or ID prefix.
	DeleteRecord(rt models.RecordType, idOrPrefix string) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// LoadRecords fetches every record since the given date and bundles them
// for the aligner.
func LoadRecords(repo Repository, since time.Time) (align.Records, error) {
	var recs align.Records
	var err error

	if recs.Recoveries, err = repo.ListRecoveries(since, 0); err != nil {
		return recs, err
	}
	if recs.Sleeps, err = repo.ListSleeps(since, 0); err != nil {
		return recs, err
	}
	if recs.Workouts, err = repo.ListWorkouts(since, 0); err != nil {
		return recs, err
	}
	if recs.Nutrition, err = repo.ListNutrition(since, 0); err != nil {
		return recs, err
	}
	if recs.Body, err = repo.ListBody(since, 0); err != nil {
		return recs, err
	}
	return recs, nil
}
