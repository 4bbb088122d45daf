// ABOUTME: Record CRUD for Charm KV storage, implementing the Repository interface.
// ABOUTME: Uses type-prefixed keys, JSON values, and client-side filtering.
package charm

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pulsekit/pulse/internal/models"
	"github.com/pulsekit/pulse/internal/storage"
)

// Compile-time check that Client implements Repository.
var _ storage.Repository = (*Client)(nil)

// CreateRecovery stores a recovery record in the KV store.
func (c *Client) CreateRecovery(r *models.Recovery) error {
	return c.create(RecoveryPrefix+r.ID.String(), r)
}

// ListRecoveries retrieves recovery records, most recent first.
func (c *Client) ListRecoveries(since time.Time, limit int) ([]*models.Recovery, error) {
	return listRecords[models.Recovery](c, RecoveryPrefix, since, limit,
		func(r *models.Recovery) (time.Time, time.Time) { return r.RecordedOn, r.CreatedAt })
}

// CreateSleep stores a sleep record in the KV store.
func (c *Client) CreateSleep(s *models.Sleep) error {
	return c.create(SleepPrefix+s.ID.String(), s)
}

// ListSleeps retrieves sleep records, most recent first.
func (c *Client) ListSleeps(since time.Time, limit int) ([]*models.Sleep, error) {
	return listRecords[models.Sleep](c, SleepPrefix, since, limit,
		func(s *models.Sleep) (time.Time, time.Time) { return s.RecordedOn, s.CreatedAt })
}

// CreateWorkout stores a workout record in the KV store.
func (c *Client) CreateWorkout(w *models.Workout) error {
	return c.create(WorkoutPrefix+w.ID.String(), w)
}

// ListWorkouts retrieves workout records, most recent first.
func (c *Client) ListWorkouts(since time.Time, limit int) ([]*models.Workout, error) {
	return listRecords[models.Workout](c, WorkoutPrefix, since, limit,
		func(w *models.Workout) (time.Time, time.Time) { return w.RecordedOn, w.CreatedAt })
}

// CreateNutrition stores a nutrition entry in the KV store.
func (c *Client) CreateNutrition(n *models.Nutrition) error {
	return c.create(NutritionPrefix+n.ID.String(), n)
}

// ListNutrition retrieves nutrition entries, most recent first.
func (c *Client) ListNutrition(since time.Time, limit int) ([]*models.Nutrition, error) {
	return listRecords[models.Nutrition](c, NutritionPrefix, since, limit,
		func(n *models.Nutrition) (time.Time, time.Time) { return n.RecordedOn, n.CreatedAt })
}

// CreateBody stores a body record in the KV store.
func (c *Client) CreateBody(b *models.Body) error {
	return c.create(BodyPrefix+b.ID.String(), b)
}

// ListBody retrieves body records, most recent first.
func (c *Client) ListBody(since time.Time, limit int) ([]*models.Body, error) {
	return listRecords[models.Body](c, BodyPrefix, since, limit,
		func(b *models.Body) (time.Time, time.Time) { return b.RecordedOn, b.CreatedAt })
}

// DeleteRecord removes a record of the given type by ID or ID prefix.
func (c *Client) DeleteRecord(rt models.RecordType, idOrPrefix string) error {
	prefix, ok := keyPrefixFor(rt)
	if !ok {
		return fmt.Errorf("unknown record type: %s", rt)
	}
	if err := c.deleteByIDPrefix(prefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete %s: %w", rt, err)
	}
	return nil
}

// GetAllData collects every record for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	return storage.CollectAll(c)
}

// ImportData writes every record from an export.
func (c *Client) ImportData(data *storage.ExportData) error {
	return storage.InsertAll(c, data)
}

// create marshals a record and stores it under the given key.
func (c *Client) create(key string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return c.set(key, data)
}

// listRecords fetches and decodes all records under a type prefix, sorted
// most recent first with same-day records oldest-created first, then
// windowed and limited.
func listRecords[T any](c *Client, prefix string, since time.Time, limit int, key func(*T) (time.Time, time.Time)) ([]*T, error) {
	allData, err := c.listByPrefix(prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", prefix, err)
	}

	var records []*T
	for _, data := range allData {
		r, err := unmarshalJSON[T](data)
		if err != nil {
			continue // Skip invalid entries
		}
		recordedOn, _ := key(r)
		if !since.IsZero() && recordedOn.Before(since) {
			continue
		}
		records = append(records, r)
	}

	sortByDate(records, key)

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func keyPrefixFor(rt models.RecordType) (string, bool) {
	switch rt {
	case models.RecordRecovery:
		return RecoveryPrefix, true
	case models.RecordSleep:
		return SleepPrefix, true
	case models.RecordWorkout:
		return WorkoutPrefix, true
	case models.RecordNutrition:
		return NutritionPrefix, true
	case models.RecordBody:
		return BodyPrefix, true
	}
	return "", false
}
