// ABOUTME: Record CRUD operations for SQLite storage.
// ABOUTME: Implements Repository methods for all five record types.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pulsekit/pulse/internal/models"
)

const dateFormat = "2006-01-02"

// CreateRecovery stores a new recovery record.
func (d *DB) CreateRecovery(r *models.Recovery) error {
	_, err := d.db.Exec(`
		INSERT INTO recoveries (id, recorded_on, recovery_score, hrv_milli, resting_hr, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.RecordedOn.Format(dateFormat),
		r.RecoveryScore, r.HRVMilli, r.RestingHeartRate,
		r.Notes, r.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create recovery: %w", err)
	}
	return nil
}

// ListRecoveries returns recovery records, most recent first. Same-day
// duplicates come oldest-created first so a later re-import wins downstream.
func (d *DB) ListRecoveries(since time.Time, limit int) ([]*models.Recovery, error) {
	rows, err := d.listQuery("recoveries",
		"id, recorded_on, recovery_score, hrv_milli, resting_hr, notes, created_at",
		since, limit)
	if err != nil {
		return nil, fmt.Errorf("list recoveries: %w", err)
	}
	defer rows.Close()

	var out []*models.Recovery
	for rows.Next() {
		r := &models.Recovery{}
		var id, recordedOn, createdAt string
		if err := rows.Scan(&id, &recordedOn, &r.RecoveryScore, &r.HRVMilli, &r.RestingHeartRate, &r.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan recovery: %w", err)
		}
		if err := fillCommon(&r.ID, &r.RecordedOn, &r.CreatedAt, id, recordedOn, createdAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CreateSleep stores a new sleep record.
func (d *DB) CreateSleep(s *models.Sleep) error {
	_, err := d.db.Exec(`
		INSERT INTO sleeps (id, recorded_on, efficiency, total_sleep_milli, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID.String(), s.RecordedOn.Format(dateFormat),
		s.Efficiency, s.TotalSleepMilli,
		s.Notes, s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create sleep: %w", err)
	}
	return nil
}

// ListSleeps returns sleep records, most recent first.
func (d *DB) ListSleeps(since time.Time, limit int) ([]*models.Sleep, error) {
	rows, err := d.listQuery("sleeps",
		"id, recorded_on, efficiency, total_sleep_milli, notes, created_at",
		since, limit)
	if err != nil {
		return nil, fmt.Errorf("list sleeps: %w", err)
	}
	defer rows.Close()

	var out []*models.Sleep
	for rows.Next() {
		s := &models.Sleep{}
		var id, recordedOn, createdAt string
		if err := rows.Scan(&id, &recordedOn, &s.Efficiency, &s.TotalSleepMilli, &s.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan sleep: %w", err)
		}
		if err := fillCommon(&s.ID, &s.RecordedOn, &s.CreatedAt, id, recordedOn, createdAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateWorkout stores a new workout record.
func (d *DB) CreateWorkout(w *models.Workout) error {
	_, err := d.db.Exec(`
		INSERT INTO workouts (id, recorded_on, kind, strain, duration_minutes, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.ID.String(), w.RecordedOn.Format(dateFormat),
		w.Kind, w.Strain, w.DurationMinutes,
		w.Notes, w.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	return nil
}

// ListWorkouts returns workout records, most recent first.
func (d *DB) ListWorkouts(since time.Time, limit int) ([]*models.Workout, error) {
	rows, err := d.listQuery("workouts",
		"id, recorded_on, kind, strain, duration_minutes, notes, created_at",
		since, limit)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var out []*models.Workout
	for rows.Next() {
		w := &models.Workout{}
		var id, recordedOn, createdAt string
		if err := rows.Scan(&id, &recordedOn, &w.Kind, &w.Strain, &w.DurationMinutes, &w.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		if err := fillCommon(&w.ID, &w.RecordedOn, &w.CreatedAt, id, recordedOn, createdAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// CreateNutrition stores a new nutrition entry.
func (d *DB) CreateNutrition(n *models.Nutrition) error {
	_, err := d.db.Exec(`
		INSERT INTO nutrition_entries (id, recorded_on, calories, protein, carbs, fats, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID.String(), n.RecordedOn.Format(dateFormat),
		n.Calories, n.Protein, n.Carbs, n.Fats,
		n.Notes, n.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create nutrition: %w", err)
	}
	return nil
}

// ListNutrition returns nutrition entries, most recent first.
func (d *DB) ListNutrition(since time.Time, limit int) ([]*models.Nutrition, error) {
	rows, err := d.listQuery("nutrition_entries",
		"id, recorded_on, calories, protein, carbs, fats, notes, created_at",
		since, limit)
	if err != nil {
		return nil, fmt.Errorf("list nutrition: %w", err)
	}
	defer rows.Close()

	var out []*models.Nutrition
	for rows.Next() {
		n := &models.Nutrition{}
		var id, recordedOn, createdAt string
		if err := rows.Scan(&id, &recordedOn, &n.Calories, &n.Protein, &n.Carbs, &n.Fats, &n.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan nutrition: %w", err)
		}
		if err := fillCommon(&n.ID, &n.RecordedOn, &n.CreatedAt, id, recordedOn, createdAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CreateBody stores a new body record.
func (d *DB) CreateBody(b *models.Body) error {
	_, err := d.db.Exec(`
		INSERT INTO body_entries (id, recorded_on, weight, adherence, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID.String(), b.RecordedOn.Format(dateFormat),
		b.Weight, b.Adherence,
		b.Notes, b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create body: %w", err)
	}
	return nil
}

// ListBody returns body records, most recent first.
func (d *DB) ListBody(since time.Time, limit int) ([]*models.Body, error) {
	rows, err := d.listQuery("body_entries",
		"id, recorded_on, weight, adherence, notes, created_at",
		since, limit)
	if err != nil {
		return nil, fmt.Errorf("list body: %w", err)
	}
	defer rows.Close()

	var out []*models.Body
	for rows.Next() {
		b := &models.Body{}
		var id, recordedOn, createdAt string
		if err := rows.Scan(&id, &recordedOn, &b.Weight, &b.Adherence, &b.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan body: %w", err)
		}
		if err := fillCommon(&b.ID, &b.RecordedOn, &b.CreatedAt, id, recordedOn, createdAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// DeleteRecord removes a record of the given type by ID or ID prefix.
func (d *DB) DeleteRecord(rt models.RecordType, idOrPrefix string) error {
	table, ok := tableFor[string(rt)]
	if !ok {
		return fmt.Errorf("unknown record type: %s", rt)
	}

	id, err := d.resolveID(table, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete %s: %w", rt, err)
	}

	result, err := d.db.Exec("DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", rt, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", rt, err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

// listQuery builds the shared list query: date filter, most recent first,
// same-day rows oldest-created first.
func (d *DB) listQuery(table, columns string, since time.Time, limit int) (*sql.Rows, error) {
	query := "SELECT " + columns + " FROM " + table
	var args []interface{}

	if !since.IsZero() {
		query += " WHERE recorded_on >= ?"
		args = append(args, since.Format(dateFormat))
	}
	query += " ORDER BY recorded_on DESC, created_at ASC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return d.db.Query(query, args...)
}

// resolveID resolves an ID prefix to a full ID, erroring on ambiguity.
func (d *DB) resolveID(table, idOrPrefix string) (string, error) {
	// Full UUID: use as-is
	if _, err := uuid.Parse(idOrPrefix); err == nil {
		return idOrPrefix, nil
	}

	rows, err := d.db.Query("SELECT id FROM "+table+" WHERE id LIKE ? LIMIT 2", idOrPrefix+"%")
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("not found: %s", idOrPrefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
}

// fillCommon parses the shared id/date/timestamp columns into a record.
func fillCommon(id *uuid.UUID, recordedOn, createdAt *time.Time, idStr, dateStr, createdStr string) error {
	parsed, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("parse id %q: %w", idStr, err)
	}
	*id = parsed

	date, err := time.ParseInLocation(dateFormat, dateStr, time.UTC)
	if err != nil {
		return fmt.Errorf("parse recorded_on %q: %w", dateStr, err)
	}
	*recordedOn = date

	created, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return fmt.Errorf("parse created_at %q: %w", createdStr, err)
	}
	*createdAt = created

	return nil
}
