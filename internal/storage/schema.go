// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: One table per source record type, date-indexed for window queries.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recoveries (
		id TEXT PRIMARY KEY,
		recorded_on TEXT NOT NULL,
		recovery_score REAL NOT NULL,
		hrv_milli REAL NOT NULL,
		resting_hr REAL NOT NULL,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sleeps (
		id TEXT PRIMARY KEY,
		recorded_on TEXT NOT NULL,
		efficiency REAL NOT NULL,
		total_sleep_milli REAL NOT NULL,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		recorded_on TEXT NOT NULL,
		kind TEXT NOT NULL,
		strain REAL NOT NULL,
		duration_minutes REAL NOT NULL,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS nutrition_entries (
		id TEXT PRIMARY KEY,
		recorded_on TEXT NOT NULL,
		calories REAL NOT NULL,
		protein REAL NOT NULL,
		carbs REAL NOT NULL,
		fats REAL NOT NULL,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS body_entries (
		id TEXT PRIMARY KEY,
		recorded_on TEXT NOT NULL,
		weight REAL,
		adherence REAL,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_recoveries_date ON recoveries(recorded_on DESC);
	CREATE INDEX IF NOT EXISTS idx_sleeps_date ON sleeps(recorded_on DESC);
	CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(recorded_on DESC);
	CREATE INDEX IF NOT EXISTS idx_nutrition_date ON nutrition_entries(recorded_on DESC);
	CREATE INDEX IF NOT EXISTS idx_body_date ON body_entries(recorded_on DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}

// tableFor maps a record type to its table name.
var tableFor = map[string]string{
	"recovery":  "recoveries",
	"sleep":     "sleeps",
	"workout":   "workouts",
	"nutrition": "nutrition_entries",
	"body":      "body_entries",
}
