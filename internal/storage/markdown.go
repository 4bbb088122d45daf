// ABOUTME: Markdown-file backend storing one record per file with YAML frontmatter.
// ABOUTME: Files live under records/<type>/YYYY/MM/, notes become the file body.
package storage

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pulsekit/pulse/internal/models"
	"gopkg.in/yaml.v3"
)

// MarkdownStore provides file-based storage for health records.
type MarkdownStore struct {
	dataDir string
}

// Compile-time check that MarkdownStore implements Repository.
var _ Repository = (*MarkdownStore)(nil)

// NewMarkdownStore creates a markdown-backed store rooted at dataDir.
func NewMarkdownStore(dataDir string) (*MarkdownStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &MarkdownStore{dataDir: dataDir}, nil
}

// Close releases resources. For MarkdownStore this is a no-op.
func (s *MarkdownStore) Close() error {
	return nil
}

// typeDir returns the directory for a record type.
func (s *MarkdownStore) typeDir(rt models.RecordType) string {
	return filepath.Join(s.dataDir, "records", string(rt))
}

// recordPath builds the file path for a record.
// Format: records/<type>/YYYY/MM/YYYY-MM-DD-<id_prefix>.md.
func (s *MarkdownStore) recordPath(rt models.RecordType, date time.Time, id uuid.UUID) string {
	return filepath.Join(s.typeDir(rt), date.Format("2006"), date.Format("01"),
		fmt.Sprintf("%s-%s.md", date.Format(dateFormat), id.String()[:8]))
}

// recoveryFrontmatter holds the YAML frontmatter of a recovery file.
type recoveryFrontmatter struct {
	ID            string  `yaml:"id"`
	RecordedOn    string  `yaml:"recorded_on"`
	RecoveryScore float64 `yaml:"recovery_score"`
	HRVMilli      float64 `yaml:"hrv_milli"`
	RestingHR     float64 `yaml:"resting_hr"`
	CreatedAt     string  `yaml:"created_at"`
}

type sleepFrontmatter struct {
	ID              string  `yaml:"id"`
	RecordedOn      string  `yaml:"recorded_on"`
	Efficiency      float64 `yaml:"efficiency"`
	TotalSleepMilli float64 `yaml:"total_sleep_milli"`
	CreatedAt       string  `yaml:"created_at"`
}

type workoutFrontmatter struct {
	ID              string  `yaml:"id"`
	RecordedOn      string  `yaml:"recorded_on"`
	Kind            string  `yaml:"kind"`
	Strain          float64 `yaml:"strain"`
	DurationMinutes float64 `yaml:"duration_minutes"`
	CreatedAt       string  `yaml:"created_at"`
}

type nutritionFrontmatter struct {
	ID         string  `yaml:"id"`
	RecordedOn string  `yaml:"recorded_on"`
	Calories   float64 `yaml:"calories"`
	Protein    float64 `yaml:"protein"`
	Carbs      float64 `yaml:"carbs"`
	Fats       float64 `yaml:"fats"`
	CreatedAt  string  `yaml:"created_at"`
}

type bodyFrontmatter struct {
	ID         string   `yaml:"id"`
	RecordedOn string   `yaml:"recorded_on"`
	Weight     *float64 `yaml:"weight,omitempty"`
	Adherence  *float64 `yaml:"adherence,omitempty"`
	CreatedAt  string   `yaml:"created_at"`
}

// CreateRecovery writes a recovery record file.
func (s *MarkdownStore) CreateRecovery(r *models.Recovery) error {
	fm := recoveryFrontmatter{
		ID:            r.ID.String(),
		RecordedOn:    r.RecordedOn.Format(dateFormat),
		RecoveryScore: r.RecoveryScore,
		HRVMilli:      r.HRVMilli,
		RestingHR:     r.RestingHeartRate,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	return s.writeFile(s.recordPath(models.RecordRecovery, r.RecordedOn, r.ID), fm, r.Notes)
}

// ListRecoveries reads all recovery files, most recent first.
func (s *MarkdownStore) ListRecoveries(since time.Time, limit int) ([]*models.Recovery, error) {
	files, err := s.readAll(models.RecordRecovery)
	if err != nil {
		return nil, err
	}

	var out []*models.Recovery
	for _, f := range files {
		fm, err := parseFrontmatter[recoveryFrontmatter](f.frontmatter)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, err)
		}
		r := &models.Recovery{
			RecoveryScore:    fm.RecoveryScore,
			HRVMilli:         fm.HRVMilli,
			RestingHeartRate: fm.RestingHR,
			Notes:            f.notes,
		}
		if err := fillCommon(&r.ID, &r.RecordedOn, &r.CreatedAt, fm.ID, fm.RecordedOn, fm.CreatedAt); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, err)
		}
		out = append(out, r)
	}

	sortRecords(out, func(r *models.Recovery) (time.Time, time.Time) { return r.RecordedOn, r.CreatedAt })
	return applyWindow(out, since, limit, func(r *models.Recovery) time.Time { return r.RecordedOn }), nil
}

// CreateSleep writes a sleep record file.
func (s *MarkdownStore) CreateSleep(sl *models.Sleep) error {
	fm := sleepFrontmatter{
		ID:              sl.ID.String(),
		RecordedOn:      sl.RecordedOn.Format(dateFormat),
		Efficiency:      sl.Efficiency,
		TotalSleepMilli: sl.TotalSleepMilli,
		CreatedAt:       sl.CreatedAt.Format(time.RFC3339),
	}
	return s.writeFile(s.recordPath(models.RecordSleep, sl.RecordedOn, sl.ID), fm, sl.Notes)
}

// ListSleeps reads all sleep files, most recent first.
func (s *MarkdownStore) ListSleeps(since time.Time, limit int) ([]*models.Sleep, error) {
	files, err := s.readAll(models.RecordSleep)
	if err != nil {
		return nil, err
	}

	var out []*models.Sleep
	for _, f := range files {
		fm, err := parseFrontmatter[sleepFrontmatter](f.frontmatter)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, err)
		}
		sl := &models.Sleep{
			Efficiency:      fm.Efficiency,
			TotalSleepMilli: fm.TotalSleepMilli,
			Notes:           f.notes,
		}
		if err := fillCommon(&sl.ID, &sl.RecordedOn, &sl.CreatedAt, fm.ID, fm.RecordedOn, fm.CreatedAt); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, err)
		}
		out = append(out, sl)
	}

	sortRecords(out, func(r *models.Sleep) (time.Time, time.Time) { return r.RecordedOn, r.CreatedAt })
	return applyWindow(out, since, limit, func(r *models.Sleep) time.Time { return r.RecordedOn }), nil
}

// CreateWorkout writes a workout record file.
func (s *MarkdownStore) CreateWorkout(w *models.Workout) error {
	fm := workoutFrontmatter{
		ID:              w.ID.String(),
		RecordedOn:      w.RecordedOn.Format(dateFormat),
		Kind:            w.Kind,
		Strain:          w.Strain,
		DurationMinutes: w.DurationMinutes,
		CreatedAt:       w.CreatedAt.Format(time.RFC3339),
	}
	return s.writeFile(s.recordPath(models.RecordWorkout, w.RecordedOn, w.ID), fm, w.Notes)
}

// ListWorkouts reads all workout files, most recent first.
func (s *MarkdownStore) ListWorkouts(since time.Time, limit int) ([]*models.Workout, error) {
	files, err := s.readAll(models.RecordWorkout)
	if err != nil {
		return nil, err
	}

	var out []*models.Workout
	for _, f := range files {
		fm, err := parseFrontmatter[workoutFrontmatter](f.frontmatter)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, err)
		}
		w := &models.Workout{
			Kind:            fm.Kind,
			Strain:          fm.Strain,
			DurationMinutes: fm.DurationMinutes,
			Notes:           f.notes,
		}
		if err := fillCommon(&w.ID, &w.RecordedOn, &w.CreatedAt, fm.ID, fm.RecordedOn, fm.CreatedAt); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, err)
		}
		out = append(out, w)
	}

	sortRecords(out, func(r *models.Workout) (time.Time, time.Time) { return r.RecordedOn, r.CreatedAt })
	return applyWindow(out, since, limit, func(r *models.Workout) time.Time { return r.RecordedOn }), nil
}

// CreateNutrition writes a nutrition entry file.
func (s *MarkdownStore) CreateNutrition(n *models.Nutrition) error {
	fm := nutritionFrontmatter{
		ID:         n.ID.String(),
		RecordedOn: n.RecordedOn.Format(dateFormat),
		Calories:   n.Calories,
		Protein:    n.Protein,
		Carbs:      n.Carbs,
		Fats:       n.Fats,
		CreatedAt:  n.CreatedAt.Format(time.RFC3339),
	}
	return s.writeFile(s.recordPath(models.RecordNutrition, n.RecordedOn, n.ID), fm, n.Notes)
}

// ListNutrition reads all nutrition files, most recent first.
func (s *MarkdownStore) ListNutrition(since time.Time, limit int) ([]*models.Nutrition, error) {
	files, err := s.readAll(models.RecordNutrition)
	if err != nil {
		return nil, err
	}

	var out []*models.Nutrition
	for _, f := range files {
		fm, err := parseFrontmatter[nutritionFrontmatter](f.frontmatter)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, err)
		}
		n := &models.Nutrition{
			Calories: fm.Calories,
			Protein:  fm.Protein,
			Carbs:    fm.Carbs,
			Fats:     fm.Fats,
			Notes:    f.notes,
		}
		if err := fillCommon(&n.ID, &n.RecordedOn, &n.CreatedAt, fm.ID, fm.RecordedOn, fm.CreatedAt); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, err)
		}
		out = append(out, n)
	}

	sortRecords(out, func(r *models.Nutrition) (time.Time, time.Time) { return r.RecordedOn, r.CreatedAt })
	return applyWindow(out, since, limit, func(r *models.Nutrition) time.Time { return r.RecordedOn }), nil
}

// CreateBody writes a body record file.
func (s *MarkdownStore) CreateBody(b *models.Body) error {
	fm := bodyFrontmatter{
		ID:         b.ID.String(),
		RecordedOn: b.RecordedOn.Format(dateFormat),
		Weight:     b.Weight,
		Adherence:  b.Adherence,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
	return s.writeFile(s.recordPath(models.RecordBody, b.RecordedOn, b.ID), fm, b.Notes)
}

// ListBody reads all body files, most recent first.
func (s *MarkdownStore) ListBody(since time.Time, limit int) ([]*models.Body, error) {
	files, err := s.readAll(models.RecordBody)
	if err != nil {
		return nil, err
	}

	var out []*models.Body
	for _, f := range files {
		fm, err := parseFrontmatter[bodyFrontmatter](f.frontmatter)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, err)
		}
		b := &models.Body{
			Weight:    fm.Weight,
			Adherence: fm.Adherence,
			Notes:     f.notes,
		}
		if err := fillCommon(&b.ID, &b.RecordedOn, &b.CreatedAt, fm.ID, fm.RecordedOn, fm.CreatedAt); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, err)
		}
		out = append(out, b)
	}

	sortRecords(out, func(r *models.Body) (time.Time, time.Time) { return r.RecordedOn, r.CreatedAt })
	return applyWindow(out, since, limit, func(r *models.Body) time.Time { return r.RecordedOn }), nil
}

// DeleteRecord removes a record file by ID or ID prefix.
func (s *MarkdownStore) DeleteRecord(rt models.RecordType, idOrPrefix string) error {
	files, err := s.readAll(rt)
	if err != nil {
		return err
	}

	var matches []string
	for _, f := range files {
		var header struct {
			ID string `yaml:"id"`
		}
		if err := yaml.Unmarshal(f.frontmatter, &header); err != nil {
			continue
		}
		if strings.HasPrefix(header.ID, idOrPrefix) {
			matches = append(matches, f.path)
		}
	}

	switch len(matches) {
	case 0:
		return fmt.Errorf("not found: %s", idOrPrefix)
	case 1:
		return os.Remove(matches[0])
	default:
		return fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
}

// GetAllData collects every record for export.
func (s *MarkdownStore) GetAllData() (*ExportData, error) {
	return CollectAll(s)
}

// ImportData writes every record from an export.
func (s *MarkdownStore) ImportData(data *ExportData) error {
	return InsertAll(s, data)
}

// recordFile is one parsed markdown file: raw frontmatter plus notes body.
type recordFile struct {
	path        string
	frontmatter []byte
	notes       *string
}

// readAll walks a record type's directory tree and splits each file.
func (s *MarkdownStore) readAll(rt models.RecordType) ([]recordFile, error) {
	dir := s.typeDir(rt)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var files []recordFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		fm, notes, err := splitFrontmatter(content)
		if err != nil {
			return fmt.Errorf("split %s: %w", path, err)
		}
		files = append(files, recordFile{path: path, frontmatter: fm, notes: notes})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}

// writeFile renders frontmatter and notes into a markdown file.
func (s *MarkdownStore) writeFile(path string, fm interface{}, notes *string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}

	fmBytes, err := yaml.Marshal(fm)
	if err != nil {
		return fmt.Errorf("marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fmBytes)
	buf.WriteString("---\n")
	if notes != nil && *notes != "" {
		buf.WriteString("\n")
		buf.WriteString(*notes)
		buf.WriteString("\n")
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write record file: %w", err)
	}
	return nil
}

// splitFrontmatter separates the YAML frontmatter from the notes body.
func splitFrontmatter(content []byte) ([]byte, *string, error) {
	text := string(content)
	if !strings.HasPrefix(text, "---\n") {
		return nil, nil, fmt.Errorf("missing frontmatter delimiter")
	}
	rest := text[len("---\n"):]
	end := strings.Index(rest, "---\n")
	if end < 0 {
		return nil, nil, fmt.Errorf("unterminated frontmatter")
	}

	fm := []byte(rest[:end])
	body := strings.TrimSpace(rest[end+len("---\n"):])
	if body == "" {
		return fm, nil, nil
	}
	return fm, &body, nil
}

// parseFrontmatter unmarshals raw frontmatter into a typed struct.
func parseFrontmatter[T any](data []byte) (*T, error) {
	var fm T
	if err := yaml.Unmarshal(data, &fm); err != nil {
		return nil, err
	}
	return &fm, nil
}

// sortRecords orders records most recent first, same-day oldest-created
// first, matching the sqlite backend's list order.
func sortRecords[T any](records []T, key func(T) (time.Time, time.Time)) {
	sort.SliceStable(records, func(i, j int) bool {
		di, ci := key(records[i])
		dj, cj := key(records[j])
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return ci.Before(cj)
	})
}

// applyWindow filters by since-date and truncates to limit.
func applyWindow[T any](records []T, since time.Time, limit int, date func(T) time.Time) []T {
	if !since.IsZero() {
		var kept []T
		for _, r := range records {
			if !date(r).Before(since) {
				kept = append(kept, r)
			}
		}
		records = kept
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}
