// ABOUTME: Typed source records for recovery, sleep, workout, nutrition, body data.
// ABOUTME: Each record carries a uuid, a civil date, and source-specific fields.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecordType identifies the kind of source record.
type RecordType string

const (
	RecordRecovery  RecordType = "recovery"
	RecordSleep     RecordType = "sleep"
	RecordWorkout   RecordType = "workout"
	RecordNutrition RecordType = "nutrition"
	RecordBody      RecordType = "body"
)

// AllRecordTypes returns all valid record types.
var AllRecordTypes = []RecordType{
	RecordRecovery, RecordSleep, RecordWorkout, RecordNutrition, RecordBody,
}

// IsValidRecordType checks if a string is a valid record type.
func IsValidRecordType(s string) bool {
	for _, rt := range AllRecordTypes {
		if string(rt) == s {
			return true
		}
	}
	return false
}

// Date truncates t to its calendar date in UTC. All records are keyed by
// civil date; intra-day timing is not tracked.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Recovery is a daily readiness reading from a wearable.
type Recovery struct {
	ID               uuid.UUID
	RecordedOn       time.Time
	RecoveryScore    float64 // 0-100
	HRVMilli         float64 // RMSSD in milliseconds
	RestingHeartRate float64 // bpm
	Notes            *string
	CreatedAt        time.Time
}

// NewRecovery creates a Recovery record for the given date.
func NewRecovery(date time.Time, score, hrv, restingHR float64) *Recovery {
	return &Recovery{
		ID:               uuid.New(),
		RecordedOn:       Date(date),
		RecoveryScore:    score,
		HRVMilli:         hrv,
		RestingHeartRate: restingHR,
		CreatedAt:        time.Now(),
	}
}

// WithNotes sets notes on the recovery record.
func (r *Recovery) WithNotes(notes string) *Recovery {
	r.Notes = &notes
	return r
}

// Sleep is one night of sleep as reported by a wearable.
type Sleep struct {
	ID              uuid.UUID
	RecordedOn      time.Time
	Efficiency      float64 // percentage of time in bed spent asleep
	TotalSleepMilli float64 // total sleep time in milliseconds
	Notes           *string
	CreatedAt       time.Time
}

// NewSleep creates a Sleep record for the given date.
func NewSleep(date time.Time, efficiency, totalSleepMilli float64) *Sleep {
	return &Sleep{
		ID:              uuid.New(),
		RecordedOn:      Date(date),
		Efficiency:      efficiency,
		TotalSleepMilli: totalSleepMilli,
		CreatedAt:       time.Now(),
	}
}

// Hours returns the total sleep time in hours.
func (s *Sleep) Hours() float64 {
	return s.TotalSleepMilli / (1000 * 60 * 60)
}

// WithNotes sets notes on the sleep record.
func (s *Sleep) WithNotes(notes string) *Sleep {
	s.Notes = &notes
	return s
}

// Workout is a single training session.
type Workout struct {
	ID              uuid.UUID
	RecordedOn      time.Time
	Kind            string  // run, lift, cycle, strength, ...
	Strain          float64 // device-reported intensity score
	DurationMinutes float64
	Notes           *string
	CreatedAt       time.Time
}

// NewWorkout creates a Workout record for the given date.
func NewWorkout(date time.Time, kind string, strain, durationMinutes float64) *Workout {
	return &Workout{
		ID:              uuid.New(),
		RecordedOn:      Date(date),
		Kind:            kind,
		Strain:          strain,
		DurationMinutes: durationMinutes,
		CreatedAt:       time.Now(),
	}
}

// IsStrength reports whether the workout counts as a strength session for
// consistency tracking.
func (w *Workout) IsStrength() bool {
	kind := strings.ToLower(w.Kind)
	switch kind {
	case "strength", "lift", "lifting", "weightlifting", "weights":
		return true
	}
	return false
}

// WithNotes sets notes on the workout record.
func (w *Workout) WithNotes(notes string) *Workout {
	w.Notes = &notes
	return w
}

// Nutrition is one logged meal or food entry. Multiple entries per day are
// expected; the aligner sums them.
type Nutrition struct {
	ID         uuid.UUID
	RecordedOn time.Time
	Calories   float64
	Protein    float64 // grams
	Carbs      float64 // grams
	Fats       float64 // grams
	Notes      *string
	CreatedAt  time.Time
}

// NewNutrition creates a Nutrition entry for the given date.
func NewNutrition(date time.Time, calories, protein, carbs, fats float64) *Nutrition {
	return &Nutrition{
		ID:         uuid.New(),
		RecordedOn: Date(date),
		Calories:   calories,
		Protein:    protein,
		Carbs:      carbs,
		Fats:       fats,
		CreatedAt:  time.Now(),
	}
}

// WithNotes sets notes on the nutrition entry.
func (n *Nutrition) WithNotes(notes string) *Nutrition {
	n.Notes = &notes
	return n
}

// Body holds weight and plan-adherence readings. Either field may be absent
// since scales and plan tracking report independently.
type Body struct {
	ID         uuid.UUID
	RecordedOn time.Time
	Weight     *float64 // kg
	Adherence  *float64 // plan-compliance percentage
	Notes      *string
	CreatedAt  time.Time
}

// NewBody creates an empty Body record for the given date.
func NewBody(date time.Time) *Body {
	return &Body{
		ID:         uuid.New(),
		RecordedOn: Date(date),
		CreatedAt:  time.Now(),
	}
}

// WithWeight sets the weight reading.
func (b *Body) WithWeight(kg float64) *Body {
	b.Weight = &kg
	return b
}

// WithAdherence sets the plan-adherence percentage.
func (b *Body) WithAdherence(pct float64) *Body {
	b.Adherence = &pct
	return b
}

// WithNotes sets notes on the body record.
func (b *Body) WithNotes(notes string) *Body {
	b.Notes = &notes
	return b
}
