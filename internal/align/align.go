// ABOUTME: Metric Aligner joining heterogeneous health records on calendar date.
// ABOUTME: Produces one Day per distinct date with optional per-metric values.
package align

import (
	"sort"
	"time"

	"github.com/pulsekit/pulse/internal/models"
)

// Metric names one of the daily numeric metrics tracked per Day.
type Metric string

const (
	// MetricSleepScore is the sleep efficiency percentage. The upstream
	// sources report efficiency rather than a separate score, so the two
	// are the same value here.
	MetricSleepScore    Metric = "sleep_score"
	MetricSleepHours    Metric = "sleep_hours"
	MetricRecoveryScore Metric = "recovery_score"
	MetricHRV           Metric = "hrv"
	MetricRestingHR     Metric = "resting_hr"
	MetricCalories      Metric = "calories"
	MetricProtein       Metric = "protein"
	MetricCarbs         Metric = "carbs"
	MetricFats          Metric = "fats"
	MetricStrain        Metric = "strain"
	MetricWorkoutHours  Metric = "workout_hours"
	MetricWeight        Metric = "weight"
	MetricAdherence     Metric = "adherence"
)

// AllMetrics lists every metric a Day can carry, in display order.
var AllMetrics = []Metric{
	MetricSleepScore, MetricSleepHours, MetricRecoveryScore,
	MetricHRV, MetricRestingHR,
	MetricCalories, MetricProtein, MetricCarbs, MetricFats,
	MetricStrain, MetricWorkoutHours,
	MetricWeight, MetricAdherence,
}

// MetricUnits maps metrics to their display units.
var MetricUnits = map[Metric]string{
	MetricSleepScore:    "%",
	MetricSleepHours:    "hours",
	MetricRecoveryScore: "score",
	MetricHRV:           "ms",
	MetricRestingHR:     "bpm",
	MetricCalories:      "kcal",
	MetricProtein:       "g",
	MetricCarbs:         "g",
	MetricFats:          "g",
	MetricStrain:        "score",
	MetricWorkoutHours:  "hours",
	MetricWeight:        "kg",
	MetricAdherence:     "%",
}

// Day is one date's aligned metrics. Nil fields mean no data for that
// metric that day. A Day is never mutated after Align returns it.
type Day struct {
	Date          time.Time
	SleepScore    *float64
	SleepHours    *float64
	RecoveryScore *float64
	HRV           *float64
	RestingHR     *float64
	Calories      *float64
	Protein       *float64
	Carbs         *float64
	Fats          *float64
	Strain        *float64
	WorkoutHours  *float64
	Weight        *float64
	Adherence     *float64

	// StrengthSessions counts strength-kind workouts on this date, for
	// consistency tracking. Not part of the correlation metric set.
	StrengthSessions int
}

// Value returns the value for a metric and whether it is present.
func (d *Day) Value(m Metric) (float64, bool) {
	var p *float64
	switch m {
	case MetricSleepScore:
		p = d.SleepScore
	case MetricSleepHours:
		p = d.SleepHours
	case MetricRecoveryScore:
		p = d.RecoveryScore
	case MetricHRV:
		p = d.HRV
	case MetricRestingHR:
		p = d.RestingHR
	case MetricCalories:
		p = d.Calories
	case MetricProtein:
		p = d.Protein
	case MetricCarbs:
		p = d.Carbs
	case MetricFats:
		p = d.Fats
	case MetricStrain:
		p = d.Strain
	case MetricWorkoutHours:
		p = d.WorkoutHours
	case MetricWeight:
		p = d.Weight
	case MetricAdherence:
		p = d.Adherence
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Records bundles the source record lists for one alignment run.
type Records struct {
	Recoveries []*models.Recovery
	Sleeps     []*models.Sleep
	Workouts   []*models.Workout
	Nutrition  []*models.Nutrition
	Body       []*models.Body
}

// Align merges the source records into one Day per distinct date, ordered
// by date ascending.
//
// Nutrition entries on the same date are summed. For every other source,
// a duplicate date is last-write-wins in input order: a later record
// replaces the earlier one, matching re-import semantics where a corrected
// export overwrites a stale row. Workouts additionally sum strain and
// duration across same-day sessions, since multiple sessions per day are
// legitimate.
func Align(recs Records) []*Day {
	days := make(map[time.Time]*Day)

	day := func(t time.Time) *Day {
		date := models.Date(t)
		d, ok := days[date]
		if !ok {
			d = &Day{Date: date}
			days[date] = d
		}
		return d
	}

	for _, r := range recs.Recoveries {
		d := day(r.RecordedOn)
		d.RecoveryScore = ptr(r.RecoveryScore)
		d.HRV = ptr(r.HRVMilli)
		d.RestingHR = ptr(r.RestingHeartRate)
	}

	for _, s := range recs.Sleeps {
		d := day(s.RecordedOn)
		d.SleepScore = ptr(s.Efficiency)
		d.SleepHours = ptr(s.Hours())
	}

	for _, w := range recs.Workouts {
		d := day(w.RecordedOn)
		d.Strain = addTo(d.Strain, w.Strain)
		d.WorkoutHours = addTo(d.WorkoutHours, w.DurationMinutes/60)
		if w.IsStrength() {
			d.StrengthSessions++
		}
	}

	for _, n := range recs.Nutrition {
		d := day(n.RecordedOn)
		d.Calories = addTo(d.Calories, n.Calories)
		d.Protein = addTo(d.Protein, n.Protein)
		d.Carbs = addTo(d.Carbs, n.Carbs)
		d.Fats = addTo(d.Fats, n.Fats)
	}

	for _, b := range recs.Body {
		d := day(b.RecordedOn)
		if b.Weight != nil {
			d.Weight = ptr(*b.Weight)
		}
		if b.Adherence != nil {
			d.Adherence = ptr(*b.Adherence)
		}
	}

	out := make([]*Day, 0, len(days))
	for _, d := range days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func ptr(v float64) *float64 {
	return &v
}

func addTo(p *float64, v float64) *float64 {
	if p == nil {
		return ptr(v)
	}
	sum := *p + v
	return &sum
}
