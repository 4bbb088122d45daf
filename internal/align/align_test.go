// ABOUTME: Tests for the metric aligner.
// ABOUTME: Validates date joining, nutrition summing, and duplicate policy.
package align

import (
	"testing"
	"time"

	"github.com/pulsekit/pulse/internal/models"
)

func date(day int) time.Time {
	return time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)
}

func TestAlignJoinsOnDate(t *testing.T) {
	days := Align(Records{
		Recoveries: []*models.Recovery{models.NewRecovery(date(1), 72, 55, 48)},
		Sleeps:     []*models.Sleep{models.NewSleep(date(1), 88, 7.5*3600*1000)},
		Body:       []*models.Body{models.NewBody(date(2)).WithWeight(81.2)},
	})

	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}

	d := days[0]
	if !d.Date.Equal(date(1)) {
		t.Errorf("expected first day %s, got %s", date(1), d.Date)
	}
	if d.RecoveryScore == nil || *d.RecoveryScore != 72 {
		t.Errorf("recovery score not aligned: %v", d.RecoveryScore)
	}
	if d.SleepScore == nil || *d.SleepScore != 88 {
		t.Errorf("sleep score not aligned: %v", d.SleepScore)
	}
	if d.SleepHours == nil || *d.SleepHours != 7.5 {
		t.Errorf("sleep hours not aligned: %v", d.SleepHours)
	}
	if d.Weight != nil {
		t.Errorf("weight should be absent on day 1")
	}

	if days[1].Weight == nil || *days[1].Weight != 81.2 {
		t.Errorf("weight not aligned on day 2: %v", days[1].Weight)
	}
}

func TestAlignSumsNutrition(t *testing.T) {
	days := Align(Records{
		Nutrition: []*models.Nutrition{
			models.NewNutrition(date(3), 300, 20, 30, 10),
			models.NewNutrition(date(3), 500, 35, 40, 18),
		},
	})

	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	d := days[0]
	if *d.Calories != 800 {
		t.Errorf("calories: got %v, want 800", *d.Calories)
	}
	if *d.Protein != 55 {
		t.Errorf("protein: got %v, want 55", *d.Protein)
	}
}

func TestAlignLastWriteWinsForRecovery(t *testing.T) {
	days := Align(Records{
		Recoveries: []*models.Recovery{
			models.NewRecovery(date(4), 40, 50, 52),
			models.NewRecovery(date(4), 65, 60, 49),
		},
	})

	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if *days[0].RecoveryScore != 65 {
		t.Errorf("expected later record to win, got %v", *days[0].RecoveryScore)
	}
}

func TestAlignSumsWorkouts(t *testing.T) {
	days := Align(Records{
		Workouts: []*models.Workout{
			models.NewWorkout(date(5), "run", 10.5, 45),
			models.NewWorkout(date(5), "strength", 6.5, 60),
		},
	})

	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	d := days[0]
	if *d.Strain != 17 {
		t.Errorf("strain: got %v, want 17", *d.Strain)
	}
	if *d.WorkoutHours != 1.75 {
		t.Errorf("workout hours: got %v, want 1.75", *d.WorkoutHours)
	}
	if d.StrengthSessions != 1 {
		t.Errorf("strength sessions: got %d, want 1", d.StrengthSessions)
	}
}

func TestAlignOrdersAscending(t *testing.T) {
	days := Align(Records{
		Body: []*models.Body{
			models.NewBody(date(9)).WithWeight(80),
			models.NewBody(date(2)).WithWeight(82),
			models.NewBody(date(5)).WithWeight(81),
		},
	})

	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	for i := 1; i < len(days); i++ {
		if !days[i-1].Date.Before(days[i].Date) {
			t.Errorf("days out of order: %s before %s", days[i-1].Date, days[i].Date)
		}
	}
}

func TestDayValueCoversAllMetrics(t *testing.T) {
	d := &Day{}
	for _, m := range AllMetrics {
		if _, ok := d.Value(m); ok {
			t.Errorf("empty day reports %s present", m)
		}
	}

	v := 42.0
	d.HRV = &v
	got, ok := d.Value(MetricHRV)
	if !ok || got != 42 {
		t.Errorf("Value(hrv): got %v %v", got, ok)
	}
}

func TestBodyPartialFields(t *testing.T) {
	days := Align(Records{
		Body: []*models.Body{models.NewBody(date(7)).WithAdherence(90)},
	})

	d := days[0]
	if d.Weight != nil {
		t.Error("weight should be absent")
	}
	if d.Adherence == nil || *d.Adherence != 90 {
		t.Errorf("adherence: got %v", d.Adherence)
	}
}
