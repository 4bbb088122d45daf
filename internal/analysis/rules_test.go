// ABOUTME: Tests for the threshold rule battery.
// ABOUTME: Covers floor escalation, trend windows, load band, and consistency.
package analysis

import (
	"testing"

	"github.com/pulsekit/pulse/internal/align"
)

func recoveryDays(scores ...float64) []*align.Day {
	var days []*align.Day
	for i, s := range scores {
		v := s
		days = append(days, day(i+1, func(d *align.Day) { d.RecoveryScore = &v }))
	}
	return days
}

func notificationFor(f Findings, m align.Metric) *Notification {
	for i := range f.Notifications {
		if f.Notifications[i].Metric == m {
			return &f.Notifications[i]
		}
	}
	return nil
}

func TestRecoveryFloors(t *testing.T) {
	cases := []struct {
		score float64
		want  Level // "" means no notification
	}{
		{25, LevelCritical},
		{45, LevelWarning},
		{60, ""},
	}

	for _, tc := range cases {
		f := EvaluateRules(recoveryDays(tc.score))
		n := notificationFor(f, align.MetricRecoveryScore)
		if tc.want == "" {
			if n != nil {
				t.Errorf("score %v: unexpected notification %s", tc.score, n.Level)
			}
			continue
		}
		if n == nil {
			t.Errorf("score %v: expected %s notification, got none", tc.score, tc.want)
			continue
		}
		if n.Level != tc.want {
			t.Errorf("score %v: got %s, want %s", tc.score, n.Level, tc.want)
		}
		if n.Dismissed {
			t.Errorf("score %v: notification should start undismissed", tc.score)
		}
	}
}

func TestRecoveryDropBelowWeeklyTrend(t *testing.T) {
	// Week of solid recovery, then a sharp drop still above the warn floor.
	f := EvaluateRules(recoveryDays(80, 82, 78, 80, 81, 79, 80, 55))

	found := false
	for _, in := range f.Insights {
		if in.Title == "Recovery below weekly trend" {
			found = true
			if in.Level != LevelWarning {
				t.Errorf("expected warning insight, got %s", in.Level)
			}
		}
	}
	if !found {
		t.Error("expected trend-drop insight")
	}
}

func TestRecoveryOnTrackSuccess(t *testing.T) {
	f := EvaluateRules(recoveryDays(70, 72, 68, 71, 75))

	found := false
	for _, in := range f.Insights {
		if in.Level == LevelSuccess && in.Metric == align.MetricRecoveryScore {
			found = true
		}
	}
	if !found {
		t.Error("expected success insight for above-average recovery")
	}
}

func TestSleepEfficiencyFloors(t *testing.T) {
	cases := []struct {
		eff  float64
		want Level
	}{
		{60, LevelCritical},
		{70, LevelWarning},
		{85, ""},
	}

	for _, tc := range cases {
		v := tc.eff
		f := EvaluateRules([]*align.Day{day(1, func(d *align.Day) { d.SleepScore = &v })})
		n := notificationFor(f, align.MetricSleepScore)
		if tc.want == "" {
			if n != nil {
				t.Errorf("efficiency %v: unexpected notification", tc.eff)
			}
			continue
		}
		if n == nil || n.Level != tc.want {
			t.Errorf("efficiency %v: got %v, want %s", tc.eff, n, tc.want)
		}
	}
}

func TestSleepDurationFloors(t *testing.T) {
	cases := []struct {
		hours float64
		want  Level
	}{
		{5.0, LevelCritical},
		{6.0, LevelWarning},
		{7.5, ""},
	}

	for _, tc := range cases {
		v := tc.hours
		f := EvaluateRules([]*align.Day{day(1, func(d *align.Day) { d.SleepHours = &v })})
		n := notificationFor(f, align.MetricSleepHours)
		if tc.want == "" {
			if n != nil {
				t.Errorf("hours %v: unexpected notification", tc.hours)
			}
			continue
		}
		if n == nil || n.Level != tc.want {
			t.Errorf("hours %v: got %v, want %s", tc.hours, n, tc.want)
		}
	}
}

func TestHRVDropWarning(t *testing.T) {
	// Stable HRV around 60, latest drops to 45 (75% of baseline).
	var days []*align.Day
	for i, v := range []float64{60, 62, 58, 61, 59, 60, 45} {
		hrv := v
		days = append(days, day(i+1, func(d *align.Day) { d.HRV = &hrv }))
	}

	f := EvaluateRules(days)
	n := notificationFor(f, align.MetricHRV)
	if n == nil {
		t.Fatal("expected HRV drop notification")
	}
	if n.Level != LevelWarning {
		t.Errorf("expected warning, got %s", n.Level)
	}
}

func TestHRVStableNoWarning(t *testing.T) {
	var days []*align.Day
	for i, v := range []float64{60, 62, 58, 61, 59} {
		hrv := v
		days = append(days, day(i+1, func(d *align.Day) { d.HRV = &hrv }))
	}

	f := EvaluateRules(days)
	if n := notificationFor(f, align.MetricHRV); n != nil {
		t.Errorf("stable HRV should not notify, got %s", n.Level)
	}
}

func TestHRVSkippedWithoutBaseline(t *testing.T) {
	// Two days is not enough of a baseline.
	var days []*align.Day
	for i, v := range []float64{60, 30} {
		hrv := v
		days = append(days, day(i+1, func(d *align.Day) { d.HRV = &hrv }))
	}

	f := EvaluateRules(days)
	if n := notificationFor(f, align.MetricHRV); n != nil {
		t.Error("HRV rule should skip without enough history")
	}
}

func strainDays(strains ...float64) []*align.Day {
	var days []*align.Day
	for i, s := range strains {
		v := s
		days = append(days, day(i+1, func(d *align.Day) { d.Strain = &v }))
	}
	return days
}

func TestTrainingLoadBand(t *testing.T) {
	// 7 days x 13 strain = 91, above the band.
	f := EvaluateRules(strainDays(13, 13, 13, 13, 13, 13, 13))
	n := notificationFor(f, align.MetricStrain)
	if n == nil || n.Level != LevelWarning {
		t.Errorf("expected overtraining warning, got %v", n)
	}

	// 7 days x 4 strain = 28, below the band: info insight, no notification.
	f = EvaluateRules(strainDays(4, 4, 4, 4, 4, 4, 4))
	if n := notificationFor(f, align.MetricStrain); n != nil {
		t.Errorf("under-training should not notify, got %s", n.Level)
	}
	foundInfo := false
	for _, in := range f.Insights {
		if in.Metric == align.MetricStrain && in.Level == LevelInfo {
			foundInfo = true
		}
	}
	if !foundInfo {
		t.Error("expected under-training info insight")
	}

	// 7 days x 9 strain = 63, inside the band.
	f = EvaluateRules(strainDays(9, 9, 9, 9, 9, 9, 9))
	foundSuccess := false
	for _, in := range f.Insights {
		if in.Metric == align.MetricStrain && in.Level == LevelSuccess {
			foundSuccess = true
		}
	}
	if !foundSuccess {
		t.Error("expected balanced-load success insight")
	}
}

func TestConsistencyTarget(t *testing.T) {
	var days []*align.Day
	for i := 0; i < 7; i++ {
		strain := 8.0
		sessions := 0
		if i < 1 {
			sessions = 1
		}
		n := sessions
		days = append(days, day(i+1, func(d *align.Day) {
			d.Strain = &strain
			d.StrengthSessions = n
		}))
	}

	f := EvaluateRules(days)
	found := false
	for _, r := range f.Recommendations {
		if r.Category == CategoryTraining && r.Priority == PriorityMedium {
			found = true
		}
	}
	if !found {
		t.Error("expected consistency recommendation at 1 of 3 sessions")
	}
}

func TestRecommendationsSortedByPriority(t *testing.T) {
	// Critical recovery (high) plus light training load (low).
	days := strainDays(4, 4, 4, 4, 4, 4)
	last := 25.0
	days = append(days, day(8, func(d *align.Day) { d.RecoveryScore = &last; d.Strain = fp(4) }))

	f := EvaluateRules(days)
	if len(f.Recommendations) < 2 {
		t.Fatalf("expected multiple recommendations, got %d", len(f.Recommendations))
	}
	for i := 1; i < len(f.Recommendations); i++ {
		if priorityRank(f.Recommendations[i-1].Priority) > priorityRank(f.Recommendations[i].Priority) {
			t.Error("recommendations not sorted high to low")
		}
	}
}

func TestEmptyInputProducesNothing(t *testing.T) {
	f := EvaluateRules(nil)
	if len(f.Insights)+len(f.Notifications)+len(f.Recommendations) != 0 {
		t.Error("empty input should produce no findings")
	}
}
