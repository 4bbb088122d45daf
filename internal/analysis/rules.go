// ABOUTME: Threshold rule battery producing insights, recommendations, notifications.
// ABOUTME: Runs against the latest aligned day plus short trailing windows.
package analysis

import (
	"fmt"
	"sort"

	"github.com/pulsekit/pulse/internal/align"
)

// Level classifies an insight or notification.
type Level string

const (
	LevelSuccess  Level = "success"
	LevelInfo     Level = "info"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Category groups recommendations by the area they address.
type Category string

const (
	CategoryRecovery  Category = "recovery"
	CategorySleep     Category = "sleep"
	CategoryTraining  Category = "training"
	CategoryNutrition Category = "nutrition"
)

// Priority orders recommendations for display.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Insight is a single finding from the rule battery.
type Insight struct {
	Level   Level        `json:"level"`
	Title   string       `json:"title"`
	Message string       `json:"message"`
	Metric  align.Metric `json:"metric,omitempty"`
	Value   float64      `json:"value,omitempty"`
}

// Notification is an alert for a crossed threshold. Dismissed is UI state
// and starts false.
type Notification struct {
	Level     Level        `json:"level"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	Metric    align.Metric `json:"metric"`
	Value     float64      `json:"value"`
	Threshold float64      `json:"threshold"`
	Dismissed bool         `json:"dismissed"`
}

// Recommendation is a suggested action, sorted high priority first.
type Recommendation struct {
	Category Category `json:"category"`
	Priority Priority `json:"priority"`
	Text     string   `json:"text"`
	Action   string   `json:"action"`
}

// Rule thresholds. Warning floors escalate to critical at the harder floor.
const (
	recoveryWarnFloor     = 50.0
	recoveryCriticalFloor = 30.0
	recoveryDropRatio     = 0.85 // latest vs 7-day average

	sleepEffWarnFloor     = 75.0
	sleepEffCriticalFloor = 65.0

	sleepHoursWarnFloor     = 6.5
	sleepHoursCriticalFloor = 5.5

	hrvDropRatio = 0.85 // latest vs 7-day average

	weeklyStrainLow  = 50.0
	weeklyStrainHigh = 80.0

	strengthSessionTarget = 3
	rollingWindow         = 7
)

// Findings is everything the rule battery produced for one run.
type Findings struct {
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
	Notifications   []Notification   `json:"notifications"`
}

// EvaluateRules runs the threshold battery over the aligned days, which
// must be sorted by date ascending as Align returns them. Every rule that
// lacks the data it needs is silently skipped; the battery never fails.
func EvaluateRules(days []*align.Day) Findings {
	var f Findings
	if len(days) == 0 {
		return f
	}

	f.checkRecovery(days)
	f.checkSleep(days)
	f.checkHRV(days)
	f.checkTrainingLoad(days)
	f.checkConsistency(days)

	sort.SliceStable(f.Recommendations, func(i, j int) bool {
		return priorityRank(f.Recommendations[i].Priority) < priorityRank(f.Recommendations[j].Priority)
	})
	return f
}

func (f *Findings) checkRecovery(days []*align.Day) {
	latest, ok := latestValue(days, align.MetricRecoveryScore)
	if !ok {
		return
	}

	switch {
	case latest < recoveryCriticalFloor:
		f.Notifications = append(f.Notifications, Notification{
			Level:     LevelCritical,
			Title:     "Very low recovery",
			Message:   fmt.Sprintf("Recovery is %.0f, well below the %.0f floor. Take a rest day.", latest, recoveryCriticalFloor),
			Metric:    align.MetricRecoveryScore,
			Value:     latest,
			Threshold: recoveryCriticalFloor,
		})
		f.Insights = append(f.Insights, Insight{
			Level:   LevelWarning,
			Title:   "Recovery critically low",
			Message: fmt.Sprintf("Today's recovery score of %.0f signals significant strain. Prioritize rest.", latest),
			Metric:  align.MetricRecoveryScore,
			Value:   latest,
		})
		f.Recommendations = append(f.Recommendations, Recommendation{
			Category: CategoryRecovery,
			Priority: PriorityHigh,
			Text:     "Recovery is critically low.",
			Action:   "Skip intense training today; focus on sleep, hydration, and light movement.",
		})
	case latest < recoveryWarnFloor:
		f.Notifications = append(f.Notifications, Notification{
			Level:     LevelWarning,
			Title:     "Low recovery",
			Message:   fmt.Sprintf("Recovery is %.0f, below the %.0f floor.", latest, recoveryWarnFloor),
			Metric:    align.MetricRecoveryScore,
			Value:     latest,
			Threshold: recoveryWarnFloor,
		})
		f.Recommendations = append(f.Recommendations, Recommendation{
			Category: CategoryRecovery,
			Priority: PriorityMedium,
			Text:     "Recovery is below your usual baseline.",
			Action:   "Keep today's training light and aim for an early night.",
		})
	}

	// Trend against the trailing week, excluding today.
	avg7, ok := trailingAverage(days, align.MetricRecoveryScore, rollingWindow)
	if !ok {
		return
	}
	if latest < avg7*recoveryDropRatio {
		f.Insights = append(f.Insights, Insight{
			Level:   LevelWarning,
			Title:   "Recovery below weekly trend",
			Message: fmt.Sprintf("Recovery of %.0f is more than 15%% below your 7-day average of %.0f.", latest, avg7),
			Metric:  align.MetricRecoveryScore,
			Value:   latest,
		})
	} else if latest >= avg7 && latest >= recoveryWarnFloor {
		f.Insights = append(f.Insights, Insight{
			Level:   LevelSuccess,
			Title:   "Recovery on track",
			Message: fmt.Sprintf("Recovery of %.0f is at or above your 7-day average of %.0f.", latest, avg7),
			Metric:  align.MetricRecoveryScore,
			Value:   latest,
		})
	}
}

func (f *Findings) checkSleep(days []*align.Day) {
	if eff, ok := latestValue(days, align.MetricSleepScore); ok {
		switch {
		case eff < sleepEffCriticalFloor:
			f.Notifications = append(f.Notifications, Notification{
				Level:     LevelCritical,
				Title:     "Very poor sleep efficiency",
				Message:   fmt.Sprintf("Sleep efficiency of %.0f%% is below the %.0f%% floor.", eff, sleepEffCriticalFloor),
				Metric:    align.MetricSleepScore,
				Value:     eff,
				Threshold: sleepEffCriticalFloor,
			})
			f.Recommendations = append(f.Recommendations, Recommendation{
				Category: CategorySleep,
				Priority: PriorityHigh,
				Text:     "Sleep efficiency has dropped sharply.",
				Action:   "Review caffeine, alcohol, and screen time before bed; keep the bedroom cool and dark.",
			})
		case eff < sleepEffWarnFloor:
			f.Notifications = append(f.Notifications, Notification{
				Level:     LevelWarning,
				Title:     "Poor sleep efficiency",
				Message:   fmt.Sprintf("Sleep efficiency of %.0f%% is below the %.0f%% floor.", eff, sleepEffWarnFloor),
				Metric:    align.MetricSleepScore,
				Value:     eff,
				Threshold: sleepEffWarnFloor,
			})
		}
	}

	if hours, ok := latestValue(days, align.MetricSleepHours); ok {
		switch {
		case hours < sleepHoursCriticalFloor:
			f.Notifications = append(f.Notifications, Notification{
				Level:     LevelCritical,
				Title:     "Severe sleep debt",
				Message:   fmt.Sprintf("Only %.1f hours of sleep, below the %.1f hour floor.", hours, sleepHoursCriticalFloor),
				Metric:    align.MetricSleepHours,
				Value:     hours,
				Threshold: sleepHoursCriticalFloor,
			})
			f.Recommendations = append(f.Recommendations, Recommendation{
				Category: CategorySleep,
				Priority: PriorityHigh,
				Text:     "Sleep duration is critically short.",
				Action:   "Protect at least 8 hours in bed tonight.",
			})
		case hours < sleepHoursWarnFloor:
			f.Notifications = append(f.Notifications, Notification{
				Level:     LevelWarning,
				Title:     "Short sleep",
				Message:   fmt.Sprintf("%.1f hours of sleep, below the %.1f hour floor.", hours, sleepHoursWarnFloor),
				Metric:    align.MetricSleepHours,
				Value:     hours,
				Threshold: sleepHoursWarnFloor,
			})
		}
	}
}

func (f *Findings) checkHRV(days []*align.Day) {
	latest, ok := latestValue(days, align.MetricHRV)
	if !ok {
		return
	}
	avg7, ok := trailingAverage(days, align.MetricHRV, rollingWindow)
	if !ok {
		return
	}

	if latest < avg7*hrvDropRatio {
		f.Notifications = append(f.Notifications, Notification{
			Level:     LevelWarning,
			Title:     "HRV drop",
			Message:   fmt.Sprintf("HRV of %.0fms is more than 15%% below your 7-day average of %.0fms.", latest, avg7),
			Metric:    align.MetricHRV,
			Value:     latest,
			Threshold: avg7 * hrvDropRatio,
		})
		f.Insights = append(f.Insights, Insight{
			Level:   LevelWarning,
			Title:   "Elevated stress signal",
			Message: "A sustained HRV drop often precedes illness or overreaching. Ease off for a day or two.",
			Metric:  align.MetricHRV,
			Value:   latest,
		})
	}
}

func (f *Findings) checkTrainingLoad(days []*align.Day) {
	load, workoutDays := weeklyStrain(days)
	if workoutDays == 0 {
		return
	}

	switch {
	case load > weeklyStrainHigh:
		f.Notifications = append(f.Notifications, Notification{
			Level:     LevelWarning,
			Title:     "Overtraining risk",
			Message:   fmt.Sprintf("Weekly strain of %.0f is above the healthy band of %.0f-%.0f.", load, weeklyStrainLow, weeklyStrainHigh),
			Metric:    align.MetricStrain,
			Value:     load,
			Threshold: weeklyStrainHigh,
		})
		f.Recommendations = append(f.Recommendations, Recommendation{
			Category: CategoryRecovery,
			Priority: PriorityHigh,
			Text:     "Training load is running hot.",
			Action:   "Schedule a deload or full rest day this week.",
		})
	case load < weeklyStrainLow:
		f.Insights = append(f.Insights, Insight{
			Level:   LevelInfo,
			Title:   "Room to train more",
			Message: fmt.Sprintf("Weekly strain of %.0f is below the %.0f-%.0f band. You have capacity for more volume.", load, weeklyStrainLow, weeklyStrainHigh),
			Metric:  align.MetricStrain,
			Value:   load,
		})
		f.Recommendations = append(f.Recommendations, Recommendation{
			Category: CategoryTraining,
			Priority: PriorityLow,
			Text:     "Training volume is light this week.",
			Action:   "Add a session or increase intensity if recovery allows.",
		})
	default:
		f.Insights = append(f.Insights, Insight{
			Level:   LevelSuccess,
			Title:   "Training load balanced",
			Message: fmt.Sprintf("Weekly strain of %.0f sits inside the healthy %.0f-%.0f band.", load, weeklyStrainLow, weeklyStrainHigh),
			Metric:  align.MetricStrain,
			Value:   load,
		})
	}
}

func (f *Findings) checkConsistency(days []*align.Day) {
	sessions, sawWorkouts := strengthSessions(days)
	if !sawWorkouts {
		return
	}

	if sessions < strengthSessionTarget {
		f.Insights = append(f.Insights, Insight{
			Level:   LevelInfo,
			Title:   "Strength work inconsistent",
			Message: fmt.Sprintf("%d strength sessions in the last 7 days against a target of %d.", sessions, strengthSessionTarget),
		})
		f.Recommendations = append(f.Recommendations, Recommendation{
			Category: CategoryTraining,
			Priority: PriorityMedium,
			Text:     "Strength training frequency is below target.",
			Action:   fmt.Sprintf("Plan %d short strength sessions across the coming week.", strengthSessionTarget),
		})
	} else {
		f.Insights = append(f.Insights, Insight{
			Level:   LevelSuccess,
			Title:   "Strength work consistent",
			Message: fmt.Sprintf("%d strength sessions in the last 7 days. Target met.", sessions),
		})
	}
}

// latestValue returns the metric value from the most recent day carrying it.
func latestValue(days []*align.Day, m align.Metric) (float64, bool) {
	for i := len(days) - 1; i >= 0; i-- {
		if v, ok := days[i].Value(m); ok {
			return v, true
		}
	}
	return 0, false
}

// trailingAverage averages the metric over up to window days preceding the
// last day, excluding the last day itself so the latest reading can be
// compared against its own baseline. Needs at least MinSamples values.
func trailingAverage(days []*align.Day, m align.Metric, window int) (float64, bool) {
	var sum float64
	var n int
	for i := len(days) - 2; i >= 0 && n < window; i-- {
		if v, ok := days[i].Value(m); ok {
			sum += v
			n++
		}
	}
	if n < MinSamples {
		return 0, false
	}
	return sum / float64(n), true
}

// weeklyStrain sums strain over the trailing 7 days that have workouts.
func weeklyStrain(days []*align.Day) (float64, int) {
	var sum float64
	var n int
	for i := len(days) - 1; i >= 0 && n < rollingWindow; i-- {
		if v, ok := days[i].Value(align.MetricStrain); ok {
			sum += v
			n++
		}
	}
	return sum, n
}

// strengthSessions counts strength workouts in the trailing 7 calendar
// days ending at the latest day. The second return is false when no day in
// that window has any workout data, so the rule can skip rather than flag
// an empty log.
func strengthSessions(days []*align.Day) (int, bool) {
	if len(days) == 0 {
		return 0, false
	}
	cutoff := days[len(days)-1].Date.AddDate(0, 0, -(rollingWindow - 1))

	count := 0
	saw := false
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		if d.Date.Before(cutoff) {
			break
		}
		if _, ok := d.Value(align.MetricStrain); ok {
			saw = true
		}
		count += d.StrengthSessions
	}
	return count, saw
}

func priorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}
