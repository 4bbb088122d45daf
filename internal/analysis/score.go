// ABOUTME: Composite 0-100 health score over whichever components have data.
// ABOUTME: Weights renormalize to the available subset; descriptive only.
package analysis

import (
	"math"

	"github.com/pulsekit/pulse/internal/align"
)

// Component weights for the composite score. Components without data drop
// out of the denominator so the score normalizes to what is available.
const (
	weightRecovery     = 0.30
	weightSleep        = 0.25
	weightTrainingLoad = 0.20
	weightConsistency  = 0.15
	weightHRVStability = 0.10
)

// HealthScore computes the composite score in [0, 100]. The second return
// is false when no component has any data at all.
func HealthScore(days []*align.Day) (float64, bool) {
	var weighted, totalWeight float64

	if avg, ok := averageValue(days, align.MetricRecoveryScore); ok {
		weighted += clamp(avg, 0, 100) * weightRecovery
		totalWeight += weightRecovery
	}
	if avg, ok := averageValue(days, align.MetricSleepScore); ok {
		weighted += clamp(avg, 0, 100) * weightSleep
		totalWeight += weightSleep
	}
	if s, ok := trainingBalanceScore(days); ok {
		weighted += s * weightTrainingLoad
		totalWeight += weightTrainingLoad
	}
	if s, ok := consistencyScore(days); ok {
		weighted += s * weightConsistency
		totalWeight += weightConsistency
	}
	if s, ok := hrvStabilityScore(days); ok {
		weighted += s * weightHRVStability
		totalWeight += weightHRVStability
	}

	if totalWeight == 0 {
		return 0, false
	}
	return weighted / totalWeight, true
}

// averageValue averages a metric over every day carrying it.
func averageValue(days []*align.Day, m align.Metric) (float64, bool) {
	var sum float64
	var n int
	for _, d := range days {
		if v, ok := d.Value(m); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// trainingBalanceScore is 100 inside the healthy weekly strain band and
// decays linearly with distance outside it.
func trainingBalanceScore(days []*align.Day) (float64, bool) {
	load, workoutDays := weeklyStrain(days)
	if workoutDays == 0 {
		return 0, false
	}
	switch {
	case load < weeklyStrainLow:
		return clamp(100*load/weeklyStrainLow, 0, 100), true
	case load > weeklyStrainHigh:
		over := (load - weeklyStrainHigh) / weeklyStrainHigh
		return clamp(100*(1-over), 0, 100), true
	default:
		return 100, true
	}
}

// consistencyScore is the fraction of the strength-session target hit in
// the trailing week.
func consistencyScore(days []*align.Day) (float64, bool) {
	sessions, sawWorkouts := strengthSessions(days)
	if !sawWorkouts {
		return 0, false
	}
	return clamp(100*float64(sessions)/strengthSessionTarget, 0, 100), true
}

// hrvStabilityScore rewards low variation in HRV over the trailing week:
// 100 minus the coefficient of variation as a percentage.
func hrvStabilityScore(days []*align.Day) (float64, bool) {
	var values []float64
	for i := len(days) - 1; i >= 0 && len(values) < rollingWindow; i-- {
		if v, ok := days[i].Value(align.MetricHRV); ok {
			values = append(values, v)
		}
	}
	if len(values) < MinSamples {
		return 0, false
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if mean == 0 {
		return 0, false
	}

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	stddev := math.Sqrt(variance / float64(len(values)))

	return clamp(100*(1-stddev/mean), 0, 100), true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
