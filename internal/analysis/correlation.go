// ABOUTME: Pairwise Pearson correlation over aligned daily metrics.
// ABOUTME: Classifies each pair by strength and direction, with a configurable cutoff.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/pulsekit/pulse/internal/align"
)

// Significance cutoffs for retaining a correlation in results. The full
// list uses whichever cutoff the caller configures; notable correlations
// always use StrictCutoff.
const (
	DefaultCutoff = 0.1
	StrictCutoff  = 0.3
)

// MinSamples is the minimum number of jointly-present days required before
// a pair's coefficient is computed at all.
const MinSamples = 3

// Strength classifies the magnitude of a correlation coefficient.
type Strength string

const (
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
)

// Direction classifies the sign of a correlation coefficient.
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
)

// Correlation is the relationship between two metrics over the days where
// both were present.
type Correlation struct {
	Metric1     align.Metric `json:"metric1"`
	Metric2     align.Metric `json:"metric2"`
	Coefficient float64      `json:"coefficient"`
	Strength    Strength     `json:"strength"`
	Direction   Direction    `json:"direction"`
	SampleSize  int          `json:"sample_size"`
	Explanation string       `json:"explanation"`
}

/// ClassifyStrength buckets a coefficient by magnitude: |r| >= 0.7 strong,
// >= 0.4 moderate, else weak.
func ClassifyStrength(r float64) Strength {
	abs := math.Abs(r)
	switch {
	case abs >= 0.7:
		return StrengthStrong
	case abs >= 0.4:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// Pearson computes the correlation coefficient for two equal-length series.
// The second return is false when the coefficient is not computable: fewer
// than MinSamples observations, or zero variance in either series.
func Pearson(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n != len(ys) || n < MinSamples {
		return 0, false
	}

	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
		sumY2 += ys[i] * ys[i]
	}

	fn := float64(n)
	denom := math.Sqrt((fn*sumX2 - sumX*sumX) * (fn*sumY2 - sumY*sumY))
	if denom == 0 {
		return 0, false
	}

	r := (fn*sumXY - sumX*sumY) / denom
	// Floating-point sums can push r a hair outside [-1, 1].
	return math.Max(-1, math.Min(1, r)), true
}

// Correlate computes correlations for every unordered pair of distinct
// metrics across the given days, keeping pairs with |r| > cutoff, sorted
// by descending |r|. Pairs are pairwise-complete: each uses only the days
// where both metrics are present. Non-computable pairs are absent from the
// result, never reported as zero.
func Correlate(days []*align.Day, cutoff float64) []Correlation {
	var results []Correlation

	for i := 0; i < len(align.AllMetrics); i++ {
		for j := i + 1; j < len(align.AllMetrics); j++ {
			m1, m2 := align.AllMetrics[i], align.AllMetrics[j]

			var xs, ys []float64
			for _, d := range days {
				x, ok1 := d.Value(m1)
				y, ok2 := d.Value(m2)
				if ok1 && ok2 {
					xs = append(xs, x)
					ys = append(ys, y)
				}
			}

			r, ok := Pearson(xs, ys)
			if !ok || math.Abs(r) <= cutoff {
				continue
			}

			results = append(results, Correlation{
				Metric1:     m1,
				Metric2:     m2,
				Coefficient: r,
				Strength:    ClassifyStrength(r),
				Direction:   direction(r),
				SampleSize:  len(xs),
				Explanation: explain(m1, m2, r, len(xs)),
			})
		}
	}

	sort.Slice(results, func(a, b int) bool {
		return math.Abs(results[a].Coefficient) > math.Abs(results[b].Coefficient)
	})
	return results
}

// Notable returns the first n correlations with |r| above StrictCutoff.
// The input is assumed sorted by descending |r|, as Correlate returns it.
func Notable(results []Correlation, n int) []Correlation {
	var notable []Correlation
	for _, c := range results {
		if math.Abs(c.Coefficient) <= StrictCutoff {
			continue
		}
		notable = append(notable, c)
		if len(notable) == n {
			break
		}
	}
	return notable
}

func direction(r float64) Direction {
	if r < 0 {
		return DirectionNegative
	}
	return DirectionPositive
}

func explain(m1, m2 align.Metric, r float64, samples int) string {
	link := "rises"
	if r < 0 {
		link = "falls"
	}
	return fmt.Sprintf("%s %s relationship: %s tends to be higher on days when %s %s (r=%.2f over %d days)",
		ClassifyStrength(r), direction(r), m1, m2, link, r, samples)
}
