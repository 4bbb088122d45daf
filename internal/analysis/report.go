// ABOUTME: One-call analysis producing correlations, findings, and health score.
// ABOUTME: Pure function of the aligned days; no state survives between runs.
package analysis

import "github.com/pulsekit/pulse/internal/align"

// Options tunes one analysis run.
type Options struct {
	// Cutoff is the minimum |r| for a correlation to appear in the full
	// list. Zero means DefaultCutoff.
	Cutoff float64

	// NotableLimit caps the notable-correlations list. Zero means 5.
	NotableLimit int
}

func (o Options) cutoff() float64 {
	if o.Cutoff == 0 {
		return DefaultCutoff
	}
	return o.Cutoff
}

func (o Options) notableLimit() int {
	if o.NotableLimit == 0 {
		return 5
	}
	return o.NotableLimit
}

// Report is the complete output of one analysis run.
type Report struct {
	Correlations    []Correlation    `json:"correlations"`
	Notable         []Correlation    `json:"notable_correlations"`
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
	Notifications   []Notification   `json:"notifications"`
	HealthScore     float64          `json:"health_score"`
	HasHealthScore  bool             `json:"has_health_score"`
	DayCount        int              `json:"day_count"`
}

// Analyze runs the correlation engine and rule battery over the aligned
// days. Days must be sorted by date ascending, as align.Align returns
// them. Analyze never fails; with little or no data it returns an empty
// report.
func Analyze(days []*align.Day, opts Options) *Report {
	findings := EvaluateRules(days)
	correlations := Correlate(days, opts.cutoff())
	score, hasScore := HealthScore(days)

	return &Report{
		Correlations:    correlations,
		Notable:         Notable(correlations, opts.notableLimit()),
		Insights:        findings.Insights,
		Recommendations: findings.Recommendations,
		Notifications:   findings.Notifications,
		HealthScore:     score,
		HasHealthScore:  hasScore,
		DayCount:        len(days),
	}
}
