// ABOUTME: MCP tool implementations for pulse records and analysis.
// ABOUTME: Provides logging tools plus correlation, insight, and score queries.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pulsekit/pulse/internal/analysis"
	"github.com/pulsekit/pulse/internal/models"
)

func (s *Server) registerTools() {
	// log_recovery
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_recovery",
		Description: "Record a daily recovery reading (recovery score, HRV, resting heart rate)",
	}, s.handleLogRecovery)

	// log_sleep
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_sleep",
		Description: "Record one night of sleep (efficiency and hours slept)",
	}, s.handleLogSleep)

	// log_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Record a training session with strain and duration",
	}, s.handleLogWorkout)

	// log_meal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_meal",
		Description: "Record a meal with calories and macros",
	}, s.handleLogMeal)

	// log_body
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_body",
		Description: "Record weight and/or plan adherence for a day",
	}, s.handleLogBody)

	// delete_record
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_record",
		Description: "Delete a record by type and ID or ID prefix",
	}, s.handleDeleteRecord)

	// list_days
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_days",
		Description: "List recent days with their aligned metric values",
	}, s.handleListDays)

	// get_correlations
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_correlations",
		Description: "Compute metric-pair correlations over the recent analysis window",
	}, s.handleGetCorrelations)

	// get_insights
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_insights",
		Description: "Run the rule battery and return insights, recommendations, and alerts",
	}, s.handleGetInsights)

	// get_health_score
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_health_score",
		Description: "Compute the weighted composite health score over the recent window",
	}, s.handleGetHealthScore)
}

// Tool input/output types

type logRecoveryInput struct {
	Date          string  `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	RecoveryScore float64 `json:"recovery_score" jsonschema:"Recovery score 0-100"`
	HRV           float64 `json:"hrv,omitempty" jsonschema:"Heart rate variability in milliseconds"`
	RestingHR     float64 `json:"resting_hr,omitempty" jsonschema:"Resting heart rate in bpm"`
	Notes         string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type logSleepInput struct {
	Date       string  `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	Efficiency float64 `json:"efficiency" jsonschema:"Sleep efficiency percentage 0-100"`
	Hours      float64 `json:"hours" jsonschema:"Hours slept"`
	Notes      string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type logWorkoutInput struct {
	Date            string  `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	Kind            string  `json:"kind" jsonschema:"Workout kind (run, lift, cycle, strength, etc.)"`
	Strain          float64 `json:"strain,omitempty" jsonschema:"Device-reported strain score"`
	DurationMinutes float64 `json:"duration_minutes,omitempty" jsonschema:"Duration in minutes"`
	Notes           string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type logMealInput struct {
	Date     string  `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	Calories float64 `json:"calories" jsonschema:"Calories"`
	Protein  float64 `json:"protein,omitempty" jsonschema:"Protein in grams"`
	Carbs    float64 `json:"carbs,omitempty" jsonschema:"Carbs in grams"`
	Fats     float64 `json:"fats,omitempty" jsonschema:"Fats in grams"`
	Notes    string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type logBodyInput struct {
	Date      string   `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	Weight    *float64 `json:"weight,omitempty" jsonschema:"Body weight in kg"`
	Adherence *float64 `json:"adherence,omitempty" jsonschema:"Plan adherence percentage 0-100"`
	Notes     string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type deleteRecordInput struct {
	Type string `json:"type" jsonschema:"Record type (recovery, sleep, workout, nutrition, body)"`
	ID   string `json:"id" jsonschema:"Record ID or prefix"`
}

type listDaysInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max days to return, most recent first (default 14)"`
}

type analysisInput struct {
	Cutoff float64 `json:"cutoff,omitempty" jsonschema:"Minimum |r| for a correlation to be reported (default 0.1)"`
}

type recordOutput struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type healthScoreOutput struct {
	Score    float64 `json:"score"`
	HasScore bool    `json:"has_score"`
	DayCount int     `json:"day_count"`
	Message  string  `json:"message"`
}

// parseDate resolves an optional YYYY-MM-DD date, defaulting to today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Tool handlers

func (s *Server) handleLogRecovery(ctx context.Context, req *mcp.CallToolRequest, input logRecoveryInput) (*mcp.CallToolResult, recordOutput, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, recordOutput{}, err
	}

	r := models.NewRecovery(date, input.RecoveryScore, input.HRV, input.RestingHR)
	if input.Notes != "" {
		r.WithNotes(input.Notes)
	}

	if err := s.repo.CreateRecovery(r); err != nil {
		return nil, recordOutput{}, fmt.Errorf("failed to create recovery: %w", err)
	}

	return nil, recordOutput{
		ID:      r.ID.String()[:8],
		Date:    r.RecordedOn.Format("2006-01-02"),
		Message: fmt.Sprintf("Logged recovery %.0f for %s (ID: %s)", r.RecoveryScore, r.RecordedOn.Format("2006-01-02"), r.ID.String()[:8]),
	}, nil
}

func (s *Server) handleLogSleep(ctx context.Context, req *mcp.CallToolRequest, input logSleepInput) (*mcp.CallToolResult, recordOutput, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, recordOutput{}, err
	}

	sl := models.NewSleep(date, input.Efficiency, input.Hours*60*60*1000)
	if input.Notes != "" {
		sl.WithNotes(input.Notes)
	}

	if err := s.repo.CreateSleep(sl); err != nil {
		return nil, recordOutput{}, fmt.Errorf("failed to create sleep: %w", err)
	}

	return nil, recordOutput{
		ID:      sl.ID.String()[:8],
		Date:    sl.RecordedOn.Format("2006-01-02"),
		Message: fmt.Sprintf("Logged %.1fh sleep at %.0f%% efficiency for %s (ID: %s)", sl.Hours(), sl.Efficiency, sl.RecordedOn.Format("2006-01-02"), sl.ID.String()[:8]),
	}, nil
}

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, recordOutput, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, recordOutput{}, err
	}

	w := models.NewWorkout(date, input.Kind, input.Strain, input.DurationMinutes)
	if input.Notes != "" {
		w.WithNotes(input.Notes)
	}

	if err := s.repo.CreateWorkout(w); err != nil {
		return nil, recordOutput{}, fmt.Errorf("failed to create workout: %w", err)
	}

	return nil, recordOutput{
		ID:      w.ID.String()[:8],
		Date:    w.RecordedOn.Format("2006-01-02"),
		Message: fmt.Sprintf("Logged %s workout for %s (ID: %s)", w.Kind, w.RecordedOn.Format("2006-01-02"), w.ID.String()[:8]),
	}, nil
}

func (s *Server) handleLogMeal(ctx context.Context, req *mcp.CallToolRequest, input logMealInput) (*mcp.CallToolResult, recordOutput, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, recordOutput{}, err
	}

	n := models.NewNutrition(date, input.Calories, input.Protein, input.Carbs, input.Fats)
	if input.Notes != "" {
		n.WithNotes(input.Notes)
	}

	if err := s.repo.CreateNutrition(n); err != nil {
		return nil, recordOutput{}, fmt.Errorf("failed to create nutrition entry: %w", err)
	}

	return nil, recordOutput{
		ID:      n.ID.String()[:8],
		Date:    n.RecordedOn.Format("2006-01-02"),
		Message: fmt.Sprintf("Logged %.0f kcal for %s (ID: %s)", n.Calories, n.RecordedOn.Format("2006-01-02"), n.ID.String()[:8]),
	}, nil
}

func (s *Server) handleLogBody(ctx context.Context, req *mcp.CallToolRequest, input logBodyInput) (*mcp.CallToolResult, recordOutput, error) {
	if input.Weight == nil && input.Adherence == nil {
		return nil, recordOutput{}, fmt.Errorf("at least one of weight or adherence is required")
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, recordOutput{}, err
	}

	b := models.NewBody(date)
	if input.Weight != nil {
		b.WithWeight(*input.Weight)
	}
	if input.Adherence != nil {
		b.WithAdherence(*input.Adherence)
	}
	if input.Notes != "" {
		b.WithNotes(input.Notes)
	}

	if err := s.repo.CreateBody(b); err != nil {
		return nil, recordOutput{}, fmt.Errorf("failed to create body record: %w", err)
	}

	return nil, recordOutput{
		ID:      b.ID.String()[:8],
		Date:    b.RecordedOn.Format("2006-01-02"),
		Message: fmt.Sprintf("Logged body record for %s (ID: %s)", b.RecordedOn.Format("2006-01-02"), b.ID.String()[:8]),
	}, nil
}

func (s *Server) handleDeleteRecord(ctx context.Context, req *mcp.CallToolRequest, input deleteRecordInput) (*mcp.CallToolResult, simpleOutput, error) {
	if !models.IsValidRecordType(input.Type) {
		return nil, simpleOutput{}, fmt.Errorf("unknown record type: %s", input.Type)
	}

	if err := s.repo.DeleteRecord(models.RecordType(input.Type), input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete record: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted %s record: %s", input.Type, input.ID),
	}, nil
}

func (s *Server) handleListDays(ctx context.Context, req *mcp.CallToolRequest, input listDaysInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 14
	}

	days, err := s.alignedDays()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}

	if len(days) == 0 {
		return nil, map[string]interface{}{"message": "No data found."}, nil
	}

	// Days come back oldest first; the tool reports most recent first.
	if len(days) > input.Limit {
		days = days[len(days)-input.Limit:]
	}
	out := make([]*dayOutput, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- {
		out = append(out, newDayOutput(days[i]))
	}

	return nil, out, nil
}

func (s *Server) handleGetCorrelations(ctx context.Context, req *mcp.CallToolRequest, input analysisInput) (*mcp.CallToolResult, any, error) {
	days, err := s.alignedDays()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}

	cutoff := s.opts.Cutoff
	if input.Cutoff > 0 {
		cutoff = input.Cutoff
	}

	correlations := analysis.Correlate(days, cutoff)
	if len(correlations) == 0 {
		return nil, map[string]interface{}{"message": "No correlations found. More overlapping data may be needed."}, nil
	}

	return nil, correlations, nil
}

func (s *Server) handleGetInsights(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	days, err := s.alignedDays()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}

	findings := analysis.EvaluateRules(days)
	if len(findings.Insights) == 0 && len(findings.Recommendations) == 0 && len(findings.Notifications) == 0 {
		return nil, map[string]interface{}{"message": "No insights yet. Log a few more days of data."}, nil
	}

	return nil, findings, nil
}

func (s *Server) handleGetHealthScore(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, healthScoreOutput, error) {
	days, err := s.alignedDays()
	if err != nil {
		return nil, healthScoreOutput{}, fmt.Errorf("failed to load records: %w", err)
	}

	score, hasScore := analysis.HealthScore(days)
	out := healthScoreOutput{
		Score:    score,
		HasScore: hasScore,
		DayCount: len(days),
	}
	if hasScore {
		out.Message = fmt.Sprintf("Health score: %.1f/100 over %d days", score, len(days))
	} else {
		out.Message = "Not enough data for a health score yet."
	}

	return nil, out, nil
}
