// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pulsekit/pulse/internal/analysis"
	"github.com/pulsekit/pulse/internal/models"
	"github.com/pulsekit/pulse/internal/storage"
)

// setupTestServer creates a server backed by a temp sqlite database.
func setupTestServer(t *testing.T) (*Server, *storage.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "pulse.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	server, err := NewServer(db, analysis.Options{}, 30)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, db
}

func daysAgo(n int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -n)
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
}

func TestHandleLogRecovery(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   logRecoveryInput
		wantErr bool
	}{
		{
			name:  "score only",
			input: logRecoveryInput{RecoveryScore: 72},
		},
		{
			name: "all fields",
			input: logRecoveryInput{
				Date:          "2026-08-20",
				RecoveryScore: 55,
				HRV:           48,
				RestingHR:     58,
				Notes:         "rough night",
			},
		},
		{
			name:    "bad date",
			input:   logRecoveryInput{Date: "20-08-2026", RecoveryScore: 70},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleLogRecovery(ctx, &mcp.CallToolRequest{}, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if output.ID == "" {
				t.Error("Expected non-empty ID")
			}
			if output.Message == "" {
				t.Error("Expected non-empty Message")
			}
			if tt.input.Date != "" && output.Date != tt.input.Date {
				t.Errorf("Date = %s, want %s", output.Date, tt.input.Date)
			}
		})
	}
}

func TestHandleLogSleepConvertsHours(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	_, output, err := server.handleLogSleep(ctx, &mcp.CallToolRequest{}, logSleepInput{
		Efficiency: 88,
		Hours:      7.5,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output.Message, "7.5h") {
		t.Errorf("Message %q should mention hours", output.Message)
	}

	sleeps, err := db.ListSleeps(time.Time{}, 10)
	if err != nil {
		t.Fatalf("ListSleeps failed: %v", err)
	}
	if len(sleeps) != 1 {
		t.Fatalf("Expected 1 sleep, got %d", len(sleeps))
	}
	if got := sleeps[0].Hours(); got != 7.5 {
		t.Errorf("Hours = %f, want 7.5", got)
	}
}

func TestHandleLogBody(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	weight := 81.2
	_, output, err := server.handleLogBody(ctx, &mcp.CallToolRequest{}, logBodyInput{
		Weight: &weight,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.ID == "" {
		t.Error("Expected non-empty ID")
	}

	// Neither field set is an error.
	_, _, err = server.handleLogBody(ctx, &mcp.CallToolRequest{}, logBodyInput{})
	if err == nil {
		t.Error("Expected error for empty body input")
	}
}

func TestHandleDeleteRecord(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	w := models.NewWorkout(daysAgo(0), "run", 40, 35)
	if err := db.CreateWorkout(w); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	_, output, err := server.handleDeleteRecord(ctx, &mcp.CallToolRequest{}, deleteRecordInput{
		Type: "workout",
		ID:   w.ID.String()[:8],
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("Expected non-empty message")
	}

	workouts, err := db.ListWorkouts(time.Time{}, 10)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 0 {
		t.Error("Expected workout to be deleted")
	}
}

func TestHandleDeleteRecordBadType(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, _, err := server.handleDeleteRecord(ctx, &mcp.CallToolRequest{}, deleteRecordInput{
		Type: "mood",
		ID:   "deadbeef",
	})
	if err == nil {
		t.Error("Expected error for unknown record type")
	}
}

func TestHandleListDays(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		r := models.NewRecovery(daysAgo(i), 70+float64(i), 50, 55)
		if err := db.CreateRecovery(r); err != nil {
			t.Fatalf("CreateRecovery failed: %v", err)
		}
	}

	_, output, err := server.handleListDays(ctx, &mcp.CallToolRequest{}, listDaysInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	days, ok := output.([]*dayOutput)
	if !ok {
		t.Fatalf("Expected []*dayOutput, got %T", output)
	}
	if len(days) != 3 {
		t.Fatalf("Expected 3 days, got %d", len(days))
	}
	// Most recent first.
	if days[0].Date < days[1].Date {
		t.Errorf("Expected descending dates, got %s then %s", days[0].Date, days[1].Date)
	}
	if _, ok := days[0].Metrics["recovery_score"]; !ok {
		t.Error("Expected recovery_score in metrics map")
	}

	// Limit trims to the most recent days.
	_, output, err = server.handleListDays(ctx, &mcp.CallToolRequest{}, listDaysInput{Limit: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	days = output.([]*dayOutput)
	if len(days) != 2 {
		t.Errorf("Expected 2 days with limit, got %d", len(days))
	}
}

func TestHandleListDaysEmpty(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, output, err := server.handleListDays(ctx, &mcp.CallToolRequest{}, listDaysInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := output.(map[string]interface{}); !ok {
		t.Errorf("Expected message map for empty store, got %T", output)
	}
}

func TestHandleGetCorrelations(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	// Recovery tracks sleep efficiency across ten days, so the pair
	// correlates strongly.
	for i := 0; i < 10; i++ {
		date := daysAgo(i)
		if err := db.CreateRecovery(models.NewRecovery(date, 50+float64(i)*3, 50, 55)); err != nil {
			t.Fatalf("CreateRecovery failed: %v", err)
		}
		if err := db.CreateSleep(models.NewSleep(date, 70+float64(i)*2, 7*60*60*1000)); err != nil {
			t.Fatalf("CreateSleep failed: %v", err)
		}
	}

	_, output, err := server.handleGetCorrelations(ctx, &mcp.CallToolRequest{}, analysisInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	correlations, ok := output.([]analysis.Correlation)
	if !ok {
		t.Fatalf("Expected []analysis.Correlation, got %T", output)
	}
	found := false
	for _, c := range correlations {
		if (c.Metric1 == "recovery_score" && c.Metric2 == "sleep_score") ||
			(c.Metric1 == "sleep_score" && c.Metric2 == "recovery_score") {
			found = true
			if c.Coefficient < 0.9 {
				t.Errorf("Expected strong correlation, got r=%f", c.Coefficient)
			}
		}
	}
	if !found {
		t.Error("Expected recovery/sleep correlation in output")
	}
}

func TestHandleGetInsights(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	// A critically low recovery score triggers the rule battery.
	if err := db.CreateRecovery(models.NewRecovery(daysAgo(0), 25, 40, 62)); err != nil {
		t.Fatalf("CreateRecovery failed: %v", err)
	}

	_, output, err := server.handleGetInsights(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	findings, ok := output.(analysis.Findings)
	if !ok {
		t.Fatalf("Expected analysis.Findings, got %T", output)
	}
	if len(findings.Notifications) == 0 {
		t.Error("Expected a notification for critical recovery")
	}
}

func TestHandleGetHealthScore(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	_, output, err := server.handleGetHealthScore(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.HasScore {
		t.Error("Expected no score with empty store")
	}

	if err := db.CreateRecovery(models.NewRecovery(daysAgo(0), 80, 50, 55)); err != nil {
		t.Fatalf("CreateRecovery failed: %v", err)
	}

	_, output, err = server.handleGetHealthScore(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !output.HasScore {
		t.Fatal("Expected a score")
	}
	if output.Score != 80 {
		t.Errorf("Score = %f, want 80", output.Score)
	}
}

func TestResourceHandlers(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	if err := db.CreateRecovery(models.NewRecovery(daysAgo(0), 75, 52, 54)); err != nil {
		t.Fatalf("CreateRecovery failed: %v", err)
	}

	recent, err := server.handleRecentDaysResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Recent days resource failed: %v", err)
	}
	if len(recent.Contents) != 1 || recent.Contents[0].URI != "pulse://days/recent" {
		t.Error("Unexpected recent days resource contents")
	}
	if !strings.Contains(recent.Contents[0].Text, "recovery_score") {
		t.Error("Expected recovery_score in recent days resource")
	}

	summary, err := server.handleSummaryResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Summary resource failed: %v", err)
	}
	if len(summary.Contents) != 1 || summary.Contents[0].URI != "pulse://report/summary" {
		t.Error("Unexpected summary resource contents")
	}
	if !strings.Contains(summary.Contents[0].Text, "health_score") {
		t.Error("Expected health_score in summary resource")
	}
}
