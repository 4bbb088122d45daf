// ABOUTME: MCP resource implementations for pulse data.
// ABOUTME: Provides pulse://days/recent and pulse://report/summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pulsekit/pulse/internal/align"
	"github.com/pulsekit/pulse/internal/analysis"
)

func (s *Server) registerResources() {
	// pulse://days/recent - Aligned metric days, most recent first
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "pulse://days/recent",
		Name:        "Recent Days",
		Description: "Aligned daily metric values for the recent analysis window",
		MIMEType:    "application/json",
	}, s.handleRecentDaysResource)

	// pulse://report/summary - Full analysis report
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "pulse://report/summary",
		Name:        "Analysis Summary",
		Description: "Correlations, insights, recommendations, alerts, and health score",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// dayOutput is a Day flattened for JSON output. Absent metrics are omitted.
type dayOutput struct {
	Date             string             `json:"date"`
	Metrics          map[string]float64 `json:"metrics"`
	StrengthSessions int                `json:"strength_sessions,omitempty"`
}

func newDayOutput(d *align.Day) *dayOutput {
	out := &dayOutput{
		Date:             d.Date.Format("2006-01-02"),
		Metrics:          make(map[string]float64),
		StrengthSessions: d.StrengthSessions,
	}
	for _, m := range align.AllMetrics {
		if v, ok := d.Value(m); ok {
			out.Metrics[string(m)] = v
		}
	}
	return out
}

// Resource handlers

func (s *Server) handleRecentDaysResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	days, err := s.alignedDays()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	out := make([]*dayOutput, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- {
		out = append(out, newDayOutput(days[i]))
	}

	result := map[string]interface{}{
		"window_days": s.windowDays,
		"day_count":   len(out),
		"days":        out,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "pulse://days/recent",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	days, err := s.alignedDays()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	report := analysis.Analyze(days, s.opts)

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"window_days":  s.windowDays,
		"report":       report,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "pulse://report/summary",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
