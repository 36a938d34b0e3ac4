// ABOUTME: MCP resource implementations for fitness coaching data.
// ABOUTME: Provides fitcoach://recent, fitcoach://records and fitcoach://summary.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// fitcoach://recent - last 10 finished workouts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitcoach://recent",
		Name:        "Recent Workouts",
		Description: "Last 10 finished workouts",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// fitcoach://records - the personal best map
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitcoach://records",
		Name:        "Personal Records",
		Description: "Best weight and reps per exercise",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)

	// fitcoach://summary - programs, record count and recent training volume
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitcoach://summary",
		Name:        "Training Summary",
		Description: "Program list, record count and recent volume",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries, err := s.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	if len(entries) > 10 {
		entries = entries[:10]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "fitcoach://recent",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleRecordsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	recs, err := s.history.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "fitcoach://records",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	progs := s.programs.Personal()

	entries, err := s.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	recs, err := s.history.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	var weekVolume float64
	var weekWorkouts int
	weekStart := time.Now().AddDate(0, 0, -7)
	for _, e := range entries {
		if e.Date.After(weekStart) {
			weekVolume += e.Volume
			weekWorkouts++
		}
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"programs":     progs,
		"last_week": map[string]interface{}{
			"workouts": weekWorkouts,
			"volume":   weekVolume,
		},
		"summary": map[string]int{
			"program_count": len(progs),
			"record_count":  len(recs),
			"total_logged":  len(entries),
		},
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "fitcoach://summary",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
