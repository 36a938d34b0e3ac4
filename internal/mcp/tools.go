// ABOUTME: MCP tool implementations for fitness coaching data.
// ABOUTME: Read-only access to programs, history, records and session state.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/fitcoach/internal/kvcache"
	"github.com/harperreed/fitcoach/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// list_programs
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_programs",
		Description: "List the user's personal workout programs",
	}, s.handleListPrograms)

	// get_program
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_program",
		Description: "Get a personal program with its exercise list",
	}, s.handleGetProgram)

	// list_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_history",
		Description: "List finished workouts, most recent first",
	}, s.handleListHistory)

	// get_records
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_records",
		Description: "Get personal best weight and reps per exercise",
	}, s.handleGetRecords)

	// session_status
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "session_status",
		Description: "Report whether a workout session is in progress",
	}, s.handleSessionStatus)
}

// Tool input/output types

type listProgramsInput struct{}

type getProgramInput struct {
	ID string `json:"id" jsonschema:"Program ID"`
}

type listHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type getRecordsInput struct {
	Exercises []string `json:"exercises,omitempty" jsonschema:"Exercise names to look up, all records when empty"`
}

type sessionStatusInput struct{}

type sessionStatusOutput struct {
	Active         bool   `json:"active"`
	ProgramTitle   string `json:"program_title,omitempty"`
	ElapsedSeconds int    `json:"elapsed_seconds,omitempty"`
	Message        string `json:"message"`
}

// Tool handlers

func (s *Server) handleListPrograms(ctx context.Context, req *mcp.CallToolRequest, input listProgramsInput) (*mcp.CallToolResult, any, error) {
	progs := s.programs.Personal()
	if len(progs) == 0 {
		return nil, map[string]interface{}{"message": "No programs found."}, nil
	}
	return nil, progs, nil
}

func (s *Server) handleGetProgram(ctx context.Context, req *mcp.CallToolRequest, input getProgramInput) (*mcp.CallToolResult, any, error) {
	p, ok := s.programs.Get(input.ID)
	if !ok {
		return nil, nil, fmt.Errorf("program not found: %s", input.ID)
	}
	return nil, p, nil
}

func (s *Server) handleListHistory(ctx context.Context, req *mcp.CallToolRequest, input listHistoryInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	entries, err := s.history.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list history: %w", err)
	}
	if len(entries) == 0 {
		return nil, map[string]interface{}{"message": "No workouts logged yet."}, nil
	}
	if len(entries) > input.Limit {
		entries = entries[:input.Limit]
	}
	return nil, entries, nil
}

func (s *Server) handleGetRecords(ctx context.Context, req *mcp.CallToolRequest, input getRecordsInput) (*mcp.CallToolResult, any, error) {
	recs, err := s.history.Records(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read records: %w", err)
	}

	if len(input.Exercises) > 0 {
		filtered := make(map[string]interface{})
		for _, name := range input.Exercises {
			if r, ok := recs[name]; ok {
				filtered[name] = r
			}
		}
		return nil, filtered, nil
	}

	if len(recs) == 0 {
		return nil, map[string]interface{}{"message": "No records yet."}, nil
	}
	return nil, recs, nil
}

func (s *Server) handleSessionStatus(ctx context.Context, req *mcp.CallToolRequest, input sessionStatusInput) (*mcp.CallToolResult, sessionStatusOutput, error) {
	snap, ok, err := kvcache.GetJSON[session.Snapshot](s.cache, kvcache.KeyActiveWorkout)
	if err != nil {
		return nil, sessionStatusOutput{}, fmt.Errorf("failed to read session state: %w", err)
	}
	if !ok {
		return nil, sessionStatusOutput{Message: "No workout in progress."}, nil
	}

	return nil, sessionStatusOutput{
		Active:         true,
		ProgramTitle:   snap.Program.Title,
		ElapsedSeconds: snap.Elapsed,
		Message:        fmt.Sprintf("Workout %q in progress (%ds elapsed)", snap.Program.Title, snap.Elapsed),
	}, nil
}
