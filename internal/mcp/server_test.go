// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/harperreed/fitcoach/internal/history"
	"github.com/harperreed/fitcoach/internal/host"
	"github.com/harperreed/fitcoach/internal/kvcache"
	"github.com/harperreed/fitcoach/internal/models"
	"github.com/harperreed/fitcoach/internal/programs"
	"github.com/harperreed/fitcoach/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupServer wires a server over an in-memory store.
func setupServer(t *testing.T) (*Server, *kvcache.Memory) {
	t.Helper()

	store := kvcache.NewMemory()
	progs := programs.NewService(store, nil, &host.Recorder{})
	hist := history.NewService(store, nil)

	server, err := NewServer(progs, hist, store)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, store
}

func seedProgram(t *testing.T, server *Server, id, title string) {
	t.Helper()
	p := models.Program{ID: id, Title: title, Exercises: []models.ExerciseSpec{
		{Name: "Жим лёжа", Sets: 3, Reps: "8", Weight: "60"},
	}}
	if err := server.programs.SavePersonal(context.Background(), p); err != nil {
		t.Fatalf("SavePersonal failed: %v", err)
	}
}

func seedHistory(t *testing.T, store kvcache.Store, entries []models.WorkoutHistoryEntry) {
	t.Helper()
	if err := kvcache.SetJSON(store, kvcache.KeyWorkoutHistory, entries); err != nil {
		t.Fatalf("seeding history failed: %v", err)
	}
}

func TestNewServer(t *testing.T) {
	server, _ := setupServer(t)

	if server == nil {
		t.Fatal("Expected non-nil server")
	}
	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.programs == nil {
		t.Error("Expected non-nil programs service")
	}
	if server.history == nil {
		t.Error("Expected non-nil history service")
	}
}

func TestHandleListPrograms(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	seedProgram(t, server, "p1", "Фулбади")
	seedProgram(t, server, "p2", "Ноги")

	_, output, err := server.handleListPrograms(ctx, &mcp.CallToolRequest{}, listProgramsInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	progs, ok := output.([]models.Program)
	if !ok {
		t.Fatalf("Expected program slice output, got %T", output)
	}
	if len(progs) != 2 {
		t.Errorf("Expected 2 programs, got %d", len(progs))
	}
}

func TestHandleListProgramsEmpty(t *testing.T) {
	server, _ := setupServer(t)

	_, output, err := server.handleListPrograms(context.Background(), &mcp.CallToolRequest{}, listProgramsInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Should return a message map for empty results
	if _, ok := output.(map[string]interface{}); !ok {
		t.Errorf("Expected message map for empty list, got %T", output)
	}
}

func TestHandleGetProgram(t *testing.T) {
	server, _ := setupServer(t)
	seedProgram(t, server, "p1", "Фулбади")

	_, output, err := server.handleGetProgram(context.Background(), &mcp.CallToolRequest{}, getProgramInput{ID: "p1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	p, ok := output.(models.Program)
	if !ok {
		t.Fatalf("Expected program output, got %T", output)
	}
	if p.Title != "Фулбади" {
		t.Errorf("Title = %q, want %q", p.Title, "Фулбади")
	}
}

func TestHandleGetProgramNotFound(t *testing.T) {
	server, _ := setupServer(t)

	_, _, err := server.handleGetProgram(context.Background(), &mcp.CallToolRequest{}, getProgramInput{ID: "nonexistent"})
	if err == nil {
		t.Error("Expected error for nonexistent program")
	}
}

func TestHandleListHistory(t *testing.T) {
	server, store := setupServer(t)
	seedHistory(t, store, []models.WorkoutHistoryEntry{
		{ID: "wh_1", ProgramTitle: "Фулбади", Volume: 480},
		{ID: "wh_2", ProgramTitle: "Ноги", Volume: 900},
	})

	_, output, err := server.handleListHistory(context.Background(), &mcp.CallToolRequest{}, listHistoryInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	entries, ok := output.([]models.WorkoutHistoryEntry)
	if !ok {
		t.Fatalf("Expected history slice output, got %T", output)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "wh_1" {
		t.Errorf("Expected most recent entry first, got %s", entries[0].ID)
	}
}

func TestHandleListHistoryLimit(t *testing.T) {
	server, store := setupServer(t)
	seedHistory(t, store, []models.WorkoutHistoryEntry{
		{ID: "wh_1"}, {ID: "wh_2"}, {ID: "wh_3"},
	})

	_, output, err := server.handleListHistory(context.Background(), &mcp.CallToolRequest{}, listHistoryInput{Limit: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	entries, ok := output.([]models.WorkoutHistoryEntry)
	if !ok {
		t.Fatalf("Expected history slice output, got %T", output)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries with limit, got %d", len(entries))
	}
}

func TestHandleListHistoryEmpty(t *testing.T) {
	server, _ := setupServer(t)

	_, output, err := server.handleListHistory(context.Background(), &mcp.CallToolRequest{}, listHistoryInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := output.(map[string]interface{}); !ok {
		t.Errorf("Expected message map for empty history, got %T", output)
	}
}

func TestHandleGetRecords(t *testing.T) {
	server, store := setupServer(t)
	recs := map[string]models.ExerciseRecord{
		"жим лёжа": {Weight: 80, Reps: 5, Date: time.Now()},
		"присед":   {Weight: 120, Reps: 3, Date: time.Now()},
	}
	if err := kvcache.SetJSON(store, kvcache.KeyExerciseRecords, recs); err != nil {
		t.Fatalf("seeding records failed: %v", err)
	}

	_, output, err := server.handleGetRecords(context.Background(), &mcp.CallToolRequest{}, getRecordsInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got, ok := output.(map[string]models.ExerciseRecord)
	if !ok {
		t.Fatalf("Expected record map output, got %T", output)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 records, got %d", len(got))
	}
}

func TestHandleGetRecordsFiltered(t *testing.T) {
	server, store := setupServer(t)
	recs := map[string]models.ExerciseRecord{
		"жим лёжа": {Weight: 80, Reps: 5},
		"присед":   {Weight: 120, Reps: 3},
	}
	if err := kvcache.SetJSON(store, kvcache.KeyExerciseRecords, recs); err != nil {
		t.Fatalf("seeding records failed: %v", err)
	}

	_, output, err := server.handleGetRecords(context.Background(), &mcp.CallToolRequest{}, getRecordsInput{
		Exercises: []string{"присед", "nonexistent"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got, ok := output.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected filtered map output, got %T", output)
	}
	if _, ok := got["присед"]; !ok {
		t.Error("Expected присед in results")
	}
	if _, ok := got["nonexistent"]; ok {
		t.Error("Should not have nonexistent in results")
	}
}

func TestHandleSessionStatusIdle(t *testing.T) {
	server, _ := setupServer(t)

	_, output, err := server.handleSessionStatus(context.Background(), &mcp.CallToolRequest{}, sessionStatusInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Active {
		t.Error("Expected inactive session")
	}
	if output.Message == "" {
		t.Error("Expected non-empty message")
	}
}

func TestHandleSessionStatusActive(t *testing.T) {
	server, store := setupServer(t)
	snap := session.Snapshot{
		Program: models.Program{ID: "p1", Title: "Фулбади"},
		Elapsed: 300,
	}
	if err := kvcache.SetJSON(store, kvcache.KeyActiveWorkout, snap); err != nil {
		t.Fatalf("seeding session failed: %v", err)
	}

	_, output, err := server.handleSessionStatus(context.Background(), &mcp.CallToolRequest{}, sessionStatusInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !output.Active {
		t.Error("Expected active session")
	}
	if output.ProgramTitle != "Фулбади" {
		t.Errorf("ProgramTitle = %q, want %q", output.ProgramTitle, "Фулбади")
	}
	if output.ElapsedSeconds != 300 {
		t.Errorf("ElapsedSeconds = %d, want 300", output.ElapsedSeconds)
	}
}

func TestHandleRecentResource(t *testing.T) {
	server, store := setupServer(t)
	seedHistory(t, store, []models.WorkoutHistoryEntry{{ID: "wh_1", ProgramTitle: "Фулбади"}})

	result, err := server.handleRecentResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	if result.Contents[0].URI != "fitcoach://recent" {
		t.Errorf("URI = %s, want fitcoach://recent", result.Contents[0].URI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}
	if !contains(result.Contents[0].Text, "Фулбади") {
		t.Error("Expected program title in result")
	}
}

func TestHandleRecentResourceCapsAtTen(t *testing.T) {
	server, store := setupServer(t)
	var entries []models.WorkoutHistoryEntry
	for i := 0; i < 15; i++ {
		entries = append(entries, models.WorkoutHistoryEntry{ID: "wh", ProgramTitle: "x"})
	}
	seedHistory(t, store, entries)

	result, err := server.handleRecentResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result == nil || len(result.Contents) == 0 {
		t.Fatal("Expected non-empty result")
	}
}

func TestHandleRecordsResource(t *testing.T) {
	server, store := setupServer(t)
	recs := map[string]models.ExerciseRecord{"жим лёжа": {Weight: 80, Reps: 5}}
	if err := kvcache.SetJSON(store, kvcache.KeyExerciseRecords, recs); err != nil {
		t.Fatalf("seeding records failed: %v", err)
	}

	result, err := server.handleRecordsResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Contents[0].URI != "fitcoach://records" {
		t.Errorf("URI = %s, want fitcoach://records", result.Contents[0].URI)
	}
	if !contains(result.Contents[0].Text, "жим лёжа") {
		t.Error("Expected record key in result")
	}
}

func TestHandleSummaryResource(t *testing.T) {
	server, store := setupServer(t)
	seedProgram(t, server, "p1", "Фулбади")
	seedHistory(t, store, []models.WorkoutHistoryEntry{
		{ID: "wh_1", ProgramTitle: "Фулбади", Volume: 480, Date: time.Now()},
		{ID: "wh_2", ProgramTitle: "Ноги", Volume: 900, Date: time.Now().AddDate(0, 0, -30)},
	})

	result, err := server.handleSummaryResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Contents[0].URI != "fitcoach://summary" {
		t.Errorf("URI = %s, want fitcoach://summary", result.Contents[0].URI)
	}

	text := result.Contents[0].Text
	if !contains(text, "last_week") {
		t.Error("Expected last_week section")
	}
	if !contains(text, "program_count") {
		t.Error("Expected program_count in summary")
	}
	if !contains(text, "480") {
		t.Error("Expected this week's volume in summary")
	}
}

func TestHandleSummaryResourceEmpty(t *testing.T) {
	server, _ := setupServer(t)

	result, err := server.handleSummaryResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("Expected non-nil result")
	}
}

// Helper function.
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(s) > 0 && containsImpl(s, substr))
}

func containsImpl(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
