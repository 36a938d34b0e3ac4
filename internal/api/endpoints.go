// ABOUTME: Typed backend endpoints consumed by the client core.
// ABOUTME: The wire format is owned by the backend; only shapes used here.
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/harperreed/fitcoach/internal/models"
)

// Profile is the backend's view of the current user.
type Profile struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"displayName"`
	Role        string  `json:"role"`
	Balance     float64 `json:"balance"`
}

type envelope struct {
	Success  bool                             `json:"success"`
	Error    string                           `json:"error"`
	Programs []models.Program                 `json:"programs"`
	Program  *models.Program                  `json:"program"`
	History  []models.WorkoutHistoryEntry     `json:"history"`
	Records  map[string]models.ExerciseRecord `json:"records"`
	User     *Profile                         `json:"user"`
}

// FetchProfile returns the current user's profile, role and balance.
func (c *Client) FetchProfile(ctx context.Context) (*Profile, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/user/me", nil, &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

// FetchMyPrograms lists the user's personal programs.
func (c *Client) FetchMyPrograms(ctx context.Context) ([]models.Program, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/programs/my", nil, &env); err != nil {
		return nil, err
	}
	return env.Programs, nil
}

// SaveMyProgram creates or updates a personal program.
func (c *Client) SaveMyProgram(ctx context.Context, p models.Program) error {
	body := struct {
		ID        string                `json:"id"`
		Title     string                `json:"title"`
		Exercises []models.ExerciseSpec `json:"exercises"`
	}{ID: p.ID, Title: p.Title, Exercises: p.Exercises}
	return c.do(ctx, http.MethodPost, "/programs/my", body, nil)
}

// DeleteMyProgram deletes a personal program.
func (c *Client) DeleteMyProgram(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/programs/my/"+url.PathEscape(id), nil, nil)
}

// FetchCatalog lists the published trainer programs.
func (c *Client) FetchCatalog(ctx context.Context) ([]models.Program, error) {
	var programs []models.Program
	if err := c.do(ctx, http.MethodGet, "/content/programs", nil, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// FetchTrainerPrograms lists the programs owned by the calling trainer.
func (c *Client) FetchTrainerPrograms(ctx context.Context) ([]models.Program, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/trainer/programs", nil, &env); err != nil {
		return nil, err
	}
	return env.Programs, nil
}

// publishedBody carries a published program. The published collection still
// takes the exercise list under the legacy "workouts" key.
type publishedBody struct {
	Title    string                `json:"title"`
	Workouts []models.ExerciseSpec `json:"workouts"`
	Category string                `json:"category,omitempty"`
	Price    float64               `json:"price,omitempty"`
}

// CreatePublishedProgram publishes a new catalog program and returns the
// server's canonical version.
func (c *Client) CreatePublishedProgram(ctx context.Context, p models.Program) (*models.Program, error) {
	body := publishedBody{Title: p.Title, Workouts: p.Exercises, Category: p.Category, Price: p.Price}
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/content/programs", body, &env); err != nil {
		return nil, err
	}
	if !env.Success && env.Error != "" {
		return nil, &APIError{Status: http.StatusUnprocessableEntity, Body: env.Error}
	}
	return env.Program, nil
}

// UpdatePublishedProgram updates an existing catalog program.
func (c *Client) UpdatePublishedProgram(ctx context.Context, p models.Program) error {
	body := publishedBody{Title: p.Title, Workouts: p.Exercises, Category: p.Category, Price: p.Price}
	return c.do(ctx, http.MethodPut, "/content/programs/"+url.PathEscape(p.ID), body, nil)
}

// DeletePublishedProgram deletes a catalog program after backend
// confirmation.
func (c *Client) DeletePublishedProgram(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/content/programs/"+url.PathEscape(id), nil, nil)
}

// FetchPurchases lists programs the user has bought.
func (c *Client) FetchPurchases(ctx context.Context) ([]models.Program, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/purchases", nil, &env); err != nil {
		return nil, err
	}
	return env.Programs, nil
}

// WorkoutLog is the finalize payload posted once per finished session.
type WorkoutLog struct {
	ProgramID    string                           `json:"programId"`
	WorkoutTitle string                           `json:"workoutTitle"`
	Exercises    []models.ExerciseResult          `json:"exercises"`
	Duration     int                              `json:"duration"`
	Volume       float64                          `json:"volume"`
	Records      map[string]models.ExerciseRecord `json:"records"`
}

// LogWorkout appends a finished workout to the server-side history.
func (c *Client) LogWorkout(ctx context.Context, entry WorkoutLog) error {
	return c.do(ctx, http.MethodPost, "/workouts/log", entry, nil)
}

// FetchHistory returns the server-side workout history.
func (c *Client) FetchHistory(ctx context.Context) ([]models.WorkoutHistoryEntry, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/workouts/history", nil, &env); err != nil {
		return nil, err
	}
	return env.History, nil
}

// FetchRecords returns the server-side exercise record map.
func (c *Client) FetchRecords(ctx context.Context) (map[string]models.ExerciseRecord, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/workouts/records", nil, &env); err != nil {
		return nil, err
	}
	return env.Records, nil
}
