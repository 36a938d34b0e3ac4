// ABOUTME: Program and ExerciseSpec models for training programs.
// ABOUTME: Handles wire-format normalization and merge-by-id reconciliation.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExerciseSpec describes one exercise slot inside a program.
// Reps is free-form ("8-10" is valid). For cardio exercises Weight holds a
// duration in seconds rather than a mass; that dual meaning is part of the
// wire contract and must not be "fixed".
type ExerciseSpec struct {
	Name   string `json:"name"`
	Sets   int    `json:"sets"`
	Reps   string `json:"reps"`
	Weight string `json:"weight"`
}

// UnmarshalJSON tolerates numeric sets/reps/weight values from the backend.
func (e *ExerciseSpec) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   string          `json:"name"`
		Sets   json.RawMessage `json:"sets"`
		Reps   json.RawMessage `json:"reps"`
		Weight json.RawMessage `json:"weight"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Name = raw.Name
	e.Sets = flexInt(raw.Sets)
	e.Reps = flexString(raw.Reps)
	e.Weight = flexString(raw.Weight)
	return nil
}

// Program is a training program: either a user's personal program
// (IsPersonal nil or true) or a trainer-published catalog program
// (IsPersonal explicitly false).
type Program struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Exercises  []ExerciseSpec `json:"exercises"`
	AuthorID   int64          `json:"authorId,omitempty"`
	Author     string         `json:"author,omitempty"`
	Category   string         `json:"category,omitempty"`
	Price      float64        `json:"price"`
	IsPersonal *bool          `json:"isPersonal,omitempty"`
	CreatedAt  string         `json:"createdAt,omitempty"`
}

// NewProgram creates an empty personal program with a generated id.
func NewProgram(title string) *Program {
	personal := true
	return &Program{
		ID:         "prog_" + uuid.NewString(),
		Title:      title,
		Exercises:  []ExerciseSpec{},
		IsPersonal: &personal,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

// Personal reports whether the program belongs to the personal class.
// Anything not explicitly marked isPersonal=false counts as personal.
func (p *Program) Personal() bool {
	return p.IsPersonal == nil || *p.IsPersonal
}

// UnmarshalJSON normalizes the different shapes the backend emits:
// exercise lists under "exercises" or the legacy "workouts" key, author as a
// plain name or a nested object, and prices as numbers or strings.
func (p *Program) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID            json.RawMessage `json:"id"`
		Title         string          `json:"title"`
		Exercises     []ExerciseSpec  `json:"exercises"`
		Workouts      []ExerciseSpec  `json:"workouts"`
		AuthorID      json.RawMessage `json:"authorId"`
		AuthorIDSnake json.RawMessage `json:"author_id"`
		Author        json.RawMessage `json:"author"`
		AuthorName    string          `json:"authorName"`
		Category      string          `json:"category"`
		CategoryName  string          `json:"category_name"`
		Price         json.RawMessage `json:"price"`
		IsPersonal    *bool           `json:"isPersonal"`
		CreatedAt     string          `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode program: %w", err)
	}

	p.ID = flexString(raw.ID)
	p.Title = raw.Title
	p.IsPersonal = raw.IsPersonal
	p.CreatedAt = raw.CreatedAt

	p.Exercises = raw.Exercises
	if p.Exercises == nil {
		p.Exercises = raw.Workouts
	}
	if p.Exercises == nil {
		p.Exercises = []ExerciseSpec{}
	}

	var authorObj struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	}
	authorIsObject := len(raw.Author) > 0 && bytes.HasPrefix(bytes.TrimSpace(raw.Author), []byte("{"))
	if authorIsObject {
		_ = json.Unmarshal(raw.Author, &authorObj)
	}

	p.AuthorID = flexInt64(raw.AuthorID)
	if p.AuthorID == 0 {
		p.AuthorID = flexInt64(raw.AuthorIDSnake)
	}
	if p.AuthorID == 0 && authorIsObject {
		p.AuthorID = authorObj.ID
	}

	switch {
	case authorIsObject && authorObj.Name != "":
		p.Author = authorObj.Name
	case authorIsObject:
		p.Author = authorObj.Username
	default:
		p.Author = flexString(raw.Author)
	}
	if p.Author == "" {
		p.Author = raw.AuthorName
	}

	p.Category = raw.Category
	if p.Category == "" {
		p.Category = raw.CategoryName
	}

	p.Price = ParseWeight(flexString(raw.Price))
	return nil
}

// MergeByID reconciles a list with possibly-overlapping entries: distinct ids
// keep the order of their first appearance, and the latest entry for an id
// wins.
func MergeByID(items []Program) []Program {
	byID := make(map[string]int, len(items))
	merged := make([]Program, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		if at, ok := byID[item.ID]; ok {
			merged[at] = item
			continue
		}
		byID[item.ID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// flexString decodes a JSON value that may be a string or a number.
func flexString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// flexInt decodes a JSON value that may be a number or a numeric string.
func flexInt(raw json.RawMessage) int {
	return int(flexInt64(raw))
}

func flexInt64(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return int64(ParseReps(s))
	}
	return 0
}
