// ABOUTME: WorkoutHistoryEntry and its per-exercise result breakdown.
// ABOUTME: Entries are created once at finish and never mutated afterwards.
package models

import "time"

// SetResult is one completed set inside a history entry. Set is 1-based.
type SetResult struct {
	Set    int     `json:"set"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// ExerciseResult groups the completed sets of one exercise.
type ExerciseResult struct {
	Name string      `json:"name"`
	Sets []SetResult `json:"sets"`
}

// WorkoutHistoryEntry is the persistent summary of one finished session.
// Volume is kg·reps over strength sets; CardioSeconds counts completed
// cardio time separately since the two units are not commensurable.
type WorkoutHistoryEntry struct {
	ID            string           `json:"id"`
	ProgramTitle  string           `json:"programTitle"`
	Duration      int              `json:"duration"`
	Volume        float64          `json:"volume"`
	TotalSets     int              `json:"totalSets"`
	CardioSeconds int              `json:"cardioSeconds,omitempty"`
	Exercises     []ExerciseResult `json:"exercises"`
	Date          time.Time        `json:"date"`
}
