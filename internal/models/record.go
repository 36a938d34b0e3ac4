// ABOUTME: ExerciseRecord model for per-exercise personal bests.
// ABOUTME: Records only ever improve; see the records package for the rule.
package models

import "time"

// ExerciseRecord is the best known (weight, reps) pair for an exercise.
// Keys into the record map are lower-cased exercise names.
type ExerciseRecord struct {
	Weight float64   `json:"weight"`
	Reps   int       `json:"reps"`
	Date   time.Time `json:"date"`
}

// ImprovedBy reports whether the (weight, reps) candidate improves on r.
// A record is replaced only on strictly more weight, or equal weight with
// strictly more reps.
func (r ExerciseRecord) ImprovedBy(weight float64, reps int) bool {
	return weight > r.Weight || (weight == r.Weight && reps > r.Reps)
}
