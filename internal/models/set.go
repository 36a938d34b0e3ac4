// ABOUTME: SetState and CardioTimerState for an in-progress session.
// ABOUTME: Live fields stay strings; inputs are free-form until finish.
package models

// SetState is one attempt slot within an active session. PrevWeight/PrevReps
// show the reference values (last record, else the program's own numbers);
// Weight/Reps hold what the user entered this time. For cardio sets Weight is
// the countdown's remaining seconds.
type SetState struct {
	PrevWeight string `json:"prevWeight"`
	PrevReps   string `json:"prevReps"`
	Weight     string `json:"weight"`
	Reps       string `json:"reps"`
	Completed  bool   `json:"completed"`
}

// CardioTimerState identifies the single running countdown, if any.
// StartValue is the seconds the countdown began from, restored on completion
// so the set stays repeatable.
type CardioTimerState struct {
	ExerciseIndex int `json:"exerciseIndex"`
	SetIndex      int `json:"setIndex"`
	StartValue    int `json:"startValue"`
}
