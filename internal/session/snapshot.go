// ABOUTME: Session snapshot serialization for resume across invocations.
// ABOUTME: A detached session is a minimized one; its clock stays frozen.
package session

import (
	"time"

	"github.com/harperreed/fitcoach/internal/models"
)

// Snapshot is the persisted form of an in-flight session. A running cardio
// countdown is deliberately not part of it: countdowns only exist while the
// session is attended.
type Snapshot struct {
	Program      models.Program      `json:"program"`
	ExerciseSets [][]models.SetState `json:"exerciseSets"`
	StartTime    time.Time           `json:"startTime"`
	Elapsed      int                 `json:"elapsed"`
}

// Snapshot captures the active session for persistence. Returns nil when
// there is nothing to persist.
func (m *Machine) Snapshot() *Snapshot {
	if m.state != StateActive {
		return nil
	}
	sets := make([][]models.SetState, len(m.exerciseSets))
	for i, s := range m.exerciseSets {
		sets[i] = make([]models.SetState, len(s))
		copy(sets[i], s)
	}
	return &Snapshot{
		Program:      m.program,
		ExerciseSets: sets,
		StartTime:    m.startTime,
		Elapsed:      m.elapsed,
	}
}

// Resume rehydrates a persisted session. It comes back minimized, since the
// user is not looking at it yet; Restore resumes the clock.
func (m *Machine) Resume(s Snapshot) error {
	if m.state == StateActive {
		return ErrAlreadyActive
	}
	m.program = s.Program
	m.exerciseSets = s.ExerciseSets
	m.startTime = s.StartTime
	m.elapsed = s.Elapsed
	m.state = StateActive
	m.minimized = true
	m.cardio = nil
	return nil
}
