// ABOUTME: Tracker keeps the best known (weight, reps) pair per exercise.
// ABOUTME: Pure in-memory state; persistence belongs to whoever finalizes.
package records

import (
	"strings"
	"time"

	"github.com/harperreed/fitcoach/internal/models"
)

// Tracker maintains personal bests keyed by lower-cased exercise name.
// It does no I/O; the session finalizer snapshots it for persistence.
type Tracker struct {
	records map[string]models.ExerciseRecord
	now     func() time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		records: make(map[string]models.ExerciseRecord),
		now:     time.Now,
	}
}

// Load replaces the tracker contents with a previously persisted record map.
// Keys are case-folded on the way in, keeping lookups consistent even if the
// stored map predates normalization.
func (t *Tracker) Load(records map[string]models.ExerciseRecord) {
	t.records = make(map[string]models.ExerciseRecord, len(records))
	for name, r := range records {
		t.records[strings.ToLower(name)] = r
	}
}

// Get returns the record for an exercise, if any.
func (t *Tracker) Get(exerciseName string) (models.ExerciseRecord, bool) {
	r, ok := t.records[strings.ToLower(exerciseName)]
	return r, ok
}

// Update submits a (weight, reps) result and reports whether the stored
// record changed. Malformed numerics coerce to 0 and never fail. The stored
// pair only ever improves: more weight, or equal weight with more reps.
func (t *Tracker) Update(exerciseName string, weight, reps string) bool {
	return t.UpdateValues(exerciseName, models.ParseWeight(weight), models.ParseReps(reps))
}

// UpdateValues is Update for already-resolved numbers, used when the caller
// has applied its own fallback rules before submitting.
func (t *Tracker) UpdateValues(exerciseName string, w float64, r int) bool {
	if exerciseName == "" {
		return false
	}
	key := strings.ToLower(exerciseName)

	current, ok := t.records[key]
	if ok && !current.ImprovedBy(w, r) {
		return false
	}

	t.records[key] = models.ExerciseRecord{Weight: w, Reps: r, Date: t.now()}
	return true
}

// Snapshot returns a copy of the record map for persistence.
func (t *Tracker) Snapshot() map[string]models.ExerciseRecord {
	out := make(map[string]models.ExerciseRecord, len(t.records))
	for name, r := range t.records {
		out[name] = r
	}
	return out
}
