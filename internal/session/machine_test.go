// ABOUTME: Tests for the workout session state machine.
// ABOUTME: Covers seeding, timers, minimize semantics and the finish math.
package session

import (
	"testing"
	"time"

	"github.com/harperreed/fitcoach/internal/models"
	"github.com/harperreed/fitcoach/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countChime struct{ plays int }

func (c *countChime) Play() { c.plays++ }

func benchProgram() models.Program {
	p := models.NewProgram("Фулбади")
	p.Exercises = []models.ExerciseSpec{
		{Name: "Жим лёжа", Sets: 2, Reps: "8", Weight: "50"},
		{Name: "Скакалка", Sets: 1, Reps: "", Weight: "90"},
	}
	return *p
}

func startedMachine(t *testing.T) (*Machine, *records.Tracker, *countChime) {
	t.Helper()
	chime := &countChime{}
	m := NewMachine(nil, chime)
	recs := records.NewTracker()
	require.NoError(t, m.Start(benchProgram(), recs))
	return m, recs, chime
}

func TestStartSeedsReferenceValues(t *testing.T) {
	chime := &countChime{}
	m := NewMachine(nil, chime)
	recs := records.NewTracker()
	recs.Update("Жим лёжа", "57.5", "6")

	require.NoError(t, m.Start(benchProgram(), recs))
	assert.Equal(t, StateActive, m.State())

	sets := m.Sets(0)
	require.Len(t, sets, 2)
	assert.Equal(t, "57.5", sets[0].PrevWeight, "record beats the program value")
	assert.Equal(t, "6", sets[0].PrevReps)
	assert.Empty(t, sets[0].Weight)
	assert.False(t, sets[0].Completed)
}

func TestStartFallsBackToProgramValues(t *testing.T) {
	m, _, _ := startedMachine(t)
	sets := m.Sets(0)
	assert.Equal(t, "50", sets[0].PrevWeight)
	assert.Equal(t, "8", sets[0].PrevReps)
}

func TestStartDefaultsSetCount(t *testing.T) {
	m := NewMachine(nil, nil)
	p := models.Program{ID: "p", Title: "t", Exercises: []models.ExerciseSpec{{Name: "Присед"}}}
	require.NoError(t, m.Start(p, records.NewTracker()))
	assert.Len(t, m.Sets(0), 3)
}

func TestStartPrefillsCardioDuration(t *testing.T) {
	m, _, _ := startedMachine(t)
	sets := m.Sets(1)
	require.Len(t, sets, 1)
	assert.Equal(t, "90", sets[0].Weight, "stored duration pre-fills the live field")
}

func TestStartCardioDefaultsToSixtySeconds(t *testing.T) {
	m := NewMachine(nil, nil)
	p := models.Program{ID: "p", Title: "t", Exercises: []models.ExerciseSpec{{Name: "Бег", Sets: 1}}}
	require.NoError(t, m.Start(p, records.NewTracker()))
	assert.Equal(t, "60", m.Sets(0)[0].Weight)
}

func TestStartWhileActiveFails(t *testing.T) {
	m, recs, _ := startedMachine(t)
	assert.ErrorIs(t, m.Start(benchProgram(), recs), ErrAlreadyActive)
}

func TestUpdateSetTouchesOnlyTheTarget(t *testing.T) {
	m, _, _ := startedMachine(t)
	require.NoError(t, m.UpdateSet(0, 1, FieldWeight, "60"))
	require.NoError(t, m.UpdateSet(0, 1, FieldReps, "8"))

	sets := m.Sets(0)
	assert.Empty(t, sets[0].Weight)
	assert.Equal(t, "60", sets[1].Weight)
	assert.Equal(t, "8", sets[1].Reps)
}

func TestUpdateSetRejectsBadIndexes(t *testing.T) {
	m, _, _ := startedMachine(t)
	assert.ErrorIs(t, m.UpdateSet(5, 0, FieldWeight, "1"), ErrIndexOutOfRange)
	assert.ErrorIs(t, m.UpdateSet(0, 9, FieldWeight, "1"), ErrIndexOutOfRange)
	assert.ErrorIs(t, m.UpdateSet(-1, 0, FieldWeight, "1"), ErrIndexOutOfRange)
}

func TestAddSetCarriesForwardReferenceValues(t *testing.T) {
	m, _, _ := startedMachine(t)
	require.NoError(t, m.UpdateSet(0, 1, FieldWeight, "60"))
	require.NoError(t, m.AddSet(0))

	sets := m.Sets(0)
	require.Len(t, sets, 3)
	assert.Equal(t, "50", sets[2].PrevWeight)
	assert.Equal(t, "8", sets[2].PrevReps)
	assert.Empty(t, sets[2].Weight, "live fields start empty")
	assert.False(t, sets[2].Completed)
}

func TestElapsedFreezesWhileMinimized(t *testing.T) {
	m, _, _ := startedMachine(t)

	m.TickElapsed()
	m.TickElapsed()
	assert.Equal(t, 2, m.Elapsed())

	require.NoError(t, m.Minimize())
	m.TickElapsed()
	m.TickElapsed()
	assert.Equal(t, 2, m.Elapsed(), "minimized sessions do not accrue time")

	require.NoError(t, m.Restore())
	m.TickElapsed()
	assert.Equal(t, 3, m.Elapsed())
}

func TestCardioCountdownCompletes(t *testing.T) {
	chime := &countChime{}
	m := NewMachine(nil, chime)
	p := models.Program{ID: "p", Title: "t", Exercises: []models.ExerciseSpec{{Name: "Скакалка", Sets: 1, Weight: "5"}}}
	require.NoError(t, m.Start(p, records.NewTracker()))

	running, err := m.ToggleCardio(0, 0)
	require.NoError(t, err)
	assert.True(t, running)

	for i := 0; i < 4; i++ {
		assert.False(t, m.TickCardio(), "tick %d must not complete", i+1)
	}
	assert.Equal(t, "1", m.Sets(0)[0].Weight)

	assert.True(t, m.TickCardio(), "fifth tick completes a 5 second countdown")
	set := m.Sets(0)[0]
	assert.Equal(t, "5", set.Weight, "display restored to the start value")
	assert.True(t, set.Completed)
	assert.Equal(t, 1, chime.plays)
	assert.Nil(t, m.Cardio())
}

func TestToggleCardioStopsItself(t *testing.T) {
	m, _, _ := startedMachine(t)
	running, err := m.ToggleCardio(1, 0)
	require.NoError(t, err)
	require.True(t, running)

	m.TickCardio()
	running, err = m.ToggleCardio(1, 0)
	require.NoError(t, err)
	assert.False(t, running)
	assert.False(t, m.Sets(1)[0].Completed, "stopping early never completes the set")
	assert.False(t, m.TickCardio(), "no countdown left to tick")
}

func TestOnlyOneCardioTimerRuns(t *testing.T) {
	m := NewMachine(nil, nil)
	p := models.Program{ID: "p", Title: "t", Exercises: []models.ExerciseSpec{
		{Name: "Бег", Sets: 1, Weight: "30"},
		{Name: "Скакалка", Sets: 1, Weight: "45"},
	}}
	require.NoError(t, m.Start(p, records.NewTracker()))

	_, err := m.ToggleCardio(0, 0)
	require.NoError(t, err)
	_, err = m.ToggleCardio(1, 0)
	require.NoError(t, err)

	c := m.Cardio()
	require.NotNil(t, c)
	assert.Equal(t, 1, c.ExerciseIndex)
	assert.Equal(t, 45, c.StartValue)
	assert.False(t, m.Sets(0)[0].Completed, "displaced countdown does not complete")
}

func TestFinishBenchPressScenario(t *testing.T) {
	m, recs, _ := startedMachine(t)
	require.NoError(t, m.UpdateSet(0, 0, FieldWeight, "60"))
	require.NoError(t, m.UpdateSet(0, 0, FieldReps, "8"))
	require.NoError(t, m.SetCompleted(0, 0, true))

	entry, summary, err := m.Finish(recs)
	require.NoError(t, err)
	assert.Equal(t, StateFinished, m.State())

	assert.Equal(t, 480.0, summary.Volume)
	assert.Equal(t, 1, summary.TotalSets)
	assert.False(t, summary.CardioOnly)

	rec, ok := recs.Get("Жим лёжа")
	require.True(t, ok)
	assert.Equal(t, 60.0, rec.Weight)
	assert.Equal(t, 8, rec.Reps)

	require.Len(t, entry.Exercises, 1)
	assert.Equal(t, "Жим лёжа", entry.Exercises[0].Name)
	require.Len(t, entry.Exercises[0].Sets, 1)
	assert.Equal(t, models.SetResult{Set: 1, Weight: 60, Reps: 8}, entry.Exercises[0].Sets[0])
	assert.NotEmpty(t, entry.ID)
}

func TestFinishSkipsIncompleteSets(t *testing.T) {
	m, recs, _ := startedMachine(t)
	require.NoError(t, m.UpdateSet(0, 0, FieldWeight, "100"))
	require.NoError(t, m.UpdateSet(0, 0, FieldReps, "10"))

	_, summary, err := m.Finish(recs)
	require.NoError(t, err)
	assert.Zero(t, summary.Volume)
	assert.Zero(t, summary.TotalSets)
	_, ok := recs.Get("Жим лёжа")
	assert.False(t, ok, "incomplete sets never touch the records")
}

func TestFinishFallsBackToReferenceValues(t *testing.T) {
	m, recs, _ := startedMachine(t)
	require.NoError(t, m.SetCompleted(0, 0, true))

	_, summary, err := m.Finish(recs)
	require.NoError(t, err)
	assert.Equal(t, 400.0, summary.Volume, "50 kg by 8 reps from the reference values")

	rec, ok := recs.Get("Жим лёжа")
	require.True(t, ok, "the resolved values reach the record tracker")
	assert.Equal(t, 50.0, rec.Weight)
	assert.Equal(t, 8, rec.Reps)
}

func TestFinishAccumulatesCardioSeconds(t *testing.T) {
	m, recs, _ := startedMachine(t)
	require.NoError(t, m.SetCompleted(1, 0, true))

	entry, summary, err := m.Finish(recs)
	require.NoError(t, err)
	assert.Equal(t, 90, summary.CardioSeconds)
	assert.Equal(t, 90, entry.CardioSeconds)

	_, ok := recs.Get("Скакалка")
	assert.False(t, ok, "cardio results never become strength records")
}

func TestFinishDetectsCardioOnlySessions(t *testing.T) {
	m := NewMachine(nil, nil)
	p := models.Program{ID: "p", Title: "Кардио день", Exercises: []models.ExerciseSpec{{Name: "Бег", Sets: 1, Weight: "300"}}}
	require.NoError(t, m.Start(p, records.NewTracker()))
	require.NoError(t, m.SetCompleted(0, 0, true))

	_, summary, err := m.Finish(records.NewTracker())
	require.NoError(t, err)
	assert.True(t, summary.CardioOnly)
	assert.Equal(t, 300, summary.CardioSeconds)
}

func TestFinishCapturesElapsedDuration(t *testing.T) {
	m, recs, _ := startedMachine(t)
	for i := 0; i < 125; i++ {
		m.TickElapsed()
	}
	entry, _, err := m.Finish(recs)
	require.NoError(t, err)
	assert.Equal(t, 125, entry.Duration)
}

func TestFinishWithoutSessionFails(t *testing.T) {
	m := NewMachine(nil, nil)
	_, _, err := m.Finish(records.NewTracker())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSnapshotRoundTrip(t *testing.T) {
	m, _, _ := startedMachine(t)
	require.NoError(t, m.UpdateSet(0, 0, FieldWeight, "62.5"))
	require.NoError(t, m.SetCompleted(0, 0, true))
	m.TickElapsed()

	snap := m.Snapshot()
	require.NotNil(t, snap)

	restored := NewMachine(nil, nil)
	require.NoError(t, restored.Resume(*snap))
	assert.Equal(t, StateActive, restored.State())
	assert.True(t, restored.Minimized(), "resumed sessions come back minimized")
	assert.Equal(t, 1, restored.Elapsed())
	assert.Equal(t, "62.5", restored.Sets(0)[0].Weight)
	assert.True(t, restored.Sets(0)[0].Completed)
}

func TestSnapshotIdleIsNil(t *testing.T) {
	assert.Nil(t, NewMachine(nil, nil).Snapshot())
}

func TestRunnerStopIsIdempotent(t *testing.T) {
	m, _, _ := startedMachine(t)
	r := NewRunner(m)
	r.Start()

	require.NoError(t, r.Do(func(m *Machine) error {
		return m.UpdateSet(0, 0, FieldWeight, "55")
	}))

	r.Stop()
	r.Stop()

	elapsed := m.Elapsed()
	time.Sleep(1100 * time.Millisecond)
	assert.Equal(t, elapsed, m.Elapsed(), "no tick lands after Stop returns")
}
