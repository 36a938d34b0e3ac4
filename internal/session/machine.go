// ABOUTME: Workout session state machine: sets, timers, finish transition.
// ABOUTME: All mutation goes through the machine; ticks are injectable.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitcoach/internal/host"
	"github.com/harperreed/fitcoach/internal/models"
	"github.com/harperreed/fitcoach/internal/records"
)

// State is the session lifecycle state.
type State int

const (
	StateNotStarted State = iota
	StateActive
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	default:
		return "not started"
	}
}

// Field names a mutable SetState field for UpdateSet.
type Field string

const (
	FieldWeight     Field = "weight"
	FieldReps       Field = "reps"
	FieldPrevWeight Field = "prevWeight"
	FieldPrevReps   Field = "prevReps"
)

const defaultSets = 3

// defaultCardioSeconds pre-fills cardio sets whose program stores no
// duration.
const defaultCardioSeconds = "60"

var (
	ErrNoSession       = errors.New("no active workout session")
	ErrAlreadyActive   = errors.New("a workout session is already active")
	ErrIndexOutOfRange = errors.New("exercise or set index out of range")
)

// Machine drives one workout session from start to finish. Mutation is
// confined to the caller's goroutine (the UI-thread analog); the two
// periodic ticks arrive through TickElapsed and TickCardio so tests can
// simulate time.
type Machine struct {
	state     State
	minimized bool

	program      models.Program
	exerciseSets [][]models.SetState
	startTime    time.Time
	elapsed      int
	cardio       *models.CardioTimerState

	catalog models.Catalog
	chime   host.Chime
	now     func() time.Time
}

// NewMachine creates an idle machine. A nil catalog uses the default; a nil
// chime stays silent.
func NewMachine(catalog models.Catalog, chime host.Chime) *Machine {
	if catalog == nil {
		catalog = models.DefaultCatalog
	}
	if chime == nil {
		chime = host.NoopChime{}
	}
	return &Machine{
		catalog: catalog,
		chime:   chime,
		now:     time.Now,
	}
}

// Start seeds a session from a program and the current records. Every
// exercise gets its configured number of set slots (default 3), each
// pre-filled with the best known weight/reps as the reference values,
// falling back to the program's own numbers. Cardio sets instead pre-fill
// the live weight field with the stored duration, since they start as an
// editable countdown.
func (m *Machine) Start(program models.Program, recs *records.Tracker) error {
	if m.state == StateActive {
		return ErrAlreadyActive
	}

	m.program = program
	m.exerciseSets = make([][]models.SetState, len(program.Exercises))
	for i, ex := range program.Exercises {
		count := ex.Sets
		if count <= 0 {
			count = defaultSets
		}

		prevWeight := ex.Weight
		prevReps := ex.Reps
		if rec, ok := recs.Get(ex.Name); ok {
			if rec.Weight > 0 {
				prevWeight = formatWeight(rec.Weight)
			}
			if rec.Reps > 0 {
				prevReps = strconv.Itoa(rec.Reps)
			}
		}

		liveWeight := ""
		if m.catalog.IsCardio(ex.Name) {
			liveWeight = ex.Weight
			if liveWeight == "" {
				liveWeight = defaultCardioSeconds
			}
		}

		sets := make([]models.SetState, count)
		for j := range sets {
			sets[j] = models.SetState{
				PrevWeight: prevWeight,
				PrevReps:   prevReps,
				Weight:     liveWeight,
			}
		}
		m.exerciseSets[i] = sets
	}

	m.state = StateActive
	m.minimized = false
	m.startTime = m.now()
	m.elapsed = 0
	m.cardio = nil
	return nil
}

// UpdateSet replaces one field of one set. Validation happens at finish, not
// here; the affected exercise's set list is copied so other sets are never
// disturbed.
func (m *Machine) UpdateSet(exerciseIndex, setIndex int, field Field, value string) error {
	sets, err := m.setsFor(exerciseIndex, setIndex)
	if err != nil {
		return err
	}

	s := sets[setIndex]
	switch field {
	case FieldWeight:
		s.Weight = value
	case FieldReps:
		s.Reps = value
	case FieldPrevWeight:
		s.PrevWeight = value
	case FieldPrevReps:
		s.PrevReps = value
	default:
		return fmt.Errorf("unknown set field: %q", field)
	}
	sets[setIndex] = s
	m.exerciseSets[exerciseIndex] = sets
	return nil
}

// SetCompleted marks or unmarks one set as done.
func (m *Machine) SetCompleted(exerciseIndex, setIndex int, completed bool) error {
	sets, err := m.setsFor(exerciseIndex, setIndex)
	if err != nil {
		return err
	}
	sets[setIndex].Completed = completed
	m.exerciseSets[exerciseIndex] = sets
	return nil
}

// AddSet appends a set slot carrying forward the previous set's reference
// values, with empty live fields.
func (m *Machine) AddSet(exerciseIndex int) error {
	if m.state != StateActive {
		return ErrNoSession
	}
	if exerciseIndex < 0 || exerciseIndex >= len(m.exerciseSets) {
		return ErrIndexOutOfRange
	}

	current := m.exerciseSets[exerciseIndex]
	next := models.SetState{}
	if len(current) > 0 {
		last := current[len(current)-1]
		next.PrevWeight = last.PrevWeight
		next.PrevReps = last.PrevReps
	}

	sets := make([]models.SetState, len(current), len(current)+1)
	copy(sets, current)
	m.exerciseSets[exerciseIndex] = append(sets, next)
	return nil
}

// Minimize hides the session. The elapsed counter freezes until Restore.
func (m *Machine) Minimize() error {
	if m.state != StateActive {
		return ErrNoSession
	}
	m.minimized = true
	return nil
}

// Restore brings a minimized session back; the elapsed counter resumes.
func (m *Machine) Restore() error {
	if m.state != StateActive {
		return ErrNoSession
	}
	m.minimized = false
	return nil
}

// TickElapsed advances the session clock by one second. It only counts
// while the session is active and not minimized.
func (m *Machine) TickElapsed() {
	if m.state == StateActive && !m.minimized {
		m.elapsed++
	}
}

// ToggleCardio starts or stops the countdown bound to one set's weight
// field. Toggling the running timer's own set stops it without completing.
// Starting a new countdown implicitly stops any other one first: at most one
// runs system-wide. Returns whether a countdown is running afterwards.
func (m *Machine) ToggleCardio(exerciseIndex, setIndex int) (bool, error) {
	sets, err := m.setsFor(exerciseIndex, setIndex)
	if err != nil {
		return false, err
	}

	if m.cardio != nil && m.cardio.ExerciseIndex == exerciseIndex && m.cardio.SetIndex == setIndex {
		m.cardio = nil
		return false, nil
	}

	// Displacing another running countdown does not complete its set.
	m.cardio = &models.CardioTimerState{
		ExerciseIndex: exerciseIndex,
		SetIndex:      setIndex,
		StartValue:    models.ParseReps(sets[setIndex].Weight),
	}
	return true, nil
}

// TickCardio advances the running countdown by one second. On reaching zero
// it plays the done-cue, restores the displayed duration to its start value
// so the set stays repeatable, marks the set completed, and clears the
// timer. Returns true when the countdown finished on this tick.
func (m *Machine) TickCardio() bool {
	if m.cardio == nil || m.state != StateActive {
		return false
	}

	exerciseIndex, setIndex := m.cardio.ExerciseIndex, m.cardio.SetIndex
	sets, err := m.setsFor(exerciseIndex, setIndex)
	if err != nil {
		m.cardio = nil
		return false
	}

	s := sets[setIndex]
	remaining := models.ParseReps(s.Weight) - 1
	if remaining <= 0 {
		m.chime.Play()
		s.Weight = strconv.Itoa(m.cardio.StartValue)
		s.Completed = true
		sets[setIndex] = s
		m.exerciseSets[exerciseIndex] = sets
		m.cardio = nil
		return true
	}

	s.Weight = strconv.Itoa(remaining)
	sets[setIndex] = s
	m.exerciseSets[exerciseIndex] = sets
	return false
}

// Summary is what the results screen shows after finish.
type Summary struct {
	Title         string
	Duration      int
	Volume        float64
	TotalSets     int
	CardioSeconds int
	CardioOnly    bool
}

// Finish converts the session into a history entry. Every completed set
// contributes its effective weight and reps (entered value, else the
// reference value, else zero; incomplete data never fails a finish);
// non-cardio results feed the record tracker; cardio time accumulates
// separately since seconds and kg·reps are not commensurable. The machine
// transitions to Finished and the session data is discarded.
func (m *Machine) Finish(recs *records.Tracker) (*models.WorkoutHistoryEntry, *Summary, error) {
	if m.state != StateActive {
		return nil, nil, ErrNoSession
	}

	// Tear down the countdown without completing its set.
	m.cardio = nil

	var (
		totalVolume   float64
		totalSets     int
		cardioSeconds int
		details       []models.ExerciseResult
	)

	cardioOnly := len(m.program.Exercises) > 0
	for i, ex := range m.program.Exercises {
		isCardio := m.catalog.IsCardio(ex.Name)
		if !isCardio {
			cardioOnly = false
		}

		var completed []models.SetResult
		for j, s := range m.exerciseSets[i] {
			if !s.Completed {
				continue
			}
			totalSets++

			w := models.ParseWeight(s.Weight)
			if w == 0 {
				w = models.ParseWeight(s.PrevWeight)
			}
			r := models.ParseReps(s.Reps)
			if r == 0 {
				r = models.ParseReps(s.PrevReps)
			}

			totalVolume += w * float64(r)
			completed = append(completed, models.SetResult{Set: j + 1, Weight: w, Reps: r})

			if isCardio {
				secs := models.ParseReps(s.Weight)
				if secs == 0 {
					secs = models.ParseReps(s.PrevWeight)
				}
				cardioSeconds += secs
			} else if ex.Name != "" {
				recs.UpdateValues(ex.Name, w, r)
			}
		}

		if len(completed) > 0 {
			details = append(details, models.ExerciseResult{Name: ex.Name, Sets: completed})
		}
	}

	entry := &models.WorkoutHistoryEntry{
		ID:            "wh_" + uuid.NewString(),
		ProgramTitle:  m.program.Title,
		Duration:      m.elapsed,
		Volume:        totalVolume,
		TotalSets:     totalSets,
		CardioSeconds: cardioSeconds,
		Exercises:     details,
		Date:          m.now().UTC(),
	}
	summary := &Summary{
		Title:         m.program.Title,
		Duration:      m.elapsed,
		Volume:        totalVolume,
		TotalSets:     totalSets,
		CardioSeconds: cardioSeconds,
		CardioOnly:    cardioOnly,
	}

	m.state = StateFinished
	m.exerciseSets = nil
	m.minimized = false
	return entry, summary, nil
}

// State returns the lifecycle state.
func (m *Machine) State() State { return m.state }

// Minimized reports the display substate.
func (m *Machine) Minimized() bool { return m.minimized }

// Elapsed returns the seconds counted while the session was attended.
func (m *Machine) Elapsed() int { return m.elapsed }

// Program returns the program the session runs.
func (m *Machine) Program() models.Program { return m.program }

// Sets returns a copy of one exercise's set list.
func (m *Machine) Sets(exerciseIndex int) []models.SetState {
	if exerciseIndex < 0 || exerciseIndex >= len(m.exerciseSets) {
		return nil
	}
	out := make([]models.SetState, len(m.exerciseSets[exerciseIndex]))
	copy(out, m.exerciseSets[exerciseIndex])
	return out
}

// Cardio returns a copy of the running countdown state, if any.
func (m *Machine) Cardio() *models.CardioTimerState {
	if m.cardio == nil {
		return nil
	}
	c := *m.cardio
	return &c
}

// setsFor validates indexes and returns a copy-on-write set list for the
// exercise.
func (m *Machine) setsFor(exerciseIndex, setIndex int) ([]models.SetState, error) {
	if m.state != StateActive {
		return nil, ErrNoSession
	}
	if exerciseIndex < 0 || exerciseIndex >= len(m.exerciseSets) {
		return nil, ErrIndexOutOfRange
	}
	current := m.exerciseSets[exerciseIndex]
	if setIndex < 0 || setIndex >= len(current) {
		return nil, ErrIndexOutOfRange
	}
	sets := make([]models.SetState, len(current))
	copy(sets, current)
	return sets, nil
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
