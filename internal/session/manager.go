// ABOUTME: Manager wires the session machine to cache, records and backend.
// ABOUTME: Owns the finalize path: history, records, backend log, cleanup.
package session

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitcoach/internal/api"
	"github.com/harperreed/fitcoach/internal/host"
	"github.com/harperreed/fitcoach/internal/kvcache"
	"github.com/harperreed/fitcoach/internal/models"
	"github.com/harperreed/fitcoach/internal/records"
)

// Backend is the slice of the API client the finalize path needs.
type Backend interface {
	LogWorkout(ctx context.Context, entry api.WorkoutLog) error
}

// Manager coordinates a session's side effects. The machine stays pure;
// everything that touches the cache or the backend lives here.
type Manager struct {
	machine *Machine
	tracker *records.Tracker
	cache   kvcache.Store
	backend Backend // may be nil when running offline
	notify  host.Notifier
	log     *log.Logger
}

// NewManager assembles a manager around an idle machine.
func NewManager(m *Machine, tracker *records.Tracker, cache kvcache.Store, backend Backend, notify host.Notifier) *Manager {
	return &Manager{
		machine: m,
		tracker: tracker,
		cache:   cache,
		backend: backend,
		notify:  notify,
		log:     log.WithPrefix("session"),
	}
}

// Machine exposes the underlying machine for direct interaction.
func (mgr *Manager) Machine() *Machine { return mgr.machine }

// Start begins a session from a program and persists the initial snapshot so
// a crash or detach cannot lose it.
func (mgr *Manager) Start(program models.Program) error {
	if err := mgr.machine.Start(program, mgr.tracker); err != nil {
		return err
	}
	return mgr.Persist()
}

// Persist writes the current session snapshot to the cache.
func (mgr *Manager) Persist() error {
	snap := mgr.machine.Snapshot()
	if snap == nil {
		return nil
	}
	if err := kvcache.SetJSON(mgr.cache, kvcache.KeyActiveWorkout, snap); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// ResumePersisted loads a previously persisted session, if one exists.
func (mgr *Manager) ResumePersisted() (bool, error) {
	snap, ok, err := kvcache.GetJSON[Snapshot](mgr.cache, kvcache.KeyActiveWorkout)
	if err != nil || !ok {
		return false, err
	}
	if err := mgr.machine.Resume(*snap); err != nil {
		return false, err
	}
	return true, nil
}

// Finish finalizes the session. The history entry and the updated record
// map are cached unconditionally so a dead backend never loses a workout;
// the backend log is attempted exactly once and a failure downgrades to an
// advisory. The persisted snapshot is cleared either way.
func (mgr *Manager) Finish(ctx context.Context) (*Summary, error) {
	entry, summary, err := mgr.machine.Finish(mgr.tracker)
	if err != nil {
		return nil, err
	}

	history, _, err := kvcache.GetJSON[[]models.WorkoutHistoryEntry](mgr.cache, kvcache.KeyWorkoutHistory)
	if err != nil {
		mgr.log.Warn("reading cached history failed, starting fresh", "err", err)
	}
	var entries []models.WorkoutHistoryEntry
	if history != nil {
		entries = *history
	}
	entries = append([]models.WorkoutHistoryEntry{*entry}, entries...)
	if err := kvcache.SetJSON(mgr.cache, kvcache.KeyWorkoutHistory, entries); err != nil {
		return nil, fmt.Errorf("cache history: %w", err)
	}

	recs := mgr.tracker.Snapshot()
	if err := kvcache.SetJSON(mgr.cache, kvcache.KeyExerciseRecords, recs); err != nil {
		return nil, fmt.Errorf("cache records: %w", err)
	}

	if err := mgr.cache.Remove(kvcache.KeyActiveWorkout); err != nil {
		mgr.log.Warn("clearing persisted session failed", "err", err)
	}

	if mgr.backend != nil {
		logEntry := api.WorkoutLog{
			ProgramID:    mgr.machine.Program().ID,
			WorkoutTitle: entry.ProgramTitle,
			Exercises:    entry.Exercises,
			Duration:     entry.Duration,
			Volume:       entry.Volume,
			Records:      recs,
		}
		if err := mgr.backend.LogWorkout(ctx, logEntry); err != nil {
			mgr.log.Warn("backend workout log failed", "err", err)
			mgr.notify.Advise("Workout saved locally; server sync failed")
		}
	}

	return summary, nil
}

// Discard abandons the session without recording anything.
func (mgr *Manager) Discard() error {
	mgr.machine.state = StateNotStarted
	mgr.machine.exerciseSets = nil
	mgr.machine.cardio = nil
	mgr.machine.minimized = false
	mgr.machine.elapsed = 0
	return mgr.cache.Remove(kvcache.KeyActiveWorkout)
}
