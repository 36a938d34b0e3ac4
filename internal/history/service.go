// ABOUTME: Read surface over the workout history and record caches.
// ABOUTME: Cache-first with a backend backfill when the cache is empty.
package history

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitcoach/internal/kvcache"
	"github.com/harperreed/fitcoach/internal/models"
	"github.com/harperreed/fitcoach/internal/records"
)

// Backend is the slice of the API client the history surface needs.
type Backend interface {
	FetchHistory(ctx context.Context) ([]models.WorkoutHistoryEntry, error)
	FetchRecords(ctx context.Context) (map[string]models.ExerciseRecord, error)
}

// Service reads history and records. The session finalizer writes both; this
// side only backfills from the backend when the cache has nothing yet, e.g.
// on a fresh device.
type Service struct {
	cache   kvcache.Store
	backend Backend // may be nil when running offline
	log     *log.Logger
}

// NewService creates a history read surface.
func NewService(cache kvcache.Store, backend Backend) *Service {
	return &Service{cache: cache, backend: backend, log: log.WithPrefix("history")}
}

// List returns the workout history, most recent first.
func (s *Service) List(ctx context.Context) ([]models.WorkoutHistoryEntry, error) {
	cached, ok, err := kvcache.GetJSON[[]models.WorkoutHistoryEntry](s.cache, kvcache.KeyWorkoutHistory)
	if err != nil {
		return nil, err
	}
	if ok && len(*cached) > 0 {
		return *cached, nil
	}

	if s.backend == nil {
		return nil, nil
	}
	remote, err := s.backend.FetchHistory(ctx)
	if err != nil {
		s.log.Warn("history backfill failed", "err", err)
		return nil, nil
	}
	if len(remote) > 0 {
		if err := kvcache.SetJSON(s.cache, kvcache.KeyWorkoutHistory, remote); err != nil {
			s.log.Warn("caching backfilled history failed", "err", err)
		}
	}
	return remote, nil
}

// Records returns the personal best map, backfilled like List.
func (s *Service) Records(ctx context.Context) (map[string]models.ExerciseRecord, error) {
	cached, ok, err := kvcache.GetJSON[map[string]models.ExerciseRecord](s.cache, kvcache.KeyExerciseRecords)
	if err != nil {
		return nil, err
	}
	if ok && len(*cached) > 0 {
		return *cached, nil
	}

	if s.backend == nil {
		return nil, nil
	}
	remote, err := s.backend.FetchRecords(ctx)
	if err != nil {
		s.log.Warn("records backfill failed", "err", err)
		return nil, nil
	}
	if len(remote) > 0 {
		if err := kvcache.SetJSON(s.cache, kvcache.KeyExerciseRecords, remote); err != nil {
			s.log.Warn("caching backfilled records failed", "err", err)
		}
	}
	return remote, nil
}

// LoadTracker primes a record tracker from Records.
func (s *Service) LoadTracker(ctx context.Context, t *records.Tracker) error {
	recs, err := s.Records(ctx)
	if err != nil {
		return err
	}
	t.Load(recs)
	return nil
}
