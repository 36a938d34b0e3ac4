// ABOUTME: Program service implementing the two-tier save policy.
// ABOUTME: Personal edits are optimistic; published edits confirm first.
package programs

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitcoach/internal/host"
	"github.com/harperreed/fitcoach/internal/kvcache"
	"github.com/harperreed/fitcoach/internal/models"
)

// Backend is the slice of the API client the program service needs.
type Backend interface {
	FetchMyPrograms(ctx context.Context) ([]models.Program, error)
	SaveMyProgram(ctx context.Context, p models.Program) error
	DeleteMyProgram(ctx context.Context, id string) error
	FetchCatalog(ctx context.Context) ([]models.Program, error)
	CreatePublishedProgram(ctx context.Context, p models.Program) (*models.Program, error)
	UpdatePublishedProgram(ctx context.Context, p models.Program) error
	DeletePublishedProgram(ctx context.Context, id string) error
	FetchPurchases(ctx context.Context) ([]models.Program, error)
}

// Service holds the user's program list and applies the save policy.
//
// Personal programs belong to one user, so their edits apply locally first
// and sync to the backend in the background; a sync failure downgrades to an
// advisory and the local edit stands. Published programs are shared catalog
// content, so every mutation requires backend confirmation before any local
// state changes.
type Service struct {
	mu       sync.Mutex
	personal []models.Program

	cache   kvcache.Store
	backend Backend // may be nil when running offline
	notify  host.Notifier
	log     *log.Logger
	wg      sync.WaitGroup
}

// NewService creates a program service. Call Load before use.
func NewService(cache kvcache.Store, backend Backend, notify host.Notifier) *Service {
	return &Service{
		cache:   cache,
		backend: backend,
		notify:  notify,
		log:     log.WithPrefix("programs"),
	}
}

// Load populates the personal list from the cache, refreshed from the
// backend when one is reachable. Cached and remote lists merge by ID with
// the remote copy winning; the merged result is written back so the cache
// converges. A backend failure falls back to the cached list alone.
func (s *Service) Load(ctx context.Context) error {
	cached, _, err := kvcache.GetJSON[[]models.Program](s.cache, kvcache.KeyUserPrograms)
	if err != nil {
		s.log.Warn("reading cached programs failed", "err", err)
	}
	var local []models.Program
	if cached != nil {
		local = *cached
	}

	if s.backend != nil {
		remote, err := s.backend.FetchMyPrograms(ctx)
		if err != nil {
			s.log.Warn("program refresh failed, using cached list", "err", err)
		} else {
			local = models.MergeByID(append(local, remote...))
			if err := kvcache.SetJSON(s.cache, kvcache.KeyUserPrograms, local); err != nil {
				s.log.Warn("caching merged programs failed", "err", err)
			}
		}
	}

	s.mu.Lock()
	s.personal = local
	s.mu.Unlock()
	return nil
}

// Personal returns a copy of the personal program list.
func (s *Service) Personal() []models.Program {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Program, len(s.personal))
	copy(out, s.personal)
	return out
}

// Get looks up a personal program by ID.
func (s *Service) Get(id string) (models.Program, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.personal {
		if p.ID == id {
			return p, true
		}
	}
	return models.Program{}, false
}

// Save routes a program to the tier-appropriate save path.
func (s *Service) Save(ctx context.Context, p models.Program) error {
	if p.Personal() {
		return s.SavePersonal(ctx, p)
	}
	return s.SavePublished(ctx, p)
}

// Delete routes a program to the tier-appropriate delete path.
func (s *Service) Delete(ctx context.Context, p models.Program) error {
	if p.Personal() {
		return s.DeletePersonal(ctx, p.ID)
	}
	return s.DeletePublished(ctx, p.ID)
}

// SavePersonal upserts a personal program. The local list and cache update
// immediately; the backend write runs in the background and a failure never
// rolls the local edit back.
func (s *Service) SavePersonal(ctx context.Context, p models.Program) error {
	s.mu.Lock()
	replaced := false
	for i, existing := range s.personal {
		if existing.ID == p.ID {
			s.personal[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		s.personal = append(s.personal, p)
	}
	snapshot := make([]models.Program, len(s.personal))
	copy(snapshot, s.personal)
	s.mu.Unlock()

	if err := kvcache.SetJSON(s.cache, kvcache.KeyUserPrograms, snapshot); err != nil {
		return fmt.Errorf("cache programs: %w", err)
	}

	if s.backend != nil {
		s.background(func() {
			if err := s.backend.SaveMyProgram(ctx, p); err != nil {
				s.log.Warn("personal program sync failed", "id", p.ID, "err", err)
				s.notify.Advise("Program %q saved locally; server sync failed", p.Title)
			}
		})
	}
	return nil
}

// DeletePersonal removes a personal program locally and syncs the delete in
// the background.
func (s *Service) DeletePersonal(ctx context.Context, id string) error {
	s.mu.Lock()
	kept := s.personal[:0]
	for _, p := range s.personal {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.personal = kept
	snapshot := make([]models.Program, len(s.personal))
	copy(snapshot, s.personal)
	s.mu.Unlock()

	if err := kvcache.SetJSON(s.cache, kvcache.KeyUserPrograms, snapshot); err != nil {
		return fmt.Errorf("cache programs: %w", err)
	}

	if s.backend != nil {
		s.background(func() {
			if err := s.backend.DeleteMyProgram(ctx, id); err != nil {
				s.log.Warn("personal program delete sync failed", "id", id, "err", err)
				s.notify.Advise("Program removed locally; server sync failed")
			}
		})
	}
	return nil
}

// SavePublished creates or updates a catalog program. Nothing changes until
// the backend confirms; an empty ID means create and the server-assigned
// program comes back on success.
func (s *Service) SavePublished(ctx context.Context, p models.Program) error {
	if s.backend == nil {
		return fmt.Errorf("published programs need a reachable backend")
	}
	if p.ID == "" {
		created, err := s.backend.CreatePublishedProgram(ctx, p)
		if err != nil {
			return fmt.Errorf("publish program: %w", err)
		}
		if created != nil {
			s.notify.Success("Published %q", created.Title)
		}
		return nil
	}
	if err := s.backend.UpdatePublishedProgram(ctx, p); err != nil {
		return fmt.Errorf("update published program: %w", err)
	}
	s.notify.Success("Updated %q", p.Title)
	return nil
}

// DeletePublished removes a catalog program after backend confirmation.
func (s *Service) DeletePublished(ctx context.Context, id string) error {
	if s.backend == nil {
		return fmt.Errorf("published programs need a reachable backend")
	}
	if err := s.backend.DeletePublishedProgram(ctx, id); err != nil {
		return fmt.Errorf("delete published program: %w", err)
	}
	return nil
}

// Catalog lists the published programs straight from the backend.
func (s *Service) Catalog(ctx context.Context) ([]models.Program, error) {
	if s.backend == nil {
		return nil, fmt.Errorf("the catalog needs a reachable backend")
	}
	progs, err := s.backend.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return markPublished(progs), nil
}

// Purchases lists the programs the user has bought.
func (s *Service) Purchases(ctx context.Context) ([]models.Program, error) {
	if s.backend == nil {
		return nil, fmt.Errorf("purchases need a reachable backend")
	}
	progs, err := s.backend.FetchPurchases(ctx)
	if err != nil {
		return nil, err
	}
	return markPublished(progs), nil
}

// markPublished stamps the explicit published flag on listings whose wire
// form omits it. Catalog and purchase entries are published by definition,
// and an unflagged copy must never route onto the optimistic personal path.
func markPublished(progs []models.Program) []models.Program {
	for i := range progs {
		if progs[i].IsPersonal == nil {
			f := false
			progs[i].IsPersonal = &f
		}
	}
	return progs
}

func (s *Service) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// Wait blocks until all background syncs have finished. Call before the
// process exits.
func (s *Service) Wait() {
	s.wg.Wait()
}
