package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

// Backend persists the full project list.
type Backend interface {
	Load(ctx context.Context) ([]project.Project, error)
	Save(ctx context.Context, projects []project.Project) error
	Close() error
}

const saveKey = "projects"

// Store holds the project documents in memory and writes them through to a
// backend. Mutations are serialized; the last write wins.
type Store struct {
	backend  Backend
	debounce *Debouncer
	logger   *slog.Logger

	mu       sync.Mutex
	projects []project.Project

	saveMu sync.Mutex
}

// New loads every project from backend. A positive debounce window delays
// and coalesces saves; zero saves on every mutation.
func New(ctx context.Context, backend Backend, debounce time.Duration, logger *slog.Logger) (*Store, error) {
	projects, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	logger.Info("projects loaded", "count", len(projects))
	return &Store{
		backend:  backend,
		debounce: NewDebouncer(debounce),
		logger:   logger,
		projects: projects,
	}, nil
}

// List returns copies of every project in creation order.
func (s *Store) List(ctx context.Context) []project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]project.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

func (s *Store) Get(ctx context.Context, id string) (project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return project.Project{}, fmt.Errorf("project %s: %w", id, project.ErrNotFound)
	}
	return s.projects[i].Clone(), nil
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.projects, func(p project.Project) bool { return p.ID == id })
}

// Create adds a new project. Project names are unique.
func (s *Store) Create(ctx context.Context, p project.Project) error {
	s.mu.Lock()
	if s.index(p.ID) >= 0 {
		s.mu.Unlock()
		return fmt.Errorf("project %s: %w", p.ID, project.ErrDuplicate)
	}
	for _, existing := range s.projects {
		if strings.EqualFold(existing.Name, p.Name) {
			s.mu.Unlock()
			return fmt.Errorf("project name %q: %w", p.Name, project.ErrDuplicate)
		}
	}
	s.projects = append(s.projects, project.Normalize(p.Clone()))
	s.mu.Unlock()

	s.logger.Info("project created", "project_id", p.ID, "name", p.Name)
	return s.persist(ctx)
}

// Update applies fn to the stored project and keeps its result. fn works on
// a copy, so an error leaves the stored document untouched.
func (s *Store) Update(ctx context.Context, id string, fn func(project.Project) (project.Project, error)) (project.Project, error) {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return project.Project{}, fmt.Errorf("project %s: %w", id, project.ErrNotFound)
	}
	next, err := fn(s.projects[i].Clone())
	if err != nil {
		s.mu.Unlock()
		return project.Project{}, err
	}
	next.ID = id
	next.UpdatedAt = time.Now().UTC()
	s.projects[i] = next
	out := next.Clone()
	s.mu.Unlock()

	return out, s.persist(ctx)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("project %s: %w", id, project.ErrNotFound)
	}
	s.projects = slices.Delete(s.projects, i, i+1)
	s.mu.Unlock()

	s.logger.Info("project deleted", "project_id", id)
	return s.persist(ctx)
}

// persist saves now, or schedules a save when debouncing. Errors from a
// deferred save are logged.
func (s *Store) persist(ctx context.Context) error {
	if s.debounce.window <= 0 {
		return s.save(ctx)
	}
	s.debounce.Schedule(saveKey, func() {
		if err := s.save(context.Background()); err != nil {
			s.logger.Error("deferred save failed", "error", err)
		}
	})
	return nil
}

func (s *Store) save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	snapshot := s.List(ctx)
	if err := s.backend.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save projects: %w", err)
	}
	s.logger.Debug("projects saved", "count", len(snapshot))
	return nil
}

// Flush writes any pending debounced save.
func (s *Store) Flush() {
	s.debounce.Flush()
}

// Close flushes pending saves and closes the backend.
func (s *Store) Close() error {
	s.Flush()
	return s.backend.Close()
}
