package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMemoryBackend(t *testing.T) *SQLiteBackend {
	t.Helper()
	b, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func newProject(t *testing.T, name string) project.Project {
	t.Helper()
	p, err := project.New(name, "desc")
	require.NoError(t, err)
	p, part, err := project.AddParticipant(p, "P1")
	require.NoError(t, err)
	p, err = project.SetAnswer(p, 0, part.ID, project.Situation, "Where?", "Lab", project.WriteOptions{})
	require.NoError(t, err)
	return p
}

func TestSQLiteBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b := newMemoryBackend(t)

	p := newProject(t, "Study A")
	require.NoError(t, b.Save(ctx, []project.Project{p}))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p.ID, got[0].ID)
	assert.Equal(t, "Lab", got[0].Scopes[0].Participants[0].Answer(project.Situation, "Where?"))
}

func TestSQLiteBackend_SaveRemovesMissingProjects(t *testing.T) {
	ctx := context.Background()
	b := newMemoryBackend(t)

	a, c := newProject(t, "A"), newProject(t, "C")
	require.NoError(t, b.Save(ctx, []project.Project{a, c}))
	require.NoError(t, b.Save(ctx, []project.Project{c}))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c.ID, got[0].ID)
}

func TestOpenSQLite_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "mofasa.db")

	b, err := OpenSQLite(path)
	require.NoError(t, err)
	p := newProject(t, "On disk")
	require.NoError(t, b.Save(ctx, []project.Project{p}))
	require.NoError(t, b.Close())

	b, err = OpenSQLite(path)
	require.NoError(t, err)
	defer b.Close()
	got, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "On disk", got[0].Name)
}

func TestStore_CreateRejectsNameDifferingOnlyInCase(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, newMemoryBackend(t), 0, discardLogger())
	require.NoError(t, err)

	require.NoError(t, s.Create(ctx, newProject(t, "Study")))
	assert.ErrorIs(t, s.Create(ctx, newProject(t, "study")), project.ErrDuplicate)
	assert.Len(t, s.List(ctx), 1)
}

func TestStore_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	b := newMemoryBackend(t)
	s, err := New(ctx, b, 0, discardLogger())
	require.NoError(t, err)

	p := newProject(t, "Study")
	require.NoError(t, s.Create(ctx, p))
	assert.ErrorIs(t, s.Create(ctx, p), project.ErrDuplicate)

	updated, err := s.Update(ctx, p.ID, func(p project.Project) (project.Project, error) {
		return project.AddRule(p, 0, "Be polite")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Be polite"}, updated.Scopes[0].Rules)

	// Saved through to the backend without debouncing.
	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, []string{"Be polite"}, loaded[0].Scopes[0].Rules)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	got.Scopes[0].Rules[0] = "mutated"
	again, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Be polite", again.Scopes[0].Rules[0], "Get returns a copy")
}

func TestStore_UpdateErrorLeavesDocument(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, newMemoryBackend(t), 0, discardLogger())
	require.NoError(t, err)
	p := newProject(t, "Study")
	require.NoError(t, s.Create(ctx, p))

	boom := errors.New("boom")
	_, err = s.Update(ctx, p.ID, func(p project.Project) (project.Project, error) {
		p.Name = "changed"
		return p, boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Study", got.Name)
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, newMemoryBackend(t), 0, discardLogger())
	require.NoError(t, err)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, project.ErrNotFound)
	_, err = s.Update(ctx, "missing", func(p project.Project) (project.Project, error) { return p, nil })
	assert.ErrorIs(t, err, project.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "missing"), project.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	b := newMemoryBackend(t)
	s, err := New(ctx, b, 0, discardLogger())
	require.NoError(t, err)
	p := newProject(t, "Study")
	require.NoError(t, s.Create(ctx, p))
	require.NoError(t, s.Delete(ctx, p.ID))

	assert.Empty(t, s.List(ctx))
	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_ConcurrentUpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, newMemoryBackend(t), 0, discardLogger())
	require.NoError(t, err)
	p := newProject(t, "Study")
	require.NoError(t, s.Create(ctx, p))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, p.ID, func(p project.Project) (project.Project, error) {
				return project.AddRule(p, 0, "rule "+string(rune('a'+i)))
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Scopes[0].Rules, 20)
}

// countingBackend counts saves on top of a real backend.
type countingBackend struct {
	*SQLiteBackend
	saves atomic.Int32
}

func (c *countingBackend) Save(ctx context.Context, projects []project.Project) error {
	c.saves.Add(1)
	return c.SQLiteBackend.Save(ctx, projects)
}

func TestStore_DebouncedSavesCoalesce(t *testing.T) {
	ctx := context.Background()
	b := &countingBackend{SQLiteBackend: newMemoryBackend(t)}
	s, err := New(ctx, b, time.Hour, discardLogger())
	require.NoError(t, err)

	p := newProject(t, "Study")
	require.NoError(t, s.Create(ctx, p))
	for _, r := range []string{"a", "b", "c"} {
		_, err := s.Update(ctx, p.ID, func(p project.Project) (project.Project, error) {
			return project.AddRule(p, 0, r)
		})
		require.NoError(t, err)
	}
	assert.Zero(t, b.saves.Load())

	s.Flush()
	assert.Equal(t, int32(1), b.saves.Load())

	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, []string{"a", "b", "c"}, loaded[0].Scopes[0].Rules)
}

func TestNew_LoadsExisting(t *testing.T) {
	ctx := context.Background()
	b := newMemoryBackend(t)
	p := newProject(t, "Existing")
	require.NoError(t, b.Save(ctx, []project.Project{p}))

	s, err := New(ctx, b, 0, discardLogger())
	require.NoError(t, err)
	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Existing", got.Name)
}
