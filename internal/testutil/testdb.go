package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/MikeSquared-Agency/mofasa/internal/store"
)

// DiscardLogger drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestBackend opens an in-memory SQLite backend that is closed when the
// test completes.
func NewTestBackend(t *testing.T) *store.SQLiteBackend {
	t.Helper()
	backend, err := store.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		backend.Close()
	})
	return backend
}

// NewTestStore returns a store over a fresh in-memory database that saves on
// every mutation.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(context.Background(), NewTestBackend(t), 0, DiscardLogger())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return st
}
