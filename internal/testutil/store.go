package testutil

import (
	"path/filepath"
	"testing"

	"github.com/nhle/mediashelf/internal/store"
)

// NewTestStore opens a migrated in-memory catalog that closes with the test.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	return openStore(t, ":memory:")
}

// NewFileStore opens a migrated catalog file under t.TempDir and returns it
// with its path, for tests that reopen the database.
func NewFileStore(t *testing.T) (*store.SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mediashelf.db")
	return openStore(t, path), path
}

func openStore(t *testing.T, path string) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("opening catalog %s: %v", path, err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing catalog %s: %v", path, err)
		}
	})
	return s
}
