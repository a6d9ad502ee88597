// Package testutil provides shared test helpers for setting up content
// directories and catalogs.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/index"
	"github.com/starford/folio/internal/storage"
)

// TestDB creates a temporary SQLite catalog that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.Open(filepath.Join(t.TempDir(), "folio-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestContent creates a temporary content directory with a storage.FS.
// When seed is true the built-in portfolio is written to
// content.DefaultName.
func TestContent(t *testing.T, seed bool) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	if seed {
		if err := store.Write(content.DefaultName, content.DefaultBytes()); err != nil {
			t.Fatal(err)
		}
	}
	return dir, store
}
