// Package testutil provides shared test helpers for setting up pantries and
// databases.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/mise/internal/library"
	"github.com/starford/mise/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *library.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "mise-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := library.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestPantry creates a temporary pantry directory with a storage.Provider.
func TestPantry(t *testing.T) (string, storage.Provider) {
	t.Helper()
	pantryDir := t.TempDir()
	store, err := storage.NewFS(pantryDir)
	if err != nil {
		t.Fatal(err)
	}
	return pantryDir, store
}
