// Package testutil provides shared test helpers for setting up book source
// directories and index databases.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/preamble/internal/index"
	"github.com/starford/preamble/internal/storage"
)

// TestDB creates a temporary SQLite index that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "preamble-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestBookDir creates a temporary book src directory with a storage.Provider.
func TestBookDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	srcDir := t.TempDir()
	store, err := storage.NewFS(srcDir)
	if err != nil {
		t.Fatal(err)
	}
	return srcDir, store
}
