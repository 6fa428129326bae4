package index

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/preamble/internal/storage"
)

func testStore(t *testing.T, dir string) storage.Provider {
	t.Helper()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func syncTestEnv(t *testing.T) (string, *DB) {
	t.Helper()
	return t.TempDir(), testDB(t)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSync_IndexesChapterWithFrontmatter(t *testing.T) {
	srcDir, db := syncTestEnv(t)
	content := "+++\nauthor: Jane\ndate: 2024-01-01\n+++\n# Getting Started\n\nSome body text.\n"
	_ = os.WriteFile(filepath.Join(srcDir, "start.md"), []byte(content), 0o644)

	store := testStore(t, srcDir)
	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	row, err := db.GetChapter("start.md")
	if err != nil {
		t.Fatalf("GetChapter: %v", err)
	}
	if row.Title != "Getting Started" {
		t.Errorf("title = %q, want %q", row.Title, "Getting Started")
	}

	entries, _ := db.Entries("start.md")
	if len(entries) != 2 || entries[0].Key != "author" {
		t.Errorf("entries = %v", entries)
	}

	// Frontmatter must not leak into the indexed body.
	var body string
	_ = db.conn.QueryRow(`SELECT body FROM chapters WHERE path = 'start.md'`).Scan(&body)
	if body == "" || strings.Contains(body, "author") || strings.Contains(body, "+++") {
		t.Errorf("body = %q", body)
	}
}

func TestSync_TitleFallsBackToFilename(t *testing.T) {
	srcDir, db := syncTestEnv(t)
	_ = os.WriteFile(filepath.Join(srcDir, "nested.md"), []byte("no heading here\n"), 0o644)

	if err := Sync(db, testStore(t, srcDir), quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	row, err := db.GetChapter("nested.md")
	if err != nil {
		t.Fatalf("GetChapter: %v", err)
	}
	if row.Title != "nested" {
		t.Errorf("title = %q, want %q", row.Title, "nested")
	}
}

func TestSync_RemovesStaleEntries(t *testing.T) {
	srcDir, db := syncTestEnv(t)
	path := filepath.Join(srcDir, "gone.md")
	_ = os.WriteFile(path, []byte("# Gone"), 0o644)

	store := testStore(t, srcDir)
	_ = Sync(db, store, quietLogger())
	if _, err := db.GetChapter("gone.md"); err != nil {
		t.Fatal("precondition: chapter should be indexed")
	}

	_ = os.Remove(path)
	_ = Sync(db, store, quietLogger())
	if _, err := db.GetChapter("gone.md"); err == nil {
		t.Error("stale chapter should be removed")
	}
}

func TestSync_SkipsUnchangedFiles(t *testing.T) {
	srcDir, db := syncTestEnv(t)
	_ = os.WriteFile(filepath.Join(srcDir, "same.md"), []byte("# Same"), 0o644)

	store := testStore(t, srcDir)
	_ = Sync(db, store, quietLogger())
	first, _ := db.GetChapter("same.md")

	_ = Sync(db, store, quietLogger())
	second, _ := db.GetChapter("same.md")

	if !first.UpdatedAt.Equal(second.UpdatedAt) {
		t.Error("unchanged file should not be re-indexed")
	}
}
