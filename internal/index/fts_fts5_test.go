//go:build sqlite_fts5

package index

import (
	"testing"
	"time"

	"github.com/starford/preamble/internal/frontmatter"
)

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM chapters_fts`).Scan(&count); err != nil {
		t.Fatalf("chapters_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	row := ChapterRow{
		Path:      "fts.md",
		Title:     "FTS Chapter",
		Checksum:  "f1",
		UpdatedAt: time.Now(),
	}
	if err := db.UpsertChapter(row, "Preamble provides powerful full-text search capabilities.", nil); err != nil {
		t.Fatalf("UpsertChapter: %v", err)
	}

	results, err := db.Search("powerful", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Path != "fts.md" {
		t.Errorf("path = %q", results[0].Path)
	}
	if results[0].Snippet == "" {
		t.Error("expected non-empty snippet")
	}
}

func TestFTS5_MetadataSearchable(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertChapter(ChapterRow{Path: "meta.md", Checksum: "m", UpdatedAt: time.Now()},
		"plain body", []frontmatter.Entry{{Key: "reviewer", Value: "Villanelle"}})

	results, _ := db.Search("Villanelle", 10)
	if len(results) != 1 || results[0].Path != "meta.md" {
		t.Errorf("metadata not searchable via FTS: %+v", results)
	}
}

func TestFTS5_DeleteRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertChapter(ChapterRow{Path: "gone.md", Checksum: "g", UpdatedAt: time.Now()}, "vanishing content", nil)
	_ = db.DeleteChapter("gone.md")

	results, _ := db.Search("vanishing", 10)
	for _, r := range results {
		if r.Path == "gone.md" {
			t.Error("deleted chapter still in FTS index")
		}
	}
}

func TestFTS5_UpsertReplacesContent(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertChapter(ChapterRow{Path: "evo.md", Title: "Old", Checksum: "1", UpdatedAt: now}, "original text", nil)
	_ = db.UpsertChapter(ChapterRow{Path: "evo.md", Title: "New", Checksum: "2", UpdatedAt: now}, "replacement text", nil)

	results, _ := db.Search("original", 10)
	if len(results) != 0 {
		t.Error("old FTS content should be gone")
	}
	results, _ = db.Search("replacement", 10)
	if len(results) != 1 || results[0].Title != "New" {
		t.Errorf("FTS not updated: %+v", results)
	}
}
