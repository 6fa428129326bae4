package bookservice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/starford/preamble/internal/apperr"
	"github.com/starford/preamble/internal/frontmatter"
	"github.com/starford/preamble/internal/index"
	"github.com/starford/preamble/internal/testutil"
)

const chapterWithMeta = "# Intro\n\n+++\nauthor: Jane (@jane)\n+++\nHello world.\n"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setup(t *testing.T) (*Service, *index.DB) {
	t.Helper()
	_, store := testutil.TestBookDir(t)
	db := testutil.TestDB(t)
	if err := store.Write("intro.md", []byte(chapterWithMeta)); err != nil {
		t.Fatal(err)
	}
	if err := index.Sync(db, store, quietLogger()); err != nil {
		t.Fatal(err)
	}
	return NewService(store, db, frontmatter.Renderer{}), db
}

func TestGetChapter_TransformsAndRenders(t *testing.T) {
	svc, _ := setup(t)

	ch, err := svc.GetChapter(context.Background(), "intro.md")
	if err != nil {
		t.Fatalf("GetChapter: %v", err)
	}
	if ch.Title != "Intro" {
		t.Errorf("title = %q", ch.Title)
	}
	if ch.Content != chapterWithMeta {
		t.Errorf("raw content altered: %q", ch.Content)
	}
	if !strings.Contains(ch.HTML, `<table class="preamble">`) {
		t.Errorf("html missing frontmatter table:\n%s", ch.HTML)
	}
	if !strings.Contains(ch.HTML, "https://github.com/jane") {
		t.Errorf("author not linkified:\n%s", ch.HTML)
	}
	if len(ch.Entries) != 1 || ch.Entries[0].Key != "author" {
		t.Errorf("entries = %v", ch.Entries)
	}
	if ch.Checksum == "" {
		t.Error("checksum empty")
	}
}

func TestGetChapter_Missing(t *testing.T) {
	svc, _ := setup(t)
	if _, err := svc.GetChapter(context.Background(), "nope.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListChapters(t *testing.T) {
	svc, _ := setup(t)
	items, total, err := svc.ListChapters(context.Background(), 10, 0, "path")
	if err != nil {
		t.Fatalf("ListChapters: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Path != "intro.md" {
		t.Errorf("items = %v, total = %d", items, total)
	}
}

func TestMetadataLookups(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	keys, err := svc.Keys(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0].Key != "author" {
		t.Errorf("keys = %v", keys)
	}

	values, err := svc.Lookup(ctx, "author")
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 1 || values[0].Value != "Jane (@jane)" {
		t.Errorf("values = %v", values)
	}

	entries, err := svc.Entries(ctx, "intro.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %v", entries)
	}
}

func TestApplyAll(t *testing.T) {
	_, store := testutil.TestBookDir(t)
	if err := store.Write("meta.md", []byte("+++\nk: v\n+++\nBody\n")); err != nil {
		t.Fatal(err)
	}
	if err := store.Write("plain.md", []byte("No metadata here.\n")); err != nil {
		t.Fatal(err)
	}

	changed, err := ApplyAll(store, frontmatter.Renderer{}, quietLogger())
	if err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}
	if changed != 1 {
		t.Errorf("changed = %d, want 1", changed)
	}

	data, err := store.Read("meta.md")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<table") {
		t.Errorf("file not rewritten:\n%s", data)
	}
	plain, _ := store.Read("plain.md")
	if string(plain) != "No metadata here.\n" {
		t.Errorf("plain file touched: %q", plain)
	}
}
