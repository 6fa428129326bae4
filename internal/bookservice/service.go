// Package bookservice coordinates storage, index, and frontmatter rendering
// for the preview server and the MCP tools.
package bookservice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/starford/preamble/internal/apperr"
	"github.com/starford/preamble/internal/checksum"
	"github.com/starford/preamble/internal/frontmatter"
	"github.com/starford/preamble/internal/index"
	"github.com/starford/preamble/internal/mdtext"
	"github.com/starford/preamble/internal/storage"
)

// ChapterDetail is the full representation of a chapter.
type ChapterDetail struct {
	Path      string              `json:"path"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	HTML      string              `json:"html"`
	Checksum  string              `json:"checksum"`
	Entries   []frontmatter.Entry `json:"frontmatter"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ChapterListItem is a lightweight item in a list response.
type ChapterListItem struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service coordinates storage and index operations.
type Service struct {
	store    storage.Provider
	db       index.ChapterIndex
	renderer frontmatter.Renderer
}

// NewService creates a new book service.
func NewService(store storage.Provider, db index.ChapterIndex, renderer frontmatter.Renderer) *Service {
	return &Service{store: store, db: db, renderer: renderer}
}

// GetChapter reads a chapter from storage, runs the frontmatter transform,
// and renders the result to HTML for the preview.
func (s *Service) GetChapter(_ context.Context, path string) (*ChapterDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	ops, entries := s.renderer.Rewrite(mdtext.Ops(string(data)))

	title := mdtext.Title(ops)
	if title == "" {
		if row, rowErr := s.db.GetChapter(path); rowErr == nil {
			title = row.Title
		}
	}

	return &ChapterDetail{
		Path:      path,
		Title:     title,
		Content:   string(data),
		HTML:      mdtext.HTML(ops),
		Checksum:  checksum.Sum(data),
		Entries:   nonNilSlice(entries),
		UpdatedAt: time.Now(),
	}, nil
}

// ListChapters returns paginated chapters.
func (s *Service) ListChapters(_ context.Context, limit, offset int, sort string) ([]ChapterListItem, int, error) {
	rows, total, err := s.db.ListChapters(limit, offset, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]ChapterListItem, len(rows))
	for i, r := range rows {
		items[i] = ChapterListItem{
			Path:      r.Path,
			Title:     r.Title,
			Checksum:  r.Checksum,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Entries returns the indexed frontmatter entries of one chapter.
func (s *Service) Entries(_ context.Context, path string) ([]frontmatter.Entry, error) {
	entries, err := s.db.Entries(path)
	if err != nil {
		return nil, err
	}
	return nonNilSlice(entries), nil
}

// Keys returns every frontmatter key with its chapter count.
func (s *Service) Keys(_ context.Context) ([]index.KeyCount, error) {
	keys, err := s.db.Keys()
	if err != nil {
		return nil, err
	}
	return nonNilSlice(keys), nil
}

// Lookup returns every value of one frontmatter key across the book.
func (s *Service) Lookup(_ context.Context, key string) ([]index.KeyValue, error) {
	values, err := s.db.Lookup(key)
	if err != nil {
		return nil, err
	}
	return nonNilSlice(values), nil
}

// ApplyAll rewrites every source file in place with its transformed content.
// Returns the number of files that changed. Files without frontmatter are
// left untouched on disk even though a round trip may normalise formatting.
func ApplyAll(store storage.Provider, renderer frontmatter.Renderer, logger *slog.Logger) (int, error) {
	files, err := store.List("")
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, f := range files {
		data, err := store.Read(f.Path)
		if err != nil {
			logger.Warn("apply: read failed", slog.String("path", f.Path), slog.String("error", err.Error()))
			continue
		}
		source := string(data)
		if len(frontmatter.Extract(source)) == 0 {
			continue
		}
		out := renderer.Transform(source)
		if out == source {
			continue
		}
		if err := store.Write(f.Path, []byte(out)); err != nil {
			return changed, err
		}
		logger.Info("apply: transformed", slog.String("path", f.Path))
		changed++
	}
	return changed, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
