package index

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/preamble/internal/checksum"
	"github.com/starford/preamble/internal/frontmatter"
	"github.com/starford/preamble/internal/mdtext"
	"github.com/starford/preamble/internal/storage"
)

// Sync walks the book src and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	files, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(files))
	for _, f := range files {
		disk[f.Path] = struct{}{}

		if checksums[f.Path] == f.Checksum {
			continue
		}

		data, err := store.Read(f.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", f.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(db, f.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", f.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", f.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteChapter(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile parses chapter data and upserts it: the frontmatter region is
// stripped from the indexed body and its entries land in their own table.
func indexFile(db *DB, path string, data []byte) error {
	rest, entries := frontmatter.Strip(mdtext.Ops(string(data)))

	title := mdtext.Title(rest)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), ".md")
	}

	row := ChapterRow{
		Path:      path,
		Title:     title,
		Checksum:  checksum.Sum(data),
		UpdatedAt: time.Now(),
	}
	return db.UpsertChapter(row, mdtext.PlainText(rest), entries)
}
