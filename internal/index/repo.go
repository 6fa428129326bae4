package index

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starford/preamble/internal/apperr"
	"github.com/starford/preamble/internal/frontmatter"
)

// ChapterRow represents a row in the chapters table.
type ChapterRow struct {
	Path      string
	Title     string
	Checksum  string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// KeyCount is a frontmatter key with the number of chapters carrying it.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// KeyValue is one frontmatter value together with the chapter it came from.
type KeyValue struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// UpsertChapter inserts or replaces a chapter, its frontmatter entries, and
// its FTS row within a transaction. Entry order is preserved via pos.
func (db *DB) UpsertChapter(c ChapterRow, body string, entries []frontmatter.Entry) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO chapters (path, title, checksum, body, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title      = excluded.title,
			checksum   = excluded.checksum,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, c.Path, c.Title, c.Checksum, body, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert chapter: %w", err)
	}

	// Replace frontmatter entries: delete old then bulk insert in order.
	_, _ = tx.Exec(`DELETE FROM frontmatter WHERE path = ?`, c.Path)
	if len(entries) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO frontmatter (path, pos, key, value) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare entry insert: %w", err)
		}
		defer stmt.Close()
		for i, e := range entries {
			if _, err := stmt.Exec(c.Path, i, e.Key, e.Value); err != nil {
				return fmt.Errorf("index: insert entry: %w", err)
			}
		}
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, c.Path, c.Title, body, metaText(entries)); err != nil {
		return err
	}

	return tx.Commit()
}

// metaText flattens entries into a searchable blob for the FTS meta column.
func metaText(entries []frontmatter.Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Key + " " + e.Value
	}
	return strings.Join(parts, "\n")
}

// DeleteChapter removes a chapter, its frontmatter entries, and its FTS row.
func (db *DB) DeleteChapter(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM frontmatter WHERE path = ?`, path)
	_, _ = tx.Exec(`DELETE FROM chapters WHERE path = ?`, path)

	return tx.Commit()
}

// GetChapter returns the stored row for path, or apperr.ErrNotFound.
func (db *DB) GetChapter(path string) (*ChapterRow, error) {
	var c ChapterRow
	err := db.conn.QueryRow(`
		SELECT path, title, checksum, updated_at FROM chapters WHERE path = ?
	`, path).Scan(&c.Path, &c.Title, &c.Checksum, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("index: get chapter: %w", err)
	}
	return &c, nil
}

// ListChapters returns a page of chapters plus the total count.
// sort is one of "path" (default), "title", "updated_at".
func (db *DB) ListChapters(limit, offset int, sort string) ([]ChapterRow, int, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	orderBy := "path"
	switch sort {
	case "", "path":
	case "title":
		orderBy = "title"
	case "updated_at":
		orderBy = "updated_at DESC"
	default:
		return nil, 0, fmt.Errorf("index: unknown sort %q", sort)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM chapters`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count chapters: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT path, title, checksum, updated_at FROM chapters
		ORDER BY `+orderBy+` LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list chapters: %w", err)
	}
	defer rows.Close()

	var out []ChapterRow
	for rows.Next() {
		var c ChapterRow
		if err := rows.Scan(&c.Path, &c.Title, &c.Checksum, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// Entries returns the ordered frontmatter entries of one chapter.
func (db *DB) Entries(path string) ([]frontmatter.Entry, error) {
	rows, err := db.conn.Query(`
		SELECT key, value FROM frontmatter WHERE path = ? ORDER BY pos
	`, path)
	if err != nil {
		return nil, fmt.Errorf("index: entries: %w", err)
	}
	defer rows.Close()

	var out []frontmatter.Entry
	for rows.Next() {
		var e frontmatter.Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Keys returns every frontmatter key with its chapter count.
func (db *DB) Keys() ([]KeyCount, error) {
	rows, err := db.conn.Query(`
		SELECT key, count(DISTINCT path) FROM frontmatter GROUP BY key ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("index: keys: %w", err)
	}
	defer rows.Close()

	var out []KeyCount
	for rows.Next() {
		var k KeyCount
		if err := rows.Scan(&k.Key, &k.Count); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// Lookup returns every value recorded for a frontmatter key, chapter by
// chapter in entry order.
func (db *DB) Lookup(key string) ([]KeyValue, error) {
	rows, err := db.conn.Query(`
		SELECT path, value FROM frontmatter WHERE key = ? ORDER BY path, pos
	`, key)
	if err != nil {
		return nil, fmt.Errorf("index: lookup: %w", err)
	}
	defer rows.Close()

	var out []KeyValue
	for rows.Next() {
		var kv KeyValue
		if err := rows.Scan(&kv.Path, &kv.Value); err != nil {
			return nil, err
		}
		out = append(out, kv)
	}
	return out, rows.Err()
}

// AllChecksums returns the checksum of every indexed chapter keyed by path.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM chapters`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}
