package index

import "github.com/starford/preamble/internal/frontmatter"

// ChapterIndex defines the interface for chapter indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type ChapterIndex interface {
	UpsertChapter(c ChapterRow, body string, entries []frontmatter.Entry) error
	DeleteChapter(path string) error
	GetChapter(path string) (*ChapterRow, error)
	ListChapters(limit, offset int, sort string) ([]ChapterRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	Entries(path string) ([]frontmatter.Entry, error)
	Keys() ([]KeyCount, error)
	Lookup(key string) ([]KeyValue, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies ChapterIndex at compile time.
var _ ChapterIndex = (*DB)(nil)
