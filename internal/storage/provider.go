// Package storage defines the book source file-system abstraction.
package storage

import "time"

// SourceFile is lightweight metadata for one Markdown file in the book src.
type SourceFile struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for book source file operations.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to the
	// source root).
	List(dir string) ([]SourceFile, error)
	// Read returns the raw bytes of the file at path (relative to the
	// source root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to the source root).
	Write(path string, content []byte) error
}
