// Package storage gives rooted, traversal-safe access to the content and
// asset directories.
package storage

import (
	"os"
	"time"
)

// File describes a content document under the root.
type File struct {
	Path      string
	Checksum  string
	UpdatedAt time.Time
}

// Provider is the interface for rooted file operations. Paths are relative
// to the root.
type Provider interface {
	// List returns every content document (.yaml, .yml, .toml) under dir.
	List(dir string) ([]File, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Open opens the regular file at path for streaming.
	Open(path string) (*os.File, os.FileInfo, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Exists reports whether path names an existing file.
	Exists(path string) bool
}
