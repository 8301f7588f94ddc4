// Package storage defines the pantry file-system abstraction. The pantry is
// the directory of importable recipe files the library syncs from.
package storage

import "github.com/starford/mise/internal/models"

// Provider is the interface for pantry file operations.
type Provider interface {
	// List returns metadata for every importable file under dir (relative to
	// the pantry root).
	List(dir string) ([]models.FileMetadata, error)
	// Read returns the raw bytes of the file at path (relative to pantry root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to pantry root).
	Write(path string, content []byte) error
	// Delete removes the file at path (relative to pantry root).
	Delete(path string) error
	// Move renames oldPath to newPath (both relative to pantry root).
	Move(oldPath, newPath string) error
}
