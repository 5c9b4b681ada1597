package fsx

import (
	"context"
	"errors"
)

// ErrNotFound is returned (possibly wrapped) when a path does not exist.
var ErrNotFound = errors.New("fsx: file not found")

// FileReader provides read-only operations
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// FileWriter provides write operations
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}

// FileDeleter provides deletion operations
type FileDeleter interface {
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem combines all file operations
type FileSystem interface {
	FileReader
	FileWriter
	FileDeleter
	// Describe returns a human-readable location for logs.
	Describe() string
}
