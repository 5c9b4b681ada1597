package fsxlocal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Abraxas-365/mailer/pkg/fsx"
)

// LocalFileSystem implements fsx.FileSystem using local disk
type LocalFileSystem struct {
	basePath string
}

// NewLocalFileSystem creates the base directory if needed and returns a
// file system rooted there (e.g. "./data").
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	return &LocalFileSystem{basePath: absPath}, nil
}

func (fs *LocalFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(fs.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", fsx.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (fs *LocalFileSystem) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(fs.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// WriteFile replaces the whole file. Writes go through a temp file and a
// rename so readers never observe a half-written document.
func (fs *LocalFileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	fullPath := fs.fullPath(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), filepath.Base(fullPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

func (fs *LocalFileSystem) DeleteFile(ctx context.Context, path string) error {
	if err := os.Remove(fs.fullPath(path)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Describe returns the base path
func (fs *LocalFileSystem) Describe() string {
	return fs.basePath
}

// GetBasePath returns the base path
func (fs *LocalFileSystem) GetBasePath() string {
	return fs.basePath
}

func (fs *LocalFileSystem) fullPath(path string) string {
	return filepath.Join(fs.basePath, filepath.Clean("/"+path))
}
