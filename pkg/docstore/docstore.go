// Package docstore keeps each collection as one JSON array document.
//
// Every operation reads the whole document, changes it in memory and writes
// the whole document back. There is no locking: two concurrent writers to the
// same collection can lose an update.
package docstore

import (
	"context"
	"errors"
	"sync"

	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/Abraxas-365/mailer/pkg/fsx"
)

var storeErrors = errx.NewRegistry("DOCSTORE")

var (
	ErrLoadFailed = storeErrors.Register("LOAD_FAILED", errx.TypeInternal, 500, "Failed to read collection")
	ErrSaveFailed = storeErrors.Register("SAVE_FAILED", errx.TypeInternal, 500, "Failed to write collection")
)

// Backend stores raw collection documents.
type Backend interface {
	// Load returns the raw document, or nil when the collection has never been written.
	Load(ctx context.Context, collection string) ([]byte, error)
	// Save replaces the raw document.
	Save(ctx context.Context, collection string, data []byte) error
	// Name identifies the backend in logs.
	Name() string
}

// FSBackend stores each collection as <collection>.json on an fsx.FileSystem.
type FSBackend struct {
	fs fsx.FileSystem
}

// NewFSBackend creates a backend on top of a local or S3 file system.
func NewFSBackend(fs fsx.FileSystem) *FSBackend {
	return &FSBackend{fs: fs}
}

func (b *FSBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	data, err := b.fs.ReadFile(ctx, fileName(collection))
	if err != nil {
		if errors.Is(err, fsx.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (b *FSBackend) Save(ctx context.Context, collection string, data []byte) error {
	return b.fs.WriteFile(ctx, fileName(collection), data)
}

func (b *FSBackend) Name() string {
	return "fsx:" + b.fs.Describe()
}

func fileName(collection string) string {
	return collection + ".json"
}

// MemoryBackend keeps documents in memory. Useful for tests and dry runs.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

func (b *MemoryBackend) Load(_ context.Context, collection string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.docs[collection]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (b *MemoryBackend) Save(_ context.Context, collection string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[collection] = append([]byte(nil), data...)
	return nil
}

func (b *MemoryBackend) Name() string {
	return "memory"
}
