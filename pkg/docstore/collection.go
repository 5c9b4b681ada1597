package docstore

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/Abraxas-365/mailer/pkg/logx"
)

var utf8BOM = []byte("\uFEFF")

// Collection is a typed view over one JSON array document.
type Collection[T any] struct {
	backend Backend
	name    string
}

// NewCollection binds a collection name to a backend.
func NewCollection[T any](backend Backend, name string) *Collection[T] {
	return &Collection[T]{backend: backend, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// List returns every record. A missing, blank or unparsable document reads
// as an empty collection; only backend I/O failures are returned as errors.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	raw, err := c.backend.Load(ctx, c.name)
	if err != nil {
		return nil, storeErrors.NewWithCause(ErrLoadFailed, err).
			WithDetail("collection", c.name).
			WithDetail("backend", c.backend.Name())
	}
	return c.decode(raw), nil
}

func (c *Collection[T]) decode(raw []byte) []T {
	raw = bytes.TrimSpace(bytes.TrimPrefix(raw, utf8BOM))
	if len(raw) == 0 {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logx.WithFields(logx.Fields{
			"collection": c.name,
			"backend":    c.backend.Name(),
		}).WithError(err).Error("docstore: unparsable collection, treating as empty")
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Replace writes items as the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return storeErrors.NewWithCause(ErrSaveFailed, err).WithDetail("collection", c.name)
	}
	if err := c.backend.Save(ctx, c.name, data); err != nil {
		return storeErrors.NewWithCause(ErrSaveFailed, err).
			WithDetail("collection", c.name).
			WithDetail("backend", c.backend.Name())
	}
	return nil
}

// Find returns the first record matching match.
func (c *Collection[T]) Find(ctx context.Context, match func(T) bool) (*T, error) {
	items, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if match(items[i]) {
			return &items[i], nil
		}
	}
	return nil, nil
}

// Filter returns every record matching match, in stored order.
func (c *Collection[T]) Filter(ctx context.Context, match func(T) bool) ([]T, error) {
	items, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Upsert replaces the first record matching match with build(existing), or
// appends build(nil) when none matches. It reports whether a record was created.
func (c *Collection[T]) Upsert(ctx context.Context, match func(T) bool, build func(existing *T) T) (T, bool, error) {
	var zero T
	items, err := c.List(ctx)
	if err != nil {
		return zero, false, err
	}

	for i := range items {
		if match(items[i]) {
			items[i] = build(&items[i])
			if err := c.Replace(ctx, items); err != nil {
				return zero, false, err
			}
			return items[i], false, nil
		}
	}

	rec := build(nil)
	items = append(items, rec)
	if err := c.Replace(ctx, items); err != nil {
		return zero, false, err
	}
	return rec, true, nil
}

// Update applies mutate to the first record matching match. It returns
// (nil, nil) when nothing matched. If mutate fails nothing is written.
func (c *Collection[T]) Update(ctx context.Context, match func(T) bool, mutate func(*T) error) (*T, error) {
	items, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if !match(items[i]) {
			continue
		}
		if err := mutate(&items[i]); err != nil {
			return nil, err
		}
		if err := c.Replace(ctx, items); err != nil {
			return nil, err
		}
		return &items[i], nil
	}
	return nil, nil
}

// Insert appends rec.
func (c *Collection[T]) Insert(ctx context.Context, rec T) error {
	items, err := c.List(ctx)
	if err != nil {
		return err
	}
	return c.Replace(ctx, append(items, rec))
}

// Delete removes the first record matching match and reports whether one was removed.
func (c *Collection[T]) Delete(ctx context.Context, match func(T) bool) (bool, error) {
	items, err := c.List(ctx)
	if err != nil {
		return false, err
	}

	for i := range items {
		if match(items[i]) {
			items = append(items[:i], items[i+1:]...)
			return true, c.Replace(ctx, items)
		}
	}
	return false, nil
}
