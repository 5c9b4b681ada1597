package docstorepg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Schema creates the single table holding every collection document.
const Schema = `
CREATE TABLE IF NOT EXISTS mailer_collections (
	name       TEXT PRIMARY KEY,
	data       JSONB NOT NULL DEFAULT '[]'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const undefinedTable = "42P01"

// PostgresBackend stores each collection document as one JSONB row.
type PostgresBackend struct {
	db *sqlx.DB
}

// NewPostgresBackend wraps an open connection pool.
func NewPostgresBackend(db *sqlx.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

// EnsureSchema creates the collections table if it does not exist.
func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create mailer_collections: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	var data []byte
	err := b.db.GetContext(ctx, &data, `SELECT data FROM mailer_collections WHERE name = $1`, collection)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load collection %s: %w", collection, err)
	}
	return data, nil
}

func (b *PostgresBackend) Save(ctx context.Context, collection string, data []byte) error {
	query := `
		INSERT INTO mailer_collections (name, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

	if _, err := b.db.ExecContext(ctx, query, collection, string(data)); err != nil {
		return fmt.Errorf("save collection %s: %w", collection, err)
	}
	return nil
}

func (b *PostgresBackend) Name() string {
	return "postgres"
}

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == undefinedTable
}
