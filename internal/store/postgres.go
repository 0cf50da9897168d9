package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// PostgresBackend keeps documents in the kv_documents table
// (see migrations/000001_create_kv_documents.up.sql).
type PostgresBackend struct {
	db *sqlx.DB
}

func NewPostgresBackend(db *sqlx.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

func (p *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var doc []byte
	err := p.db.GetContext(ctx, &doc, `SELECT document FROM kv_documents WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Set upserts the whole document. The payload is sent as text so the
// driver does not encode it as bytea.
func (p *PostgresBackend) Set(ctx context.Context, key string, data []byte) error {
	const query = `INSERT INTO kv_documents (key, document, updated_at)
        VALUES ($1, $2::jsonb, NOW())
        ON CONFLICT (key) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`

	_, err := p.db.ExecContext(ctx, query, key, string(data))
	return err
}

func (p *PostgresBackend) Delete(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM kv_documents WHERE key = $1`, key)
	return err
}

func (p *PostgresBackend) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (p *PostgresBackend) Close() error { return p.db.Close() }
