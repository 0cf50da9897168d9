package store

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against real services and skip when none is configured.

func TestRedisBackend(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	b := NewRedisBackendFromClient(client)
	defer b.Close()

	key := "duckwolf_test_" + t.Name()
	defer b.Delete(ctx, key)

	_, err := b.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Set(ctx, key, []byte(`{"ok":true}`)))
	data, err := b.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))
}

func TestPostgresBackend(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Skipf("postgres not reachable: %v", err)
	}
	ctx := context.Background()
	_, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv_documents (
		key VARCHAR(128) PRIMARY KEY,
		document JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	require.NoError(t, err)

	b := NewPostgresBackend(db)
	defer b.Close()

	key := "duckwolf_test_plans"
	defer b.Delete(ctx, key)

	_, err = b.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Set(ctx, key, []byte(`[{"id":"p1"}]`)))
	require.NoError(t, b.Set(ctx, key, []byte(`[{"id":"p2"}]`)))

	data, err := b.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p2"}]`, string(data))
}
