package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/duckwolf_api/internal/metrics"
)

// Document keys. Each key holds one whole JSON document.
const (
	KeyInventory = "inventory"
	KeyMedia     = "media"
	KeyChannels  = "channels"
	KeySettings  = "settings"
	KeyPlans     = "plans"
)

// ErrNotFound is returned by a Backend when nothing is stored under a key.
var ErrNotFound = errors.New("store: key not found")

// Backend is a durable key-value medium holding raw documents.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Store maps document keys onto a namespaced Backend and never lets a read
// failure escape: callers always get a usable value back.
type Store struct {
	backend Backend
	prefix  string
	metrics *metrics.Metrics
}

// New wraps backend. Keys are stored as prefix+key.
func New(backend Backend, prefix string, m *metrics.Metrics) *Store {
	return &Store{backend: backend, prefix: prefix, metrics: m}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// WithPrefix returns a Store sharing the backend under another namespace.
func (s *Store) WithPrefix(prefix string) *Store {
	return &Store{backend: s.backend, prefix: prefix, metrics: s.metrics}
}

// Load returns the value saved under key, or fallback when nothing is saved
// or the saved document is null, unreadable or undecodable. Unreadable
// documents are logged and counted; a plain miss or null is not.
func Load[T any](ctx context.Context, s *Store, key string, fallback T) T {
	data, err := s.backend.Get(ctx, s.key(key))
	if errors.Is(err, ErrNotFound) || (err == nil && isNull(data)) {
		return fallback
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Store read failed, using fallback")
		s.metrics.RecordStoreFallback(key, "read")
		return fallback
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Stored document is corrupt, using fallback")
		s.metrics.RecordStoreFallback(key, "decode")
		return fallback
	}
	return out
}

// isNull reports a document holding only a JSON null, which decodes to a
// zero value rather than failing.
func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// Save overwrites the document under key with value. Failures are logged and
// counted before being returned; callers treat persistence as best effort.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		s.metrics.RecordStoreWriteFailure(key)
		log.Error().Err(err).Str("key", key).Msg("Failed to encode document")
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, s.key(key), data); err != nil {
		s.metrics.RecordStoreWriteFailure(key)
		log.Error().Err(err).Str("key", key).Msg("Failed to write document")
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Remove deletes the document under key. Missing keys are not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, s.key(key)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}
