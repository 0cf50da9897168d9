package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/duckwolf_api/internal/metrics"
	"github.com/GTDGit/duckwolf_api/internal/models"
)

type failingBackend struct {
	*MemoryBackend
	getErr error
	setErr error
}

func (f *failingBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryBackend.Get(ctx, key)
}

func (f *failingBackend) Set(ctx context.Context, key string, data []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryBackend.Set(ctx, key, data)
}

func TestLoad_MissingKeyReturnsFallbackSilently(t *testing.T) {
	m := metrics.New()
	s := New(NewMemoryBackend(), "duckwolf_", m)

	got := Load(context.Background(), s, KeySettings, models.DefaultSettings())

	assert.Equal(t, models.DefaultSettings(), got)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.StoreFallbacks.WithLabelValues(KeySettings, "decode")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.StoreFallbacks.WithLabelValues(KeySettings, "read")))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryBackend(), "duckwolf_", nil)
	items := models.SeedInventory()[:2]

	require.NoError(t, s.Save(ctx, KeyInventory, items))

	got := Load(ctx, s, KeyInventory, []models.InventoryItem{})
	assert.Equal(t, items, got)
}

func TestLoad_CorruptDocumentFallsBackAndCounts(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	m := metrics.New()
	s := New(backend, "duckwolf_", m)

	require.NoError(t, backend.Set(ctx, "duckwolf_"+KeyMedia, []byte("{not json")))

	got := Load(ctx, s, KeyMedia, models.SeedMedia())

	assert.Equal(t, models.SeedMedia(), got)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreFallbacks.WithLabelValues(KeyMedia, "decode")))
}

func TestLoad_NullDocumentIsAMiss(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := New(backend, "duckwolf_", nil)

	require.NoError(t, backend.Set(ctx, "duckwolf_"+KeySettings, []byte(" null\n")))
	require.NoError(t, backend.Set(ctx, "duckwolf_"+KeyChannels, []byte("null")))

	assert.Equal(t, models.DefaultSettings(), Load(ctx, s, KeySettings, models.DefaultSettings()))
	assert.Len(t, Load(ctx, s, KeyChannels, models.SeedChannels()), 2)
}

func TestLoad_ReadErrorFallsBack(t *testing.T) {
	m := metrics.New()
	s := New(&failingBackend{MemoryBackend: NewMemoryBackend(), getErr: errors.New("unavailable")}, "", m)

	got := Load(context.Background(), s, KeyChannels, models.SeedChannels())

	assert.Len(t, got, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreFallbacks.WithLabelValues(KeyChannels, "read")))
}

func TestSave_WriteFailureIsReturnedAndCounted(t *testing.T) {
	m := metrics.New()
	s := New(&failingBackend{MemoryBackend: NewMemoryBackend(), setErr: errors.New("quota exceeded")}, "", m)

	err := s.Save(context.Background(), KeyPlans, []models.PricingPlan{})

	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreWriteFailures.WithLabelValues(KeyPlans)))
}

func TestWithPrefix_IsolatesNamespaces(t *testing.T) {
	ctx := context.Background()
	a := New(NewMemoryBackend(), "session_a_", nil)
	b := a.WithPrefix("session_b_")

	require.NoError(t, a.Save(ctx, KeySettings, models.AppSettings{LowStockThreshold: 7}))

	assert.Equal(t, 7, Load(ctx, a, KeySettings, models.DefaultSettings()).LowStockThreshold)
	assert.Equal(t, 50, Load(ctx, b, KeySettings, models.DefaultSettings()).LowStockThreshold)
}

func TestRemove_MissingKeyIsNotAnError(t *testing.T) {
	s := New(NewMemoryBackend(), "", nil)
	assert.NoError(t, s.Remove(context.Background(), KeyInventory))
}

func TestFileBackend_RoundTripAndMiss(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := NewFileBackend(filepath.Join(dir, "nested"))
	require.NoError(t, err)

	_, err = b.Get(ctx, "duckwolf_inventory")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Set(ctx, "duckwolf_inventory", []byte(`[1,2]`)))
	data, err := b.Get(ctx, "duckwolf_inventory")
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(data))

	_, err = os.Stat(filepath.Join(dir, "nested", "duckwolf_inventory.json"))
	assert.NoError(t, err)

	require.NoError(t, b.Delete(ctx, "duckwolf_inventory"))
	require.NoError(t, b.Delete(ctx, "duckwolf_inventory"))
	_, err = b.Get(ctx, "duckwolf_inventory")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileBackend_KeyStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, b.Set(context.Background(), "../../etc/passwd", []byte(`{}`)))

	_, err = os.Stat(filepath.Join(dir, fileKey("../../etc/passwd")))
	assert.NoError(t, err)
	assert.Equal(t, "____etc_passwd.json", fileKey("../../etc/passwd"))
}

func TestMemoryBackend_CopiesData(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	data := []byte(`{"a":1}`)

	require.NoError(t, b.Set(ctx, "k", data))
	data[0] = 'X'

	got, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}
