package persistence_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikdev/klinik-api/internal/persistence"
)

func TestFileAdapterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	adapter, err := persistence.NewFileAdapter(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = adapter.Load(ctx, "patients")
	assert.True(t, errors.Is(err, persistence.ErrNotFound))

	payload := []byte(`[{"name":"Andi"}]`)
	require.NoError(t, adapter.Save(ctx, "patients", payload))

	loaded, err := adapter.Load(ctx, "patients")
	require.NoError(t, err)
	assert.Equal(t, payload, loaded)

	// Overwrite replaces the previous value.
	replacement := []byte(`[]`)
	require.NoError(t, adapter.Save(ctx, "patients", replacement))
	loaded, err = adapter.Load(ctx, "patients")
	require.NoError(t, err)
	assert.Equal(t, replacement, loaded)

	// One file per collection, no leftover temp files.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "patients.json", entries[0].Name())
}

func TestFileAdapterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := persistence.NewFileAdapter(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemoryAdapterFailureInjection(t *testing.T) {
	adapter := persistence.NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.Save(ctx, "rooms", []byte("[]")))

	boom := errors.New("boom")
	adapter.FailOn = func(key string) error {
		if key == "rooms" {
			return boom
		}
		return nil
	}

	err := adapter.Save(ctx, "rooms", []byte("[1]"))
	assert.True(t, errors.Is(err, boom))

	// Failed save leaves the stored value untouched.
	loaded, err := adapter.Load(ctx, "rooms")
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), loaded)
}
