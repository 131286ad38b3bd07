// internal/storage/file_test.go
package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	backend, err := NewFileBackend(path)
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, "key", []byte(`{"a":1}`)))

	got, err := backend.Get(ctx, "key")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))
}

func TestFileBackendMissingKey(t *testing.T) {
	backend, err := NewFileBackend(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileBackendSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	first, err := NewFileBackend(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "key", []byte(`"persisted"`)))
	require.NoError(t, first.Close())

	second, err := NewFileBackend(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, `"persisted"`, string(got))
}

func TestFileBackendRemove(t *testing.T) {
	backend, err := NewFileBackend(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, "key", []byte("1")))
	require.NoError(t, backend.Remove(ctx, "key"))

	_, err = backend.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileBackendClear(t *testing.T) {
	backend, err := NewFileBackend(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, "a", []byte("1")))
	require.NoError(t, backend.Set(ctx, "b", []byte("2")))
	require.NoError(t, backend.Clear(ctx))

	_, err = backend.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}
