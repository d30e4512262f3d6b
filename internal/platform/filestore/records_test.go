package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/moments-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	_, err = s.Load(ctx, store.KeyMoments)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	require.NoError(t, s.Save(ctx, store.KeyMoments, []byte(`[1]`)))
	require.NoError(t, s.Save(ctx, store.KeyMoments, []byte(`[2]`)))

	data, err := s.Load(ctx, store.KeyMoments)
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files are cleaned up")
	assert.Equal(t, "moments.json", entries[0].Name())
}

func TestRecordStoreEmptyFileIsAbsent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), nil, 0o600))

	s, err := New(dir)
	require.NoError(t, err)
	_, err = s.Load(context.Background(), store.KeySettings)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestRecordStoreRejectsTraversal(t *testing.T) {
	t.Parallel()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, s.Save(context.Background(), "../../etc/passwd", []byte("x")), store.ErrInvalidKey)
	_, err = s.Load(context.Background(), "../moments")
	assert.ErrorIs(t, err, store.ErrInvalidKey)
}

func TestRecordStoreCancelledContext(t *testing.T) {
	t.Parallel()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Save(ctx, store.KeyMoments, []byte(`[]`))
	assert.ErrorIs(t, err, store.ErrSaveFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRequiresDir(t *testing.T) {
	t.Parallel()
	_, err := New("")
	assert.Error(t, err)
}
