package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/phrazzld/moments-api/internal/platform/logger"
	"github.com/phrazzld/moments-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, path string) *RecordStore {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	s, err := Open(context.Background(), path, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t, filepath.Join(t.TempDir(), "moments.db"))

	_, err := s.Load(ctx, store.KeyMoments)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	require.NoError(t, s.Save(ctx, store.KeyMoments, []byte(`[{"a":1}]`)))
	require.NoError(t, s.Save(ctx, store.KeyMoments, []byte(`[]`)))

	data, err := s.Load(ctx, store.KeyMoments)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	assert.ErrorIs(t, s.Save(ctx, "Bad Key", nil), store.ErrInvalidKey)
}

func TestRecordStoreSurvivesReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "moments.db")

	first, err := Open(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, store.KeySettings, []byte(`{"theme":"dark"}`)))
	require.NoError(t, first.Close())

	second := openTestStore(t, path)
	data, err := second.Load(ctx, store.KeySettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(data))
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), " ", nil)
	assert.Error(t, err)
}

func TestGatewayOverSQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t, filepath.Join(t.TempDir(), "moments.db"))

	g, err := store.NewGateway(s, nil)
	require.NoError(t, err)

	assert.Empty(t, g.LoadMoments(ctx))
	require.NoError(t, s.Save(ctx, store.KeyMoments, []byte(`garbage`)))
	assert.Empty(t, g.LoadMoments(ctx))
}
