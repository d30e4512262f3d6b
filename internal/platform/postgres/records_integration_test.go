//go:build integration

package postgres_test

import (
	"testing"

	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/store"
	"github.com/phrazzld/moments-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStoreIntegration(t *testing.T) {
	ctx := t.Context()
	s := testdb.OpenRecordStore(t)

	key := "it_records"
	_, err := s.DB().ExecContext(ctx, `DELETE FROM records WHERE key = $1`, key)
	require.NoError(t, err)

	_, err = s.Load(ctx, key)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	require.NoError(t, s.Save(ctx, key, []byte(`{"theme":"light","language":"en"}`)))
	require.NoError(t, s.Save(ctx, key, []byte(`{"theme":"dark","language":"en"}`)))

	data, err := s.Load(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark","language":"en"}`, string(data))

	err = s.Save(ctx, key, []byte(`not json`))
	assert.ErrorIs(t, err, store.ErrSaveFailed)
	assert.ErrorIs(t, err, store.ErrCorruptRecord)
}

func TestRecordStoreIntegration_Gateway(t *testing.T) {
	s := testdb.OpenRecordStore(t)
	_, err := s.DB().ExecContext(t.Context(), `DELETE FROM records WHERE key IN ($1, $2)`, store.KeyMoments, store.KeySettings)
	require.NoError(t, err)

	gw, err := store.NewGateway(s, nil)
	require.NoError(t, err)

	assert.Empty(t, gw.LoadMoments(t.Context()))

	settings := domain.Settings{Theme: domain.ThemeDark, Language: "en"}
	require.NoError(t, gw.SaveSettings(t.Context(), settings))
	assert.Equal(t, settings, gw.LoadSettings(t.Context()))
}
