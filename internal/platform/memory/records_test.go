package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/moments-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewRecordStore()

	_, err := s.Load(ctx, store.KeyMoments)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	require.NoError(t, s.Save(ctx, store.KeyMoments, []byte(`[]`)))
	data, err := s.Load(ctx, store.KeyMoments)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	data[0] = 'x'
	again, err := s.Load(ctx, store.KeyMoments)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(again), "callers get copies")

	assert.ErrorIs(t, s.Save(ctx, "../escape", nil), store.ErrInvalidKey)

	s.FailSave = errors.New("disk full")
	err = s.Save(ctx, store.KeySettings, []byte(`{}`))
	assert.ErrorIs(t, err, store.ErrSaveFailed)
	var sErr *store.StoreError
	assert.ErrorAs(t, err, &sErr)
	assert.Equal(t, store.KeySettings, sErr.Key)
}
