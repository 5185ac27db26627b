package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/campuslink/core"
	"github.com/trezcool/campuslink/tests"
)

func TestStore(t *testing.T) {
	db := testutil.PrepareDB(t)
	s := New(db)
	ctx := context.Background()
	key := "test:" + t.Name()
	t.Cleanup(func() { _ = s.Delete(ctx, key) })

	_, err := s.Get(ctx, key)
	assert.Equal(t, core.ErrKeyNotFound, err)

	require.NoError(t, s.Set(ctx, key, []byte(`{"a":1}`)))
	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	require.NoError(t, s.Set(ctx, key, []byte(`{"a":2}`)))
	got, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(got))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.Equal(t, core.ErrKeyNotFound, err)
}
