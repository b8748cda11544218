package memory

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRepository_RoundTrip(t *testing.T) {
	repo := NewCacheRepository()
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "key", []byte("value"), time.Minute))

	got, err := repo.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	exists, err := repo.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, "key"))
	got, err = repo.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheRepository_MissAndExpiry(t *testing.T) {
	repo := NewCacheRepository()
	ctx := context.Background()

	// A miss is nil bytes with no error.
	got, err := repo.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Set(ctx, "stale", []byte("old"), -time.Second))
	got, err = repo.Get(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, got)

	exists, err := repo.Exists(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCacheRepository_CloseStopsSweep(t *testing.T) {
	repo := NewCacheRepository()

	closer, ok := repo.(io.Closer)
	require.True(t, ok)
	require.NoError(t, closer.Close())
	require.NoError(t, closer.Close())
}
