package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisRegistry(t *testing.T, ttl time.Duration) (*RedisRefreshRegistry, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisRefreshRegistry(client, "test", ttl), mr
}

func TestRedisRegistryStoreValidateRevoke(t *testing.T) {
	t.Parallel()

	reg, _ := newRedisRegistry(t, time.Hour)
	ctx := context.Background()

	ok, err := reg.Validate(ctx, "user-1", "token-a")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, reg.Store(ctx, "user-1", "token-a"))

	ok, err = reg.Validate(ctx, "user-1", "token-a")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = reg.Validate(ctx, "user-1", "token-b")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, reg.Revoke(ctx, "user-1"))

	ok, err = reg.Validate(ctx, "user-1", "token-a")
	require.NoError(t, err)
	require.False(t, ok)

	// Revoking again is fine.
	require.NoError(t, reg.Revoke(ctx, "user-1"))
}

func TestRedisRegistryReplaceSemantics(t *testing.T) {
	t.Parallel()

	reg, _ := newRedisRegistry(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, reg.Store(ctx, "user-1", "token-a"))
	require.NoError(t, reg.Store(ctx, "user-1", "token-b"))

	ok, err := reg.Validate(ctx, "user-1", "token-a")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = reg.Validate(ctx, "user-1", "token-b")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRedisRegistryEntriesExpireWithTokens(t *testing.T) {
	t.Parallel()

	reg, mr := newRedisRegistry(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, reg.Store(ctx, "user-1", "token-a"))

	mr.FastForward(2 * time.Minute)

	ok, err := reg.Validate(ctx, "user-1", "token-a")
	require.NoError(t, err)
	require.False(t, ok, "entry must expire alongside the token it tracks")
}
