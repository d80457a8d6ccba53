package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlacklist(t *testing.T) (*Blacklist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewBlacklist(rdb), mr
}

func TestRevoke(t *testing.T) {
	b, _ := newBlacklist(t)
	ctx := context.Background()

	revoked, err := b.IsRevoked(ctx, "token")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, b.Revoke(ctx, "token", time.Hour))

	revoked, err = b.IsRevoked(ctx, "token")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = b.IsRevoked(ctx, "other")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevoke_ExpiresWithToken(t *testing.T) {
	b, mr := newBlacklist(t)
	ctx := context.Background()

	require.NoError(t, b.Revoke(ctx, "token", time.Minute))
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"token"))

	mr.FastForward(2 * time.Minute)

	revoked, err := b.IsRevoked(ctx, "token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevoke_AlreadyExpired(t *testing.T) {
	b, mr := newBlacklist(t)

	require.NoError(t, b.Revoke(context.Background(), "token", 0))
	assert.False(t, mr.Exists(keyPrefix+"token"))
}

func TestIsRevoked_RedisDown(t *testing.T) {
	b, mr := newBlacklist(t)
	mr.Close()

	_, err := b.IsRevoked(context.Background(), "token")
	assert.Error(t, err)
}
