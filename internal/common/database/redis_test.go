package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"gear9-chatbot/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewRedis_RequiresAddress(t *testing.T) {
	_, err := NewRedis(config.RedisConfig{})
	assert.Error(t, err)
}

func TestRedisClient_RoundTrip(t *testing.T) {
	client, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Ping(ctx))

	_, found, err := client.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, client.Set(ctx, "k", "v", time.Minute))
	val, found, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", val)

	mr.FastForward(2 * time.Minute)
	_, found, err = client.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, client.Set(ctx, "k2", "v2", 0))
	require.NoError(t, client.Del(ctx, "k2"))
	assert.False(t, mr.Exists("k2"))
}

func TestRedisClient_ErrorsSurface(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := NewRedisFromClient(db)

	mock.ExpectGet("k").SetErr(errors.New("connection reset"))
	mock.ExpectPing().SetErr(errors.New("down"))

	_, found, err := client.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, found)
	assert.ErrorContains(t, client.Ping(context.Background()), "redis ping failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
