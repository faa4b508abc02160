package repository

import (
	"context"
	"testing"
	"time"

	"roomcast-service/internal/domain/entity"
	domainrepo "roomcast-service/internal/domain/repository"
	"roomcast-service/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLocker(t *testing.T) (domainrepo.RoomLocker, *miniredis.Miniredis) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRoomLocker(client, logger.NewNopLogger()), server
}

func TestLocker_AcquireAndRelease(t *testing.T) {
	locker, server := setupLocker(t)

	token, err := locker.Acquire(context.Background(), 7, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, server.Exists("roomcast:hold-lock:7"))

	require.NoError(t, locker.Release(context.Background(), 7, token))
	assert.False(t, server.Exists("roomcast:hold-lock:7"))
}

func TestLocker_HeldLockRejectsSecondHold(t *testing.T) {
	locker, _ := setupLocker(t)

	_, err := locker.Acquire(context.Background(), 7, time.Minute)
	require.NoError(t, err)

	_, err = locker.Acquire(context.Background(), 7, time.Minute)
	assert.ErrorIs(t, err, entity.ErrRoomUnavailable)
}

func TestLocker_RetriesWhileLockInFlight(t *testing.T) {
	locker, server := setupLocker(t)

	key := "roomcast:hold-lock:7"
	require.NoError(t, server.Set(key, "competing"))
	go func() {
		time.Sleep(60 * time.Millisecond)
		server.Del(key)
	}()

	// The competing hold clears inside the retry window, so no false
	// conflict is reported.
	token, err := locker.Acquire(context.Background(), 7, time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLocker_DifferentRoomsDoNotContend(t *testing.T) {
	locker, _ := setupLocker(t)

	_, err := locker.Acquire(context.Background(), 7, time.Minute)
	require.NoError(t, err)
	_, err = locker.Acquire(context.Background(), 8, time.Minute)
	require.NoError(t, err)
}

func TestLocker_ReleaseWithStaleTokenKeepsLock(t *testing.T) {
	locker, server := setupLocker(t)

	token, err := locker.Acquire(context.Background(), 7, time.Minute)
	require.NoError(t, err)

	require.NoError(t, locker.Release(context.Background(), 7, "stale-token"))
	assert.True(t, server.Exists("roomcast:hold-lock:7"))

	require.NoError(t, locker.Release(context.Background(), 7, token))
	assert.False(t, server.Exists("roomcast:hold-lock:7"))
}
