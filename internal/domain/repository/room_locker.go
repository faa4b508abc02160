package repository

import (
	"context"
	"time"
)

// RoomLocker serializes hold attempts on a single room. The lock is acquired
// before the overlap check and released after the insert commits, closing the
// check-then-act window between concurrent holds.
type RoomLocker interface {
	// Acquire takes the per-room lock and returns an opaque token for
	// release. Returns entity.ErrRoomUnavailable when another hold is in
	// flight for the room.
	Acquire(ctx context.Context, roomID uint, ttl time.Duration) (string, error)

	// Release frees the lock only if token still owns it.
	Release(ctx context.Context, roomID uint, token string) error
}
