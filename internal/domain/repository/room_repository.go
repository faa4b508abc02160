package repository

import (
	"context"

	"roomcast-service/internal/domain/entity"
)

// RoomRepository is the read/write surface over the inventory collaborator's
// rooms and room types. Only the coarse status is written from here.
type RoomRepository interface {
	FindRoom(ctx context.Context, id uint) (*entity.Room, error)
	FindRoomType(ctx context.Context, id uint) (*entity.RoomType, error)
	FindRoomsByType(ctx context.Context, roomTypeID uint) ([]*entity.Room, error)
	FindActiveRooms(ctx context.Context) ([]*entity.Room, error)
	UpdateRoomStatus(ctx context.Context, roomID uint, status entity.RoomStatus) error
}
