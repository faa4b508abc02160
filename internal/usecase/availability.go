package usecase

import (
	"context"
	"time"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/internal/domain/repository"
	"roomcast-service/pkg/logger"
)

// AvailabilityService answers room/date overlap questions. Reservation
// intervals are half-open, so a checkout at 12:00 and a check-in at 12:00 on
// the same room never conflict.
type AvailabilityService struct {
	reservationRepo repository.ReservationRepository
	roomRepo        repository.RoomRepository
	logger          logger.Logger
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(
	reservationRepo repository.ReservationRepository,
	roomRepo repository.RoomRepository,
	logger logger.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		logger:          logger,
	}
}

// IsAvailable reports whether the room has no conflicting reservation over
// [checkin, checkout).
func (s *AvailabilityService) IsAvailable(ctx context.Context, roomID uint, checkin, checkout time.Time) (bool, error) {
	conflicts, err := s.Overlapping(ctx, roomID, checkin, checkout)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// Overlapping returns the non-terminated reservations on the room whose
// planned interval overlaps [checkin, checkout).
func (s *AvailabilityService) Overlapping(ctx context.Context, roomID uint, checkin, checkout time.Time) ([]*entity.Reservation, error) {
	return s.reservationRepo.FindOverlapping(ctx, roomID, checkin, checkout, entity.ConflictStatuses())
}

// SearchAvailability lists rooms free over the interval, optionally filtered
// by room type (0 matches every type) and party size (0 adults skips the
// capacity check).
func (s *AvailabilityService) SearchAvailability(ctx context.Context, roomTypeID uint, adults, children int, checkin, checkout time.Time) ([]*entity.Room, error) {
	if !checkin.Before(checkout) {
		return nil, entity.ErrInvalidStay
	}

	var rooms []*entity.Room
	var err error
	if roomTypeID > 0 {
		rooms, err = s.roomRepo.FindRoomsByType(ctx, roomTypeID)
	} else {
		rooms, err = s.roomRepo.FindActiveRooms(ctx)
	}
	if err != nil {
		return nil, err
	}

	roomTypes := map[uint]*entity.RoomType{}
	available := make([]*entity.Room, 0, len(rooms))
	for _, room := range rooms {
		if adults > 0 {
			roomType, ok := roomTypes[room.RoomTypeID]
			if !ok {
				roomType, err = s.roomRepo.FindRoomType(ctx, room.RoomTypeID)
				if err != nil {
					return nil, err
				}
				roomTypes[room.RoomTypeID] = roomType
			}
			if !roomType.Fits(adults, children) {
				continue
			}
		}

		free, err := s.IsAvailable(ctx, room.ID, checkin, checkout)
		if err != nil {
			s.logger.Error("Availability check failed", "roomId", room.ID, "error", err)
			return nil, err
		}
		if free {
			available = append(available, room)
		}
	}
	return available, nil
}
