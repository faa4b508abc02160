package usecase

import (
	"context"
	"testing"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAvailability() (*AvailabilityService, *MockReservationRepository, *MockRoomRepository) {
	reservationRepo := new(MockReservationRepository)
	roomRepo := new(MockRoomRepository)
	service := NewAvailabilityService(reservationRepo, roomRepo, logger.NewNopLogger())
	return service, reservationRepo, roomRepo
}

func TestIsAvailable_NoConflicts(t *testing.T) {
	service, reservationRepo, _ := setupAvailability()
	checkin, checkout := plannedStay()

	reservationRepo.On("FindOverlapping", mock.Anything, uint(7), checkin, checkout, entity.ConflictStatuses()).
		Return([]*entity.Reservation{}, nil)

	free, err := service.IsAvailable(context.Background(), 7, checkin, checkout)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestIsAvailable_Conflict(t *testing.T) {
	service, reservationRepo, _ := setupAvailability()
	checkin, checkout := plannedStay()

	reservationRepo.On("FindOverlapping", mock.Anything, uint(7), checkin, checkout, entity.ConflictStatuses()).
		Return([]*entity.Reservation{{ID: 1, Status: entity.StatusConfirmed}}, nil)

	free, err := service.IsAvailable(context.Background(), 7, checkin, checkout)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestSearchAvailability_FiltersOccupiedRooms(t *testing.T) {
	service, reservationRepo, roomRepo := setupAvailability()
	checkin, checkout := plannedStay()

	roomRepo.On("FindRoomsByType", mock.Anything, uint(3)).Return([]*entity.Room{
		{ID: 1, RoomTypeID: 3},
		{ID: 2, RoomTypeID: 3},
	}, nil)
	reservationRepo.On("FindOverlapping", mock.Anything, uint(1), checkin, checkout, mock.Anything).
		Return([]*entity.Reservation{{ID: 9}}, nil)
	reservationRepo.On("FindOverlapping", mock.Anything, uint(2), checkin, checkout, mock.Anything).
		Return([]*entity.Reservation{}, nil)

	rooms, err := service.SearchAvailability(context.Background(), 3, 0, 0, checkin, checkout)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, uint(2), rooms[0].ID)
}

func TestSearchAvailability_FiltersByCapacity(t *testing.T) {
	service, reservationRepo, roomRepo := setupAvailability()
	checkin, checkout := plannedStay()

	roomRepo.On("FindActiveRooms", mock.Anything).Return([]*entity.Room{
		{ID: 1, RoomTypeID: 1},
		{ID: 2, RoomTypeID: 2},
	}, nil)
	roomRepo.On("FindRoomType", mock.Anything, uint(1)).
		Return(&entity.RoomType{ID: 1, MaxAdults: 2, MaxChildren: 1}, nil)
	roomRepo.On("FindRoomType", mock.Anything, uint(2)).
		Return(&entity.RoomType{ID: 2, MaxAdults: 4, MaxChildren: 2}, nil)
	reservationRepo.On("FindOverlapping", mock.Anything, uint(2), checkin, checkout, mock.Anything).
		Return([]*entity.Reservation{}, nil)

	rooms, err := service.SearchAvailability(context.Background(), 0, 3, 1, checkin, checkout)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, uint(2), rooms[0].ID)
	// The undersized room type is rejected before any overlap query.
	reservationRepo.AssertNotCalled(t, "FindOverlapping", mock.Anything, uint(1), checkin, checkout, mock.Anything)
}

func TestSearchAvailability_ZeroTypeSearchesAllRooms(t *testing.T) {
	service, reservationRepo, roomRepo := setupAvailability()
	checkin, checkout := plannedStay()

	roomRepo.On("FindActiveRooms", mock.Anything).Return([]*entity.Room{{ID: 4}}, nil)
	reservationRepo.On("FindOverlapping", mock.Anything, uint(4), checkin, checkout, mock.Anything).
		Return([]*entity.Reservation{}, nil)

	rooms, err := service.SearchAvailability(context.Background(), 0, 0, 0, checkin, checkout)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
	roomRepo.AssertNotCalled(t, "FindRoomsByType", mock.Anything, mock.Anything)
}

func TestSearchAvailability_RejectsInvertedStay(t *testing.T) {
	service, _, _ := setupAvailability()
	checkin, checkout := plannedStay()

	_, err := service.SearchAvailability(context.Background(), 3, 2, 0, checkout, checkin)
	assert.ErrorIs(t, err, entity.ErrInvalidStay)
}
