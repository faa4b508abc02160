package usecase

import (
	"context"
	"time"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockReservationRepository is a mock implementation of ReservationRepository
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) CreateHold(ctx context.Context, reservation *entity.Reservation, assignment *entity.RoomAssignment) error {
	args := m.Called(ctx, reservation, assignment)
	return args.Error(0)
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id uint) (*entity.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindAssignment(ctx context.Context, reservationID uint) (*entity.RoomAssignment, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RoomAssignment), args.Error(1)
}

func (m *MockReservationRepository) FindOverlapping(ctx context.Context, roomID uint, checkin, checkout time.Time, statuses []entity.ReservationStatus) ([]*entity.Reservation, error) {
	args := m.Called(ctx, roomID, checkin, checkout, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Confirm(ctx context.Context, reservation *entity.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) CheckIn(ctx context.Context, reservationID, roomID uint, actualCheckin time.Time, guestList string) error {
	args := m.Called(ctx, reservationID, roomID, actualCheckin, guestList)
	return args.Error(0)
}

func (m *MockReservationRepository) CheckOut(ctx context.Context, reservationID uint, actualCheckout time.Time) error {
	args := m.Called(ctx, reservationID, actualCheckout)
	return args.Error(0)
}

func (m *MockReservationRepository) Cancel(ctx context.Context, reservationID uint) error {
	args := m.Called(ctx, reservationID)
	return args.Error(0)
}

func (m *MockReservationRepository) DeleteIfPending(ctx context.Context, reservationID uint) (bool, error) {
	args := m.Called(ctx, reservationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) FindExpiredPending(ctx context.Context, cutoff time.Time) ([]*entity.Reservation, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Reservation), args.Error(1)
}

// MockRoomRepository is a mock implementation of RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) FindRoom(ctx context.Context, id uint) (*entity.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Room), args.Error(1)
}

func (m *MockRoomRepository) FindRoomType(ctx context.Context, id uint) (*entity.RoomType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RoomType), args.Error(1)
}

func (m *MockRoomRepository) FindRoomsByType(ctx context.Context, roomTypeID uint) ([]*entity.Room, error) {
	args := m.Called(ctx, roomTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Room), args.Error(1)
}

func (m *MockRoomRepository) FindActiveRooms(ctx context.Context) ([]*entity.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Room), args.Error(1)
}

func (m *MockRoomRepository) UpdateRoomStatus(ctx context.Context, roomID uint, status entity.RoomStatus) error {
	args := m.Called(ctx, roomID, status)
	return args.Error(0)
}

// MockRateRuleRepository is a mock implementation of RateRuleRepository
type MockRateRuleRepository struct {
	mock.Mock
}

func (m *MockRateRuleRepository) Create(ctx context.Context, rule *entity.RateAdjustmentRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRateRuleRepository) Update(ctx context.Context, rule *entity.RateAdjustmentRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRateRuleRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRateRuleRepository) FindByID(ctx context.Context, id uint) (*entity.RateAdjustmentRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RateAdjustmentRule), args.Error(1)
}

func (m *MockRateRuleRepository) FindAll(ctx context.Context) ([]*entity.RateAdjustmentRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.RateAdjustmentRule), args.Error(1)
}

func (m *MockRateRuleRepository) FindIntersecting(ctx context.Context, start, end time.Time, excludeID uint) ([]*entity.RateAdjustmentRule, error) {
	args := m.Called(ctx, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.RateAdjustmentRule), args.Error(1)
}

func (m *MockRateRuleRepository) FindCovering(ctx context.Context, date time.Time) (*entity.RateAdjustmentRule, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RateAdjustmentRule), args.Error(1)
}

// MockServiceUsageRepository is a mock implementation of ServiceUsageRepository
type MockServiceUsageRepository struct {
	mock.Mock
}

func (m *MockServiceUsageRepository) FindByReservation(ctx context.Context, reservationID uint) ([]*entity.ServiceUsage, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ServiceUsage), args.Error(1)
}

func (m *MockServiceUsageRepository) CancelOpen(ctx context.Context, reservationID uint) (int64, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).(int64), args.Error(1)
}

// MockBookingEventRepository is a mock implementation of BookingEventRepository
type MockBookingEventRepository struct {
	mock.Mock
}

func (m *MockBookingEventRepository) Save(ctx context.Context, event *entity.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockBookingEventRepository) FindByReservation(ctx context.Context, reservationID uint) ([]*entity.BookingEvent, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BookingEvent), args.Error(1)
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) SendConfirmation(ctx context.Context, notice *repository.ConfirmationNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

// MockRoomLocker is a mock implementation of RoomLocker
type MockRoomLocker struct {
	mock.Mock
}

func (m *MockRoomLocker) Acquire(ctx context.Context, roomID uint, ttl time.Duration) (string, error) {
	args := m.Called(ctx, roomID, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockRoomLocker) Release(ctx context.Context, roomID uint, token string) error {
	args := m.Called(ctx, roomID, token)
	return args.Error(0)
}
