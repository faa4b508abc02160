package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/internal/domain/repository"
	"roomcast-service/pkg/logger"
	"roomcast-service/pkg/metrics"
	"roomcast-service/pkg/utils"

	"github.com/google/uuid"
)

// BookingService drives the reservation lifecycle: hold, confirm, check-in,
// check-out, cancel and purge.
type BookingService struct {
	reservationRepo repository.ReservationRepository
	roomRepo        repository.RoomRepository
	serviceRepo     repository.ServiceUsageRepository
	eventRepo       repository.BookingEventRepository
	notifier        repository.NotificationRepository
	locker          repository.RoomLocker
	pricing         *PricingService
	settlement      *SettlementCalculator
	metrics         *metrics.Metrics
	clock           utils.Clock
	logger          logger.Logger
	depositRate     float64
	holdLockTTL     time.Duration
}

// NewBookingService creates a new booking service
func NewBookingService(
	reservationRepo repository.ReservationRepository,
	roomRepo repository.RoomRepository,
	serviceRepo repository.ServiceUsageRepository,
	eventRepo repository.BookingEventRepository,
	notifier repository.NotificationRepository,
	locker repository.RoomLocker,
	pricing *PricingService,
	settlement *SettlementCalculator,
	m *metrics.Metrics,
	clock utils.Clock,
	logger logger.Logger,
	depositRate float64,
	holdLockTTL time.Duration,
) *BookingService {
	return &BookingService{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		serviceRepo:     serviceRepo,
		eventRepo:       eventRepo,
		notifier:        notifier,
		locker:          locker,
		pricing:         pricing,
		settlement:      settlement,
		metrics:         m,
		clock:           clock,
		logger:          logger,
		depositRate:     depositRate,
		holdLockTTL:     holdLockTTL,
	}
}

// HoldReservation places a Pending reservation on the room for the half-open
// interval [checkin, checkout). The per-room lock is held across the overlap
// check and the insert so two concurrent holds cannot both pass the check.
func (s *BookingService) HoldReservation(ctx context.Context, customerID, roomID uint, checkin, checkout time.Time, adults, children int) (*entity.Reservation, error) {
	if !checkin.Before(checkout) {
		return nil, entity.ErrInvalidStay
	}
	if adults < 1 || children < 0 {
		return nil, entity.ErrInvalidOccupancy
	}

	room, err := s.roomRepo.FindRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	token, err := s.locker.Acquire(ctx, roomID, s.holdLockTTL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.locker.Release(ctx, roomID, token); err != nil {
			s.logger.Warn("Failed to release room lock", "roomId", roomID, "error", err)
		}
	}()

	now := s.clock.Now()
	reservation := &entity.Reservation{
		Code:       uuid.NewString(),
		CustomerID: customerID,
		RoomTypeID: room.RoomTypeID,
		Checkin:    checkin,
		Checkout:   checkout,
		Adults:     adults,
		Children:   children,
		Status:     entity.StatusPending,
		CreatedAt:  now,
	}
	assignment := &entity.RoomAssignment{
		RoomID:    roomID,
		Status:    entity.AssignmentLocked,
		CreatedAt: now,
	}

	if err := s.reservationRepo.CreateHold(ctx, reservation, assignment); err != nil {
		if errors.Is(err, entity.ErrRoomUnavailable) {
			s.logger.Info("Hold rejected, room occupied", "roomId", roomID, "checkin", checkin, "checkout", checkout)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.HoldsCreated.Inc()
	}
	s.logger.Info("Reservation held", "reservationId", reservation.ID, "code", reservation.Code, "roomId", roomID)
	return reservation, nil
}

// ConfirmReservation fixes the deposit from the rate calendar and moves the
// hold to Confirmed. The deposit is immutable afterwards; re-quoting requires
// a new hold.
func (s *BookingService) ConfirmReservation(ctx context.Context, reservationID uint, contact entity.GuestContact, paymentRef string) (*entity.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status != entity.StatusPending {
		return nil, fmt.Errorf("%w: status is %s", entity.ErrNotPending, reservation.Status)
	}

	basePrice, err := s.pricing.BasePrice(ctx, reservation.RoomTypeID)
	if err != nil {
		return nil, err
	}
	total, err := s.pricing.TotalPrice(ctx, basePrice, reservation.Checkin, reservation.Checkout)
	if err != nil {
		return nil, err
	}

	reservation.Contact = contact
	reservation.PaymentRef = paymentRef
	reservation.Deposit = utils.RoundMoney(total * s.depositRate)

	if err := s.reservationRepo.Confirm(ctx, reservation); err != nil {
		return nil, err
	}

	// Archive the deposit event and notify the guest. Neither may roll back
	// the confirmation.
	s.archiveEvent(ctx, &entity.BookingEvent{
		Type:          entity.EventDepositPaid,
		ReservationID: reservation.ID,
		Code:          reservation.Code,
		Amount:        reservation.Deposit,
		Detail:        map[string]interface{}{"total": total, "paymentRef": paymentRef},
		CreatedAt:     s.clock.Now(),
	})
	s.sendConfirmation(ctx, reservation, total)

	if s.metrics != nil {
		s.metrics.ReservationsConfirmed.Inc()
	}
	s.logger.Info("Reservation confirmed", "reservationId", reservation.ID, "deposit", reservation.Deposit, "total", total)
	return reservation, nil
}

// CheckIn admits the guest, possibly into a different room than the one
// held. The target room must be Available or Cleaning.
func (s *BookingService) CheckIn(ctx context.Context, reservationID, roomID uint, actualCheckin *time.Time, guestList string) error {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if reservation.Status != entity.StatusConfirmed {
		return fmt.Errorf("%w: status is %s", entity.ErrNotConfirmed, reservation.Status)
	}

	room, err := s.roomRepo.FindRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.Status.Ready() {
		return fmt.Errorf("%w: room %s is %s", entity.ErrRoomNotReady, room.Number, room.Status)
	}

	checkinAt := s.clock.Now()
	if actualCheckin != nil {
		checkinAt = *actualCheckin
	}

	if err := s.reservationRepo.CheckIn(ctx, reservationID, roomID, checkinAt, guestList); err != nil {
		return err
	}

	// Coarse room status is advisory display state, not booking truth.
	if err := s.roomRepo.UpdateRoomStatus(ctx, roomID, entity.RoomOccupied); err != nil {
		s.logger.Warn("Failed to mark room occupied", "roomId", roomID, "error", err)
	}

	s.logger.Info("Guest checked in", "reservationId", reservationID, "roomId", roomID, "at", checkinAt)
	return nil
}

// ComputeCheckoutPreview settles the stay without mutating any state, for
// front-desk review before the actual checkout.
func (s *BookingService) ComputeCheckoutPreview(ctx context.Context, reservationID uint, actualCheckout *time.Time) (*entity.CheckoutSettlement, error) {
	settlement, _, err := s.settleStay(ctx, reservationID, nil, 0, actualCheckout)
	return settlement, err
}

// CheckOut settles the stay and, only once the settlement succeeds, moves the
// reservation to CheckedOut, cancels still-open service requests and frees
// the room for cleaning. A failed settlement leaves everything untouched.
func (s *BookingService) CheckOut(ctx context.Context, reservationID uint, finalServices []*entity.ServiceUsage, paymentMethod string, manualPenalty float64, actualCheckout *time.Time) error {
	start := s.clock.Now()

	settlement, assignment, err := s.settleStay(ctx, reservationID, finalServices, manualPenalty, actualCheckout)
	if err != nil {
		return err
	}

	if err := s.reservationRepo.CheckOut(ctx, reservationID, settlement.CheckoutTime); err != nil {
		return err
	}

	// Only after the guarded transition commits; a failed checkout leaves the
	// service requests untouched.
	if cancelled, err := s.serviceRepo.CancelOpen(ctx, reservationID); err != nil {
		s.logger.Warn("Failed to cancel open service requests", "reservationId", reservationID, "error", err)
	} else if cancelled > 0 {
		s.logger.Info("Open service requests cancelled at checkout", "reservationId", reservationID, "count", cancelled)
	}

	if err := s.roomRepo.UpdateRoomStatus(ctx, assignment.RoomID, entity.RoomCleaning); err != nil {
		s.logger.Warn("Failed to mark room for cleaning", "roomId", assignment.RoomID, "error", err)
	}

	s.archiveEvent(ctx, &entity.BookingEvent{
		Type:          entity.EventSettlement,
		ReservationID: reservationID,
		Amount:        settlement.FinalAmount,
		PaymentMethod: paymentMethod,
		Detail: map[string]interface{}{
			"scenario":      string(settlement.Scenario),
			"roomCharge":    settlement.RoomCharge,
			"serviceCharge": settlement.ServiceCharge,
			"lateFee":       settlement.LateFee,
			"deposit":       settlement.Deposit,
			"manualPenalty": settlement.ManualPenalty,
			"hoursLate":     settlement.HoursLate,
			"nights":        settlement.Nights,
		},
		CreatedAt: s.clock.Now(),
	})

	if s.metrics != nil {
		s.metrics.CheckoutsSettled.WithLabelValues(string(settlement.Scenario)).Inc()
		s.metrics.SettlementTime.Observe(s.clock.Now().Sub(start).Seconds())
	}
	s.logger.Info("Guest checked out", "reservationId", reservationID,
		"scenario", settlement.Scenario, "finalAmount", settlement.FinalAmount)
	return nil
}

// settleStay gathers settlement inputs and runs the calculator. The
// reservation must be CheckedIn.
func (s *BookingService) settleStay(ctx context.Context, reservationID uint, extraServices []*entity.ServiceUsage, manualPenalty float64, actualCheckout *time.Time) (*entity.CheckoutSettlement, *entity.RoomAssignment, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	if reservation.Status != entity.StatusCheckedIn {
		return nil, nil, fmt.Errorf("%w: status is %s", entity.ErrNotCheckedIn, reservation.Status)
	}

	assignment, err := s.reservationRepo.FindAssignment(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}

	basePrice, err := s.pricing.BasePrice(ctx, reservation.RoomTypeID)
	if err != nil {
		return nil, nil, err
	}

	services, err := s.serviceRepo.FindByReservation(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	services = append(services, extraServices...)

	checkoutAt := s.clock.Now()
	if actualCheckout != nil {
		checkoutAt = *actualCheckout
	}

	settlement, err := s.settlement.Compute(ctx, reservation, assignment, basePrice, services, manualPenalty, checkoutAt)
	if err != nil {
		return nil, nil, err
	}
	return settlement, assignment, nil
}

// CancelReservation cancels a Pending or Confirmed reservation. A requestor
// id of 0 means a staff-initiated cancel with no ownership check.
func (s *BookingService) CancelReservation(ctx context.Context, reservationID, requestorID uint) error {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if requestorID != 0 && reservation.CustomerID != requestorID {
		return entity.ErrNotOwner
	}
	if !reservation.IsCancellable() {
		return fmt.Errorf("%w: status is %s", entity.ErrInvalidStateForCancellation, reservation.Status)
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID); err != nil {
		return err
	}
	s.logger.Info("Reservation cancelled", "reservationId", reservationID, "requestorId", requestorID)
	return nil
}

// PurgePendingReservation deletes the requestor's own Pending reservation
// outright. A reservation that is already gone or no longer Pending is a
// no-op, tolerating the race with the reaper.
func (s *BookingService) PurgePendingReservation(ctx context.Context, reservationID, requestorID uint) error {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil
		}
		return err
	}
	if reservation.CustomerID != requestorID {
		return entity.ErrNotOwner
	}
	if reservation.Status != entity.StatusPending {
		return nil
	}

	deleted, err := s.reservationRepo.DeleteIfPending(ctx, reservationID)
	if err != nil {
		return err
	}
	if deleted {
		s.logger.Info("Pending reservation purged", "reservationId", reservationID, "requestorId", requestorID)
	}
	return nil
}

func (s *BookingService) archiveEvent(ctx context.Context, event *entity.BookingEvent) {
	if s.eventRepo == nil {
		return
	}
	if err := s.eventRepo.Save(ctx, event); err != nil {
		s.logger.Error("Failed to archive booking event", "type", event.Type, "reservationId", event.ReservationID, "error", err)
	}
}

func (s *BookingService) sendConfirmation(ctx context.Context, reservation *entity.Reservation, total float64) {
	if s.notifier == nil {
		return
	}

	roomNumber := ""
	if assignment, err := s.reservationRepo.FindAssignment(ctx, reservation.ID); err == nil {
		if room, err := s.roomRepo.FindRoom(ctx, assignment.RoomID); err == nil {
			roomNumber = room.Number
		}
	}

	notice := &repository.ConfirmationNotice{
		ReservationID: reservation.ID,
		Code:          reservation.Code,
		Contact:       reservation.Contact,
		RoomNumber:    roomNumber,
		Checkin:       reservation.Checkin.Format("2006-01-02 15:04"),
		Checkout:      reservation.Checkout.Format("2006-01-02 15:04"),
		Total:         total,
		Deposit:       reservation.Deposit,
	}
	if err := s.notifier.SendConfirmation(ctx, notice); err != nil {
		s.logger.Error("Failed to send confirmation notice", "reservationId", reservation.ID, "error", err)
	}
}
