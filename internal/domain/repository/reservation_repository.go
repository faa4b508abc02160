package repository

import (
	"context"
	"time"

	"roomcast-service/internal/domain/entity"
)

// ReservationRepository defines storage operations for reservations and their
// room assignments. Multi-record mutations are atomic: the implementation
// wraps them in a single transaction so a crash never leaves the reservation
// and its assignment inconsistent.
type ReservationRepository interface {
	// CreateHold re-runs the overlap check and inserts the reservation plus
	// its assignment inside one transaction. Returns
	// entity.ErrRoomUnavailable when a conflicting reservation exists.
	CreateHold(ctx context.Context, reservation *entity.Reservation, assignment *entity.RoomAssignment) error

	FindByID(ctx context.Context, id uint) (*entity.Reservation, error)
	FindAssignment(ctx context.Context, reservationID uint) (*entity.RoomAssignment, error)

	// FindOverlapping returns reservations on the room whose half-open
	// planned interval overlaps [checkin, checkout) and whose status is in
	// statuses.
	FindOverlapping(ctx context.Context, roomID uint, checkin, checkout time.Time, statuses []entity.ReservationStatus) ([]*entity.Reservation, error)

	// Confirm persists contact, payment ref and deposit and moves both
	// records to Confirmed. The update is guarded on the Pending status;
	// entity.ErrNotPending when the reservation moved on concurrently.
	Confirm(ctx context.Context, reservation *entity.Reservation) error

	// CheckIn stamps the actual check-in, possibly reassigning the room, and
	// moves both records to CheckedIn. Guarded on Confirmed.
	CheckIn(ctx context.Context, reservationID, roomID uint, actualCheckin time.Time, guestList string) error

	// CheckOut stamps the actual checkout and moves both records to
	// CheckedOut. Guarded on CheckedIn.
	CheckOut(ctx context.Context, reservationID uint, actualCheckout time.Time) error

	// Cancel moves both records to Cancelled. Guarded on Pending/Confirmed;
	// entity.ErrInvalidStateForCancellation when past that point.
	Cancel(ctx context.Context, reservationID uint) error

	// DeleteIfPending removes the reservation and its assignment only if the
	// status is still Pending inside the deleting transaction. Returns
	// (false, nil) when the reservation was already gone or had moved on.
	DeleteIfPending(ctx context.Context, reservationID uint) (bool, error)

	// FindExpiredPending returns Pending reservations created before cutoff.
	FindExpiredPending(ctx context.Context, cutoff time.Time) ([]*entity.Reservation, error)
}
