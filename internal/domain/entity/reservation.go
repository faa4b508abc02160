package entity

import (
	"strings"
	"time"
)

// ReservationStatus is the closed set of reservation lifecycle states.
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "PENDING"
	StatusConfirmed  ReservationStatus = "CONFIRMED"
	StatusCheckedIn  ReservationStatus = "CHECKED_IN"
	StatusCheckedOut ReservationStatus = "CHECKED_OUT"
	StatusCancelled  ReservationStatus = "CANCELLED"
)

// NormalizeReservationStatus maps raw status strings (any casing, legacy
// dashed forms) onto the closed enum. Unknown values come back as-is so the
// caller can reject them.
func NormalizeReservationStatus(raw string) ReservationStatus {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	switch s {
	case "PENDING":
		return StatusPending
	case "CONFIRMED":
		return StatusConfirmed
	case "CHECKED_IN", "CHECKEDIN":
		return StatusCheckedIn
	case "CHECKED_OUT", "CHECKEDOUT":
		return StatusCheckedOut
	case "CANCELLED", "CANCELED":
		return StatusCancelled
	}
	return ReservationStatus(s)
}

// ConflictStatuses are the states in which a reservation still occupies its
// room for availability purposes.
func ConflictStatuses() []ReservationStatus {
	return []ReservationStatus{StatusPending, StatusConfirmed, StatusCheckedIn}
}

// GuestContact is the contact snapshot captured at confirmation. It is kept
// independently of any guest account so the reservation stays valid if the
// account changes later.
type GuestContact struct {
	Name  string
	Phone string
	Email string
}

// Reservation represents a booking through its whole lifecycle.
type Reservation struct {
	ID         uint
	Code       string
	CustomerID uint
	RoomTypeID uint
	Contact    GuestContact
	Checkin    time.Time
	Checkout   time.Time
	Adults     int
	Children   int
	Deposit    float64
	PaymentRef string
	Status     ReservationStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Nights returns the number of billable nights for the planned stay. A
// same-day stay is billed as one night.
func (r *Reservation) Nights() int {
	nights := DaysBetween(DateOf(r.Checkin), DateOf(r.Checkout))
	if nights < 1 {
		nights = 1
	}
	return nights
}

// IsCancellable reports whether the reservation may still be cancelled.
func (r *Reservation) IsCancellable() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// RoomAssignmentStatus mirrors the reservation status on the room link.
type RoomAssignmentStatus string

const (
	AssignmentLocked     RoomAssignmentStatus = "LOCKED"
	AssignmentConfirmed  RoomAssignmentStatus = "CONFIRMED"
	AssignmentCheckedIn  RoomAssignmentStatus = "CHECKED_IN"
	AssignmentCheckedOut RoomAssignmentStatus = "CHECKED_OUT"
	AssignmentCancelled  RoomAssignmentStatus = "CANCELLED"
)

// RoomAssignment links a reservation to exactly one physical room and carries
// the actual (as opposed to planned) check-in/check-out timestamps.
type RoomAssignment struct {
	ID             uint
	ReservationID  uint
	RoomID         uint
	Status         RoomAssignmentStatus
	ActualCheckin  *time.Time
	ActualCheckout *time.Time
	GuestList      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DateOf truncates a timestamp to its calendar date in the same location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from a to b. Negative when b is
// before a. The count is calendar arithmetic, not instant subtraction, so a
// DST transition or mixed zone offsets between the two timestamps never skew
// it.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
