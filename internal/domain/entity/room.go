package entity

import (
	"strings"
	"time"
)

// RoomStatus is the coarse operational status shown at the front desk. It is
// advisory only; booking conflicts are decided by the overlap index over room
// assignments, never by this field.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomCleaning    RoomStatus = "CLEANING"
	RoomUnavailable RoomStatus = "UNAVAILABLE"
)

// NormalizeRoomStatus maps raw status strings onto the closed enum.
func NormalizeRoomStatus(raw string) RoomStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "AVAILABLE":
		return RoomAvailable
	case "OCCUPIED":
		return RoomOccupied
	case "CLEANING":
		return RoomCleaning
	default:
		return RoomUnavailable
	}
}

// Ready reports whether a guest can be checked in to the room right now.
func (s RoomStatus) Ready() bool {
	return s == RoomAvailable || s == RoomCleaning
}

// Room is a physical room, owned by inventory management and only read here
// apart from the coarse status updates on check-in/out.
type Room struct {
	ID         uint
	Number     string
	RoomTypeID uint
	Status     RoomStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RoomType carries the base nightly price the rate calendar works from.
type RoomType struct {
	ID          uint
	Name        string
	BasePrice   float64
	MaxAdults   int
	MaxChildren int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fits reports whether the party fits the room type's capacity.
func (t *RoomType) Fits(adults, children int) bool {
	return adults <= t.MaxAdults && children <= t.MaxChildren
}
