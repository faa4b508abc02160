package repository

import (
	"context"

	"roomcast-service/internal/domain/entity"
)

// ConfirmationNotice is the outbound message sent after a reservation is
// confirmed.
type ConfirmationNotice struct {
	ReservationID uint
	Code          string
	Contact       entity.GuestContact
	RoomNumber    string
	Checkin       string
	Checkout      string
	Total         float64
	Deposit       float64
}

// NotificationRepository delivers guest-facing messages through the external
// notification service.
type NotificationRepository interface {
	SendConfirmation(ctx context.Context, notice *ConfirmationNotice) error
}
