package repository

import (
	"context"

	"roomcast-service/internal/domain/entity"
)

// BookingEventRepository archives financial events for the invoice
// collaborator. Failures here must never roll back the state change that
// produced the event.
type BookingEventRepository interface {
	Save(ctx context.Context, event *entity.BookingEvent) error
	FindByReservation(ctx context.Context, reservationID uint) ([]*entity.BookingEvent, error)
}
