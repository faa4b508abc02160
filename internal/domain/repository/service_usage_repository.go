package repository

import (
	"context"

	"roomcast-service/internal/domain/entity"
)

// ServiceUsageRepository is the surface over the service-consumption ledger.
type ServiceUsageRepository interface {
	FindByReservation(ctx context.Context, reservationID uint) ([]*entity.ServiceUsage, error)

	// CancelOpen moves all still Pending/Assigned requests on the
	// reservation to Cancelled and returns how many were cancelled.
	CancelOpen(ctx context.Context, reservationID uint) (int64, error)
}
