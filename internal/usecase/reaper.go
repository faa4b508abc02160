package usecase

import (
	"context"
	"time"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/internal/domain/repository"
	"roomcast-service/pkg/logger"
	"roomcast-service/pkg/metrics"
	"roomcast-service/pkg/utils"
)

// HoldReaper releases rooms held by Pending reservations that were never
// confirmed within the grace window.
type HoldReaper struct {
	reservationRepo repository.ReservationRepository
	eventRepo       repository.BookingEventRepository
	metrics         *metrics.Metrics
	clock           utils.Clock
	logger          logger.Logger
	graceWindow     time.Duration
	interval        time.Duration
}

// NewHoldReaper creates a new hold reaper
func NewHoldReaper(
	reservationRepo repository.ReservationRepository,
	eventRepo repository.BookingEventRepository,
	m *metrics.Metrics,
	clock utils.Clock,
	logger logger.Logger,
	graceWindow, interval time.Duration,
) *HoldReaper {
	return &HoldReaper{
		reservationRepo: reservationRepo,
		eventRepo:       eventRepo,
		metrics:         m,
		clock:           clock,
		logger:          logger,
		graceWindow:     graceWindow,
		interval:        interval,
	}
}

// Run sweeps on a fixed interval until the context is cancelled.
func (r *HoldReaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Hold reaper stopped")
			return
		case <-ticker.C:
			if err := r.Sweep(ctx); err != nil {
				r.logger.Error("Hold sweep failed", "error", err)
			}
		}
	}
}

// Sweep deletes every expired Pending hold. The delete re-checks the status
// inside its own transaction, so a hold confirmed moments earlier is skipped
// rather than destroyed; one failed delete is logged and the sweep continues.
func (r *HoldReaper) Sweep(ctx context.Context) error {
	cutoff := r.clock.Now().Add(-r.graceWindow)
	expired, err := r.reservationRepo.FindExpiredPending(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(expired) == 0 {
		return nil
	}

	r.logger.Info("Sweeping expired holds", "count", len(expired), "cutoff", cutoff)
	for _, reservation := range expired {
		deleted, err := r.reservationRepo.DeleteIfPending(ctx, reservation.ID)
		if err != nil {
			r.logger.Error("Failed to reap hold", "reservationId", reservation.ID, "error", err)
			if r.metrics != nil {
				r.metrics.ErrorsCount.WithLabelValues("reap_hold").Inc()
			}
			continue
		}
		if !deleted {
			// Confirmed (or purged) while the sweep was running.
			continue
		}

		if r.eventRepo != nil {
			event := &entity.BookingEvent{
				Type:          entity.EventHoldReaped,
				ReservationID: reservation.ID,
				Code:          reservation.Code,
				CreatedAt:     r.clock.Now(),
			}
			if err := r.eventRepo.Save(ctx, event); err != nil {
				r.logger.Warn("Failed to archive reap event", "reservationId", reservation.ID, "error", err)
			}
		}
		if r.metrics != nil {
			r.metrics.ExpiredHoldsReaped.Inc()
		}
		r.logger.Info("Expired hold released", "reservationId", reservation.ID, "createdAt", reservation.CreatedAt)
	}
	return nil
}
