package usecase

import (
	"context"
	"fmt"
	"time"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/pkg/logger"
	"roomcast-service/pkg/utils"
)

// SettlementCalculator computes the final checkout invoice for a stay. It is
// pure computation: callers gather the inputs and apply the state transition
// only after a settlement succeeds.
type SettlementCalculator struct {
	pricing      *PricingService
	checkoutHour int
	lateFeeRate  float64
	logger       logger.Logger
}

// NewSettlementCalculator creates a new settlement calculator
func NewSettlementCalculator(pricing *PricingService, checkoutHour int, lateFeeRate float64, logger logger.Logger) *SettlementCalculator {
	return &SettlementCalculator{
		pricing:      pricing,
		checkoutHour: checkoutHour,
		lateFeeRate:  lateFeeRate,
		logger:       logger,
	}
}

// Compute settles a stay under one of three scenarios: early, on-time or
// late, evaluated in that order against the standard checkout-of-day
// boundary.
func (c *SettlementCalculator) Compute(
	ctx context.Context,
	reservation *entity.Reservation,
	assignment *entity.RoomAssignment,
	basePrice float64,
	services []*entity.ServiceUsage,
	manualPenalty float64,
	actualCheckout time.Time,
) (*entity.CheckoutSettlement, error) {
	actualCheckin := reservation.Checkin
	if assignment.ActualCheckin != nil {
		actualCheckin = *assignment.ActualCheckin
	}

	checkinDate := entity.DateOf(actualCheckin)
	actualDate := entity.DateOf(actualCheckout)
	plannedDate := entity.DateOf(reservation.Checkout)

	settlement := &entity.CheckoutSettlement{
		ReservationID: reservation.ID,
		Deposit:       utils.ClampNonNegative(reservation.Deposit),
		ManualPenalty: manualPenalty,
		CheckoutTime:  actualCheckout,
	}

	switch {
	case actualDate.Before(plannedDate):
		// Early departure does not reduce the room charge: the full planned
		// stay is billed.
		plannedTotal, err := c.pricing.TotalPrice(ctx, basePrice, entity.DateOf(reservation.Checkin), plannedDate)
		if err != nil {
			return nil, fmt.Errorf("price planned stay: %w", err)
		}
		usedTotal, err := c.pricing.TotalPrice(ctx, basePrice, checkinDate, actualDate)
		if err != nil {
			return nil, fmt.Errorf("price used stay: %w", err)
		}

		settlement.Scenario = entity.ScenarioEarly
		settlement.RoomCharge = plannedTotal
		settlement.EarlyAdjustment = plannedTotal - usedTotal
		settlement.Nights = reservation.Nights()
		settlement.Description = fmt.Sprintf("Early checkout on %s; full planned stay of %d night(s) charged",
			actualDate.Format("2006-01-02"), settlement.Nights)

	default:
		roomCharge, err := c.pricing.TotalPrice(ctx, basePrice, checkinDate, plannedDate)
		if err != nil {
			return nil, fmt.Errorf("price stay: %w", err)
		}

		hoursLate := c.hoursLate(plannedDate, actualDate, actualCheckout)
		settlement.RoomCharge = roomCharge
		settlement.Nights = nightsBetween(checkinDate, plannedDate)

		if hoursLate > 0 {
			settlement.Scenario = entity.ScenarioLate
			settlement.HoursLate = hoursLate
			settlement.LateFee = utils.RoundMoney(hoursLate * basePrice * c.lateFeeRate)
			settlement.Description = fmt.Sprintf("Late checkout, %.1f hour(s) past the %02d:00 boundary",
				hoursLate, c.checkoutHour)
		} else {
			// Zero or negative lateness (clock skew included) settles as
			// on-time with no fee.
			settlement.Scenario = entity.ScenarioOnTime
			settlement.Description = fmt.Sprintf("On-time checkout, %d night(s)", settlement.Nights)
		}
	}

	for _, service := range services {
		if service.Status.Billable() {
			settlement.ServiceCharge += service.Amount()
		}
	}

	settlement.FinalAmount = utils.RoundMoney(
		settlement.RoomCharge + settlement.ServiceCharge + settlement.LateFee - settlement.Deposit + settlement.ManualPenalty)

	return settlement, nil
}

// hoursLate measures how far past the checkout boundary the guest left.
// Multi-day overstays decompose into whole days plus the hours past the
// boundary on the final day, so day boundaries are never under- or
// over-counted.
func (c *SettlementCalculator) hoursLate(plannedDate, actualDate time.Time, actualCheckout time.Time) float64 {
	boundary := time.Duration(c.checkoutHour) * time.Hour
	if actualDate.After(plannedDate) {
		daysLate := entity.DaysBetween(plannedDate, actualDate)
		finalDayHours := actualCheckout.Sub(actualDate.Add(boundary)).Hours()
		return float64(daysLate*24) + finalDayHours
	}
	return actualCheckout.Sub(plannedDate.Add(boundary)).Hours()
}

func nightsBetween(checkinDate, checkoutDate time.Time) int {
	nights := entity.DaysBetween(checkinDate, checkoutDate)
	if nights < 1 {
		nights = 1
	}
	return nights
}
