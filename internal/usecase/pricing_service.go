package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/internal/domain/repository"
	"roomcast-service/pkg/logger"

	"github.com/karlseguin/ccache/v3"
)

const basePriceCacheTTL = 15 * time.Minute

// PricingService is the rate calendar: it computes nightly and total prices
// for a base rate over a date range and administers the rate adjustment
// rules. Room-type base prices are cached since every quote needs them.
type PricingService struct {
	ruleRepo   repository.RateRuleRepository
	roomRepo   repository.RoomRepository
	priceCache *ccache.Cache[float64]
	logger     logger.Logger
}

// NewPricingService creates a new pricing service
func NewPricingService(
	ruleRepo repository.RateRuleRepository,
	roomRepo repository.RoomRepository,
	logger logger.Logger,
) *PricingService {
	return &PricingService{
		ruleRepo:   ruleRepo,
		roomRepo:   roomRepo,
		priceCache: ccache.New(ccache.Configure[float64]()),
		logger:     logger,
	}
}

// BasePrice returns the base nightly price for a room type, served from the
// cache when fresh.
func (s *PricingService) BasePrice(ctx context.Context, roomTypeID uint) (float64, error) {
	key := strconv.FormatUint(uint64(roomTypeID), 10)
	if item := s.priceCache.Get(key); item != nil && !item.Expired() {
		return item.Value(), nil
	}

	roomType, err := s.roomRepo.FindRoomType(ctx, roomTypeID)
	if err != nil {
		return 0, fmt.Errorf("load room type %d: %w", roomTypeID, err)
	}

	s.priceCache.Set(key, roomType.BasePrice, basePriceCacheTTL)
	return roomType.BasePrice, nil
}

// DailyRate returns the nightly price for one calendar date, applying the at
// most one rule whose range contains it.
func (s *PricingService) DailyRate(ctx context.Context, base float64, date time.Time) (float64, error) {
	rule, err := s.ruleRepo.FindCovering(ctx, entity.DateOf(date))
	if err != nil {
		return 0, err
	}
	if rule == nil {
		return base, nil
	}
	return rule.Apply(base), nil
}

// TotalPrice sums the nightly price over each calendar date in
// [checkin, checkout). A same-day stay bills one night.
func (s *PricingService) TotalPrice(ctx context.Context, base float64, checkin, checkout time.Time) (float64, error) {
	rules, err := s.ruleRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, night := range stayNights(checkin, checkout) {
		total += applyRules(rules, base, night)
	}
	return total, nil
}

// TotalAdjustment sums only the incremental surcharge over the stay, for
// reporting breakdowns.
func (s *PricingService) TotalAdjustment(ctx context.Context, base float64, checkin, checkout time.Time) (float64, error) {
	rules, err := s.ruleRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	adjustment := 0.0
	for _, night := range stayNights(checkin, checkout) {
		adjustment += applyRules(rules, base, night) - base
	}
	return adjustment, nil
}

// stayNights expands [checkin, checkout) into the billed calendar dates,
// floored at one night.
func stayNights(checkin, checkout time.Time) []time.Time {
	start := entity.DateOf(checkin)
	nights := entity.DaysBetween(start, entity.DateOf(checkout))
	if nights < 1 {
		nights = 1
	}

	dates := make([]time.Time, 0, nights)
	for i := 0; i < nights; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	return dates
}

func applyRules(rules []*entity.RateAdjustmentRule, base float64, date time.Time) float64 {
	for _, rule := range rules {
		if rule.Contains(date) {
			return rule.Apply(base)
		}
	}
	return base
}

// CreateRule inserts a new rate adjustment rule after checking it does not
// intersect any existing rule.
func (s *PricingService) CreateRule(ctx context.Context, rule *entity.RateAdjustmentRule) error {
	return s.saveRule(ctx, rule, false)
}

// UpdateRule replaces an existing rule, excluding itself from the
// intersection check.
func (s *PricingService) UpdateRule(ctx context.Context, rule *entity.RateAdjustmentRule) error {
	if _, err := s.ruleRepo.FindByID(ctx, rule.ID); err != nil {
		return err
	}
	return s.saveRule(ctx, rule, true)
}

func (s *PricingService) saveRule(ctx context.Context, rule *entity.RateAdjustmentRule, update bool) error {
	if entity.DateOf(rule.StartDate).After(entity.DateOf(rule.EndDate)) {
		return entity.ErrInvalidRange
	}

	excludeID := uint(0)
	if update {
		excludeID = rule.ID
	}
	intersecting, err := s.ruleRepo.FindIntersecting(ctx, rule.StartDate, rule.EndDate, excludeID)
	if err != nil {
		return err
	}
	if len(intersecting) > 0 {
		return fmt.Errorf("%w: conflicts with rule %d", entity.ErrOverlappingRule, intersecting[0].ID)
	}

	if update {
		return s.ruleRepo.Update(ctx, rule)
	}
	return s.ruleRepo.Create(ctx, rule)
}

// DeleteRule removes a rule.
func (s *PricingService) DeleteRule(ctx context.Context, id uint) error {
	if _, err := s.ruleRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.ruleRepo.Delete(ctx, id)
}

// ListRules returns all rules.
func (s *PricingService) ListRules(ctx context.Context) ([]*entity.RateAdjustmentRule, error) {
	return s.ruleRepo.FindAll(ctx)
}
