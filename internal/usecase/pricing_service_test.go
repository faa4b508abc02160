package usecase

import (
	"context"
	"testing"
	"time"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPricing() (*PricingService, *MockRateRuleRepository, *MockRoomRepository) {
	ruleRepo := new(MockRateRuleRepository)
	roomRepo := new(MockRoomRepository)
	pricing := NewPricingService(ruleRepo, roomRepo, logger.NewNopLogger())
	return pricing, ruleRepo, roomRepo
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTotalPrice_NoRules(t *testing.T) {
	pricing, ruleRepo, _ := setupPricing()
	ruleRepo.On("FindAll", mock.Anything).Return([]*entity.RateAdjustmentRule{}, nil)

	// 3 nights at base price
	total, err := pricing.TotalPrice(context.Background(), 1_000_000, date(2025, 1, 1), date(2025, 1, 4))
	require.NoError(t, err)
	assert.Equal(t, 3_000_000.0, total)
}

func TestTotalPrice_OneNightEqualsBase(t *testing.T) {
	pricing, ruleRepo, _ := setupPricing()
	ruleRepo.On("FindAll", mock.Anything).Return([]*entity.RateAdjustmentRule{}, nil)

	total, err := pricing.TotalPrice(context.Background(), 500_000, date(2025, 3, 10), date(2025, 3, 11))
	require.NoError(t, err)
	assert.Equal(t, 500_000.0, total)
}

func TestTotalPrice_SameDayStayBillsOneNight(t *testing.T) {
	pricing, ruleRepo, _ := setupPricing()
	ruleRepo.On("FindAll", mock.Anything).Return([]*entity.RateAdjustmentRule{}, nil)

	total, err := pricing.TotalPrice(context.Background(), 500_000, date(2025, 3, 10), date(2025, 3, 10))
	require.NoError(t, err)
	assert.Equal(t, 500_000.0, total)
}

func TestTotalPrice_PercentageRuleOnSomeNights(t *testing.T) {
	pricing, ruleRepo, _ := setupPricing()
	rules := []*entity.RateAdjustmentRule{{
		ID:        1,
		StartDate: date(2025, 1, 2),
		EndDate:   date(2025, 1, 3),
		Kind:      entity.AdjustmentPercentage,
		Value:     50,
	}}
	ruleRepo.On("FindAll", mock.Anything).Return(rules, nil)

	// Jan 1 at base, Jan 2 and Jan 3 at +50%
	total, err := pricing.TotalPrice(context.Background(), 1_000_000, date(2025, 1, 1), date(2025, 1, 4))
	require.NoError(t, err)
	assert.Equal(t, 4_000_000.0, total)
}

func TestTotalPrice_FixedAmountRule(t *testing.T) {
	pricing, ruleRepo, _ := setupPricing()
	rules := []*entity.RateAdjustmentRule{{
		ID:        1,
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 30),
		Kind:      entity.AdjustmentFixedAmount,
		Value:     200_000,
	}}
	ruleRepo.On("FindAll", mock.Anything).Return(rules, nil)

	total, err := pricing.TotalPrice(context.Background(), 1_000_000, date(2025, 6, 10), date(2025, 6, 12))
	require.NoError(t, err)
	assert.Equal(t, 2_400_000.0, total)
}

func TestTotalAdjustment_OnlyCountsSurcharge(t *testing.T) {
	pricing, ruleRepo, _ := setupPricing()
	rules := []*entity.RateAdjustmentRule{{
		ID:        1,
		StartDate: date(2025, 1, 2),
		EndDate:   date(2025, 1, 2),
		Kind:      entity.AdjustmentPercentage,
		Value:     10,
	}}
	ruleRepo.On("FindAll", mock.Anything).Return(rules, nil)

	adjustment, err := pricing.TotalAdjustment(context.Background(), 1_000_000, date(2025, 1, 1), date(2025, 1, 4))
	require.NoError(t, err)
	assert.Equal(t, 100_000.0, adjustment)
}

func TestDailyRate_NoCoveringRule(t *testing.T) {
	pricing, ruleRepo, _ := setupPricing()
	ruleRepo.On("FindCovering", mock.Anything, date(2025, 2, 1)).Return(nil, nil)

	rate, err := pricing.DailyRate(context.Background(), 750_000, date(2025, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, 750_000.0, rate)
}

func TestCreateRule_RejectsOverlap(t *testing.T) {
	pricing, ruleRepo, _ := setupPricing()
	existing := []*entity.RateAdjustmentRule{{
		ID:        7,
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 10),
	}}
	ruleRepo.On("FindIntersecting", mock.Anything, date(2025, 6, 5), date(2025, 6, 20), uint(0)).
		Return(existing, nil)

	err := pricing.CreateRule(context.Background(), &entity.RateAdjustmentRule{
		StartDate: date(2025, 6, 5),
		EndDate:   date(2025, 6, 20),
		Kind:      entity.AdjustmentPercentage,
		Value:     20,
	})
	assert.ErrorIs(t, err, entity.ErrOverlappingRule)
	ruleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRule_RejectsInvertedRange(t *testing.T) {
	pricing, _, _ := setupPricing()

	err := pricing.CreateRule(context.Background(), &entity.RateAdjustmentRule{
		StartDate: date(2025, 6, 10),
		EndDate:   date(2025, 6, 1),
	})
	assert.ErrorIs(t, err, entity.ErrInvalidRange)
}

func TestUpdateRule_ExcludesItselfFromOverlapCheck(t *testing.T) {
	pricing, ruleRepo, _ := setupPricing()
	rule := &entity.RateAdjustmentRule{
		ID:        7,
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 12),
		Kind:      entity.AdjustmentPercentage,
		Value:     25,
	}
	ruleRepo.On("FindByID", mock.Anything, uint(7)).Return(rule, nil)
	ruleRepo.On("FindIntersecting", mock.Anything, rule.StartDate, rule.EndDate, uint(7)).
		Return([]*entity.RateAdjustmentRule{}, nil)
	ruleRepo.On("Update", mock.Anything, rule).Return(nil)

	err := pricing.UpdateRule(context.Background(), rule)
	require.NoError(t, err)
	ruleRepo.AssertExpectations(t)
}

func TestBasePrice_CachesRoomType(t *testing.T) {
	pricing, _, roomRepo := setupPricing()
	roomRepo.On("FindRoomType", mock.Anything, uint(3)).
		Return(&entity.RoomType{ID: 3, BasePrice: 900_000}, nil).Once()

	first, err := pricing.BasePrice(context.Background(), 3)
	require.NoError(t, err)
	second, err := pricing.BasePrice(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 900_000.0, first)
	assert.Equal(t, 900_000.0, second)
	roomRepo.AssertNumberOfCalls(t, "FindRoomType", 1)
}
