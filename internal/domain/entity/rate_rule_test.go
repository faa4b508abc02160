package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRuleContains_InclusiveBounds(t *testing.T) {
	rule := &RateAdjustmentRule{StartDate: day(2025, 6, 1), EndDate: day(2025, 6, 10)}

	assert.True(t, rule.Contains(day(2025, 6, 1)))
	assert.True(t, rule.Contains(day(2025, 6, 10)))
	assert.True(t, rule.Contains(time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, rule.Contains(day(2025, 5, 31)))
	assert.False(t, rule.Contains(day(2025, 6, 11)))
}

func TestRuleApply(t *testing.T) {
	percentage := &RateAdjustmentRule{Kind: AdjustmentPercentage, Value: 50}
	assert.Equal(t, 1_500_000.0, percentage.Apply(1_000_000))

	fixed := &RateAdjustmentRule{Kind: AdjustmentFixedAmount, Value: 200_000}
	assert.Equal(t, 1_200_000.0, fixed.Apply(1_000_000))

	unknown := &RateAdjustmentRule{Kind: RateAdjustmentKind("OTHER"), Value: 50}
	assert.Equal(t, 1_000_000.0, unknown.Apply(1_000_000))
}

func TestRuleIntersects(t *testing.T) {
	rule := &RateAdjustmentRule{StartDate: day(2025, 6, 1), EndDate: day(2025, 6, 10)}

	assert.True(t, rule.Intersects(day(2025, 6, 5), day(2025, 6, 20)))
	assert.True(t, rule.Intersects(day(2025, 6, 10), day(2025, 6, 30)), "shared boundary day intersects")
	assert.True(t, rule.Intersects(day(2025, 5, 1), day(2025, 6, 1)))
	assert.False(t, rule.Intersects(day(2025, 6, 11), day(2025, 6, 30)))
	assert.False(t, rule.Intersects(day(2025, 5, 1), day(2025, 5, 31)))
}

func TestNormalizeServiceUsageStatus(t *testing.T) {
	assert.Equal(t, ServiceInProgress, NormalizeServiceUsageStatus("in-progress"))
	assert.Equal(t, ServiceCancelled, NormalizeServiceUsageStatus("canceled"))
	// Unknown values pass through for the caller to reject rather than being
	// written off as cancelled.
	assert.Equal(t, ServiceUsageStatus("COMPED"), NormalizeServiceUsageStatus("comped"))
	assert.False(t, NormalizeServiceUsageStatus("comped").Billable())
}

func TestServiceUsageBillable(t *testing.T) {
	assert.True(t, ServiceCompleted.Billable())
	assert.True(t, ServiceInProgress.Billable())
	assert.False(t, ServicePending.Billable())
	assert.False(t, ServiceAssigned.Billable())
	assert.False(t, ServiceCancelled.Billable())
}
