package entity

import "time"

// RateAdjustmentKind selects how a rule modifies the base nightly price.
type RateAdjustmentKind string

const (
	AdjustmentPercentage  RateAdjustmentKind = "PERCENTAGE"
	AdjustmentFixedAmount RateAdjustmentKind = "FIXED_AMOUNT"
)

// RateAdjustmentRule is a date-bounded surcharge on the base nightly price.
// Active rules never overlap; the range is inclusive on both ends.
type RateAdjustmentRule struct {
	ID        uint
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Kind      RateAdjustmentKind
	Value     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether the rule's inclusive date range covers the given
// calendar date.
func (r *RateAdjustmentRule) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(DateOf(r.StartDate)) && !d.After(DateOf(r.EndDate))
}

// Apply returns the adjusted nightly price for the base rate.
func (r *RateAdjustmentRule) Apply(base float64) float64 {
	switch r.Kind {
	case AdjustmentPercentage:
		return base + base*r.Value/100
	case AdjustmentFixedAmount:
		return base + r.Value
	}
	return base
}

// Intersects reports whether two inclusive date ranges share any day.
func (r *RateAdjustmentRule) Intersects(start, end time.Time) bool {
	return !DateOf(r.StartDate).After(DateOf(end)) && !DateOf(start).After(DateOf(r.EndDate))
}
