package utils

import "math"

// RoundMoney rounds an amount to the nearest whole currency unit. Prices in
// this system are whole-unit amounts (VND-style), so there are no cents to
// keep.
func RoundMoney(amount float64) float64 {
	return math.Round(amount)
}

// ClampNonNegative floors an amount at zero.
func ClampNonNegative(amount float64) float64 {
	if amount < 0 {
		return 0
	}
	return amount
}
