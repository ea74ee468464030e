// Package finmath holds the small decimal helpers shared by the projection
// engine: percent conversion, monthly compounding and working precision.
package finmath

import (
	"math"

	"github.com/shopspring/decimal"
)

// Places is the working precision applied to every computed flow amount.
const Places = 6

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)
)

// Round rounds an amount to the working precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// FromPercent converts a percentage (5 for 5%) to a fraction (0.05).
func FromPercent(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// Monthly converts an annual amount to a monthly amount.
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return Round(annual.Div(twelve))
}

// MonthlyRate returns the monthly compounding rate (1+a)^(1/12) - 1 for an
// annual percentage rate a. Rates at or below -100% are floored at -1.
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	a := annualPercent.InexactFloat64() / 100
	if a <= -1 {
		return one.Neg()
	}
	return decimal.NewFromFloat(math.Pow(1+a, 1.0/12) - 1)
}

// Growth returns balance*rate for a positive balance and zero otherwise.
func Growth(balance, rate decimal.Decimal) decimal.Decimal {
	if !balance.IsPositive() {
		return decimal.Zero
	}
	return Round(balance.Mul(rate))
}

// NonNegative clamps d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Haircut returns the amount removed from balance by a percentage loss.
func Haircut(balance, percent decimal.Decimal) decimal.Decimal {
	return Round(balance.Mul(FromPercent(percent)))
}
