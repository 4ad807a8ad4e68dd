package grading

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	percentageOffset = decimal.RequireFromString("0.75")
	percentageScale  = decimal.NewFromInt(10)
)

// Places is the number of decimal places every reported figure is rounded to.
const Places = 2

// Round rounds d to two places, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Percentage converts an average to its percentage equivalent:
// (average - 0.75) * 10, rounded to two places.
func Percentage(average decimal.Decimal) decimal.Decimal {
	return Round(average.Sub(percentageOffset).Mul(percentageScale))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
