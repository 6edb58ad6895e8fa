// Package amortization computes fixed monthly payments for annuity loans.
// All arithmetic is decimal; results are deterministic for identical inputs.
package amortization

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidDuration is returned when the duration truncates to zero or
// fewer whole months.
var ErrInvalidDuration = errors.New("duration must be at least one month")

// rateScale is the number of fractional digits kept for the monthly rate.
const rateScale = 10

var monthsPerYearTimesPercent = decimal.NewFromInt(12 * 100)

// MonthlyPayment returns the fixed monthly payment that fully repays
// principal plus interest over the loan term.
//
// annualRatePercent is a percentage (5 means 5% per year). durationMonths is
// truncated toward zero before use; fractional months do not change the
// payment. A zero rate degrades to a linear schedule (principal / months)
// instead of the annuity formula, whose denominator would vanish.
// The result is rounded half-up to 2 decimal places.
func MonthlyPayment(principal, annualRatePercent, durationMonths decimal.Decimal) (decimal.Decimal, error) {
	months := durationMonths.Truncate(0)
	if months.Sign() <= 0 {
		return decimal.Zero, ErrInvalidDuration
	}

	// r = annual% / (12 * 100), 10 fractional digits, half-up
	monthlyRate := annualRatePercent.DivRound(monthsPerYearTimesPercent, rateScale)

	if monthlyRate.IsZero() {
		return principal.DivRound(months, 2), nil
	}

	// payment = P * r * (1+r)^n / ((1+r)^n - 1)
	compound := decimal.NewFromInt(1).Add(monthlyRate).Pow(months)
	numerator := monthlyRate.Mul(compound)
	denominator := compound.Sub(decimal.NewFromInt(1))

	return principal.Mul(numerator).DivRound(denominator, 2), nil
}
