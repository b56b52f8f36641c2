// Package decimal holds the exact-arithmetic helpers used for head-count statistics and rates.
package decimal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rate is a fraction in [0,1], such as the yearly probability that a member leaves.
type Rate struct {
	decimal.Decimal
}

// NewRateFromString parses a rate such as "0.015".
func NewRateFromString(value string) (Rate, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Rate{}, err
	}
	return Rate{d}, nil
}

// NewRate wraps an existing decimal.
func NewRate(d decimal.Decimal) Rate {
	return Rate{d}
}

// Valid reports whether the rate lies in [0,1].
func (r Rate) Valid() bool {
	return !r.Decimal.IsNegative() && r.Decimal.LessThanOrEqual(decimal.NewFromInt(1))
}

// Check returns an error for rates outside [0,1].
func (r Rate) Check() error {
	if !r.Valid() {
		return fmt.Errorf("rate must be between 0 and 1, got %s", r.Decimal)
	}
	return nil
}

// Percent converts the fraction to percentage units (0.015 -> 1.5).
func (r Rate) Percent() decimal.Decimal {
	return r.Decimal.Mul(hundred)
}

// Percent returns part as a percentage of total, zero when total is zero.
func Percent(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(total)))
}

// Mean returns sum/n rounded to two places, zero when n is zero.
func Mean(sum int64, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(n))).Round(2)
}
