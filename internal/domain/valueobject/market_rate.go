package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MonthsPerYear is the compounding count used to annualize monthly rates.
const MonthsPerYear = 12

// MarketRate is the reference rate a contract is compared against. It is
// resolved outside the engine (historical table or manual override) and
// treated as opaque here.
type MarketRate struct {
	monthly decimal.Decimal
	annual  decimal.Decimal
}

// NewMarketRate creates a MarketRate. A zero annual rate is derived from the
// monthly one as (1+monthly)^12 - 1. The monthly rate must be positive.
func NewMarketRate(monthly, annual decimal.Decimal) (MarketRate, error) {
	if !monthly.IsPositive() {
		return MarketRate{}, fmt.Errorf("%w: monthly rate must be positive, got %s", ErrInvalidMarketRate, monthly)
	}
	if annual.IsNegative() {
		return MarketRate{}, fmt.Errorf("%w: annual rate must not be negative, got %s", ErrInvalidMarketRate, annual)
	}
	if annual.IsZero() {
		annual = CompoundAnnual(monthly)
	}
	return MarketRate{monthly: monthly, annual: annual}, nil
}

// Monthly returns the monthly rate as a decimal fraction.
func (r MarketRate) Monthly() decimal.Decimal { return r.monthly }

// Annual returns the annual rate as a decimal fraction.
func (r MarketRate) Annual() decimal.Decimal { return r.annual }

// IsZero returns true if the rate has not been initialised.
func (r MarketRate) IsZero() bool { return r.monthly.IsZero() && r.annual.IsZero() }

// CompoundAnnual returns (1+monthly)^12 - 1 computed with exact decimal
// multiplication.
func CompoundAnnual(monthly decimal.Decimal) decimal.Decimal {
	return CompoundPeriods(monthly, MonthsPerYear)
}

// CompoundPeriods returns (1+rate)^periods - 1. Non-positive periods yield zero.
func CompoundPeriods(rate decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 {
		return decimal.Zero
	}
	base := decimal.NewFromInt(1).Add(rate)
	acc := decimal.NewFromInt(1)
	for i := 0; i < periods; i++ {
		acc = acc.Mul(base)
	}
	return acc.Sub(decimal.NewFromInt(1))
}
