package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
)

const (
	cetLowerBound    = -0.5
	cetUpperBound    = 100.0
	cetTolerance     = 1e-14
	cetMaxIterations = 300
	cetPlaces        = 12
)

// SolveCET returns the monthly effective cost rate of a credit operation: the
// rate that discounts the debtor's payments back to the net amount actually
// received at inception. ok is false when no such rate exists in
// (-50%, 10000%) a.m., for instance when fees consume the whole principal.
//
// payments[t] is the total paid at the end of period t+1, charges included.
func SolveCET(netDisbursement decimal.Decimal, payments []decimal.Decimal) (monthly decimal.Decimal, ok bool) {
	if len(payments) == 0 || !netDisbursement.IsPositive() {
		return decimal.Zero, false
	}

	received := netDisbursement.InexactFloat64()
	flows := make([]float64, len(payments))
	for i, p := range payments {
		flows[i] = p.InexactFloat64()
	}

	// Net present value seen by the debtor; increasing in the rate while
	// payments are positive.
	npv := func(rate float64) float64 {
		pv := 0.0
		discount := 1.0
		for _, f := range flows {
			discount /= 1 + rate
			// Long horizons near the lower bound overflow discount.
			if f != 0 {
				pv += f * discount
			}
		}
		return received - pv
	}

	lo, hi := cetLowerBound, cetUpperBound
	fLo, fHi := npv(lo), npv(hi)
	if math.IsNaN(fLo) || math.IsNaN(fHi) || fLo > 0 || fHi < 0 {
		return decimal.Zero, false
	}

	for i := 0; i < cetMaxIterations && hi-lo > cetTolerance; i++ {
		mid := lo + (hi-lo)/2
		if npv(mid) < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return decimal.NewFromFloat(lo + (hi-lo)/2).Round(cetPlaces), true
}

// AnnualizeCET compounds a monthly CET into an annual one: (1+m)^12 - 1.
func AnnualizeCET(monthly decimal.Decimal) decimal.Decimal {
	return valueobject.CompoundAnnual(monthly)
}
