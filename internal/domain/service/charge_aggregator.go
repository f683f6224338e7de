package service

import (
	"github.com/shopspring/decimal"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
)

// ---------------------------------------------------------------------------
// ChargeAggregator – splits accessory charges into upfront and recurring
// ---------------------------------------------------------------------------

// ChargeAggregator sums AccessoryCharges into the buckets consumed by the
// schedule generator and the CET solver.
type ChargeAggregator struct{}

// NewChargeAggregator returns a new aggregator instance.
func NewChargeAggregator() *ChargeAggregator {
	return &ChargeAggregator{}
}

// Aggregate returns the charge buckets for a horizon of the given length.
//
//	upfront   = insurance + appraisal + registration + TAC + TEC + IOF + misc
//	recurring = monthly insurance + tariffs + annuity / horizon
//	late rate = penalty + default interest (late scenario only)
//
// A non-positive horizon spreads nothing; the annuity then only appears in
// RecurringTotal.
func (a *ChargeAggregator) Aggregate(charges model.AccessoryCharges, horizon int, late bool) model.ChargeBreakdown {
	upfront := decimal.Sum(
		charges.UpfrontInsurance,
		charges.AppraisalFee,
		charges.RegistrationFee,
		charges.TAC,
		charges.TEC,
		charges.IOF,
		charges.Miscellaneous,
	)

	periodic := charges.MonthlyInsurance.Add(charges.Tariffs)
	recurringPerPeriod := periodic
	recurringTotal := charges.Annuity
	if horizon > 0 {
		h := decimal.NewFromInt(int64(horizon))
		recurringPerPeriod = periodic.Add(charges.Annuity.Div(h))
		recurringTotal = periodic.Mul(h).Add(charges.Annuity)
	}

	lateRate := decimal.Zero
	if late {
		lateRate = charges.PenaltyRate.Add(charges.DefaultInterestRate)
	}

	return model.ChargeBreakdown{
		Upfront:            upfront,
		RecurringPerPeriod: recurringPerPeriod,
		RecurringTotal:     recurringTotal,
		LateRate:           lateRate,
		Horizon:            horizon,
	}
}
