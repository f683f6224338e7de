package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
)

// BalanceEpsilon is the drift below which a closing balance is treated as
// fully repaid.
var BalanceEpsilon = decimal.RequireFromString("0.005")

// ComputePlaces bounds the scale of intermediate interest figures. It keeps
// sub-cent precision while stopping decimal scale from growing every period.
const ComputePlaces = 10

// AmortizationRow is an immutable value object representing one period of a
// two-track schedule: the contract track at the contracted rate and the
// market track at the reference rate.
type AmortizationRow struct {
	DueDate time.Time `json:"due_date"`

	OpeningBalance     decimal.Decimal `json:"opening_balance"`
	InterestContract   decimal.Decimal `json:"interest_contract"`
	Amortization       decimal.Decimal `json:"amortization"`
	ClosingBalance     decimal.Decimal `json:"closing_balance"`
	RecurringCharges   decimal.Decimal `json:"recurring_charges"`
	LateCharges        decimal.Decimal `json:"late_charges"`
	NominalInstallment decimal.Decimal `json:"nominal_installment"`

	MarketOpeningBalance decimal.Decimal `json:"market_opening_balance"`
	InterestMarket       decimal.Decimal `json:"interest_market"`
	MarketAmortization   decimal.Decimal `json:"market_amortization"`
	MarketClosingBalance decimal.Decimal `json:"market_closing_balance"`
	CorrectedInstallment decimal.Decimal `json:"corrected_installment"`

	// Divergence is InterestContract - InterestMarket for this period and
	// CumulativeRestitution its running sum.
	Divergence            decimal.Decimal `json:"divergence"`
	CumulativeRestitution decimal.Decimal `json:"cumulative_restitution"`

	Period int `json:"period"`
}

// Installment returns the contract-track installment without charges.
func (r AmortizationRow) Installment() decimal.Decimal {
	return r.Amortization.Add(r.InterestContract)
}

// EffectiveHorizon bounds a requested horizon to [1, installments]. Zero,
// negative and oversized horizons mean the full term.
func EffectiveHorizon(horizon, installments int) int {
	if horizon <= 0 || horizon > installments {
		return installments
	}
	return horizon
}

// GenerateSchedule simulates the contract and market tracks side by side.
//
// Under SAC both tracks repay principal/N per period. Under PRICE each track
// pays its own constant installment
//
//	PMT = P * r / (1 - (1+r)^-N)
//
// and amortizes PMT - interest. The final period of the term amortizes the
// whole remaining balance so that the schedule always closes at zero.
// Recurring charges and, in the late scenario, late charges are added to the
// nominal installment only; they never change the balances.
func GenerateSchedule(
	terms ContractTerms,
	market valueobject.MarketRate,
	charges ChargeBreakdown,
	horizon int,
) ([]AmortizationRow, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateMarketRate(market); err != nil {
		return nil, err
	}

	n := terms.Installments
	periods := EffectiveHorizon(horizon, n)

	contractRate := terms.MonthlyRate
	marketRate := market.Monthly()

	price := terms.System.Equal(valueobject.AmortizationPRICE)
	constantAmortization := terms.Principal.Div(decimal.NewFromInt(int64(n)))
	var contractPayment, marketPayment decimal.Decimal
	if price {
		contractPayment = AnnuityPayment(terms.Principal, contractRate, n)
		marketPayment = AnnuityPayment(terms.Principal, marketRate, n)
	}

	balance := terms.Principal
	marketBalance := terms.Principal
	cumulative := decimal.Zero

	schedule := make([]AmortizationRow, 0, periods)
	for period := 1; period <= periods; period++ {
		interest := balance.Mul(contractRate).Round(ComputePlaces)
		marketInterest := marketBalance.Mul(marketRate).Round(ComputePlaces)

		var amortization, marketAmortization decimal.Decimal
		if price {
			amortization = contractPayment.Sub(interest)
			marketAmortization = marketPayment.Sub(marketInterest)
		} else {
			amortization = constantAmortization
			marketAmortization = constantAmortization
		}

		// Last installment of the term absorbs accumulated drift.
		if period == n {
			amortization = balance
			marketAmortization = marketBalance
		}

		closing := clampBalance(balance.Sub(amortization))
		marketClosing := clampBalance(marketBalance.Sub(marketAmortization))

		installment := amortization.Add(interest)
		late := installment.Mul(charges.LateRate).Round(ComputePlaces)
		divergence := interest.Sub(marketInterest)
		cumulative = cumulative.Add(divergence)

		schedule = append(schedule, AmortizationRow{
			Period:                period,
			DueDate:               dueDate(terms.FirstDueDate, period),
			OpeningBalance:        balance,
			InterestContract:      interest,
			Amortization:          amortization,
			ClosingBalance:        closing,
			RecurringCharges:      charges.RecurringPerPeriod,
			LateCharges:           late,
			NominalInstallment:    installment.Add(charges.RecurringPerPeriod).Add(late),
			MarketOpeningBalance:  marketBalance,
			InterestMarket:        marketInterest,
			MarketAmortization:    marketAmortization,
			MarketClosingBalance:  marketClosing,
			CorrectedInstallment:  marketAmortization.Add(marketInterest),
			Divergence:            divergence,
			CumulativeRestitution: cumulative,
		})

		balance = closing
		marketBalance = marketClosing
	}

	return schedule, nil
}

// AnnuityPayment returns the constant PRICE installment for principal over n
// periods at rate r, written as P * r * k with k = f / (f - 1) and
// f = (1+r)^n. Only k is computed in float64. When f overflows k tends to 1
// (the installment is the interest alone); when f rounds to 1 the rate is
// negligible and the installment is P/n.
func AnnuityPayment(principal, rate decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	flat := principal.Div(decimal.NewFromInt(int64(n)))
	if !rate.IsPositive() {
		return flat
	}
	factor := math.Pow(1+rate.InexactFloat64(), float64(n))
	switch {
	case math.IsInf(factor, 1):
		return principal.Mul(rate)
	case math.IsNaN(factor) || factor <= 1:
		return flat
	}
	k := factor / (factor - 1)
	if math.IsInf(k, 0) || math.IsNaN(k) {
		return flat
	}
	return principal.Mul(rate).Mul(decimal.NewFromFloat(k))
}

func clampBalance(b decimal.Decimal) decimal.Decimal {
	if b.IsNegative() || b.Abs().LessThan(BalanceEpsilon) {
		return decimal.Zero
	}
	return b
}

// dueDate advances first by period-1 calendar months, keeping the day of the
// month and clamping it to the last day of shorter months.
func dueDate(first time.Time, period int) time.Time {
	if first.IsZero() {
		return time.Time{}
	}
	y, m, d := first.Date()
	target := time.Date(y, m+time.Month(period-1), 1, 0, 0, 0, 0, first.Location())
	if last := daysIn(target.Year(), target.Month(), first.Location()); d > last {
		d = last
	}
	hh, mm, ss := first.Clock()
	return time.Date(target.Year(), target.Month(), d, hh, mm, ss, first.Nanosecond(), first.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
