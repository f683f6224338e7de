package service

import (
	"github.com/shopspring/decimal"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// ---------------------------------------------------------------------------
// ComparativeAnalyzer – contract track versus market track
// ---------------------------------------------------------------------------

// ComparativeAnalyzer derives the rate excess, both restitution estimates and
// the effective cost rate from a generated schedule.
type ComparativeAnalyzer struct{}

// NewComparativeAnalyzer returns a new analyzer instance.
func NewComparativeAnalyzer() *ComparativeAnalyzer {
	return &ComparativeAnalyzer{}
}

// Sobretaxa returns contract - market as a decimal difference.
func Sobretaxa(contractMonthly, marketMonthly decimal.Decimal) decimal.Decimal {
	return contractMonthly.Sub(marketMonthly)
}

// AbusePercentage returns (contract - market) / market * 100. ok is false when
// the market rate is zero and no relative figure exists.
func AbusePercentage(contractMonthly, marketMonthly decimal.Decimal) (pct decimal.Decimal, ok bool) {
	if marketMonthly.IsZero() {
		return decimal.Zero, false
	}
	return contractMonthly.Sub(marketMonthly).Div(marketMonthly).Mul(hundred), true
}

// Compare computes the comparative figures of a loan schedule.
//
// The average restitution integrates the per-row divergence of the schedule.
// The simple restitution compares the flat nominal installments of both
// rates, P/N + P*r, over the same periods; it ignores amortization and so
// drifts apart from the average as the balance falls.
func (c *ComparativeAnalyzer) Compare(
	terms model.ContractTerms,
	market valueobject.MarketRate,
	schedule []model.AmortizationRow,
	charges model.ChargeBreakdown,
) model.RateComparison {
	cmp := model.RateComparison{
		Sobretaxa: Sobretaxa(terms.MonthlyRate, market.Monthly()),
	}
	cmp.AbusePercentage, cmp.AbuseDataAvailable = AbusePercentage(terms.MonthlyRate, market.Monthly())

	n := decimal.NewFromInt(int64(terms.Installments))
	share := terms.Principal.Div(n)
	flatContract := share.Add(terms.Principal.Mul(terms.MonthlyRate))
	flatMarket := share.Add(terms.Principal.Mul(market.Monthly()))

	var nominalContract, nominalMarket decimal.Decimal
	payments := make([]decimal.Decimal, len(schedule))
	for i, row := range schedule {
		cmp.TotalInterestContract = cmp.TotalInterestContract.Add(row.InterestContract)
		cmp.TotalInterestMarket = cmp.TotalInterestMarket.Add(row.InterestMarket)
		cmp.NetAverageDifference = cmp.NetAverageDifference.Add(row.Divergence)
		nominalContract = nominalContract.Add(flatContract)
		nominalMarket = nominalMarket.Add(flatMarket)
		payments[i] = row.NominalInstallment
	}
	cmp.NetSimpleDifference = nominalContract.Sub(nominalMarket)
	cmp.RestitutionSimple = floorZero(cmp.NetSimpleDifference)
	cmp.RestitutionAverage = floorZero(cmp.NetAverageDifference)

	// A preview horizon settles the outstanding balance with the last payment.
	if last := len(schedule) - 1; last >= 0 && schedule[last].ClosingBalance.IsPositive() {
		payments[last] = payments[last].Add(schedule[last].ClosingBalance)
	}
	cmp.CETMonthly, cmp.CETAvailable = SolveCET(terms.Principal.Sub(charges.Upfront), payments)
	if cmp.CETAvailable {
		cmp.CETAnnual = AnnualizeCET(cmp.CETMonthly)
	}

	return cmp
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
