package service

import (
	"github.com/shopspring/decimal"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
	"github.com/pCruvinel/octoapps-sub000/pkg/money"
)

// ---------------------------------------------------------------------------
// RevolvingAnalyzer – credit-card revolving balances
// ---------------------------------------------------------------------------

// RevolvingAnalyzer simulates a revolving balance compounding at the contract
// and at the market rate and classifies the charges found.
type RevolvingAnalyzer struct {
	aggregator *ChargeAggregator
	policy     Policy
}

// NewRevolvingAnalyzer returns an analyzer applying the given policy.
func NewRevolvingAnalyzer(policy Policy) *RevolvingAnalyzer {
	return &RevolvingAnalyzer{aggregator: NewChargeAggregator(), policy: policy}
}

// Policy returns the thresholds in use.
func (a *RevolvingAnalyzer) Policy() Policy { return a.policy }

// revolvingMonth is one period of a single-rate simulation.
type revolvingMonth struct {
	opening        decimal.Decimal
	interest       decimal.Decimal
	simpleInterest decimal.Decimal
	paid           decimal.Decimal
	closing        decimal.Decimal
}

// simulateRevolving runs a balance for the given months at rate. Interest the
// payment does not cover is added to the balance and bears interest from the
// next period on. A parallel principal-only trajectory keeps unpaid interest
// aside without charging interest on it.
func simulateRevolving(balance, rate, payment decimal.Decimal, months int) []revolvingMonth {
	out := make([]revolvingMonth, 0, months)

	compound := balance
	principal := balance
	unpaidInterest := decimal.Zero

	for t := 0; t < months; t++ {
		interest := compound.Mul(rate).Round(model.ComputePlaces)
		owed := compound.Add(interest)
		paid := decimal.Min(payment, owed)
		closing := owed.Sub(paid)

		simple := principal.Mul(rate).Round(model.ComputePlaces)
		simpleOwed := unpaidInterest.Add(simple)
		if payment.GreaterThanOrEqual(simpleOwed) {
			principal = decimal.Max(decimal.Zero, principal.Sub(payment.Sub(simpleOwed)))
			unpaidInterest = decimal.Zero
		} else {
			unpaidInterest = simpleOwed.Sub(payment)
		}

		out = append(out, revolvingMonth{
			opening:        compound,
			interest:       interest,
			simpleInterest: simple,
			paid:           paid,
			closing:        closing,
		})
		compound = closing
	}
	return out
}

// Analyze runs the revolving analysis. Invalid input is rejected with a
// *model.ValidationError before any simulation.
func (a *RevolvingAnalyzer) Analyze(c model.RevolvingCase) (model.AnalysisResult, error) {
	if err := c.Validate(); err != nil {
		return model.AnalysisResult{}, err
	}

	months := c.Months
	if months == 0 {
		months = a.policy.RevolvingMonths
	}

	contractRate := c.MonthlyRate
	marketRate := c.Market.Monthly()
	charges := a.aggregator.Aggregate(c.Charges, months, false)

	contract := simulateRevolving(c.Balance, contractRate, c.MonthlyPayment, months)
	market := simulateRevolving(c.Balance, marketRate, c.MonthlyPayment, months)

	cmp := model.RateComparison{Sobretaxa: Sobretaxa(contractRate, marketRate)}
	cmp.AbusePercentage, cmp.AbuseDataAvailable = AbusePercentage(contractRate, marketRate)

	rows := make([]model.RevolvingRow, months)
	payments := make([]decimal.Decimal, months)
	capitalized := false
	flatContract := c.Balance.Mul(contractRate)
	flatMarket := c.Balance.Mul(marketRate)
	var nominalContract, nominalMarket, cumulative decimal.Decimal

	for i := 0; i < months; i++ {
		mc, mm := contract[i], market[i]
		divergence := mc.interest.Sub(mm.interest)
		cumulative = cumulative.Add(divergence)

		cmp.TotalInterestContract = cmp.TotalInterestContract.Add(mc.interest)
		cmp.TotalInterestMarket = cmp.TotalInterestMarket.Add(mm.interest)
		nominalContract = nominalContract.Add(flatContract)
		nominalMarket = nominalMarket.Add(flatMarket)

		if mc.interest.Sub(mc.simpleInterest).GreaterThan(a.policy.CapitalizationTolerance) {
			capitalized = true
		}

		rows[i] = model.RevolvingRow{
			Period:                i + 1,
			OpeningBalance:        mc.opening,
			InterestContract:      mc.interest,
			SimpleInterest:        mc.simpleInterest,
			Payment:               mc.paid,
			ClosingBalance:        mc.closing,
			MarketOpeningBalance:  mm.opening,
			InterestMarket:        mm.interest,
			MarketClosingBalance:  mm.closing,
			Divergence:            divergence,
			CumulativeRestitution: cumulative,
		}
		payments[i] = mc.paid.Add(charges.RecurringPerPeriod)
	}

	cmp.NetAverageDifference = cumulative
	cmp.NetSimpleDifference = nominalContract.Sub(nominalMarket)
	cmp.RestitutionAverage = floorZero(cmp.NetAverageDifference)
	cmp.RestitutionSimple = floorZero(cmp.NetSimpleDifference)

	finalContract := contract[months-1].closing
	finalMarket := market[months-1].closing
	payments[months-1] = payments[months-1].Add(finalContract)
	cmp.CETMonthly, cmp.CETAvailable = SolveCET(c.Balance.Sub(charges.Upfront), payments)
	if cmp.CETAvailable {
		cmp.CETAnnual = AnnualizeCET(cmp.CETMonthly)
	}

	hasAbuse := exceedsThreshold(cmp.AbusePercentage, cmp.AbuseDataAvailable, a.policy.AbuseThresholdPct)

	found := findings{}
	if hasAbuse {
		found.rateExcess(contractRate, marketRate, cmp.AbusePercentage, a.policy.AbuseThresholdPct)
	}
	if capitalized {
		found.add("Capitalização de juros (anatocismo) detectada: juros de %s cobrados sobre o saldo, contra %s sobre o principal",
			money.FormatBRL(cmp.TotalInterestContract),
			money.FormatBRL(sumSimpleInterest(contract)),
		)
	}
	found.chargesOverBound(append(upfrontCharges(c.Charges), periodicCharges(c.Charges, months)...), c.Balance, a.policy.FeeThresholdRatio)
	found.lateCharges(c.Charges, a.policy)

	annual := c.AnnualRate
	if annual.IsZero() {
		annual = valueobject.CompoundAnnual(contractRate)
	}

	return model.AnalysisResult{
		RateComparison:         cmp,
		Kind:                   valueobject.AnalysisKindRevolving,
		ContractMonthlyRate:    contractRate,
		ContractAnnualRate:     annual,
		MarketMonthlyRate:      marketRate,
		MarketAnnualRate:       c.Market.Annual(),
		Principal:              c.Balance,
		Horizon:                months,
		HasAbuse:               hasAbuse,
		AbuseThresholdPct:      a.policy.AbuseThresholdPct,
		AbuseLabelThresholdPct: a.policy.AbuseLabelThresholdPct,
		CapitalizationDetected: capitalized,
		AbusiveCharges:         []string(found),
		Charges:                charges,
		TotalEncargos:          charges.RecurringTotal,
		FinalBalanceContract:   finalContract,
		FinalBalanceMarket:     finalMarket,
		RevolvingSchedule:      rows,
	}, nil
}

func sumSimpleInterest(months []revolvingMonth) decimal.Decimal {
	total := decimal.Zero
	for _, m := range months {
		total = total.Add(m.simpleInterest)
	}
	return total
}
