package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
	"github.com/pCruvinel/octoapps-sub000/pkg/money"
)

// ---------------------------------------------------------------------------
// LoanAnalyzer – personal loans and general financing
// ---------------------------------------------------------------------------

// LoanAnalyzer composes schedule generation, charge aggregation and the
// comparative analysis, and flags irregular upfront fees.
type LoanAnalyzer struct {
	aggregator *ChargeAggregator
	comparator *ComparativeAnalyzer
	policy     Policy
}

// NewLoanAnalyzer returns an analyzer applying the given policy.
func NewLoanAnalyzer(policy Policy) *LoanAnalyzer {
	return &LoanAnalyzer{
		aggregator: NewChargeAggregator(),
		comparator: NewComparativeAnalyzer(),
		policy:     policy,
	}
}

// Policy returns the thresholds in use.
func (a *LoanAnalyzer) Policy() Policy { return a.policy }

// Analyze runs the loan analysis. Invalid input is rejected with a
// *model.ValidationError before the schedule is generated.
//
// TAC and TEC are irregular whenever present, whatever the amount. Other
// charges are flagged above Policy.FeeThresholdRatio of the principal.
func (a *LoanAnalyzer) Analyze(c model.LoanCase) (model.AnalysisResult, error) {
	if err := c.Validate(); err != nil {
		return model.AnalysisResult{}, err
	}

	terms := c.Terms
	horizon := model.EffectiveHorizon(c.Horizon, terms.Installments)
	charges := a.aggregator.Aggregate(c.Charges, horizon, c.LatePayment)

	schedule, err := model.GenerateSchedule(terms, c.Market, charges, horizon)
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("generate schedule: %w", err)
	}

	cmp := a.comparator.Compare(terms, c.Market, schedule, charges)
	hasAbuse := exceedsThreshold(cmp.AbusePercentage, cmp.AbuseDataAvailable, a.policy.AbuseThresholdPct)

	totalLate := decimal.Zero
	for _, row := range schedule {
		totalLate = totalLate.Add(row.LateCharges)
	}

	first := schedule[0].Installment()
	last := schedule[len(schedule)-1]

	result := model.AnalysisResult{
		RateComparison:         cmp,
		Kind:                   valueobject.AnalysisKindLoan,
		ContractMonthlyRate:    terms.MonthlyRate,
		ContractAnnualRate:     terms.EffectiveAnnualRate(),
		MarketMonthlyRate:      c.Market.Monthly(),
		MarketAnnualRate:       c.Market.Annual(),
		Principal:              terms.Principal,
		Horizon:                horizon,
		HasAbuse:               hasAbuse,
		AbuseThresholdPct:      a.policy.AbuseThresholdPct,
		AbuseLabelThresholdPct: a.policy.AbuseLabelThresholdPct,
		Charges:                charges,
		TotalEncargos:          charges.Upfront.Add(charges.RecurringTotal).Add(totalLate),
		TotalLate:              totalLate,
		FirstInstallment:       first,
		ContractedInstallment:  terms.ContractedInstallment,
		FinalBalanceContract:   last.ClosingBalance,
		FinalBalanceMarket:     last.MarketClosingBalance,
		Schedule:               schedule,
	}

	found := findings{}
	if hasAbuse {
		found.rateExcess(terms.MonthlyRate, c.Market.Monthly(), cmp.AbusePercentage, a.policy.AbuseThresholdPct)
	}
	if !c.Charges.TAC.IsZero() {
		result.TacTecIrregular = true
		found.add("Cobrança de TAC (tarifa de abertura de crédito) de %s", money.FormatBRL(c.Charges.TAC))
	}
	if !c.Charges.TEC.IsZero() {
		result.TacTecIrregular = true
		found.add("Cobrança de TEC (tarifa de emissão de carnê) de %s", money.FormatBRL(c.Charges.TEC))
	}
	found.chargesOverBound(
		append(upfrontCharges(c.Charges), periodicCharges(c.Charges, horizon)...),
		terms.Principal,
		a.policy.FeeThresholdRatio,
	)
	found.lateCharges(c.Charges, a.policy)

	if terms.ContractedInstallment.IsPositive() {
		result.InstallmentDivergence = terms.ContractedInstallment.Sub(first)
		if result.InstallmentDivergence.Abs().GreaterThan(a.policy.InstallmentTolerance) {
			result.InstallmentMismatch = true
			found.add("Parcela contratada de %s diverge da parcela calculada de %s em %s",
				money.FormatBRL(terms.ContractedInstallment),
				money.FormatBRL(first),
				money.FormatBRL(result.InstallmentDivergence),
			)
		}
	}

	result.AbusiveCharges = []string(found)
	return result, nil
}
