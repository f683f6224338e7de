package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ContractTerms – the stated terms of a financing contract
// ---------------------------------------------------------------------------

// MaxPeriods bounds installment counts and analysis horizons (100 years).
const MaxPeriods = 1200

// MaxMonthlyRate bounds every monthly rate the engine accepts (1000% a.m.).
var MaxMonthlyRate = decimal.NewFromInt(10)

// ContractTerms holds already-normalized contract inputs. Rates are decimal
// fractions (0.012 = 1.2% a.m.), amounts are in reais.
type ContractTerms struct {
	FirstDueDate          time.Time
	Principal             decimal.Decimal
	MonthlyRate           decimal.Decimal
	AnnualRate            decimal.Decimal
	ContractedInstallment decimal.Decimal
	System                valueobject.AmortizationSystem
	Installments          int
}

// NewContractTerms validates the inputs and returns ContractTerms. A zero
// annual rate is derived from the monthly rate by compounding. A zero
// contracted installment means none was informed.
func NewContractTerms(
	principal decimal.Decimal,
	installments int,
	monthlyRate, annualRate decimal.Decimal,
	firstDueDate time.Time,
	system valueobject.AmortizationSystem,
	contractedInstallment decimal.Decimal,
) (ContractTerms, error) {
	terms := ContractTerms{
		FirstDueDate:          firstDueDate,
		Principal:             principal,
		MonthlyRate:           monthlyRate,
		AnnualRate:            annualRate,
		ContractedInstallment: contractedInstallment,
		System:                system,
		Installments:          installments,
	}
	if err := terms.Validate(); err != nil {
		return ContractTerms{}, err
	}
	if terms.AnnualRate.IsZero() {
		terms.AnnualRate = valueobject.CompoundAnnual(monthlyRate)
	}
	return terms, nil
}

// Validate rejects terms the engine cannot compute. The returned error is a
// *ValidationError.
func (c ContractTerms) Validate() error {
	if !c.Principal.IsPositive() {
		return invalid("principal", "o valor financiado deve ser maior que zero")
	}
	if c.Installments <= 0 {
		return invalid("installments", "o número de parcelas deve ser maior que zero")
	}
	if c.Installments > MaxPeriods {
		return invalid("installments", "o número de parcelas não pode exceder %d", MaxPeriods)
	}
	if !c.MonthlyRate.IsPositive() {
		return invalid("monthly_rate", "a taxa de juros mensal contratada deve ser maior que zero")
	}
	if c.MonthlyRate.GreaterThan(MaxMonthlyRate) {
		return invalid("monthly_rate", "a taxa de juros mensal contratada não pode exceder 1000%%")
	}
	if c.AnnualRate.IsNegative() {
		return invalid("annual_rate", "a taxa de juros anual contratada não pode ser negativa")
	}
	if c.System.IsZero() {
		return invalid("system", "o sistema de amortização deve ser SAC ou PRICE")
	}
	if c.ContractedInstallment.IsNegative() {
		return invalid("contracted_installment", "o valor da parcela contratada não pode ser negativo")
	}
	return nil
}

// EffectiveAnnualRate returns AnnualRate, or the compounded monthly rate when
// no annual rate was informed.
func (c ContractTerms) EffectiveAnnualRate() decimal.Decimal {
	if c.AnnualRate.IsZero() {
		return valueobject.CompoundAnnual(c.MonthlyRate)
	}
	return c.AnnualRate
}

// ValidateMarketRate rejects a missing or non-positive reference rate.
func ValidateMarketRate(market valueobject.MarketRate) error {
	if !market.Monthly().IsPositive() {
		return invalid("market_rate", "a taxa média de mercado deve ser maior que zero")
	}
	if market.Monthly().GreaterThan(MaxMonthlyRate) {
		return invalid("market_rate", "a taxa média de mercado não pode exceder 1000%%")
	}
	return nil
}
