package model

import "github.com/shopspring/decimal"

// AccessoryCharges is the closed set of charges a contract may carry on top of
// interest. Every field defaults to zero when absent.
type AccessoryCharges struct {
	// One-time amounts charged at inception.
	UpfrontInsurance decimal.Decimal `json:"upfront_insurance"`
	AppraisalFee     decimal.Decimal `json:"appraisal_fee"`
	RegistrationFee  decimal.Decimal `json:"registration_fee"`
	TAC              decimal.Decimal `json:"tac"`
	TEC              decimal.Decimal `json:"tec"`
	IOF              decimal.Decimal `json:"iof"`
	Miscellaneous    decimal.Decimal `json:"miscellaneous"`

	// Amounts charged every period.
	MonthlyInsurance decimal.Decimal `json:"monthly_insurance"`
	Tariffs          decimal.Decimal `json:"tariffs"`

	// Spread across the horizon. Negative means a credit to the debtor.
	Annuity decimal.Decimal `json:"annuity"`

	// Late-payment rates: mora per month and multa per late installment.
	DefaultInterestRate decimal.Decimal `json:"default_interest_rate"`
	PenaltyRate         decimal.Decimal `json:"penalty_rate"`
}

// Validate rejects negative amounts and rates. Only the annuity may be
// negative.
func (c AccessoryCharges) Validate() error {
	fields := []struct {
		name  string
		label string
		value decimal.Decimal
	}{
		{"upfront_insurance", "seguro", c.UpfrontInsurance},
		{"appraisal_fee", "taxa de avaliação", c.AppraisalFee},
		{"registration_fee", "taxa de registro", c.RegistrationFee},
		{"tac", "TAC", c.TAC},
		{"tec", "TEC", c.TEC},
		{"iof", "IOF", c.IOF},
		{"miscellaneous", "outros encargos", c.Miscellaneous},
		{"monthly_insurance", "seguro mensal", c.MonthlyInsurance},
		{"tariffs", "tarifas", c.Tariffs},
		{"default_interest_rate", "juros moratórios", c.DefaultInterestRate},
		{"penalty_rate", "multa", c.PenaltyRate},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return invalid(f.name, "o valor de %s não pode ser negativo", f.label)
		}
	}
	return nil
}

// ChargeBreakdown is the aggregated view of AccessoryCharges over a horizon.
type ChargeBreakdown struct {
	// Upfront is charged once at inception and reduces the net disbursement.
	Upfront decimal.Decimal `json:"upfront"`
	// RecurringPerPeriod is added to every nominal installment.
	RecurringPerPeriod decimal.Decimal `json:"recurring_per_period"`
	// RecurringTotal is RecurringPerPeriod over the whole horizon.
	RecurringTotal decimal.Decimal `json:"recurring_total"`
	// LateRate is penalty plus default interest in the late scenario, zero
	// otherwise.
	LateRate decimal.Decimal `json:"late_rate"`
	Horizon  int             `json:"horizon"`
}
