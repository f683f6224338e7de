package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/pkg/money"
)

// findings accumulates user-facing abuse descriptions. Entries are only ever
// appended.
type findings []string

func (f *findings) add(format string, args ...any) {
	*f = append(*f, fmt.Sprintf(format, args...))
}

// namedCharge is one accessory charge considered against the fee threshold.
type namedCharge struct {
	label string
	total decimal.Decimal
}

// rateExcess describes a contract rate above the operative abuse threshold.
func (f *findings) rateExcess(contract, market, pct, threshold decimal.Decimal) {
	f.add("Taxa de juros contratada de %s a.m. excede a taxa média de mercado de %s a.m. em %s (limite de %s)",
		money.FormatPercent(contract, 4),
		money.FormatPercent(market, 4),
		money.FormatPercent(pct.Div(hundred), 2),
		money.FormatPercent(threshold.Div(hundred), 2),
	)
}

// chargesOverBound flags every named charge whose total exceeds ratio * base.
func (f *findings) chargesOverBound(charges []namedCharge, base, ratio decimal.Decimal) {
	bound := base.Mul(ratio)
	for _, c := range charges {
		if c.total.GreaterThan(bound) {
			f.add("%s de %s excede %s do valor de referência (%s)",
				c.label,
				money.FormatBRL(c.total),
				money.FormatPercent(ratio, 2),
				money.FormatBRL(bound),
			)
		}
	}
}

// lateCharges flags default interest and penalty above the policy caps.
func (f *findings) lateCharges(charges model.AccessoryCharges, policy Policy) {
	if charges.DefaultInterestRate.GreaterThan(policy.MaxDefaultInterestRate) {
		f.add("Juros moratórios de %s a.m. acima do limite de %s a.m.",
			money.FormatPercent(charges.DefaultInterestRate, 2),
			money.FormatPercent(policy.MaxDefaultInterestRate, 2),
		)
	}
	if charges.PenaltyRate.GreaterThan(policy.MaxPenaltyRate) {
		f.add("Multa moratória de %s acima do limite de %s",
			money.FormatPercent(charges.PenaltyRate, 2),
			money.FormatPercent(policy.MaxPenaltyRate, 2),
		)
	}
}

// periodicCharges lists the charges that recur over a horizon, annuity
// included only when it is a debit.
func periodicCharges(charges model.AccessoryCharges, horizon int) []namedCharge {
	h := decimal.NewFromInt(int64(horizon))
	out := []namedCharge{
		{label: "Seguro mensal", total: charges.MonthlyInsurance.Mul(h)},
		{label: "Tarifas", total: charges.Tariffs.Mul(h)},
	}
	if charges.Annuity.IsPositive() {
		out = append(out, namedCharge{label: "Anuidade", total: charges.Annuity})
	}
	return out
}

// upfrontCharges lists the one-time charges subject to the fee threshold.
// IOF is a tax and TAC/TEC are judged separately.
func upfrontCharges(charges model.AccessoryCharges) []namedCharge {
	return []namedCharge{
		{label: "Seguro", total: charges.UpfrontInsurance},
		{label: "Taxa de avaliação", total: charges.AppraisalFee},
		{label: "Taxa de registro", total: charges.RegistrationFee},
		{label: "Outros encargos", total: charges.Miscellaneous},
	}
}

func exceedsThreshold(pct decimal.Decimal, ok bool, threshold decimal.Decimal) bool {
	return ok && pct.GreaterThan(threshold)
}
