package model

import (
	"github.com/shopspring/decimal"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Analysis inputs
// ---------------------------------------------------------------------------

// LoanCase is the single normalized input of a loan or financing analysis.
type LoanCase struct {
	Terms   ContractTerms
	Market  valueobject.MarketRate
	Charges AccessoryCharges
	// Horizon limits the simulated periods; zero means the full term.
	Horizon int
	// LatePayment adds penalty and default interest to every installment.
	LatePayment bool
}

// Validate checks every part of the case before any computation.
func (c LoanCase) Validate() error {
	if err := c.Terms.Validate(); err != nil {
		return err
	}
	if err := ValidateMarketRate(c.Market); err != nil {
		return err
	}
	if c.Horizon < 0 {
		return invalid("horizon", "o horizonte de análise não pode ser negativo")
	}
	return c.Charges.Validate()
}

// RevolvingCase is the normalized input of a credit-card revolving analysis.
type RevolvingCase struct {
	Balance     decimal.Decimal
	MonthlyRate decimal.Decimal
	AnnualRate  decimal.Decimal
	Market      valueobject.MarketRate
	Charges     AccessoryCharges
	// MonthlyPayment settles interest first and then principal. Zero means
	// the balance is left unpaid for the whole horizon.
	MonthlyPayment decimal.Decimal
	// Months is the horizon; zero selects the policy default.
	Months int
}

// Validate checks every part of the case before any computation.
func (c RevolvingCase) Validate() error {
	if !c.Balance.IsPositive() {
		return invalid("balance", "o saldo devedor deve ser maior que zero")
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
	if err := ValidateMarketRate(c.Market); err != nil {
		return err
	}
	if c.Months < 0 {
		return invalid("months", "o número de meses de análise não pode ser negativo")
	}
	if c.Months > MaxPeriods {
		return invalid("months", "o número de meses de análise não pode exceder %d", MaxPeriods)
	}
	if c.MonthlyPayment.IsNegative() {
		return invalid("monthly_payment", "o pagamento mensal não pode ser negativo")
	}
	return c.Charges.Validate()
}

// ---------------------------------------------------------------------------
// Analysis outputs
// ---------------------------------------------------------------------------

// RateComparison holds the figures shared by every analyzer.
type RateComparison struct {
	// Sobretaxa is contract monthly rate minus market monthly rate, kept as a
	// decimal difference (percentage points).
	Sobretaxa decimal.Decimal `json:"sobretaxa"`
	// AbusePercentage is the relative excess over the market rate, in percent.
	// It is meaningful only when AbuseDataAvailable is true.
	AbusePercentage    decimal.Decimal `json:"abuse_percentage"`
	AbuseDataAvailable bool            `json:"abuse_data_available"`

	TotalInterestContract decimal.Decimal `json:"total_interest_contract"`
	TotalInterestMarket   decimal.Decimal `json:"total_interest_market"`

	// Restitution figures are floored at zero; the signed differences behind
	// them are kept in the Net fields.
	RestitutionSimple    decimal.Decimal `json:"restitution_simple"`
	RestitutionAverage   decimal.Decimal `json:"restitution_average"`
	NetSimpleDifference  decimal.Decimal `json:"net_simple_difference"`
	NetAverageDifference decimal.Decimal `json:"net_average_difference"`

	CETMonthly   decimal.Decimal `json:"cet_monthly"`
	CETAnnual    decimal.Decimal `json:"cet_annual"`
	CETAvailable bool            `json:"cet_available"`
}

// RevolvingRow is one simulated month of a revolving balance.
type RevolvingRow struct {
	OpeningBalance        decimal.Decimal `json:"opening_balance"`
	InterestContract      decimal.Decimal `json:"interest_contract"`
	SimpleInterest        decimal.Decimal `json:"simple_interest"`
	Payment               decimal.Decimal `json:"payment"`
	ClosingBalance        decimal.Decimal `json:"closing_balance"`
	MarketOpeningBalance  decimal.Decimal `json:"market_opening_balance"`
	InterestMarket        decimal.Decimal `json:"interest_market"`
	MarketClosingBalance  decimal.Decimal `json:"market_closing_balance"`
	Divergence            decimal.Decimal `json:"divergence"`
	CumulativeRestitution decimal.Decimal `json:"cumulative_restitution"`
	Period                int             `json:"period"`
}

// AnalysisResult is the immutable outcome of one analysis. It is created per
// request and never cached.
type AnalysisResult struct {
	RateComparison

	Kind valueobject.AnalysisKind `json:"kind"`

	ContractMonthlyRate decimal.Decimal `json:"contract_monthly_rate"`
	ContractAnnualRate  decimal.Decimal `json:"contract_annual_rate"`
	MarketMonthlyRate   decimal.Decimal `json:"market_monthly_rate"`
	MarketAnnualRate    decimal.Decimal `json:"market_annual_rate"`
	Principal           decimal.Decimal `json:"principal"`
	Horizon             int             `json:"horizon"`

	// HasAbuse applies the operative threshold. The label threshold is
	// exposed separately and never used for the flag.
	HasAbuse               bool            `json:"has_abuse"`
	AbuseThresholdPct      decimal.Decimal `json:"abuse_threshold_pct"`
	AbuseLabelThresholdPct decimal.Decimal `json:"abuse_label_threshold_pct"`

	CapitalizationDetected bool `json:"capitalization_detected"`
	TacTecIrregular        bool `json:"tac_tec_irregular"`
	// AbusiveCharges lists findings in the order they were detected.
	AbusiveCharges []string `json:"abusive_charges"`

	Charges       ChargeBreakdown `json:"charges"`
	TotalEncargos decimal.Decimal `json:"total_encargos"`
	TotalLate     decimal.Decimal `json:"total_late"`

	FirstInstallment      decimal.Decimal `json:"first_installment"`
	ContractedInstallment decimal.Decimal `json:"contracted_installment"`
	InstallmentDivergence decimal.Decimal `json:"installment_divergence"`
	InstallmentMismatch   bool            `json:"installment_mismatch"`
	FinalBalanceContract  decimal.Decimal `json:"final_balance_contract"`
	FinalBalanceMarket    decimal.Decimal `json:"final_balance_market"`

	Schedule          []AmortizationRow `json:"schedule,omitempty"`
	RevolvingSchedule []RevolvingRow    `json:"revolving_schedule,omitempty"`
}
