package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// MarketRateRequest carries the reference rate. When Monthly is zero the
// rate is looked up by Category and ReferenceDate.
type MarketRateRequest struct {
	ReferenceDate Date            `json:"reference_date"`
	Monthly       decimal.Decimal `json:"monthly"`
	Annual        decimal.Decimal `json:"annual"`
	Category      string          `json:"category"`
}

// ChargesRequest carries the accessory charges of a contract. Amounts are in
// reais, rates are decimal fractions.
type ChargesRequest struct {
	UpfrontInsurance    decimal.Decimal `json:"upfront_insurance"`
	AppraisalFee        decimal.Decimal `json:"appraisal_fee"`
	RegistrationFee     decimal.Decimal `json:"registration_fee"`
	TAC                 decimal.Decimal `json:"tac"`
	TEC                 decimal.Decimal `json:"tec"`
	IOF                 decimal.Decimal `json:"iof"`
	Miscellaneous       decimal.Decimal `json:"miscellaneous"`
	MonthlyInsurance    decimal.Decimal `json:"monthly_insurance"`
	Tariffs             decimal.Decimal `json:"tariffs"`
	Annuity             decimal.Decimal `json:"annuity"`
	DefaultInterestRate decimal.Decimal `json:"default_interest_rate"`
	PenaltyRate         decimal.Decimal `json:"penalty_rate"`
}

// LoanAnalysisRequest carries normalized inputs of a loan or financing
// analysis.
type LoanAnalysisRequest struct {
	FirstDueDate          Date              `json:"first_due_date"`
	Market                MarketRateRequest `json:"market"`
	Charges               ChargesRequest    `json:"charges"`
	Principal             decimal.Decimal   `json:"principal"`
	MonthlyRate           decimal.Decimal   `json:"monthly_rate"`
	AnnualRate            decimal.Decimal   `json:"annual_rate"`
	ContractedInstallment decimal.Decimal   `json:"contracted_installment"`
	CaseID                string            `json:"case_id"`
	System                string            `json:"system"`
	Installments          int               `json:"installments"`
	Horizon               int               `json:"horizon"`
	LatePayment           bool              `json:"late_payment"`
	IncludeSchedule       bool              `json:"include_schedule"`
}

// LoanFormRequest carries a loan analysis exactly as typed into the case
// form: locale-formatted currency and free-form percentages.
type LoanFormRequest struct {
	CaseID                string `json:"case_id"`
	Principal             string `json:"principal"`
	Installments          string `json:"installments"`
	MonthlyRate           string `json:"monthly_rate"`
	AnnualRate            string `json:"annual_rate"`
	FirstDueDate          string `json:"first_due_date"`
	System                string `json:"system"`
	ContractedInstallment string `json:"contracted_installment"`
	MarketMonthlyRate     string `json:"market_monthly_rate"`
	MarketAnnualRate      string `json:"market_annual_rate"`
	MarketCategory        string `json:"market_category"`
	ReferenceDate         string `json:"reference_date"`
	Horizon               string `json:"horizon"`
	LatePayment           bool   `json:"late_payment"`
	IncludeSchedule       bool   `json:"include_schedule"`

	UpfrontInsurance    string `json:"upfront_insurance"`
	AppraisalFee        string `json:"appraisal_fee"`
	RegistrationFee     string `json:"registration_fee"`
	TAC                 string `json:"tac"`
	TEC                 string `json:"tec"`
	IOF                 string `json:"iof"`
	Miscellaneous       string `json:"miscellaneous"`
	MonthlyInsurance    string `json:"monthly_insurance"`
	Tariffs             string `json:"tariffs"`
	Annuity             string `json:"annuity"`
	DefaultInterestRate string `json:"default_interest_rate"`
	PenaltyRate         string `json:"penalty_rate"`
}

// RevolvingAnalysisRequest carries normalized inputs of a credit-card
// revolving analysis.
type RevolvingAnalysisRequest struct {
	Market          MarketRateRequest `json:"market"`
	Charges         ChargesRequest    `json:"charges"`
	Balance         decimal.Decimal   `json:"balance"`
	MonthlyRate     decimal.Decimal   `json:"monthly_rate"`
	AnnualRate      decimal.Decimal   `json:"annual_rate"`
	MonthlyPayment  decimal.Decimal   `json:"monthly_payment"`
	CaseID          string            `json:"case_id"`
	Months          int               `json:"months"`
	IncludeSchedule bool              `json:"include_schedule"`
}

// ScheduleRequest asks for a two-track schedule preview without analysis.
type ScheduleRequest struct {
	FirstDueDate Date              `json:"first_due_date"`
	Market       MarketRateRequest `json:"market"`
	Charges      ChargesRequest    `json:"charges"`
	Principal    decimal.Decimal   `json:"principal"`
	MonthlyRate  decimal.Decimal   `json:"monthly_rate"`
	System       string            `json:"system"`
	Installments int               `json:"installments"`
	Horizon      int               `json:"horizon"`
	LatePayment  bool              `json:"late_payment"`
}

// BatchAnalysisRequest groups independent analyses computed in parallel.
type BatchAnalysisRequest struct {
	Loans     []LoanAnalysisRequest      `json:"loans"`
	Revolving []RevolvingAnalysisRequest `json:"revolving"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// AnalysisResponse is the external representation of an analysis. Every
// numeric field ships raw and, under Formatted, as a display string.
type AnalysisResponse struct {
	GeneratedAt time.Time `json:"generated_at"`

	AnalysisID string `json:"analysis_id"`
	CaseID     string `json:"case_id,omitempty"`
	Kind       string `json:"kind"`

	Principal           decimal.Decimal `json:"principal"`
	ContractMonthlyRate decimal.Decimal `json:"contract_monthly_rate"`
	ContractAnnualRate  decimal.Decimal `json:"contract_annual_rate"`
	MarketMonthlyRate   decimal.Decimal `json:"market_monthly_rate"`
	MarketAnnualRate    decimal.Decimal `json:"market_annual_rate"`
	Horizon             int             `json:"horizon"`

	Sobretaxa              decimal.Decimal `json:"sobretaxa"`
	AbusePercentage        decimal.Decimal `json:"abuse_percentage"`
	AbuseDataAvailable     bool            `json:"abuse_data_available"`
	HasAbuse               bool            `json:"has_abuse"`
	AbuseThresholdPct      decimal.Decimal `json:"abuse_threshold_pct"`
	AbuseLabelThresholdPct decimal.Decimal `json:"abuse_label_threshold_pct"`

	TotalInterestContract decimal.Decimal `json:"total_interest_contract"`
	TotalInterestMarket   decimal.Decimal `json:"total_interest_market"`
	RestitutionSimple     decimal.Decimal `json:"restitution_simple"`
	RestitutionAverage    decimal.Decimal `json:"restitution_average"`
	NetSimpleDifference   decimal.Decimal `json:"net_simple_difference"`
	NetAverageDifference  decimal.Decimal `json:"net_average_difference"`

	CETMonthly   decimal.Decimal `json:"cet_monthly"`
	CETAnnual    decimal.Decimal `json:"cet_annual"`
	CETAvailable bool            `json:"cet_available"`

	CapitalizationDetected bool     `json:"capitalization_detected"`
	TacTecIrregular        bool     `json:"tac_tec_irregular"`
	AbusiveCharges         []string `json:"abusive_charges"`

	UpfrontCharges        decimal.Decimal `json:"upfront_charges"`
	RecurringPerPeriod    decimal.Decimal `json:"recurring_per_period"`
	RecurringTotal        decimal.Decimal `json:"recurring_total"`
	TotalLate             decimal.Decimal `json:"total_late"`
	TotalEncargos         decimal.Decimal `json:"total_encargos"`
	FirstInstallment      decimal.Decimal `json:"first_installment"`
	ContractedInstallment decimal.Decimal `json:"contracted_installment"`
	InstallmentDivergence decimal.Decimal `json:"installment_divergence"`
	InstallmentMismatch   bool            `json:"installment_mismatch"`
	FinalBalanceContract  decimal.Decimal `json:"final_balance_contract"`
	FinalBalanceMarket    decimal.Decimal `json:"final_balance_market"`

	Schedule          []ScheduleRowResponse  `json:"schedule,omitempty"`
	RevolvingSchedule []RevolvingRowResponse `json:"revolving_schedule,omitempty"`

	Formatted FormattedAnalysis `json:"formatted"`
}

// FormattedAnalysis mirrors every numeric field of AnalysisResponse as a
// pt-BR display string.
type FormattedAnalysis struct {
	Principal              string `json:"principal"`
	ContractMonthlyRate    string `json:"contract_monthly_rate"`
	ContractAnnualRate     string `json:"contract_annual_rate"`
	MarketMonthlyRate      string `json:"market_monthly_rate"`
	MarketAnnualRate       string `json:"market_annual_rate"`
	Horizon                string `json:"horizon"`
	Sobretaxa              string `json:"sobretaxa"`
	AbusePercentage        string `json:"abuse_percentage"`
	AbuseThresholdPct      string `json:"abuse_threshold_pct"`
	AbuseLabelThresholdPct string `json:"abuse_label_threshold_pct"`
	TotalInterestContract  string `json:"total_interest_contract"`
	TotalInterestMarket    string `json:"total_interest_market"`
	RestitutionSimple      string `json:"restitution_simple"`
	RestitutionAverage     string `json:"restitution_average"`
	NetSimpleDifference    string `json:"net_simple_difference"`
	NetAverageDifference   string `json:"net_average_difference"`
	CETMonthly             string `json:"cet_monthly"`
	CETAnnual              string `json:"cet_annual"`
	UpfrontCharges         string `json:"upfront_charges"`
	RecurringPerPeriod     string `json:"recurring_per_period"`
	RecurringTotal         string `json:"recurring_total"`
	TotalLate              string `json:"total_late"`
	TotalEncargos          string `json:"total_encargos"`
	FirstInstallment       string `json:"first_installment"`
	ContractedInstallment  string `json:"contracted_installment"`
	InstallmentDivergence  string `json:"installment_divergence"`
	FinalBalanceContract   string `json:"final_balance_contract"`
	FinalBalanceMarket     string `json:"final_balance_market"`
}

// ScheduleRowResponse represents a single two-track schedule period.
type ScheduleRowResponse struct {
	DueDate               *time.Time           `json:"due_date,omitempty"`
	OpeningBalance        decimal.Decimal      `json:"opening_balance"`
	InterestContract      decimal.Decimal      `json:"interest_contract"`
	Amortization          decimal.Decimal      `json:"amortization"`
	ClosingBalance        decimal.Decimal      `json:"closing_balance"`
	RecurringCharges      decimal.Decimal      `json:"recurring_charges"`
	LateCharges           decimal.Decimal      `json:"late_charges"`
	NominalInstallment    decimal.Decimal      `json:"nominal_installment"`
	MarketOpeningBalance  decimal.Decimal      `json:"market_opening_balance"`
	InterestMarket        decimal.Decimal      `json:"interest_market"`
	MarketAmortization    decimal.Decimal      `json:"market_amortization"`
	MarketClosingBalance  decimal.Decimal      `json:"market_closing_balance"`
	CorrectedInstallment  decimal.Decimal      `json:"corrected_installment"`
	Divergence            decimal.Decimal      `json:"divergence"`
	CumulativeRestitution decimal.Decimal      `json:"cumulative_restitution"`
	Period                int                  `json:"period"`
	Formatted             FormattedScheduleRow `json:"formatted"`
}

// FormattedScheduleRow mirrors the numeric fields of ScheduleRowResponse.
type FormattedScheduleRow struct {
	DueDate               string `json:"due_date"`
	OpeningBalance        string `json:"opening_balance"`
	InterestContract      string `json:"interest_contract"`
	Amortization          string `json:"amortization"`
	ClosingBalance        string `json:"closing_balance"`
	RecurringCharges      string `json:"recurring_charges"`
	LateCharges           string `json:"late_charges"`
	NominalInstallment    string `json:"nominal_installment"`
	MarketOpeningBalance  string `json:"market_opening_balance"`
	InterestMarket        string `json:"interest_market"`
	MarketAmortization    string `json:"market_amortization"`
	MarketClosingBalance  string `json:"market_closing_balance"`
	CorrectedInstallment  string `json:"corrected_installment"`
	Divergence            string `json:"divergence"`
	CumulativeRestitution string `json:"cumulative_restitution"`
}

// RevolvingRowResponse represents a single simulated revolving month.
type RevolvingRowResponse struct {
	OpeningBalance        decimal.Decimal       `json:"opening_balance"`
	InterestContract      decimal.Decimal       `json:"interest_contract"`
	SimpleInterest        decimal.Decimal       `json:"simple_interest"`
	Payment               decimal.Decimal       `json:"payment"`
	ClosingBalance        decimal.Decimal       `json:"closing_balance"`
	MarketOpeningBalance  decimal.Decimal       `json:"market_opening_balance"`
	InterestMarket        decimal.Decimal       `json:"interest_market"`
	MarketClosingBalance  decimal.Decimal       `json:"market_closing_balance"`
	Divergence            decimal.Decimal       `json:"divergence"`
	CumulativeRestitution decimal.Decimal       `json:"cumulative_restitution"`
	Period                int                   `json:"period"`
	Formatted             FormattedRevolvingRow `json:"formatted"`
}

// FormattedRevolvingRow mirrors the numeric fields of RevolvingRowResponse.
type FormattedRevolvingRow struct {
	OpeningBalance        string `json:"opening_balance"`
	InterestContract      string `json:"interest_contract"`
	SimpleInterest        string `json:"simple_interest"`
	Payment               string `json:"payment"`
	ClosingBalance        string `json:"closing_balance"`
	MarketOpeningBalance  string `json:"market_opening_balance"`
	InterestMarket        string `json:"interest_market"`
	MarketClosingBalance  string `json:"market_closing_balance"`
	Divergence            string `json:"divergence"`
	CumulativeRestitution string `json:"cumulative_restitution"`
}

// ScheduleResponse is a schedule preview with its totals.
type ScheduleResponse struct {
	Rows                  []ScheduleRowResponse `json:"rows"`
	TotalInterestContract decimal.Decimal       `json:"total_interest_contract"`
	TotalInterestMarket   decimal.Decimal       `json:"total_interest_market"`
	CumulativeRestitution decimal.Decimal       `json:"cumulative_restitution"`
	System                string                `json:"system"`
	Horizon               int                   `json:"horizon"`
	Formatted             FormattedSchedule     `json:"formatted"`
}

// FormattedSchedule mirrors the totals of ScheduleResponse.
type FormattedSchedule struct {
	TotalInterestContract string `json:"total_interest_contract"`
	TotalInterestMarket   string `json:"total_interest_market"`
	CumulativeRestitution string `json:"cumulative_restitution"`
}

// BatchItemResponse is the outcome of one analysis in a batch. Exactly one of
// Result and Error is set.
type BatchItemResponse struct {
	Result     *AnalysisResponse `json:"result,omitempty"`
	Kind       string            `json:"kind"`
	CaseID     string            `json:"case_id,omitempty"`
	Error      string            `json:"error,omitempty"`
	ErrorField string            `json:"error_field,omitempty"`
	Index      int               `json:"index"`
}

// BatchAnalysisResponse lists batch outcomes in request order, loans first.
type BatchAnalysisResponse struct {
	Items     []BatchItemResponse `json:"items"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}
