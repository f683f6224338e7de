package usecase

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pCruvinel/octoapps-sub000/internal/application/dto"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/pkg/money"
)

// Display precision of formatted figures.
const (
	monthlyRatePlaces = 4
	annualRatePlaces  = 2
	pointsPlaces      = 4
	percentPlaces     = 2
	dueDateLayout     = "02/01/2006"
	unavailable       = "N/D"
)

// Presenter turns engine results into response DTOs. It is the only place
// where numbers are formatted for display.
type Presenter struct{}

// NewPresenter creates a Presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Analysis builds the response for one analysis result. The schedules are
// included only when includeSchedule is set.
func (p *Presenter) Analysis(
	analysisID, caseID string,
	r model.AnalysisResult,
	includeSchedule bool,
	generatedAt time.Time,
) dto.AnalysisResponse {
	abusiveCharges := r.AbusiveCharges
	if abusiveCharges == nil {
		abusiveCharges = []string{}
	}

	resp := dto.AnalysisResponse{
		GeneratedAt:            generatedAt,
		AnalysisID:             analysisID,
		CaseID:                 caseID,
		Kind:                   r.Kind.String(),
		Principal:              r.Principal,
		ContractMonthlyRate:    r.ContractMonthlyRate,
		ContractAnnualRate:     r.ContractAnnualRate,
		MarketMonthlyRate:      r.MarketMonthlyRate,
		MarketAnnualRate:       r.MarketAnnualRate,
		Horizon:                r.Horizon,
		Sobretaxa:              r.Sobretaxa,
		AbusePercentage:        r.AbusePercentage,
		AbuseDataAvailable:     r.AbuseDataAvailable,
		HasAbuse:               r.HasAbuse,
		AbuseThresholdPct:      r.AbuseThresholdPct,
		AbuseLabelThresholdPct: r.AbuseLabelThresholdPct,
		TotalInterestContract:  r.TotalInterestContract,
		TotalInterestMarket:    r.TotalInterestMarket,
		RestitutionSimple:      r.RestitutionSimple,
		RestitutionAverage:     r.RestitutionAverage,
		NetSimpleDifference:    r.NetSimpleDifference,
		NetAverageDifference:   r.NetAverageDifference,
		CETMonthly:             r.CETMonthly,
		CETAnnual:              r.CETAnnual,
		CETAvailable:           r.CETAvailable,
		CapitalizationDetected: r.CapitalizationDetected,
		TacTecIrregular:        r.TacTecIrregular,
		AbusiveCharges:         abusiveCharges,
		UpfrontCharges:         r.Charges.Upfront,
		RecurringPerPeriod:     r.Charges.RecurringPerPeriod,
		RecurringTotal:         r.Charges.RecurringTotal,
		TotalLate:              r.TotalLate,
		TotalEncargos:          r.TotalEncargos,
		FirstInstallment:       r.FirstInstallment,
		ContractedInstallment:  r.ContractedInstallment,
		InstallmentDivergence:  r.InstallmentDivergence,
		InstallmentMismatch:    r.InstallmentMismatch,
		FinalBalanceContract:   r.FinalBalanceContract,
		FinalBalanceMarket:     r.FinalBalanceMarket,
		Formatted:              p.formatAnalysis(r),
	}
	if includeSchedule {
		resp.Schedule = p.ScheduleRows(r.Schedule)
		resp.RevolvingSchedule = p.RevolvingRows(r.RevolvingSchedule)
	}
	return resp
}

func (p *Presenter) formatAnalysis(r model.AnalysisResult) dto.FormattedAnalysis {
	abuse := unavailable
	if r.AbuseDataAvailable {
		abuse = money.FormatNumber(r.AbusePercentage, percentPlaces) + "%"
	}
	cetMonthly, cetAnnual := unavailable, unavailable
	if r.CETAvailable {
		cetMonthly = money.FormatPercent(r.CETMonthly, monthlyRatePlaces)
		cetAnnual = money.FormatPercent(r.CETAnnual, annualRatePlaces)
	}

	return dto.FormattedAnalysis{
		Principal:              money.FormatBRL(r.Principal),
		ContractMonthlyRate:    money.FormatPercent(r.ContractMonthlyRate, monthlyRatePlaces),
		ContractAnnualRate:     money.FormatPercent(r.ContractAnnualRate, annualRatePlaces),
		MarketMonthlyRate:      money.FormatPercent(r.MarketMonthlyRate, monthlyRatePlaces),
		MarketAnnualRate:       money.FormatPercent(r.MarketAnnualRate, annualRatePlaces),
		Horizon:                formatMonths(r.Horizon),
		Sobretaxa:              money.FormatPoints(r.Sobretaxa, pointsPlaces),
		AbusePercentage:        abuse,
		AbuseThresholdPct:      money.FormatNumber(r.AbuseThresholdPct, 0) + "%",
		AbuseLabelThresholdPct: money.FormatNumber(r.AbuseLabelThresholdPct, 0) + "%",
		TotalInterestContract:  money.FormatBRL(r.TotalInterestContract),
		TotalInterestMarket:    money.FormatBRL(r.TotalInterestMarket),
		RestitutionSimple:      money.FormatBRL(r.RestitutionSimple),
		RestitutionAverage:     money.FormatBRL(r.RestitutionAverage),
		NetSimpleDifference:    money.FormatBRL(r.NetSimpleDifference),
		NetAverageDifference:   money.FormatBRL(r.NetAverageDifference),
		CETMonthly:             cetMonthly,
		CETAnnual:              cetAnnual,
		UpfrontCharges:         money.FormatBRL(r.Charges.Upfront),
		RecurringPerPeriod:     money.FormatBRL(r.Charges.RecurringPerPeriod),
		RecurringTotal:         money.FormatBRL(r.Charges.RecurringTotal),
		TotalLate:              money.FormatBRL(r.TotalLate),
		TotalEncargos:          money.FormatBRL(r.TotalEncargos),
		FirstInstallment:       money.FormatBRL(r.FirstInstallment),
		ContractedInstallment:  money.FormatBRL(r.ContractedInstallment),
		InstallmentDivergence:  money.FormatBRL(r.InstallmentDivergence),
		FinalBalanceContract:   money.FormatBRL(r.FinalBalanceContract),
		FinalBalanceMarket:     money.FormatBRL(r.FinalBalanceMarket),
	}
}

// ScheduleRows converts amortization rows. A nil input yields nil.
func (p *Presenter) ScheduleRows(rows []model.AmortizationRow) []dto.ScheduleRowResponse {
	if rows == nil {
		return nil
	}
	out := make([]dto.ScheduleRowResponse, len(rows))
	for i, r := range rows {
		row := dto.ScheduleRowResponse{
			OpeningBalance:        r.OpeningBalance,
			InterestContract:      r.InterestContract,
			Amortization:          r.Amortization,
			ClosingBalance:        r.ClosingBalance,
			RecurringCharges:      r.RecurringCharges,
			LateCharges:           r.LateCharges,
			NominalInstallment:    r.NominalInstallment,
			MarketOpeningBalance:  r.MarketOpeningBalance,
			InterestMarket:        r.InterestMarket,
			MarketAmortization:    r.MarketAmortization,
			MarketClosingBalance:  r.MarketClosingBalance,
			CorrectedInstallment:  r.CorrectedInstallment,
			Divergence:            r.Divergence,
			CumulativeRestitution: r.CumulativeRestitution,
			Period:                r.Period,
			Formatted: dto.FormattedScheduleRow{
				OpeningBalance:        money.FormatBRL(r.OpeningBalance),
				InterestContract:      money.FormatBRL(r.InterestContract),
				Amortization:          money.FormatBRL(r.Amortization),
				ClosingBalance:        money.FormatBRL(r.ClosingBalance),
				RecurringCharges:      money.FormatBRL(r.RecurringCharges),
				LateCharges:           money.FormatBRL(r.LateCharges),
				NominalInstallment:    money.FormatBRL(r.NominalInstallment),
				MarketOpeningBalance:  money.FormatBRL(r.MarketOpeningBalance),
				InterestMarket:        money.FormatBRL(r.InterestMarket),
				MarketAmortization:    money.FormatBRL(r.MarketAmortization),
				MarketClosingBalance:  money.FormatBRL(r.MarketClosingBalance),
				CorrectedInstallment:  money.FormatBRL(r.CorrectedInstallment),
				Divergence:            money.FormatBRL(r.Divergence),
				CumulativeRestitution: money.FormatBRL(r.CumulativeRestitution),
			},
		}
		if !r.DueDate.IsZero() {
			due := r.DueDate
			row.DueDate = &due
			row.Formatted.DueDate = due.Format(dueDateLayout)
		}
		out[i] = row
	}
	return out
}

// RevolvingRows converts simulated revolving months. A nil input yields nil.
func (p *Presenter) RevolvingRows(rows []model.RevolvingRow) []dto.RevolvingRowResponse {
	if rows == nil {
		return nil
	}
	out := make([]dto.RevolvingRowResponse, len(rows))
	for i, r := range rows {
		out[i] = dto.RevolvingRowResponse{
			OpeningBalance:        r.OpeningBalance,
			InterestContract:      r.InterestContract,
			SimpleInterest:        r.SimpleInterest,
			Payment:               r.Payment,
			ClosingBalance:        r.ClosingBalance,
			MarketOpeningBalance:  r.MarketOpeningBalance,
			InterestMarket:        r.InterestMarket,
			MarketClosingBalance:  r.MarketClosingBalance,
			Divergence:            r.Divergence,
			CumulativeRestitution: r.CumulativeRestitution,
			Period:                r.Period,
			Formatted: dto.FormattedRevolvingRow{
				OpeningBalance:        money.FormatBRL(r.OpeningBalance),
				InterestContract:      money.FormatBRL(r.InterestContract),
				SimpleInterest:        money.FormatBRL(r.SimpleInterest),
				Payment:               money.FormatBRL(r.Payment),
				ClosingBalance:        money.FormatBRL(r.ClosingBalance),
				MarketOpeningBalance:  money.FormatBRL(r.MarketOpeningBalance),
				InterestMarket:        money.FormatBRL(r.InterestMarket),
				MarketClosingBalance:  money.FormatBRL(r.MarketClosingBalance),
				Divergence:            money.FormatBRL(r.Divergence),
				CumulativeRestitution: money.FormatBRL(r.CumulativeRestitution),
			},
		}
	}
	return out
}

// Schedule builds a schedule preview response with its totals.
func (p *Presenter) Schedule(system string, horizon int, rows []model.AmortizationRow) dto.ScheduleResponse {
	interestContract, interestMarket, restitution := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range rows {
		interestContract = interestContract.Add(r.InterestContract)
		interestMarket = interestMarket.Add(r.InterestMarket)
	}
	if len(rows) > 0 {
		restitution = rows[len(rows)-1].CumulativeRestitution
	}

	return dto.ScheduleResponse{
		Rows:                  p.ScheduleRows(rows),
		TotalInterestContract: interestContract,
		TotalInterestMarket:   interestMarket,
		CumulativeRestitution: restitution,
		System:                system,
		Horizon:               horizon,
		Formatted: dto.FormattedSchedule{
			TotalInterestContract: money.FormatBRL(interestContract),
			TotalInterestMarket:   money.FormatBRL(interestMarket),
			CumulativeRestitution: money.FormatBRL(restitution),
		},
	}
}

func formatMonths(n int) string {
	if n == 1 {
		return "1 mês"
	}
	return strconv.Itoa(n) + " meses"
}
