package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pCruvinel/octoapps-sub000/internal/application/dto"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/pkg/money"
)

// Accepted date layouts of form inputs.
var formDateLayouts = []string{"2006-01-02", "02/01/2006", time.RFC3339}

// NormalizeLoanForm converts a loan form typed in pt-BR locale into the
// normalized request. Currency fields go through money.ParseBRL and rates
// through money.ParsePercent; malformed numbers degrade to zero and are
// rejected later by the analyzer. Only counts and dates can fail here.
func NormalizeLoanForm(form dto.LoanFormRequest) (dto.LoanAnalysisRequest, error) {
	installments, err := parseCount("installments", "o número de parcelas", form.Installments)
	if err != nil {
		return dto.LoanAnalysisRequest{}, err
	}
	horizon, err := parseCount("horizon", "o horizonte de análise", form.Horizon)
	if err != nil {
		return dto.LoanAnalysisRequest{}, err
	}
	firstDue, err := parseDate("first_due_date", "a data do primeiro vencimento", form.FirstDueDate)
	if err != nil {
		return dto.LoanAnalysisRequest{}, err
	}
	reference, err := parseDate("reference_date", "a data de referência", form.ReferenceDate)
	if err != nil {
		return dto.LoanAnalysisRequest{}, err
	}

	return dto.LoanAnalysisRequest{
		FirstDueDate: dto.NewDate(firstDue),
		Market: dto.MarketRateRequest{
			ReferenceDate: dto.NewDate(reference),
			Monthly:       money.ParsePercent(form.MarketMonthlyRate),
			Annual:        money.ParsePercent(form.MarketAnnualRate),
			Category:      strings.TrimSpace(form.MarketCategory),
		},
		Charges: dto.ChargesRequest{
			UpfrontInsurance:    money.ParseBRL(form.UpfrontInsurance),
			AppraisalFee:        money.ParseBRL(form.AppraisalFee),
			RegistrationFee:     money.ParseBRL(form.RegistrationFee),
			TAC:                 money.ParseBRL(form.TAC),
			TEC:                 money.ParseBRL(form.TEC),
			IOF:                 money.ParseBRL(form.IOF),
			Miscellaneous:       money.ParseBRL(form.Miscellaneous),
			MonthlyInsurance:    money.ParseBRL(form.MonthlyInsurance),
			Tariffs:             money.ParseBRL(form.Tariffs),
			Annuity:             money.ParseBRL(form.Annuity),
			DefaultInterestRate: money.ParsePercent(form.DefaultInterestRate),
			PenaltyRate:         money.ParsePercent(form.PenaltyRate),
		},
		Principal:             money.ParseBRL(form.Principal),
		MonthlyRate:           money.ParsePercent(form.MonthlyRate),
		AnnualRate:            money.ParsePercent(form.AnnualRate),
		ContractedInstallment: money.ParseBRL(form.ContractedInstallment),
		CaseID:                strings.TrimSpace(form.CaseID),
		System:                strings.TrimSpace(form.System),
		Installments:          installments,
		Horizon:               horizon,
		LatePayment:           form.LatePayment,
		IncludeSchedule:       form.IncludeSchedule,
	}, nil
}

func parseCount(field, label, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &model.ValidationError{Field: field, Reason: fmt.Sprintf("%s deve ser um número inteiro", label)}
	}
	return n, nil
}

func parseDate(field, label, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range formDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &model.ValidationError{Field: field, Reason: fmt.Sprintf("%s é inválida: %s", label, raw)}
}

// AnalyzeLoanFormUseCase normalizes a raw loan form once and runs the loan
// analysis on the result.
type AnalyzeLoanFormUseCase struct {
	loan *AnalyzeLoanUseCase
}

// NewAnalyzeLoanFormUseCase wires dependencies.
func NewAnalyzeLoanFormUseCase(loan *AnalyzeLoanUseCase) *AnalyzeLoanFormUseCase {
	return &AnalyzeLoanFormUseCase{loan: loan}
}

// Execute normalizes the form and delegates to AnalyzeLoanUseCase.
func (uc *AnalyzeLoanFormUseCase) Execute(ctx context.Context, form dto.LoanFormRequest) (dto.AnalysisResponse, error) {
	req, err := NormalizeLoanForm(form)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("normalize form: %w", err)
	}
	return uc.loan.Execute(ctx, req)
}
