package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pCruvinel/octoapps-sub000/internal/application/dto"
	"github.com/pCruvinel/octoapps-sub000/internal/application/usecase"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/pkg/testutil"
)

func validLoanForm() dto.LoanFormRequest {
	return dto.LoanFormRequest{
		CaseID:            " case-42 ",
		Principal:         "R$ 100.000,00",
		Installments:      "12",
		MonthlyRate:       "3%",
		FirstDueDate:      "15/01/2024",
		System:            "price",
		MarketMonthlyRate: "1",
		TAC:               "R$ 850,00",
		PenaltyRate:       "2%",
	}
}

func TestNormalizeLoanForm(t *testing.T) {
	t.Run("converts locale strings once", func(t *testing.T) {
		req, err := usecase.NormalizeLoanForm(validLoanForm())

		require.NoError(t, err)
		assert.Equal(t, "case-42", req.CaseID)
		testutil.AssertDecimalEqual(t, testutil.D("100000"), req.Principal)
		assert.Equal(t, 12, req.Installments)
		testutil.AssertDecimalEqual(t, testutil.D("0.03"), req.MonthlyRate)
		testutil.AssertDecimalEqual(t, testutil.D("0.01"), req.Market.Monthly)
		testutil.AssertDecimalEqual(t, testutil.D("850"), req.Charges.TAC)
		testutil.AssertDecimalEqual(t, testutil.D("0.02"), req.Charges.PenaltyRate)
		assert.True(t, req.AnnualRate.IsZero())
		assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), req.FirstDueDate.Time)
		assert.Equal(t, "price", req.System)
	})

	t.Run("accepts ISO dates", func(t *testing.T) {
		form := validLoanForm()
		form.FirstDueDate = "2024-01-15"
		form.ReferenceDate = "2023-12-01"

		req, err := usecase.NormalizeLoanForm(form)

		require.NoError(t, err)
		assert.Equal(t, testutil.TestFirstDue, req.FirstDueDate.Time)
		assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), req.Market.ReferenceDate.Time)
	})

	t.Run("degrades malformed amounts to zero", func(t *testing.T) {
		form := validLoanForm()
		form.Principal = "abc"

		req, err := usecase.NormalizeLoanForm(form)

		require.NoError(t, err)
		assert.True(t, req.Principal.IsZero())
	})

	tests := []struct {
		name  string
		edit  func(*dto.LoanFormRequest)
		field string
	}{
		{"non-numeric installments", func(f *dto.LoanFormRequest) { f.Installments = "doze" }, "installments"},
		{"non-numeric horizon", func(f *dto.LoanFormRequest) { f.Horizon = "6m" }, "horizon"},
		{"malformed due date", func(f *dto.LoanFormRequest) { f.FirstDueDate = "31/02" }, "first_due_date"},
		{"malformed reference date", func(f *dto.LoanFormRequest) { f.ReferenceDate = "ontem" }, "reference_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validLoanForm()
			tt.edit(&form)

			_, err := usecase.NormalizeLoanForm(form)

			var verr *model.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestAnalyzeLoanForm_Execute(t *testing.T) {
	t.Run("analyzes a form with the same result as the normalized request", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		uc := usecase.NewAnalyzeLoanFormUseCase(newLoanUseCase(nil, publisher, nil))

		resp, err := uc.Execute(context.Background(), validLoanForm())

		require.NoError(t, err)
		assert.Equal(t, "case-42", resp.CaseID)
		testutil.AssertDecimalEqual(t, testutil.D("24000"), resp.RestitutionSimple)
		assert.True(t, resp.TacTecIrregular)
		assert.Len(t, publisher.events(), 1)
	})

	t.Run("surfaces normalization failures", func(t *testing.T) {
		uc := usecase.NewAnalyzeLoanFormUseCase(newLoanUseCase(nil, &mockEventPublisher{}, nil))
		form := validLoanForm()
		form.Installments = "doze"

		_, err := uc.Execute(context.Background(), form)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "normalize form")
		assert.ErrorIs(t, err, model.ErrValidation)
	})
}
