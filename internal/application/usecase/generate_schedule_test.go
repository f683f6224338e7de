package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pCruvinel/octoapps-sub000/internal/application/dto"
	"github.com/pCruvinel/octoapps-sub000/internal/application/usecase"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/port"
	"github.com/pCruvinel/octoapps-sub000/pkg/testutil"
)

func validScheduleRequest() dto.ScheduleRequest {
	return dto.ScheduleRequest{
		Principal:    decimal.NewFromInt(100000),
		Installments: 12,
		MonthlyRate:  testutil.D("0.03"),
		FirstDueDate: dto.NewDate(testutil.TestFirstDue),
		System:       "price",
		Market:       dto.MarketRateRequest{Monthly: testutil.D("0.01")},
	}
}

func TestGenerateSchedule_Execute(t *testing.T) {
	t.Run("returns both tracks with totals", func(t *testing.T) {
		recorder := &mockAnalysisRecorder{}
		uc := usecase.NewGenerateScheduleUseCase(nil, recorder, testTracer())

		resp, err := uc.Execute(context.Background(), validScheduleRequest())

		require.NoError(t, err)
		assert.Equal(t, "PRICE", resp.System)
		assert.Equal(t, 12, resp.Horizon)
		require.Len(t, resp.Rows, 12)
		testutil.AssertDecimalNear(t, testutil.D("20554.50"), resp.TotalInterestContract, testutil.Cent)
		testutil.AssertDecimalNear(t, testutil.D("6618.55"), resp.TotalInterestMarket, testutil.Cent)
		testutil.AssertDecimalNear(t, testutil.D("13935.96"), resp.CumulativeRestitution, testutil.Cent)
		assert.True(t, resp.Rows[11].ClosingBalance.IsZero())
		assert.Equal(t, "R$ 0,00", resp.Rows[11].Formatted.ClosingBalance)
		assert.Equal(t, []recordedAnalysis{{kind: "SCHEDULE", outcome: port.OutcomeSuccess}}, recorder.outcomes())
	})

	t.Run("limits rows to the horizon", func(t *testing.T) {
		uc := usecase.NewGenerateScheduleUseCase(nil, nil, testTracer())
		req := validScheduleRequest()
		req.Horizon = 6

		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 6, resp.Horizon)
		assert.Len(t, resp.Rows, 6)
		assert.True(t, resp.Rows[5].ClosingBalance.IsPositive())
	})

	t.Run("adds recurring charges to the nominal installment", func(t *testing.T) {
		uc := usecase.NewGenerateScheduleUseCase(nil, nil, testTracer())
		req := validScheduleRequest()
		req.System = "SAC"
		req.Charges = dto.ChargesRequest{MonthlyInsurance: testutil.D("12.50")}

		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		first := resp.Rows[0]
		testutil.AssertDecimalEqual(t, testutil.D("12.5"), first.RecurringCharges)
		testutil.AssertDecimalNear(t, first.Amortization.Add(first.InterestContract).Add(testutil.D("12.5")),
			first.NominalInstallment, testutil.Cent)
	})

	t.Run("rejects negative charges", func(t *testing.T) {
		recorder := &mockAnalysisRecorder{}
		uc := usecase.NewGenerateScheduleUseCase(nil, recorder, testTracer())
		req := validScheduleRequest()
		req.Charges = dto.ChargesRequest{Tariffs: testutil.D("-1")}

		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Contains(t, err.Error(), "validate case")
		assert.Equal(t, []recordedAnalysis{{kind: "SCHEDULE", outcome: port.OutcomeRejected}}, recorder.outcomes())
	})
}
