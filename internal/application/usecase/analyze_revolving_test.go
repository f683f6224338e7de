package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pCruvinel/octoapps-sub000/internal/application/dto"
	"github.com/pCruvinel/octoapps-sub000/internal/application/usecase"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/event"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/port"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/service"
	"github.com/pCruvinel/octoapps-sub000/pkg/testutil"
)

func newRevolvingUseCase(publisher port.EventPublisher, recorder port.AnalysisRecorder) *usecase.AnalyzeRevolvingUseCase {
	return usecase.NewAnalyzeRevolvingUseCase(
		service.NewRevolvingAnalyzer(service.DefaultPolicy()),
		nil, publisher, recorder, testTracer(), testLogger(),
	)
}

func validRevolvingRequest() dto.RevolvingAnalysisRequest {
	return dto.RevolvingAnalysisRequest{
		CaseID:      testutil.TestCaseID2.String(),
		Balance:     decimal.NewFromInt(5000),
		MonthlyRate: testutil.D("0.105"),
		Market:      dto.MarketRateRequest{Monthly: testutil.D("0.05")},
		Months:      24,
	}
}

func TestAnalyzeRevolving_Execute(t *testing.T) {
	t.Run("flags a card balance far above market", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		recorder := &mockAnalysisRecorder{}
		uc := newRevolvingUseCase(publisher, recorder)

		resp, err := uc.Execute(context.Background(), validRevolvingRequest())

		require.NoError(t, err)
		assert.Equal(t, "REVOLVING", resp.Kind)
		assert.True(t, resp.HasAbuse)
		assert.True(t, resp.CapitalizationDetected)
		testutil.AssertDecimalEqual(t, testutil.D("110"), resp.AbusePercentage)
		testutil.AssertDecimalNear(t, testutil.D("38786.17"), resp.RestitutionAverage, testutil.Cent)
		assert.Equal(t, "110,00%", resp.Formatted.AbusePercentage)
		assert.Equal(t, "5,5000 p.p.", resp.Formatted.Sobretaxa)
		assert.Equal(t, "50%", resp.Formatted.AbuseThresholdPct)
		assert.Equal(t, "150%", resp.Formatted.AbuseLabelThresholdPct)
		assert.Nil(t, resp.RevolvingSchedule)

		evts := publisher.events()
		require.Len(t, evts, 1)
		completed, ok := evts[0].(event.AnalysisCompleted)
		require.True(t, ok)
		assert.Equal(t, "REVOLVING", completed.Kind)
		assert.True(t, completed.CapitalizationDetected)

		assert.Equal(t, []recordedAnalysis{{kind: "REVOLVING", outcome: port.OutcomeSuccess}}, recorder.outcomes())
	})

	t.Run("includes the simulated months on request", func(t *testing.T) {
		uc := newRevolvingUseCase(&mockEventPublisher{}, nil)
		req := validRevolvingRequest()
		req.IncludeSchedule = true

		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		require.Len(t, resp.RevolvingSchedule, 24)
		assert.Equal(t, "R$ 5.000,00", resp.RevolvingSchedule[0].Formatted.OpeningBalance)
		assert.Equal(t, "R$ 525,00", resp.RevolvingSchedule[0].Formatted.InterestContract)
		assert.Empty(t, resp.Schedule)
	})

	t.Run("rejects a zero balance", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		recorder := &mockAnalysisRecorder{}
		uc := newRevolvingUseCase(publisher, recorder)
		req := validRevolvingRequest()
		req.Balance = decimal.Zero

		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Contains(t, err.Error(), "analyze revolving")
		assert.Contains(t, err.Error(), "o saldo devedor deve ser maior que zero")
		assert.Empty(t, publisher.events())
		assert.Equal(t, []recordedAnalysis{{kind: "REVOLVING", outcome: port.OutcomeRejected}}, recorder.outcomes())
	})
}
