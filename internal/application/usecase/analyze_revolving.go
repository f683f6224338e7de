package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pCruvinel/octoapps-sub000/internal/application/dto"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/event"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/port"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/service"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
)

// AnalyzeRevolvingUseCase runs a credit-card revolving analysis.
type AnalyzeRevolvingUseCase struct {
	analyzer  *service.RevolvingAnalyzer
	rates     port.MarketRateProvider
	publisher port.EventPublisher
	recorder  port.AnalysisRecorder
	presenter *Presenter
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewAnalyzeRevolvingUseCase wires dependencies.
func NewAnalyzeRevolvingUseCase(
	analyzer *service.RevolvingAnalyzer,
	rates port.MarketRateProvider,
	publisher port.EventPublisher,
	recorder port.AnalysisRecorder,
	tracer trace.Tracer,
	logger *slog.Logger,
) *AnalyzeRevolvingUseCase {
	return &AnalyzeRevolvingUseCase{
		analyzer:  analyzer,
		rates:     rates,
		publisher: publisher,
		recorder:  recorder,
		presenter: NewPresenter(),
		tracer:    tracer,
		logger:    logger,
	}
}

// Execute validates the request, runs the analyzer and publishes an
// AnalysisCompleted event.
func (uc *AnalyzeRevolvingUseCase) Execute(
	ctx context.Context,
	req dto.RevolvingAnalysisRequest,
) (resp dto.AnalysisResponse, err error) {
	start := time.Now()
	kind := valueobject.AnalysisKindRevolving.String()

	ctx, span := uc.tracer.Start(ctx, "AnalyzeRevolving")
	defer span.End()
	defer func() { observe(ctx, uc.recorder, span, kind, start, err) }()

	span.SetAttributes(
		attribute.String("case_id", req.CaseID),
		attribute.Int("months", req.Months),
	)

	// 1. Resolve the market rate.
	market, err := resolveMarketRate(ctx, uc.rates, req.Market)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("resolve market rate: %w", err)
	}

	// 2. Run the analyzer.
	result, err := uc.analyzer.Analyze(model.RevolvingCase{
		Balance:        req.Balance,
		MonthlyRate:    req.MonthlyRate,
		AnnualRate:     req.AnnualRate,
		Market:         market,
		Charges:        toCharges(req.Charges),
		MonthlyPayment: req.MonthlyPayment,
		Months:         req.Months,
	})
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("analyze revolving: %w", err)
	}

	// 3. Publish domain events.
	analysisID := uuid.New().String()
	if err := uc.publisher.Publish(ctx, event.NewAnalysisCompleted(analysisID, req.CaseID, result)); err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.InfoContext(ctx, "revolving analysis completed",
		"analysis_id", analysisID,
		"case_id", req.CaseID,
		"has_abuse", result.HasAbuse,
		"capitalization", result.CapitalizationDetected,
	)

	return uc.presenter.Analysis(analysisID, req.CaseID, result, req.IncludeSchedule, time.Now().UTC()), nil
}
