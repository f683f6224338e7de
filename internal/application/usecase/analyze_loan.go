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

// AnalyzeLoanUseCase runs a loan or financing analysis and hands the result
// off to the case record.
type AnalyzeLoanUseCase struct {
	analyzer  *service.LoanAnalyzer
	rates     port.MarketRateProvider
	publisher port.EventPublisher
	recorder  port.AnalysisRecorder
	presenter *Presenter
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewAnalyzeLoanUseCase wires dependencies.
func NewAnalyzeLoanUseCase(
	analyzer *service.LoanAnalyzer,
	rates port.MarketRateProvider,
	publisher port.EventPublisher,
	recorder port.AnalysisRecorder,
	tracer trace.Tracer,
	logger *slog.Logger,
) *AnalyzeLoanUseCase {
	return &AnalyzeLoanUseCase{
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
func (uc *AnalyzeLoanUseCase) Execute(
	ctx context.Context,
	req dto.LoanAnalysisRequest,
) (resp dto.AnalysisResponse, err error) {
	start := time.Now()
	kind := valueobject.AnalysisKindLoan.String()

	ctx, span := uc.tracer.Start(ctx, "AnalyzeLoan")
	defer span.End()
	defer func() { observe(ctx, uc.recorder, span, kind, start, err) }()

	span.SetAttributes(
		attribute.String("case_id", req.CaseID),
		attribute.String("system", req.System),
		attribute.Int("installments", req.Installments),
		attribute.Int("horizon", req.Horizon),
	)

	// 1. Resolve the market rate.
	market, err := resolveMarketRate(ctx, uc.rates, req.Market)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("resolve market rate: %w", err)
	}

	// 2. Build the contract terms.
	system, err := parseSystem(req.System)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("parse system: %w", err)
	}
	terms, err := model.NewContractTerms(
		req.Principal, req.Installments, req.MonthlyRate, req.AnnualRate,
		req.FirstDueDate.Time, system, req.ContractedInstallment,
	)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("create terms: %w", err)
	}

	// 3. Run the analyzer.
	result, err := uc.analyzer.Analyze(model.LoanCase{
		Terms:       terms,
		Market:      market,
		Charges:     toCharges(req.Charges),
		Horizon:     req.Horizon,
		LatePayment: req.LatePayment,
	})
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("analyze loan: %w", err)
	}

	// 4. Publish domain events.
	analysisID := uuid.New().String()
	if err := uc.publisher.Publish(ctx, event.NewAnalysisCompleted(analysisID, req.CaseID, result)); err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.InfoContext(ctx, "loan analysis completed",
		"analysis_id", analysisID,
		"case_id", req.CaseID,
		"has_abuse", result.HasAbuse,
		"findings", len(result.AbusiveCharges),
	)

	return uc.presenter.Analysis(analysisID, req.CaseID, result, req.IncludeSchedule, time.Now().UTC()), nil
}
