package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pCruvinel/octoapps-sub000/internal/application/dto"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/port"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/service"
)

// GenerateScheduleUseCase previews the two-track amortization schedule of a
// contract without running the analysis.
type GenerateScheduleUseCase struct {
	aggregator *service.ChargeAggregator
	rates      port.MarketRateProvider
	recorder   port.AnalysisRecorder
	presenter  *Presenter
	tracer     trace.Tracer
}

// NewGenerateScheduleUseCase wires dependencies.
func NewGenerateScheduleUseCase(
	rates port.MarketRateProvider,
	recorder port.AnalysisRecorder,
	tracer trace.Tracer,
) *GenerateScheduleUseCase {
	return &GenerateScheduleUseCase{
		aggregator: service.NewChargeAggregator(),
		rates:      rates,
		recorder:   recorder,
		presenter:  NewPresenter(),
		tracer:     tracer,
	}
}

// Execute returns the schedule rows with their totals.
func (uc *GenerateScheduleUseCase) Execute(
	ctx context.Context,
	req dto.ScheduleRequest,
) (resp dto.ScheduleResponse, err error) {
	start := time.Now()

	ctx, span := uc.tracer.Start(ctx, "GenerateSchedule")
	defer span.End()
	defer func() { observe(ctx, uc.recorder, span, kindSchedule, start, err) }()

	span.SetAttributes(
		attribute.String("system", req.System),
		attribute.Int("installments", req.Installments),
	)

	// 1. Resolve the market rate.
	market, err := resolveMarketRate(ctx, uc.rates, req.Market)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("resolve market rate: %w", err)
	}

	// 2. Build and validate the case.
	system, err := parseSystem(req.System)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("parse system: %w", err)
	}
	terms, err := model.NewContractTerms(
		req.Principal, req.Installments, req.MonthlyRate, decimal.Zero,
		req.FirstDueDate.Time, system, decimal.Zero,
	)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("create terms: %w", err)
	}
	c := model.LoanCase{
		Terms:       terms,
		Market:      market,
		Charges:     toCharges(req.Charges),
		Horizon:     req.Horizon,
		LatePayment: req.LatePayment,
	}
	if err := c.Validate(); err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("validate case: %w", err)
	}

	// 3. Generate the schedule.
	horizon := model.EffectiveHorizon(c.Horizon, terms.Installments)
	breakdown := uc.aggregator.Aggregate(c.Charges, horizon, c.LatePayment)
	rows, err := model.GenerateSchedule(terms, market, breakdown, horizon)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("generate schedule: %w", err)
	}

	return uc.presenter.Schedule(terms.System.String(), horizon, rows), nil
}
