package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/event"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/port"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockEventPublisher struct {
	mu              sync.Mutex
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func (m *mockEventPublisher) events() []event.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]event.DomainEvent(nil), m.publishedEvents...)
}

type rateLookup struct {
	category string
	date     time.Time
}

type mockMarketRateProvider struct {
	marketRateFunc func(ctx context.Context, category string, date time.Time) (valueobject.MarketRate, error)
	lookups        []rateLookup
}

func (m *mockMarketRateProvider) MarketRate(ctx context.Context, category string, date time.Time) (valueobject.MarketRate, error) {
	m.lookups = append(m.lookups, rateLookup{category: category, date: date})
	if m.marketRateFunc != nil {
		return m.marketRateFunc(ctx, category, date)
	}
	return valueobject.MarketRate{}, port.ErrMarketRateNotFound
}

type recordedAnalysis struct {
	kind    string
	outcome string
}

type mockAnalysisRecorder struct {
	mu       sync.Mutex
	recorded []recordedAnalysis
}

func (m *mockAnalysisRecorder) RecordAnalysis(_ context.Context, kind, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, recordedAnalysis{kind: kind, outcome: outcome})
}

func (m *mockAnalysisRecorder) outcomes() []recordedAnalysis {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedAnalysis(nil), m.recorded...)
}

// --- Helpers ---

func testTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("usecase_test")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func staticRate(monthly string) func(context.Context, string, time.Time) (valueobject.MarketRate, error) {
	return func(context.Context, string, time.Time) (valueobject.MarketRate, error) {
		return valueobject.NewMarketRate(decimal.RequireFromString(monthly), decimal.Zero)
	}
}
