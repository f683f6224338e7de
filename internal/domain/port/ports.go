package port

import (
	"context"
	"errors"
	"time"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/event"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// MarketRateProvider resolves the reference rate for a product category at a
// contract date. The engine never calls it; the application layer consults it
// only when a request carries no market rate.
type MarketRateProvider interface {
	MarketRate(ctx context.Context, category string, contractDate time.Time) (valueobject.MarketRate, error)
}

// ErrMarketRateNotFound is returned when no reference rate is known for the
// requested category and date.
var ErrMarketRateNotFound = errors.New("market rate not found")

// ---------------------------------------------------------------------------
// Instrumentation port
// ---------------------------------------------------------------------------

// Outcome labels recorded for every analysis.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// AnalysisRecorder records one finished analysis.
type AnalysisRecorder interface {
	RecordAnalysis(ctx context.Context, kind, outcome string, duration time.Duration)
}
