package usecase

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/port"
)

// Kind label for schedule previews, which have no analysis kind of their own.
const kindSchedule = "SCHEDULE"

var validationAttr = attribute.String("error", "validation_error")

// outcomeOf classifies a use case error for metrics.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return port.OutcomeSuccess
	case errors.Is(err, model.ErrValidation):
		return port.OutcomeRejected
	default:
		return port.OutcomeError
	}
}

// observe closes the bookkeeping of one execution: the span status and the
// analysis metrics. A nil recorder is ignored.
func observe(ctx context.Context, recorder port.AnalysisRecorder, span trace.Span, kind string, start time.Time, err error) {
	outcome := outcomeOf(err)
	switch outcome {
	case port.OutcomeSuccess:
		span.SetStatus(codes.Ok, "")
	case port.OutcomeRejected:
		span.SetAttributes(validationAttr)
		span.SetStatus(codes.Error, "validation failed")
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if recorder != nil {
		recorder.RecordAnalysis(ctx, kind, outcome, time.Since(start))
	}
}
