package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names exported by AnalysisRecorder.
const (
	AnalysesTotalName    = "revisional_analyses_total"
	AnalysisDurationName = "revisional_analysis_duration_seconds"
)

// AnalysisRecorder implements port.AnalysisRecorder with OpenTelemetry
// instruments.
type AnalysisRecorder struct {
	analyses metric.Int64Counter
	duration metric.Float64Histogram
}

// NewAnalysisRecorder creates the instruments on meter.
func NewAnalysisRecorder(meter metric.Meter) (*AnalysisRecorder, error) {
	analyses, err := meter.Int64Counter(AnalysesTotalName,
		metric.WithDescription("Analyses processed, by kind and outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", AnalysesTotalName, err)
	}
	duration, err := meter.Float64Histogram(AnalysisDurationName,
		metric.WithDescription("Time spent computing one analysis."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", AnalysisDurationName, err)
	}
	return &AnalysisRecorder{analyses: analyses, duration: duration}, nil
}

// RecordAnalysis counts one analysis and records its duration.
func (r *AnalysisRecorder) RecordAnalysis(ctx context.Context, kind, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	)
	r.analyses.Add(ctx, 1, attrs)
	r.duration.Record(ctx, duration.Seconds(), attrs)
}
