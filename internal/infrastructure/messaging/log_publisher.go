package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/event"
	"github.com/pCruvinel/octoapps-sub000/pkg/events"
)

// LogEventPublisher implements port.EventPublisher by logging events. It is
// used when no Kafka brokers are configured.
type LogEventPublisher struct {
	logger *slog.Logger
}

// NewLogEventPublisher creates a publisher writing to logger.
func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

// Publish encodes each event and logs it at info level.
func (p *LogEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	for _, evt := range evts {
		payload, err := events.Encode(evt)
		if err != nil {
			return fmt.Errorf("encode event %s: %w", evt.EventType(), err)
		}

		p.logger.InfoContext(ctx, "domain event",
			"event_type", evt.EventType(),
			"event_id", evt.EventID(),
			"aggregate_id", evt.AggregateID(),
			"payload", string(payload),
		)
	}
	return nil
}
