package events

import (
	"encoding/json"
	"testing"
	"time"
)

type sampleEvent struct {
	BaseEvent
	Amount string `json:"amount"`
}

func TestNewBaseEvent(t *testing.T) {
	aggregateID := "case-123"

	before := time.Now().UTC()
	event := NewBaseEvent("revisional.analysis.completed", aggregateID, "Analysis")
	after := time.Now().UTC()

	if event.EventID() == "" {
		t.Error("expected non-empty event ID")
	}
	if event.EventType() != "revisional.analysis.completed" {
		t.Errorf("expected event type %q, got %q", "revisional.analysis.completed", event.EventType())
	}
	if event.AggregateID() != aggregateID {
		t.Errorf("expected aggregate ID %v, got %v", aggregateID, event.AggregateID())
	}
	if event.AggregateType() != "Analysis" {
		t.Errorf("expected aggregate type %q, got %q", "Analysis", event.AggregateType())
	}
	if event.OccurredAt().Before(before) || event.OccurredAt().After(after) {
		t.Errorf("expected occurredAt between %v and %v, got %v", before, after, event.OccurredAt())
	}
}

func TestNewBaseEventUniqueIDs(t *testing.T) {
	a := NewBaseEvent("x", "agg", "Analysis")
	b := NewBaseEvent("x", "agg", "Analysis")
	if a.EventID() == b.EventID() {
		t.Error("expected distinct event IDs")
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
	var _ DomainEvent = sampleEvent{}
}

func TestEncode(t *testing.T) {
	evt := sampleEvent{
		BaseEvent: NewBaseEvent("sample.created", "agg-789", "Sample"),
		Amount:    "1234.56",
	}

	raw, err := Encode(evt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.EventID != evt.EventID() {
		t.Errorf("expected event ID %q, got %q", evt.EventID(), env.EventID)
	}
	if env.EventType != "sample.created" || env.AggregateID != "agg-789" || env.AggregateType != "Sample" {
		t.Errorf("unexpected envelope metadata: %+v", env)
	}
	if !env.OccurredAt.Equal(evt.OccurredAt()) {
		t.Errorf("expected occurred_at %v, got %v", evt.OccurredAt(), env.OccurredAt)
	}

	var data map[string]any
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data["amount"] != "1234.56" {
		t.Errorf("expected amount 1234.56 in data, got %v", data["amount"])
	}
}
