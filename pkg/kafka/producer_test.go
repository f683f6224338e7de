package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	written []kafkago.Message
	err     error
	closed  bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newTestProducer(t *testing.T) (*Producer, map[string]*fakeWriter) {
	t.Helper()
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fakes := make(map[string]*fakeWriter)
	p.newWriter = func(topic string) messageWriter {
		w := &fakeWriter{}
		fakes[topic] = w
		return w
	}
	return p, fakes
}

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.transport != nil {
		t.Error("expected default transport without TLS, SASL or client ID")
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
}

func TestNewProducerTransport(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:       []string{"kafka:9092"},
		ClientID:      "revisionald",
		TLS:           true,
		SASLEnabled:   true,
		SASLMechanism: "SCRAM-SHA-512",
		SASLUsername:  "user",
		SASLPassword:  "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.transport == nil || p.transport.TLS == nil || p.transport.SASL == nil {
		t.Fatalf("expected TLS and SASL transport, got %+v", p.transport)
	}
	if p.transport.ClientID != "revisionald" {
		t.Errorf("expected client ID revisionald, got %q", p.transport.ClientID)
	}
}

func TestNewProducerUnknownSASL(t *testing.T) {
	_, err := NewProducer(Config{SASLEnabled: true, SASLMechanism: "GSSAPI"})
	if err == nil {
		t.Fatal("expected error for unsupported mechanism")
	}
}

func TestPublishConvertsMessages(t *testing.T) {
	p, fakes := newTestProducer(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), "analyses", Message{
		Time:    at,
		Key:     []byte("case-1"),
		Value:   []byte(`{"kind":"LOAN"}`),
		Headers: map[string]string{"event_type": "revisional.analysis.completed"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := fakes["analyses"]
	if w == nil || len(w.written) != 1 {
		t.Fatalf("expected one written message, got %+v", w)
	}
	got := w.written[0]
	if string(got.Key) != "case-1" || string(got.Value) != `{"kind":"LOAN"}` {
		t.Errorf("unexpected message: %+v", got)
	}
	if !got.Time.Equal(at) {
		t.Errorf("expected time %v, got %v", at, got.Time)
	}
	if len(got.Headers) != 1 || got.Headers[0].Key != "event_type" || string(got.Headers[0].Value) != "revisional.analysis.completed" {
		t.Errorf("unexpected headers: %+v", got.Headers)
	}
}

func TestPublishNoMessages(t *testing.T) {
	p, fakes := newTestProducer(t)
	if err := p.Publish(context.Background(), "analyses"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fakes) != 0 {
		t.Error("expected no writer to be created")
	}
}

func TestPublishWrapsWriterError(t *testing.T) {
	p, _ := newTestProducer(t)
	boom := errors.New("broker down")
	p.newWriter = func(string) messageWriter { return &fakeWriter{err: boom} }

	err := p.Publish(context.Background(), "analyses", Message{Value: []byte("x")})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}

func TestGetOrCreateWriter(t *testing.T) {
	p, _ := newTestProducer(t)

	w1 := p.getOrCreateWriter("topic-a")
	w2 := p.getOrCreateWriter("topic-a")
	if w1 != w2 {
		t.Error("expected same writer instance for same topic")
	}
	w3 := p.getOrCreateWriter("topic-b")
	if w1 == w3 {
		t.Error("expected different writer instance for different topic")
	}
	if len(p.writers) != 2 {
		t.Errorf("expected 2 writers, got %d", len(p.writers))
	}
}

func TestProducerClose(t *testing.T) {
	p, fakes := newTestProducer(t)
	_ = p.getOrCreateWriter("topic-a")
	_ = p.getOrCreateWriter("topic-b")

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected 0 writers after close, got %d", len(p.writers))
	}
	for topic, w := range fakes {
		if !w.closed {
			t.Errorf("writer for %s not closed", topic)
		}
	}
}

func TestConfigEnabled(t *testing.T) {
	if (Config{}).Enabled() {
		t.Error("expected empty config to be disabled")
	}
	if (Config{Brokers: []string{""}}).Enabled() {
		t.Error("expected blank broker to be disabled")
	}
	if !(Config{Brokers: []string{"kafka:9092"}}).Enabled() {
		t.Error("expected broker config to be enabled")
	}
}
