package kafka

import (
	"crypto/tls"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// newTransport builds the writer transport for the configured TLS and SASL
// settings. A nil transport selects the kafka-go default.
func newTransport(cfg Config) (*kafkago.Transport, error) {
	if !cfg.TLS && !cfg.SASLEnabled && cfg.ClientID == "" {
		return nil, nil
	}

	t := &kafkago.Transport{ClientID: cfg.ClientID}
	if cfg.TLS {
		t.TLS = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	if cfg.SASLEnabled {
		m, err := resolveSASL(cfg)
		if err != nil {
			return nil, err
		}
		t.SASL = m
	}
	return t, nil
}

// resolveSASL returns the SASL mechanism named in the configuration.
func resolveSASL(cfg Config) (sasl.Mechanism, error) {
	switch cfg.SASLMechanism {
	case "SCRAM-SHA-256":
		m, err := scram.Mechanism(scram.SHA256, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil, fmt.Errorf("scram-sha-256 mechanism: %w", err)
		}
		return m, nil
	case "SCRAM-SHA-512":
		m, err := scram.Mechanism(scram.SHA512, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil, fmt.Errorf("scram-sha-512 mechanism: %w", err)
		}
		return m, nil
	case "PLAIN", "":
		return plain.Mechanism{
			Username: cfg.SASLUsername,
			Password: cfg.SASLPassword,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism %q", cfg.SASLMechanism)
	}
}
