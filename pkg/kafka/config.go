package kafka

// Config holds Kafka connection parameters.
type Config struct {
	// ClientID identifies this service to the brokers.
	ClientID string

	// SASL configuration for authentication.
	SASLMechanism string // "PLAIN" or "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string

	Brokers []string

	// TLS enables TLS for Kafka connections.
	TLS         bool
	SASLEnabled bool
}

// Enabled reports whether at least one broker is configured.
func (c Config) Enabled() bool {
	for _, b := range c.Brokers {
		if b != "" {
			return true
		}
	}
	return false
}
