package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ClientID      string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	TLS           bool
}

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	Kafka            KafkaConfig
	Log              LogConfig
	ServiceName      string
	ServiceVersion   string
	OTLPEndpoint     string
	PolicyFile       string
	GRPCPort         int
	HTTPPort         int
	BatchConcurrency int
	GRPCReflection   bool
	GRPCTLSCertFile  string
	GRPCTLSKeyFile   string
}

// LoadDotEnv reads variables from the given .env files into the process
// environment without overriding variables already set. Missing files are
// ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS"),
			Topic:         getEnv("KAFKA_TOPIC", "revisional.analysis.events"),
			ClientID:      getEnv("KAFKA_CLIENT_ID", "revisionald"),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
			TLS:           getEnvBool("KAFKA_TLS", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		ServiceName:      getEnv("SERVICE_NAME", "revisionald"),
		ServiceVersion:   getEnv("SERVICE_VERSION", "dev"),
		OTLPEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		PolicyFile:       getEnv("POLICY_FILE", ""),
		BatchConcurrency: getEnvInt("BATCH_CONCURRENCY", 8),
		GRPCReflection:   getEnvBool("GRPC_REFLECTION", false),
		GRPCTLSCertFile:  getEnv("GRPC_TLS_CERT_FILE", ""),
		GRPCTLSKeyFile:   getEnv("GRPC_TLS_KEY_FILE", ""),
	}
}

// Validate reports configuration that cannot be served.
func (c Config) Validate() error {
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("GRPC_PORT out of range: %d", c.GRPCPort)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}
	if c.GRPCPort == c.HTTPPort {
		return fmt.Errorf("GRPC_PORT and HTTP_PORT must differ, both are %d", c.GRPCPort)
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	if (c.GRPCTLSCertFile == "") != (c.GRPCTLSKeyFile == "") {
		return fmt.Errorf("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together")
	}
	return nil
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
