package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/pCruvinel/octoapps-sub000/internal/application/usecase"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/port"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/service"
	"github.com/pCruvinel/octoapps-sub000/internal/infrastructure/config"
	"github.com/pCruvinel/octoapps-sub000/internal/infrastructure/kafka"
	"github.com/pCruvinel/octoapps-sub000/internal/infrastructure/messaging"
	"github.com/pCruvinel/octoapps-sub000/internal/infrastructure/metrics"
	"github.com/pCruvinel/octoapps-sub000/internal/infrastructure/provider"
	grpcPresentation "github.com/pCruvinel/octoapps-sub000/internal/presentation/grpc"
	"github.com/pCruvinel/octoapps-sub000/internal/presentation/rest"
	pkgkafka "github.com/pCruvinel/octoapps-sub000/pkg/kafka"
	"github.com/pCruvinel/octoapps-sub000/pkg/observability"
	"github.com/pCruvinel/octoapps-sub000/pkg/tlsutil"
)

const instrumentationName = "github.com/pCruvinel/octoapps-sub000"

func main() {
	devCertDir := flag.String("gen-dev-certs", "", "write a dev CA and server certificate for localhost into this directory and exit")
	flag.Parse()

	if *devCertDir != "" {
		if err := tlsutil.GenerateDevCertificates([]string{"localhost", "127.0.0.1"}, *devCertDir); err != nil {
			fmt.Fprintln(os.Stderr, "generate dev certificates:", err)
			os.Exit(1)
		}
		fmt.Println("dev certificates written to", *devCertDir)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(1)
	}

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: cfg.ServiceName,
	})
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting revisionald",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"version", cfg.ServiceVersion,
	)

	// Initialize tracing.
	shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort meter shutdown

	recorder, err := metrics.NewAnalysisRecorder(meterProvider.Meter(instrumentationName))
	if err != nil {
		logger.Error("failed to create analysis recorder", "error", err)
		os.Exit(1)
	}

	// Analysis policy and market-rate table.
	settings, err := config.LoadSettings(cfg.PolicyFile)
	if err != nil {
		logger.Error("failed to load policy file", "path", cfg.PolicyFile, "error", err)
		os.Exit(1)
	}
	rates := provider.NewStaticMarketRateProvider(settings.MarketRates)
	logger.Info("analysis policy loaded",
		"path", cfg.PolicyFile,
		"market_rate_categories", len(settings.MarketRates),
	)

	// Wire the event publisher: Kafka when brokers are configured, the log
	// otherwise.
	var publisher port.EventPublisher
	kafkaCfg := pkgkafka.Config{
		ClientID:      cfg.Kafka.ClientID,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
		Brokers:       cfg.Kafka.Brokers,
		TLS:           cfg.Kafka.TLS,
		SASLEnabled:   cfg.Kafka.SASLMechanism != "",
	}
	if kafkaCfg.Enabled() {
		kafkaProducer, perr := pkgkafka.NewProducer(kafkaCfg)
		if perr != nil {
			logger.Error("failed to create kafka producer", "error", perr)
			os.Exit(1)
		}
		defer func() { _ = kafkaProducer.Close() }() //nolint:errcheck // best-effort producer close
		publisher = kafka.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)
		logger.Info("publishing analysis events to kafka", "topic", cfg.Kafka.Topic)
	} else {
		publisher = messaging.NewLogEventPublisher(logger)
		logger.Info("no kafka brokers configured, analysis events go to the log")
	}

	tracer := otel.Tracer(instrumentationName)

	// Wire use cases.
	loanUC := usecase.NewAnalyzeLoanUseCase(service.NewLoanAnalyzer(settings.Policy), rates, publisher, recorder, tracer, logger)
	revolvingUC := usecase.NewAnalyzeRevolvingUseCase(service.NewRevolvingAnalyzer(settings.Policy), rates, publisher, recorder, tracer, logger)
	loanFormUC := usecase.NewAnalyzeLoanFormUseCase(loanUC)
	batchUC := usecase.NewBatchAnalyzeUseCase(loanUC, revolvingUC, cfg.BatchConcurrency, logger)
	scheduleUC := usecase.NewGenerateScheduleUseCase(rates, recorder, tracer)

	// gRPC server.
	grpcHandler := grpcPresentation.NewRevisionalHandler(loanUC, revolvingUC, scheduleUC, logger)
	grpcServer, err := grpcPresentation.NewServer(grpcHandler, logger, grpcPresentation.ServerOptions{
		Reflection:  cfg.GRPCReflection,
		TLSCertFile: cfg.GRPCTLSCertFile,
		TLSKeyFile:  cfg.GRPCTLSKeyFile,
	})
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server.
	healthHandler := rest.NewHealthHandler(cfg.ServiceName, logger)
	restHandler := rest.NewHandler(loanUC, loanFormUC, revolvingUC, batchUC, scheduleUC, logger)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           rest.NewRouter(restHandler, healthHandler, metricsHandler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	healthHandler.SetReady(true)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	healthHandler.SetReady(false)
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("revisionald stopped")
}
