package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/forecast-dataset-prep/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/forecast-dataset-prep/internal/adapter/kafka"
	"github.com/couchcryptid/forecast-dataset-prep/internal/catalog"
	"github.com/couchcryptid/forecast-dataset-prep/internal/config"
	"github.com/couchcryptid/forecast-dataset-prep/internal/datastore"
	"github.com/couchcryptid/forecast-dataset-prep/internal/observability"
	"github.com/couchcryptid/forecast-dataset-prep/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	splitPolicy, err := datastore.ParseSplitPolicy(cfg.SplitPolicy)
	if err != nil {
		logger.Error("invalid split policy", "error", err)
		os.Exit(1)
	}

	cat := catalog.New()

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(cat, metrics, cfg.DefaultTimeDimensions, splitPolicy, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, cat, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start derivation pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
