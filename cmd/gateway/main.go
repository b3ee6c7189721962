package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/charge-gateway/internal/application"
	"github.com/DanielPopoola/charge-gateway/internal/application/services"
	"github.com/DanielPopoola/charge-gateway/internal/config"
	"github.com/DanielPopoola/charge-gateway/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/charge-gateway/internal/infrastructure/provider"
	"github.com/DanielPopoola/charge-gateway/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/charge-gateway/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/charge-gateway/internal/mockprovider"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting charge gateway",
		"port", cfg.Server.Port,
		"provider_order", cfg.Providers.Order,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	chargeRepo := postgres.NewChargeRepository(db.Pool)

	providers, err := buildProviders(cfg)
	if err != nil {
		logger.Error("failed to build provider list", "error", err)
		os.Exit(1)
	}

	orchestrator := services.NewFallbackOrchestrator(providers, logger)
	createService := services.NewCreateChargeService(chargeRepo, orchestrator, logger)
	refundService := services.NewRefundService(chargeRepo, orchestrator, logger)
	queryService := services.NewQueryService(chargeRepo, logger)

	h := handlers.NewHandlers(createService, refundService, queryService, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	if cfg.Providers.MountMocks {
		logger.Info("mounting mock providers")
		mockprovider.NewProvider1().RegisterRoutes(mux)
		mockprovider.NewProvider2().RegisterRoutes(mux)
	}

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// buildProviders assembles the ordered provider list from configuration.
// The order is fixed at process start; the fallback loop never reorders it.
func buildProviders(cfg *config.Config) ([]application.ProviderClient, error) {
	available := map[string]application.ProviderClient{
		provider.StripeName:    provider.NewStripeClient(cfg.Providers.StripeBaseURL, cfg.Providers.ConnTimeout),
		provider.BraintreeName: provider.NewBraintreeClient(cfg.Providers.BraintreeBaseURL, cfg.Providers.ConnTimeout),
	}

	names := cfg.Providers.OrderedNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("provider order is empty")
	}

	providers := make([]application.ProviderClient, 0, len(names))
	for _, name := range names {
		client, ok := available[name]
		if !ok {
			return nil, fmt.Errorf("unknown provider %q in provider order", name)
		}
		providers = append(providers, provider.NewRetryClient(client, cfg.Retry))
	}
	return providers, nil
}
