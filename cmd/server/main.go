package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/web3-frozen/hypurr-exporter/internal/config"
	"github.com/web3-frozen/hypurr-exporter/internal/evm"
	"github.com/web3-frozen/hypurr-exporter/internal/exporter"
	"github.com/web3-frozen/hypurr-exporter/internal/handler"
	"github.com/web3-frozen/hypurr-exporter/internal/hyperliquid"
	"github.com/web3-frozen/hypurr-exporter/internal/logging"
	"github.com/web3-frozen/hypurr-exporter/internal/middleware"
	"github.com/web3-frozen/hypurr-exporter/internal/monitor"
	"github.com/web3-frozen/hypurr-exporter/internal/monitor/sources"
	"github.com/web3-frozen/hypurr-exporter/internal/upstream"
)

func main() {
	startedAt := time.Now()
	boot := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		boot.Error("failed to read .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		boot.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		boot.Error("invalid logging configuration", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("exporter configured",
		"user_address", config.OrNone(cfg.Targets.UserAddress),
		"vault_address", config.OrNone(cfg.Targets.VaultAddress),
		"coingecko", cfg.Targets.CoinGeckoKey != "",
		"alchemy", cfg.Targets.AlchemyKey != "",
	)

	// Upstream clients share one transport.
	httpClient := upstream.NewHTTPClient(cfg.UpstreamTimeout)
	info := hyperliquid.NewClient(cfg.InfoAPIURL, httpClient, logger)
	rpc := evm.NewClient(cfg.AlchemyAPIURL, httpClient)

	engine := monitor.NewEngine(logger, cfg.UpstreamTimeout, monitor.Sources{
		Market:   sources.NewCoinGecko(cfg.CoinGeckoAPIURL, httpClient),
		Protocol: sources.NewProtocol(info, rpc),
		Vault:    sources.NewVault(info),
		User:     sources.NewUser(info),
	})

	registry, err := exporter.NewRegistry(startedAt)
	if err != nil {
		logger.Error("failed to build metrics registry", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())

	r.Get("/metrics", handler.Metrics(engine, registry, cfg.Targets, logger))
	r.Get("/healthz", handler.Health(startedAt))

	// A scrape may wait on every upstream before it writes.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down gracefully")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
