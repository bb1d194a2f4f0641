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

	"github.com/efreitasn/stocksim/internal/config"
	"github.com/efreitasn/stocksim/internal/engine"
	"github.com/efreitasn/stocksim/internal/feed"
	"github.com/efreitasn/stocksim/internal/handler"
	"github.com/efreitasn/stocksim/internal/registry"
	"github.com/efreitasn/stocksim/internal/service"
	"github.com/efreitasn/stocksim/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Seed set: instruments and demo accounts.
	seed := config.DefaultSeed()
	if cfg.SeedFile != "" {
		seed, err = config.LoadSeed(cfg.SeedFile)
		if err != nil {
			logger.Error("failed to load seed file", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Price authority.
	reg := registry.New(seed.Instruments)

	// Stores.
	accountStore := store.NewAccountStore()
	holdingStore := store.NewHoldingStore()
	ledgerStore, err := store.NewLedgerStore(cfg.LedgerPath)
	if err != nil {
		logger.Error("failed to open ledger", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer ledgerStore.Close()

	for i := range seed.Accounts {
		a := seed.Accounts[i]
		if err := accountStore.Create(&a); err != nil {
			logger.Error("failed to seed account",
				slog.String("user_id", a.UserID),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// Engine.
	eng := engine.New(accountStore, holdingStore, ledgerStore, reg)

	// Price feed.
	hub := feed.NewHub(cfg.FeedBuffer)
	simulator := feed.NewSimulator(cfg.TickInterval, cfg.MaxTickDelta, cfg.PriceFloor, reg, hub)

	// Services.
	accountSvc := service.NewAccountService(accountStore, holdingStore, reg)
	tradeSvc := service.NewTradeService(eng, ledgerStore, accountStore)
	marketSvc := service.NewMarketService(reg)

	// Router.
	router := handler.NewRouter(accountSvc, tradeSvc, marketSvc, hub, logger)

	// Start the tick loop with a cancellable context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	simulator.Start(ctx)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.Int("instruments", reg.Len()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop HTTP server, cancel context (stops tick loop).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}
