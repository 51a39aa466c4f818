package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"safenode/config"
	"safenode/internal/adapter/chain/tron"
	httpHandler "safenode/internal/adapter/http/handler"
	pgStorage "safenode/internal/adapter/storage/postgres"
	redisStorage "safenode/internal/adapter/storage/redis"
	"safenode/internal/core/ports"
	"safenode/internal/scheduler"
	"safenode/internal/service"
	"safenode/pkg/logger"
	"safenode/pkg/retry"

	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if cfg.Server.OpsToken == "" {
		log.Fatal().Msg("server.ops_token must be set; refusing to expose /internal without one")
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting SafeNode sweeper")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	accountRepo := pgStorage.NewAccountRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)

	// Initialize cycle lock
	cycleLock := redisStorage.NewCycleLock(rdb)

	// Initialize key vault
	vault, err := service.NewAESKeyVault(cfg.Vault.Passphrase)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize key vault")
	}

	// Initialize chain client
	chainClient, err := tron.NewClient(tron.Config{
		FullNodeURL:      cfg.Chain.FullNodeURL,
		TokenContract:    cfg.Chain.TokenContract,
		MasterAddress:    cfg.Chain.MasterAddress,
		MasterPrivateKey: cfg.Chain.MasterPrivateKey,
		FeeLimitSun:      cfg.Chain.FeeLimitSun,
		RequestTimeout:   cfg.Chain.RequestTimeout,
		Retry: retry.Policy{
			MaxAttempts: cfg.Chain.RetryAttempts,
			BaseDelay:   cfg.Chain.RetryBaseDelay,
		},
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize chain client")
	}

	// Initialize pipeline services
	ledgerSvc := service.NewLedgerService(accountRepo, txRepo, log)
	governor := service.NewGovernor(cfg.Sweep.TaskMemoryBudgetMB, cfg.Sweep.MaxConcurrency, log)
	sweepSvc := service.NewSweepService(
		accountRepo,
		ledgerSvc,
		vault,
		chainClient,
		governor,
		service.SweepParams{
			GasFloor:            decimal.NewFromFloat(cfg.Sweep.GasFloorTRX),
			SettlementDelay:     cfg.Sweep.SettlementDelay,
			FlatFeeNative:       decimal.NewFromFloat(cfg.Sweep.FlatFeeTRX),
			NativeToTokenRate:   decimal.NewFromFloat(cfg.Sweep.TrxToTokenRate),
			TokenToFiatRate:     decimal.NewFromFloat(cfg.Sweep.TokenToFiatRate),
			SweepNativeSurplus:  cfg.Sweep.SweepNativeSurplus,
			NativeSurplusMargin: decimal.NewFromFloat(cfg.Sweep.NativeSurplusMarginTRX),
		},
		log,
	)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with the ops routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Runner:         sweepSvc,
		Lock:           cycleLock,
		LockTTL:        cfg.Sweep.LockTTL,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		OpsToken:       cfg.Server.OpsToken,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Start the sweep scheduler
	schedCtx, stopScheduler := context.WithCancel(ctx)
	sched := scheduler.New(sweepSvc, cycleLock, pgHealth, cfg.Sweep.Interval, cfg.Sweep.LockTTL, log)
	schedDone := make(chan struct{})
	go func() {
		sched.Run(schedCtx)
		close(schedDone)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down...")

	stopScheduler()
	<-schedDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Sweeper exited")
}
