package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/mcheviron/ledgerbank/internal/adapter/http"
	"github.com/mcheviron/ledgerbank/internal/adapter/http/handler"
	postgresRepo "github.com/mcheviron/ledgerbank/internal/adapter/repository/postgres"
	redisRepo "github.com/mcheviron/ledgerbank/internal/adapter/repository/redis"
	"github.com/mcheviron/ledgerbank/internal/infrastructure/config"
	"github.com/mcheviron/ledgerbank/internal/infrastructure/logger"
	"github.com/mcheviron/ledgerbank/internal/infrastructure/notify"
	"github.com/mcheviron/ledgerbank/internal/infrastructure/pin"
	"github.com/mcheviron/ledgerbank/internal/infrastructure/postgres"
	"github.com/mcheviron/ledgerbank/internal/infrastructure/redis"
	"github.com/mcheviron/ledgerbank/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	zerolog.DefaultContextLogger = &appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Notifications go to SMTP when configured, otherwise to the log.
	var notifier usecase.Notifier
	if cfg.SMTPAddr != "" {
		notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Addr: cfg.SMTPAddr,
			From: cfg.SMTPFrom,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
		})
		log.Info().Str("addr", cfg.SMTPAddr).Msg("using SMTP notifier")
	} else {
		notifier = notify.NewLogNotifier(appLogger)
		log.Info().Msg("SMTP not configured, notifications go to the log")
	}

	pinHasher := pin.NewBcryptHasher()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, pinHasher, idGen)
	ledgerUC := usecase.NewLedgerUseCase(usecase.LedgerConfig{
		TxManager:   txManager,
		AccountRepo: accountRepo,
		TxnRepo:     txnRepo,
		IDGen:       idGen,
		PinHasher:   pinHasher,
		Notifier:    notifier,
		Cache:       cache,
		Retrier:     retrier,
		Logger:      appLogger,
	})
	exportUC := usecase.NewExportUseCase(ledgerUC, accountRepo, notifier, appLogger)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	exportHandler := handler.NewExportHandler(exportUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		LedgerHandler:    ledgerHandler,
		ExportHandler:    exportHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Logger:           appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
