package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordaday/internal/config"
	"wordaday/internal/generation"
	"wordaday/internal/handler"
	"wordaday/internal/notify"
	"wordaday/internal/repository/postgres"
	"wordaday/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Wordaday server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize ledger store
	store := postgres.NewLedgerRepo(db)

	// Initialize generation gateway
	generator, err := generation.NewOpenAIClient(generation.Options{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.Model,
		ImageModel: cfg.OpenAI.ImageModel,
		ImageSize:  cfg.OpenAI.ImageSize,
		Timeout:    cfg.OpenAI.Timeout,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create generation client", zap.Error(err))
	}

	// Optional Telegram announcer
	var announcer service.Announcer
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		tg, err := notify.NewTelegramAnnouncer(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram announcer", zap.Error(err))
		}
		announcer = tg
		logger.Info("Telegram announcer enabled", zap.Int64("chat_id", cfg.Telegram.ChatID))
	}

	// Initialize services
	lifecycleService := service.NewLifecycleService(store, generator, announcer, cfg.Location(), logger)
	submissionService := service.NewSubmissionService(store, logger)

	// Initialize HTTP surface
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())

	h := handler.NewHandler(store, submissionService, lifecycleService, cfg.AdminToken, logger)
	h.Register(engine)

	logger.Info("Handlers registered")

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: engine,
	}

	// Keep the day rolling over even when nobody is polling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runEnsureJob(ctx, lifecycleService, cfg.EnsureInterval, logger)

	// Start server in background
	go func() {
		logger.Info("Server started", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	cancel()

	logger.Info("Server stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No new migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied successfully")
	return nil
}

// runEnsureJob periodically advances the day. Correctness never depends
// on it firing; any caller of the ensure endpoint triggers the same path.
func runEnsureJob(ctx context.Context, lifecycle *service.LifecycleService, interval time.Duration, logger *zap.Logger) {
	ensure := func() {
		callCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()

		if _, err := lifecycle.EnsureCurrentDay(callCtx); err != nil {
			logger.Error("Failed to ensure current day", zap.Error(err))
		}
	}

	// Run once at startup so a fresh deployment gets its first word
	ensure()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Ensure job stopped")
			return
		case <-ticker.C:
			ensure()
		}
	}
}
