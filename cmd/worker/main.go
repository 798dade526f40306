package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"galeri_app_echo/internal/config"
	"galeri_app_echo/internal/logging"
	"galeri_app_echo/internal/navigation"
	"galeri_app_echo/internal/services"
	"galeri_app_echo/internal/tasks"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.Must(cfg.IsProduction())
	defer logger.Sync() //nolint:errcheck

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	db, err := services.InitDB(cfg.DatabaseURL, logger, false)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Notification links are built from the route table.
	table, err := navigation.NewAppTable()
	if err != nil {
		logger.Fatal("invalid route table", zap.Error(err))
	}

	tasks.DefineTasks(tasks.GlobalRegistry, tasks.Deps{
		Log:    logger,
		Mailer: services.NewEmailService(cfg.SMTP),
		Table:  table,
		AppURL: cfg.AppURL,
	})
	runner := tasks.NewRunner(db, tasks.GlobalRegistry, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("worker started",
		zap.Duration("interval", cfg.WorkerInterval),
		zap.Strings("tasks", tasks.GlobalRegistry.Names()),
	)

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	// Run once at startup, then on every tick.
	process(ctx, runner, logger)

	for {
		select {
		case <-ticker.C:
			process(ctx, runner, logger)
		case <-ctx.Done():
			logger.Info("shutting down worker")
			return
		}
	}
}

func process(ctx context.Context, runner *tasks.Runner, logger *zap.Logger) {
	n, err := runner.RunDue(ctx)
	if err != nil {
		logger.Error("failed to fetch pending tasks", zap.Error(err))
		return
	}
	if n == 0 {
		logger.Debug("no pending tasks")
		return
	}
	logger.Info("processed pending tasks", zap.Int("count", n))
}
