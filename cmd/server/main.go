package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"galeri_app_echo/internal/config"
	"galeri_app_echo/internal/handlers"
	"galeri_app_echo/internal/i18n"
	"galeri_app_echo/internal/logging"
	appMiddleware "galeri_app_echo/internal/middleware"
	"galeri_app_echo/internal/navigation"
	"galeri_app_echo/internal/services"
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

	// A broken route table is a programming error; refuse to start.
	table, err := navigation.NewAppTable()
	if err != nil {
		logger.Fatal("invalid route table", zap.Error(err))
	}
	builder := navigation.NewBuilder(table)

	catalog, err := i18n.Load(cfg.DefaultLocale)
	if err != nil {
		logger.Fatal("failed to load translations", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Firebase
	var authClient *auth.Client
	authClient, err = services.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		logger.Warn("firebase initialization failed, auth features will not work until valid credentials are provided", zap.Error(err))
	}

	// Initialize Database
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = services.InitDB(cfg.DatabaseURL, logger, !cfg.IsProduction())
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := services.AutoMigrate(db, logger); err != nil {
			logger.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		logger.Warn("DATABASE_URL not set, database features disabled")
	}

	var cache *services.RedisCache
	if cfg.RedisURL != "" {
		cache, err = services.NewRedisCache(cfg.RedisURL, logger)
		if err != nil {
			logger.Warn("redis unavailable, titles will not be cached", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	titles := services.NewTitleService(db, cache, cfg.TitleCacheTTL, logger)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = appMiddleware.CustomErrorHandler(builder, catalog, logger)

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(appMiddleware.Metrics())
	e.Use(appMiddleware.Locale(catalog))
	e.Use(appMiddleware.Breadcrumbs(builder, catalog))

	// Static file serving
	e.Static("/static", "web/static")
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handlers.RegisterRoutes(e, handlers.Deps{
		Config:  cfg,
		DB:      db,
		Auth:    authClient,
		Titles:  titles,
		Builder: builder,
		Catalog: catalog,
		Log:     logger,
	})

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.Int("routes", table.Len()))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
