package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyralabs/cyra/internal/api"
	"github.com/cyralabs/cyra/internal/config"
	"github.com/cyralabs/cyra/internal/db"
	"github.com/cyralabs/cyra/internal/metrics"
	"github.com/cyralabs/cyra/internal/security"
	"github.com/cyralabs/cyra/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	secretKey := cfg.Security.SecretKey
	if secretKey == "" {
		secretKey, err = security.RandomString(48, security.SecretKeyAlphabet)
		if err != nil {
			logger.Fatal("secret key generation failed", zap.Error(err))
		}
		logger.Warn("security.secret_key not configured, sessions will not survive restarts")
	}

	database, err := db.OpenSQLite(cfg.Storage.DBPath)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	repos := db.NewRepositories(database)

	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		logger.Fatal("metrics registration failed", zap.Error(err))
	}

	analysis := services.NewAnalysisService(repos.Users, repos.CycleEvents, repos.SymptomEntries, repos.FactorRecords, logger)

	handler := api.NewHandler(api.HandlerOptions{
		Repositories: repos,
		SecretKey:    secretKey,
		Location:     time.UTC,
		CookieSecure: cfg.Security.CookieSecure,
		WindowDays:   cfg.Analysis.WindowDays,
		Logger:       logger,
		Analysis:     analysis,
	})

	app := fiber.New(fiber.Config{
		AppName:               "Cyra",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	if cfg.Scheduler.Enabled {
		scheduler := services.NewAnalysisScheduler(analysis, logger, cfg.Scheduler.Spec, cfg.Analysis.WindowDays)
		if err := scheduler.Start(lifecycleCtx); err != nil {
			logger.Fatal("scheduler start failed", zap.Error(err))
		}
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logger.Info("cyra listening",
		zap.String("address", address),
		zap.String("db", cfg.Storage.DBPath))
	if err := app.Listen(address); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
