package main

// @title HUC-12 Prioritizer API
// @version 1.0.0
// @description Сервис приоритизации водосборов HUC-12 для природоохранного планирования.
// @description
// @description Основные возможности:
// @description - Справочники критериев, регионов и бассейнов
// @description - Сессии с выбором области интереса (регионы, бассейны, нарисованная геометрия)
// @description - Взвешенная оценка и ранжирование водосборов
// @description - Выгрузка атрибутов в CSV и XLSX

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	_ "github.com/huc-prioritizer/docs/swagger"
	"github.com/huc-prioritizer/internal/config"
	httpDelivery "github.com/huc-prioritizer/internal/delivery/http"
	"github.com/huc-prioritizer/internal/delivery/http/handler"
	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/logger"
	"github.com/huc-prioritizer/internal/pkg/metrics"
	"github.com/huc-prioritizer/internal/prioritizer"
	"github.com/huc-prioritizer/internal/repository/cache"
	"github.com/huc-prioritizer/internal/repository/source"
	"github.com/huc-prioritizer/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "huc-prioritizer-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting HUC-12 Prioritizer API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("dataset_driver", cfg.Dataset.Driver),
	)

	// 3. Open dataset (postgres или sqlite)
	src, err := source.Open(cfg, log)
	if err != nil {
		log.Fatal("Failed to open dataset", zap.Error(err))
	}
	log.Info("Dataset opened", zap.String("driver", cfg.Dataset.Driver))

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := src.Health(ctx); err != nil {
		log.Fatal("Dataset health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	sessionRepo := cache.NewSessionRepository(redisClient)

	// 7. Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(cfg.Metrics.Namespace, reg)

	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		gatherer = reg
	}

	// 8. Initialize Use Cases
	ceilings := domain.Ceilings{
		Regions: cfg.Prioritization.RegionCeiling,
		Basins:  cfg.Prioritization.BasinCeiling,
	}

	referenceUC := usecase.NewReferenceUseCase(
		src.Indicators,
		src.Boundaries,
		cacheRepo,
		collector,
		log,
		cfg.Dataset.Jurisdiction,
		cfg.Cache.ReferenceTTL,
	)

	sessionUC := usecase.NewSessionUseCase(
		sessionRepo,
		cacheRepo,
		referenceUC,
		log,
		ceilings,
		cfg.Cache.SessionTTL,
	)

	scenarioUC := usecase.NewScenarioUseCase(
		src.Indicators,
		src.Boundaries,
		sessionRepo,
		cacheRepo,
		prioritizer.NewEngine(),
		collector,
		log,
		usecase.ScenarioConfig{
			Jurisdiction: cfg.Dataset.Jurisdiction,
			Bounds: domain.WeightBounds{
				Min: cfg.Prioritization.WeightMin,
				Max: cfg.Prioritization.WeightMax,
			},
			Ceilings:     ceilings,
			DefaultLimit: cfg.Prioritization.DefaultLimit,
			SessionTTL:   cfg.Cache.SessionTTL,
			ResultTTL:    cfg.Cache.ResultTTL,
		},
	)

	exportUC := usecase.NewExportUseCase(scenarioUC, log)
	explorerUC := usecase.NewExplorerUseCase(src.Indicators, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP Handlers
	referenceHandler := handler.NewReferenceHandler(referenceUC, cfg.Prioritization, log)
	sessionHandler := handler.NewSessionHandler(sessionUC, log)
	scenarioHandler := handler.NewScenarioHandler(scenarioUC, exportUC, log)
	explorerHandler := handler.NewExplorerHandler(explorerUC, log)

	// 10. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		collector,
		gatherer,
		referenceHandler,
		sessionHandler,
		scenarioHandler,
		explorerHandler,
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.Bool("metrics", cfg.Metrics.Enabled),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := src.Close(); err != nil {
		log.Error("Failed to close dataset", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
