package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/config"
	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/logger"
	"github.com/huc-prioritizer/internal/prioritizer"
	"github.com/huc-prioritizer/internal/repository/cache"
	redisRepo "github.com/huc-prioritizer/internal/repository/redis"
	"github.com/huc-prioritizer/internal/repository/source"
	"github.com/huc-prioritizer/internal/usecase"
	"github.com/huc-prioritizer/internal/worker"
	"github.com/huc-prioritizer/internal/worker/scenario"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "huc-prioritizer-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Scenario Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.String("dataset_driver", cfg.Dataset.Driver))

	// 3. Open dataset
	src, err := source.Open(cfg, log)
	if err != nil {
		log.Fatal("Failed to open dataset", zap.Error(err))
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Error("Failed to close dataset", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	healthCtx, healthCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer healthCancel()
	if err := src.Health(healthCtx); err != nil {
		log.Fatal("Dataset health check failed", zap.Error(err))
	}

	// 5. Initialize repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	sessionRepo := cache.NewSessionRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 6. Initialize use cases (метрики в воркере не собираются)
	scenarioUC := usecase.NewScenarioUseCase(
		src.Indicators,
		src.Boundaries,
		sessionRepo,
		cacheRepo,
		prioritizer.NewEngine(),
		nil,
		log,
		usecase.ScenarioConfig{
			Jurisdiction: cfg.Dataset.Jurisdiction,
			Bounds: domain.WeightBounds{
				Min: cfg.Prioritization.WeightMin,
				Max: cfg.Prioritization.WeightMax,
			},
			Ceilings: domain.Ceilings{
				Regions: cfg.Prioritization.RegionCeiling,
				Basins:  cfg.Prioritization.BasinCeiling,
			},
			DefaultLimit: cfg.Prioritization.DefaultLimit,
			SessionTTL:   cfg.Cache.SessionTTL,
			ResultTTL:    cfg.Cache.ResultTTL,
		},
	)

	// 7. Initialize workers
	scenarioWorker := scenario.NewScenarioWorker(
		streamRepo,
		scenarioUC,
		scenario.Config{
			ConsumerGroup: cfg.Worker.ConsumerGroup,
			BatchSize:     cfg.Worker.BatchSize,
			ReadTimeout:   cfg.Worker.StreamReadTimeout,
			MaxRetries:    cfg.Worker.MaxRetries,
		},
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	workerManager.Register(scenarioWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-workerManager.Done():
		log.Warn("All workers exited")
	}

	// Stop сначала даёт воркерам дочитать пачку, затем отменяем контекст
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
