package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"safeplate/internal/adapter/api"
	"safeplate/internal/adapter/client"
	"safeplate/internal/adapter/store"
	"safeplate/internal/config"
	"safeplate/internal/domain/repository"
	"safeplate/internal/logger"
	"safeplate/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zlog.Sync()

	ctx := context.Background()

	var cache repository.ResultCache
	switch cfg.CacheBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			zlog.Fatal("failed to connect to redis", zap.Error(err))
		}
		cache = store.NewRedisCache(rdb, cfg.CacheTTL)
	default:
		cache = store.NewMemoryCache(cfg.CacheTTL)
	}

	gemini, err := client.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		zlog.Fatal("failed to init gemini client", zap.Error(err))
	}
	if cfg.GeminiAPIKey == "" {
		zlog.Warn("GEMINI_API_KEY is not set; every request will degrade to a configuration-error result")
	}

	generator := usecase.NewRetryingGenerator(gemini, cfg.MaxRetries, zlog)
	orchestrator := usecase.NewOrchestrator(cache, generator, usecase.Options{
		FastModel:       cfg.FastModel,
		ProModel:        cfg.ProModel,
		Temperature:     cfg.Temperature,
		Mode:            usecase.PipelineMode(cfg.Pipeline),
		GenerateTimeout: cfg.GenerateTimeout,
	}, zlog)

	app := fiber.New(fiber.Config{
		AppName: "SafePlate Gateway",
	})
	handler := api.NewSafecheckHandler(orchestrator, zlog)
	api.SetupRouter(app, handler)

	zlog.Info("safeplate gateway listening",
		zap.String("port", cfg.Port),
		zap.String("pipeline", cfg.Pipeline),
		zap.String("cache_backend", cfg.CacheBackend))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}
