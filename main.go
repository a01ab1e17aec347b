package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"elevateu/internal/config"
	"elevateu/internal/repository"
	"elevateu/internal/server"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load .env if present, then configuration
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env file")
	}

	cfgPath := "configs/config.yml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, "migrations", logger)

	// Optional Redis client for leaderboard caching
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unavailable, leaderboard caching disabled", zap.Error(err))
			redisClient = nil
		} else {
			logger.Info("Leaderboard caching enabled", zap.String("addr", cfg.Redis.Addr))
			defer redisClient.Close()
		}
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize and run the server
	srv := server.NewServer(db, cfg, logger, redisClient)
	if err := srv.Run(ctx, cfg.Server.Port); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}

	logger.Info("Application stopped.")
}
