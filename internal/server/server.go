package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"elevateu/internal/cache"
	"elevateu/internal/config"
	"elevateu/internal/handler"
	"elevateu/internal/middleware"
	"elevateu/internal/repository"
	"elevateu/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	router *gin.Engine
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) *Server {
	router := gin.Default()
	router.Use(middleware.RequestID())

	s := &Server{
		router: router,
		logger: logger,
	}

	s.setupRoutes(db, cfg, redisClient)

	return s
}

func (s *Server) setupRoutes(db *sqlx.DB, cfg *config.Config, redisClient *redis.Client) {
	userRepo := repository.NewUserRepository(db, s.logger)
	statsRepo := repository.NewStatsRepository(db, s.logger)

	var lbCache *cache.LeaderboardCache
	if redisClient != nil {
		ttl := time.Duration(cfg.Redis.LeaderboardTTLSeconds) * time.Second
		lbCache = cache.NewLeaderboardCache(redisClient, ttl)
	}

	tokens := service.NewTokenManager(cfg)
	authService := service.NewAuthService(userRepo, tokens, s.logger)
	dashboardService := service.NewDashboardService(statsRepo, lbCache, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, s.logger)

	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ElevateU API is running"})
	})
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Backend is healthy"})
	})

	// Public routes
	s.router.POST("/users", authHandler.Register)
	s.router.GET("/users", authHandler.ListUsers)
	s.router.POST("/login", authHandler.Login)
	s.router.GET("/leaderboard", dashboardHandler.Leaderboard)

	// Authenticated routes
	authRequired := s.router.Group("/")
	authRequired.Use(middleware.RequireAuth(tokens, userRepo, s.logger))
	{
		authRequired.GET("/profile", dashboardHandler.Profile)
		authRequired.GET("/dashboard", dashboardHandler.Dashboard)
		authRequired.POST("/add-points", dashboardHandler.AddPoints)
	}
}

// Run starts the HTTP server and shuts it down gracefully when ctx is done.
// A listener failure is returned to the caller so process teardown (closing
// the database, flushing logs) still happens on the normal path.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Server shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
