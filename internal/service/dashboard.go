package service

import (
	"context"
	"errors"
	"fmt"

	"elevateu/internal/cache"
	"elevateu/internal/models"
	"elevateu/internal/repository"

	"go.uber.org/zap"
)

// ErrStatsNotFound is returned when a user has no dashboard stats row.
// Registration creates the row atomically, so this signals a data problem
// rather than a normal condition.
var ErrStatsNotFound = errors.New("dashboard stats not found")

const leaderboardSize = 5

type DashboardService interface {
	Stats(ctx context.Context, userID int64) (*models.DashboardStats, error)
	AddPoints(ctx context.Context, userID int64, points int64) (*models.DashboardStats, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
}

type dashboardService struct {
	stats  repository.StatsRepository
	cache  *cache.LeaderboardCache // nil when Redis is disabled
	logger *zap.Logger
}

func NewDashboardService(stats repository.StatsRepository, lbCache *cache.LeaderboardCache, logger *zap.Logger) DashboardService {
	return &dashboardService{stats: stats, cache: lbCache, logger: logger}
}

func (s *dashboardService) Stats(ctx context.Context, userID int64) (*models.DashboardStats, error) {
	stats, err := s.stats.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStatsNotFound
		}
		s.logger.Error("Failed to get dashboard stats", zap.Error(err))
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return stats, nil
}

func (s *dashboardService) AddPoints(ctx context.Context, userID int64, points int64) (*models.DashboardStats, error) {
	stats, err := s.stats.AddPoints(ctx, userID, points)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStatsNotFound
		}
		s.logger.Error("Failed to add points", zap.Error(err))
		return nil, fmt.Errorf("failed to add points: %w", err)
	}

	if s.cache != nil {
		// Stale ranks are acceptable until the TTL expires, but a successful
		// award should show up on the next leaderboard read.
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("Failed to invalidate leaderboard cache", zap.Error(err))
		}
	}

	s.logger.Info("Points added",
		zap.Int64("user_id", userID),
		zap.Int64("points", points),
		zap.String("level", stats.Level))
	return stats, nil
}

func (s *dashboardService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	if s.cache != nil {
		entries, hit, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("Leaderboard cache read failed", zap.Error(err))
		} else if hit {
			return entries, nil
		}
	}

	entries, err := s.stats.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		s.logger.Error("Failed to query leaderboard", zap.Error(err))
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, entries); err != nil {
			s.logger.Warn("Leaderboard cache write failed", zap.Error(err))
		}
	}
	return entries, nil
}
