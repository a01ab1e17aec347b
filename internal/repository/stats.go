package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"elevateu/internal/models"
	"elevateu/internal/progression"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type StatsRepository interface {
	Get(ctx context.Context, userID int64) (*models.DashboardStats, error)
	AddPoints(ctx context.Context, userID int64, delta int64) (*models.DashboardStats, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

type statsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStatsRepository(db *sqlx.DB, logger *zap.Logger) StatsRepository {
	return &statsRepository{db: db, logger: logger}
}

func (r *statsRepository) Get(ctx context.Context, userID int64) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	query := `SELECT user_id, points, level, progress, updated_at FROM dashboard_stats WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &stats, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return &stats, nil
}

// AddPoints applies a point award as a transactional read-modify-write. The
// row is locked with FOR UPDATE so concurrent awards against the same user
// are serialized instead of overwriting each other.
func (r *statsRepository) AddPoints(ctx context.Context, userID int64, delta int64) (stats *models.DashboardStats, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var current int64
	lockQuery := `SELECT points FROM dashboard_stats WHERE user_id = $1 FOR UPDATE`
	if err = tx.GetContext(ctx, &current, lockQuery, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock dashboard stats: %w", err)
	}

	newPoints := current + delta
	level, progress := progression.Compute(newPoints)

	updated := &models.DashboardStats{}
	updateQuery := `UPDATE dashboard_stats SET points = $1, level = $2, progress = $3, updated_at = now()
		WHERE user_id = $4
		RETURNING user_id, points, level, progress, updated_at`
	if err = tx.GetContext(ctx, updated, updateQuery, newPoints, level, progress, userID); err != nil {
		return nil, fmt.Errorf("failed to update dashboard stats: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return updated, nil
}

func (r *statsRepository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	entries := []models.LeaderboardEntry{}
	query := `SELECT u.name, d.points, d.level
		FROM users u
		JOIN dashboard_stats d ON d.user_id = u.id
		ORDER BY d.points DESC, u.id ASC
		LIMIT $1`
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
