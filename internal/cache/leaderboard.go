// Package cache provides a Redis-backed cache for the public leaderboard,
// following the cache-aside pattern: readers consult the cache first and
// writers invalidate it after awarding points.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"elevateu/internal/models"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "elevateu:leaderboard"

type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, ttl: ttl}
}

// Get returns the cached leaderboard and whether it was a hit. A cache miss
// is not an error.
func (c *LeaderboardCache) Get(ctx context.Context) ([]models.LeaderboardEntry, bool, error) {
	data, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get error: %w", err)
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, fmt.Errorf("cache unmarshal error: %w", err)
	}
	return entries, true, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, entries []models.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.client.Set(ctx, leaderboardKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, leaderboardKey).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}
