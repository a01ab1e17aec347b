package models

import "time"

type DashboardStats struct {
	UserID    int64     `db:"user_id" json:"-"`
	Points    int64     `db:"points" json:"points"`
	Level     string    `db:"level" json:"level"`
	Progress  int       `db:"progress" json:"progress"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

type LeaderboardEntry struct {
	Rank   int    `db:"-" json:"rank"`
	Name   string `db:"name" json:"name"`
	Points int64  `db:"points" json:"points"`
	Level  string `db:"level" json:"level"`
}
