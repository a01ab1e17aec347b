package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validConfig = `
server:
  port: ":8080"
database:
  url: "postgres://localhost/elevateu"
auth:
  secret_key: "s3cret"
  token_ttl_minutes: 60
redis:
  enabled: true
  addr: "localhost:6379"
  leaderboard_ttl_seconds: 30
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/elevateu", cfg.Database.URL)
	assert.Equal(t, "s3cret", cfg.Auth.SecretKey)
	assert.Equal(t, int64(60), cfg.Auth.TokenTTLMinutes)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, int64(30), cfg.Redis.LeaderboardTTLSeconds)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://other/db")
	t.Setenv("JWT_SECRET_KEY", "env-secret")
	t.Setenv("SERVER_PORT", ":9090")

	cfg, err := LoadConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "postgres://other/db", cfg.Database.URL)
	assert.Equal(t, "env-secret", cfg.Auth.SecretKey)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoadConfig_DefaultTTL(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
auth:
  secret_key: "s3cret"
`))
	require.NoError(t, err)
	assert.Equal(t, int64(60), cfg.Auth.TokenTTLMinutes)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
server:
  port: ":8080"
`))
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
