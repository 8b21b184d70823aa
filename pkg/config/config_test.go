package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "connectly", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 10, cfg.FeedPageSize)
	assert.Equal(t, 300, cfg.FeedCacheTTLSecs)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "connectly_test")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("FEED_PAGE_SIZE", "25")
	t.Setenv("FEED_CACHE_TTL", "60")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "connectly_test", cfg.DBName)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 25, cfg.FeedPageSize)
	assert.Equal(t, 60, cfg.FeedCacheTTLSecs)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("FEED_PAGE_SIZE", "ten")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, 10, cfg.FeedPageSize)
}
