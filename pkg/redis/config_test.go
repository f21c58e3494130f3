package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scaleapp/backend/config"
)

func TestFromCentralConfigDefaults(t *testing.T) {
	cfg := FromCentralConfig(config.RedisConfig{Addr: "localhost:6379"})

	assert.Equal(t, "localhost:6379", cfg.Addr)
	assert.Equal(t, 10, cfg.PoolSize)
	assert.Equal(t, 2, cfg.MinIdleConns)
	assert.Equal(t, 5*time.Second, cfg.DialTimeout())
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout())
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout())
}

func TestFromCentralConfigOverrides(t *testing.T) {
	cfg := FromCentralConfig(config.RedisConfig{
		Addr:                "redis.internal:6380",
		DB:                  2,
		PoolSize:            50,
		MinIdleConns:        5,
		DialTimeoutSeconds:  10,
		ReadTimeoutSeconds:  4,
		WriteTimeoutSeconds: 6,
	})

	assert.Equal(t, 2, cfg.DB)
	assert.Equal(t, 50, cfg.PoolSize)
	assert.Equal(t, 10*time.Second, cfg.DialTimeout())
	assert.Equal(t, 4*time.Second, cfg.ReadTimeout())
	assert.Equal(t, 6*time.Second, cfg.WriteTimeout())
}

func TestNewRedisRejectsEmptyAddr(t *testing.T) {
	_, err := NewRedis(Config{})
	assert.Error(t, err)
}
