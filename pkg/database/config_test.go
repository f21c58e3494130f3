package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scaleapp/backend/config"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{
		Host:     "db.internal",
		Port:     5433,
		User:     "scaleapp",
		Password: "secret",
		DBName:   "scaleapp",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=scaleapp password=secret dbname=scaleapp sslmode=require"
	assert.Equal(t, want, cfg.DSN())
}

func TestConnMaxLifetimeDefault(t *testing.T) {
	assert.Equal(t, 5*time.Minute, Config{}.ConnMaxLifetime())
	assert.Equal(t, 10*time.Minute, Config{ConnMaxLifetimeMin: 10}.ConnMaxLifetime())
}

func TestFromCentralConfig(t *testing.T) {
	central := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "u",
		Password: "p",
		DBName:   "d",
		SSLMode:  "disable",
		Pool: config.DatabasePoolConfig{
			MaxOpenConns:       30,
			MaxIdleConns:       6,
			ConnMaxLifetimeMin: 7,
		},
		Migrations: config.DatabaseMigrationConfig{AutoMigrate: true},
	}

	cfg := FromCentralConfig(central)
	assert.Equal(t, 30, cfg.MaxOpenConns)
	assert.Equal(t, 6, cfg.MaxIdleConns)
	assert.Equal(t, 7, cfg.ConnMaxLifetimeMin)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=d sslmode=disable", NewDSN(central))
}
