package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, 100, cfg.RateRPS)
	assert.False(t, cfg.Migrate)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("RATE_RPS", "25")
	t.Setenv("APP_MIGRATE", "true")

	cfg := Load()
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, 25, cfg.RateRPS)
	assert.True(t, cfg.Migrate)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("RATE_RPS", "lots")
	assert.Equal(t, 100, Load().RateRPS)
}
