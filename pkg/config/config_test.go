package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/pkg/config"
)

func TestLoad_SinSecretoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ValoresDesdeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SESSION_EXPIRATION_HOURS", "2")
	t.Setenv("SESSION_SECURE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Session.Expiration)
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t, "clinic_session", cfg.Session.CookieName)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "clinica", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/clinica?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
