package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_NAME", "torneos")
	t.Setenv("DB_USER", "liga")
	t.Setenv("DB_PASSWORD", "s3cr3t")
	t.Setenv("JWT_SECRET", "clave-de-prueba")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "24h0m0s", cfg.JWTExpiresIn.String())
	assert.False(t, cfg.R2Enabled())
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRejectsBadPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveExpiry(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_EXPIRES_IN", "-1h")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseURLEscapesCredentials(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.internal",
		DBPort:     5433,
		DBName:     "torneos",
		DBUser:     "liga",
		DBPassword: "p@ss/word",
		DBSSLMode:  "require",
	}

	dsn := cfg.DatabaseURL()
	assert.Contains(t, dsn, "db.internal:5433/torneos")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word")
}
