package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STUDYPLAN_DATABASE_URL", "postgres://localhost:5432/studyplan")
	t.Setenv("STUDYPLAN_AUTH_JWT_SECRET", "test-secret-key-thats-32-chars-long")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 2, cfg.Task.WorkerCount)
	assert.Equal(t, 100, cfg.Task.QueueSize)
	assert.Equal(t, 30, cfg.Task.StuckTaskAgeMinutes)
	assert.Equal(t, []int{1, 7, 14, 21, 28}, cfg.Scheduler.ExamDayOffsets)
	assert.Equal(t, 30, cfg.Scheduler.FreeHorizonDays)
	assert.Equal(t, 2.0, cfg.Scheduler.ReviewHours)
	assert.Equal(t, 7.5, cfg.Scheduler.ExamHours)
	assert.Empty(t, cfg.Ingest.SourceSecretHash)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STUDYPLAN_SERVER_PORT", "9090")
	t.Setenv("STUDYPLAN_SERVER_LOG_LEVEL", "debug")
	t.Setenv("STUDYPLAN_INGEST_SOURCE_SECRET_HASH", "$2a$10$somehash")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "$2a$10$somehash", cfg.Ingest.SourceSecretHash)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("STUDYPLAN_DATABASE_URL", "")
		t.Setenv("STUDYPLAN_AUTH_JWT_SECRET", "test-secret-key-thats-32-chars-long")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("short jwt secret", func(t *testing.T) {
		t.Setenv("STUDYPLAN_DATABASE_URL", "postgres://localhost:5432/studyplan")
		t.Setenv("STUDYPLAN_AUTH_JWT_SECRET", "too-short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("bad log level", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("STUDYPLAN_SERVER_LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})
}
