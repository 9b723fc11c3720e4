package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.SummarizerURL)
	assert.Equal(t, 3*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 1*time.Minute, cfg.MetricsInterval)
	assert.Equal(t, 45*time.Second, cfg.ActivityInterval)
	assert.Equal(t, 512, cfg.MaxClients)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("REFRESH_INTERVAL", "10s")
	t.Setenv("MAX_CLIENTS", "7")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 7, cfg.MaxClients)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("METRICS_INTERVAL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "METRICS_INTERVAL")
}

func TestLoad_NegativeInterval(t *testing.T) {
	t.Setenv("ACTIVITY_INTERVAL", "-5s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACTIVITY_INTERVAL")
}

func TestLoad_InvalidMaxClients(t *testing.T) {
	t.Setenv("MAX_CLIENTS", "zero")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_CLIENTS")
}

func TestLoad_ZeroMaxClientsRejected(t *testing.T) {
	t.Setenv("MAX_CLIENTS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_CLIENTS")
}
