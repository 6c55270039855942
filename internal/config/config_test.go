package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.AppEnv)
	assert.Equal(t, "fpl-assistant", cfg.ServiceName)
	assert.Equal(t, ".fpl-cache", cfg.CacheDir)
	assert.Equal(t, 4, cfg.CacheTTLHours)
	assert.Equal(t, "https://fantasy.premierleague.com/api", cfg.FPLBaseURL)
	assert.Equal(t, 30*time.Second, cfg.FPLTimeout)
	assert.Equal(t, 3, cfg.FPLMaxRetries)
	assert.True(t, cfg.FPLCircuitEnabled)
	assert.Equal(t, MCPTransportStdio, cfg.MCPTransport)
	assert.Equal(t, ":8000", cfg.WebAddr)
	assert.Equal(t, "http://localhost:8000", cfg.PublicBaseURL)
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("FPL_CACHE_TTL_HOURS", "12")
	t.Setenv("FPL_API_BASE_URL", "https://example.test/api/")
	t.Setenv("MCP_TRANSPORT", "http")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REFRESH_WORKERS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.AppEnv)
	assert.Equal(t, 12, cfg.CacheTTLHours)
	assert.Equal(t, "https://example.test/api", cfg.FPLBaseURL)
	assert.Equal(t, MCPTransportHTTP, cfg.MCPTransport)
	assert.Equal(t, logging.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 1, cfg.RefreshWorkers, "worker count clamps to at least one")
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("APP_ENV", "dev")
	t.Setenv("MCP_TRANSPORT", "websocket")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("MCP_TRANSPORT", "stdio")
	t.Setenv("FPL_CACHE_TTL_HOURS", "0")
	_, err = Load()
	require.Error(t, err)
}
