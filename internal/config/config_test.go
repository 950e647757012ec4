package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "GEMINI_MODEL", "AI_CONTEXT_LIMIT", "ANALYTICS_BATCH_SIZE",
		"ANALYTICS_FLUSH_INTERVAL", "SESSION_TTL", "MCP_ENDPOINT", "ACCESS_TOKEN_EXPIRY", "SEED_PASSWORD"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 4000, cfg.AIContextLimit)
	assert.Equal(t, 10, cfg.AnalyticsBatchSize)
	assert.Equal(t, 5*time.Second, cfg.AnalyticsFlushInterval)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "/mcp", cfg.MCPEndpoint)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL())
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("ANALYTICS_BATCH_SIZE", "ten")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "ANALYTICS_BATCH_SIZE")

	t.Setenv("ANALYTICS_BATCH_SIZE", "")
	t.Setenv("SESSION_TTL", "-1h")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "SESSION_TTL")
}

func TestValidate(t *testing.T) {
	cfg := &Config{Env: "prod", MCPEndpoint: "/mcp"}
	_, err := cfg.Validate()
	assert.Error(t, err, "в prod пустой JWT_SECRET недопустим")

	cfg.Env = "dev"
	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Len(t, warnings, 3)

	cfg.JWTSecret = "s"
	cfg.DbHost, cfg.DbUser, cfg.DbName = "h", "u", "n"
	cfg.GeminiAPIKey = "k"
	cfg.SeedPassword = "strong"
	warnings, err = cfg.Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	cfg.MCPEndpoint = "mcp"
	_, err = cfg.Validate()
	assert.Error(t, err)
}

func TestGetDSNSafe_HidesPassword(t *testing.T) {
	cfg := &Config{DbUser: "u", DbPass: "secret", DbHost: "h", DbPort: "5432", DbName: "d", DbSSLMode: "disable"}
	assert.Contains(t, cfg.GetDSN(), "secret")
	assert.NotContains(t, cfg.GetDSNSafe(), "secret")
}
