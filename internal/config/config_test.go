package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClientDefaults(t *testing.T) {
	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, SessionBackendSQLite, cfg.SessionBackend)
	assert.Equal(t, uint32(5), cfg.BreakerFailures)
}

func TestLoadClientOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "https://shop.example.com")
	t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "2s")
	t.Setenv("STOREFRONT_SESSION_BACKEND", "redis")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", cfg.APIURL)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, SessionBackendRedis, cfg.SessionBackend)
}

func TestLoadClientUnknownBackend(t *testing.T) {
	t.Setenv("STOREFRONT_SESSION_BACKEND", "cookies")

	_, err := LoadClient()
	require.ErrorContains(t, err, "unknown session backend")
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "soon")

	_, err := LoadClient()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parse env:"))
}

func TestLoadFakeShopDefaults(t *testing.T) {
	cfg, err := LoadFakeShop()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}
