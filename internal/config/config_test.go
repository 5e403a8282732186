package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"RINKSIDE_API_URL", "RINKSIDE_HTTP_TIMEOUT", "DEVSERVER_ADDR", "DATABASE_URL", "JWT_SECRET", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Client.APIURL)
	assert.Equal(t, DefaultTimeout, cfg.Client.Timeout)
	assert.Equal(t, ":8080", cfg.DevServer.Addr)
	assert.Equal(t, "file::memory:?cache=shared", cfg.DevServer.DatabaseURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RINKSIDE_API_URL", "http://rink.local:8080")
	t.Setenv("RINKSIDE_HTTP_TIMEOUT", "5s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://rink.local:8080", cfg.Client.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Chdir(t.TempDir())

	for _, raw := range []string{"soon", "-1s", "0s"} {
		t.Setenv("RINKSIDE_HTTP_TIMEOUT", raw)
		_, err := Load()
		assert.Error(t, err, raw)
	}
}
