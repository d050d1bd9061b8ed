package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPServerConfigFromEnv(t *testing.T) {
	values := map[string]string{
		"HTTP_SERVER_HOST":                      ":8080",
		"HTTP_APP_READ_TIMEOUT_DURATION":        "5s",
		"HTTP_APP_READ_HEADER_TIMEOUT_DURATION": "2s",
		"HTTP_APP_WRITE_TIMEOUT_DURATION":       "10s",
		"HTTP_APP_IDLE_TIMEOUT_DURATION":        "1m",
		"HTTP_APP_SHUTDOWN_TIMEOUT_DURATION":    "15s",
	}

	cfg, err := httpServerConfigFromEnv(func(k string) string { return values[k] })
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Host)
	assert.Equal(t, 5*time.Second, cfg.Timeouts.Read)
	assert.Equal(t, 2*time.Second, cfg.Timeouts.ReadHeader)
	assert.Equal(t, 10*time.Second, cfg.Timeouts.Write)
	assert.Equal(t, time.Minute, cfg.Timeouts.Idle)
	assert.Equal(t, 15*time.Second, cfg.Timeouts.ShutdownWait)
}

func TestHTTPServerConfigFromEnv_Invalid(t *testing.T) {
	values := map[string]string{
		"HTTP_APP_READ_TIMEOUT_DURATION": "fast",
	}

	_, err := httpServerConfigFromEnv(func(k string) string { return values[k] })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_SERVER_HOST is required")
	assert.Contains(t, err.Error(), "HTTP_APP_READ_TIMEOUT_DURATION: invalid duration format")
	assert.Contains(t, err.Error(), "HTTP_APP_SHUTDOWN_TIMEOUT_DURATION is required")
}
