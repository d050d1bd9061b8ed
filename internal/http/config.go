package http

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServerConfig struct {
	Host     string
	Timeouts struct {
		Read         time.Duration
		ReadHeader   time.Duration
		Write        time.Duration
		Idle         time.Duration
		ShutdownWait time.Duration
	}
}

func NewHTTPServerConfig() (*HTTPServerConfig, error) {
	err := godotenv.Load(`config.env`)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return httpServerConfigFromEnv(os.Getenv)
}

func httpServerConfigFromEnv(getenv func(string) string) (*HTTPServerConfig, error) {
	var errors []string
	cfg := &HTTPServerConfig{}

	cfg.Host = getenv("HTTP_SERVER_HOST")
	if cfg.Host == "" {
		errors = append(errors, "HTTP_SERVER_HOST is required")
	}

	parseDuration := func(envVar string) (time.Duration, error) {
		value := getenv(envVar)
		if value == "" {
			return 0, fmt.Errorf("%s is required", envVar)
		}
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("%s: invalid duration format: %w", envVar, err)
		}
		return duration, nil
	}

	timeouts := []struct {
		envVar string
		target *time.Duration
	}{
		{"HTTP_APP_READ_TIMEOUT_DURATION", &cfg.Timeouts.Read},
		{"HTTP_APP_READ_HEADER_TIMEOUT_DURATION", &cfg.Timeouts.ReadHeader},
		{"HTTP_APP_WRITE_TIMEOUT_DURATION", &cfg.Timeouts.Write},
		{"HTTP_APP_IDLE_TIMEOUT_DURATION", &cfg.Timeouts.Idle},
		{"HTTP_APP_SHUTDOWN_TIMEOUT_DURATION", &cfg.Timeouts.ShutdownWait},
	}
	for _, t := range timeouts {
		dur, err := parseDuration(t.envVar)
		if err != nil {
			errors = append(errors, err.Error())
			continue
		}
		*t.target = dur
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return cfg, nil
}
