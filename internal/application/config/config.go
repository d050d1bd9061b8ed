package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"website_speed_test/internal/domain/adaptors"

	"github.com/joho/godotenv"
)

const (
	defaultSpeedTestAPIURL  = `http://localhost:8000`
	defaultSpeedTestTimeout = 2 * time.Minute
	defaultWorkers          = 4
	defaultViewIdleTTL      = 30 * time.Minute
)

type AppConfig struct {
	LogLevel    string
	DebugMode   bool
	MetricsHost string
	PprofHost   string

	SpeedTestAPIURL  string
	SpeedTestTimeout time.Duration
	SpeedTestWorkers int
	ViewIdleTTL      time.Duration
}

// NewAppConfig loads config.env, when present, into the environment and
// reads the application settings from it.
func NewAppConfig() (*AppConfig, error) {
	err := godotenv.Load(`config.env`)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*AppConfig, error) {
	var errMsg []string

	cfg := AppConfig{}
	cfg.LogLevel = getenv("APP_LOG_LEVEL")
	cfg.DebugMode = getenv("APP_ENABLE_DEBUG") == "true"
	cfg.MetricsHost = getenv("HTTP_APP_METRICS_HOST")
	cfg.PprofHost = orDefault(getenv("HTTP_APP_PPROF_HOST"), `:6060`)
	cfg.SpeedTestAPIURL = orDefault(getenv("SPEEDTEST_API_URL"), defaultSpeedTestAPIURL)

	duration := func(key string, fallback time.Duration) time.Duration {
		value := getenv(key)
		if value == "" {
			return fallback
		}
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			errMsg = append(errMsg, fmt.Sprintf(`%s: invalid duration %q`, key, value))
			return fallback
		}
		return d
	}
	cfg.SpeedTestTimeout = duration("SPEEDTEST_TIMEOUT_DURATION", defaultSpeedTestTimeout)
	cfg.ViewIdleTTL = duration("VIEW_IDLE_TTL_DURATION", defaultViewIdleTTL)

	cfg.SpeedTestWorkers = defaultWorkers
	if value := getenv("SPEEDTEST_WORKERS"); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 100 {
			errMsg = append(errMsg, fmt.Sprintf(`SPEEDTEST_WORKERS must be 1-100, got %q`, value))
		} else {
			cfg.SpeedTestWorkers = n
		}
	}

	errMsg = append(errMsg, validate(&cfg)...)
	if len(errMsg) != 0 {
		return nil, fmt.Errorf(`validation failed: %s`, strings.Join(errMsg, "\n"))
	}

	return &cfg, nil
}

func validate(cfg *AppConfig) []string {
	var errMsg []string
	if cfg.LogLevel == "" {
		errMsg = append(errMsg, `log level is empty`)
	} else if !adaptors.LogLevel(strings.ToLower(cfg.LogLevel)).Valid() {
		errMsg = append(errMsg, fmt.Sprintf(`log level %q is not supported`, cfg.LogLevel))
	}

	if cfg.MetricsHost == "" {
		errMsg = append(errMsg, `metrics host is empty`)
	}

	u, err := url.Parse(cfg.SpeedTestAPIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errMsg = append(errMsg, fmt.Sprintf(`speed test api url %q is invalid`, cfg.SpeedTestAPIURL))
	}
	return errMsg
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
