package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var validate = validator.New()

type AppConfig struct {
	// DataSource is a local CSV path or an http(s) URL.
	DataSource string `validate:"required"`

	HTTPTimeout time.Duration `validate:"gt=0"`

	// ReloadInterval controls how often the dataset is re-read (0 = load once).
	ReloadInterval time.Duration `validate:"gte=0"`

	// In-memory store retention.
	StoreMaxHistory int           `validate:"gte=0"` // max number of loads kept (0 = unlimited)
	StoreMaxAge     time.Duration `validate:"gte=0"` // max age of kept loads (0 = unlimited)

	// ChartOutput, when set, renders the chart once to this path and skips the server.
	ChartOutput string

	LogLevel log.Level

	Port string `validate:"required,numeric"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DataSource = getenvDefault("DATA_SOURCE", "weather.csv")
	cfg.ChartOutput = os.Getenv("CHART_OUTPUT")
	cfg.Port = getenvDefault("PORT", "8080")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.ReloadInterval, err = getenvDuration("RELOAD_INTERVAL", "0s"); err != nil {
		return nil, err
	}

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 10)
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
