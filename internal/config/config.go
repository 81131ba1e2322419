package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	ServerWSURL string

	RedisURL    string
	DatabaseURL string

	StatusAddr string

	MessageDir string

	ReconnectAttempts int
	ReconnectDelay    time.Duration
	DialTimeout       time.Duration
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		ReconnectAttempts: 5,
		ReconnectDelay:    time.Second,
		DialTimeout:       10 * time.Second,
	}

	cfg.ServerWSURL = strings.TrimSpace(os.Getenv("SERVER_WS_URL"))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.StatusAddr = strings.TrimSpace(os.Getenv("STATUS_ADDR"))
	cfg.MessageDir = strings.TrimSpace(os.Getenv("MESSAGE_DIR"))

	if v := strings.TrimSpace(os.Getenv("RECONNECT_ATTEMPTS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ReconnectAttempts = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("RECONNECT_DELAY")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ReconnectDelay = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("DIAL_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.DialTimeout = d
		}
	}

	if cfg.ServerWSURL == "" {
		return nil, errors.New("SERVER_WS_URL is required")
	}

	return cfg, nil
}
