package config

import (
	"testing"
	"time"
)

func TestLoadRequiresServerURL(t *testing.T) {
	t.Setenv("SERVER_WS_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without SERVER_WS_URL")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_WS_URL", "ws://localhost:9000/ws")
	t.Setenv("RECONNECT_ATTEMPTS", "")
	t.Setenv("RECONNECT_DELAY", "")
	t.Setenv("DIAL_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ReconnectAttempts != 5 || cfg.ReconnectDelay != time.Second || cfg.DialTimeout != 10*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_WS_URL", " ws://localhost:9000/ws ")
	t.Setenv("RECONNECT_ATTEMPTS", "2")
	t.Setenv("RECONNECT_DELAY", "250ms")
	t.Setenv("DIAL_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerWSURL != "ws://localhost:9000/ws" {
		t.Fatalf("url not trimmed: %q", cfg.ServerWSURL)
	}
	if cfg.ReconnectAttempts != 2 || cfg.ReconnectDelay != 250*time.Millisecond || cfg.DialTimeout != 3*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadIgnoresInvalidOverrides(t *testing.T) {
	t.Setenv("SERVER_WS_URL", "ws://localhost:9000/ws")
	t.Setenv("RECONNECT_ATTEMPTS", "-3")
	t.Setenv("RECONNECT_DELAY", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ReconnectAttempts != 5 || cfg.ReconnectDelay != time.Second {
		t.Fatalf("invalid overrides leaked in: %+v", cfg)
	}
}
