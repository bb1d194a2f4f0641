package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "TICK_INTERVAL", "MAX_TICK_DELTA",
		"PRICE_FLOOR", "FEED_BUFFER", "LEDGER_PATH", "SEED_FILE",
		"READ_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.TickInterval != 1*time.Second {
		t.Errorf("TickInterval = %v, want 1s", cfg.TickInterval)
	}
	if cfg.MaxTickDelta != 500 {
		t.Errorf("MaxTickDelta = %d, want 500", cfg.MaxTickDelta)
	}
	if cfg.PriceFloor != 1000 {
		t.Errorf("PriceFloor = %d, want 1000", cfg.PriceFloor)
	}
	if cfg.FeedBuffer != 4 {
		t.Errorf("FeedBuffer = %d, want 4", cfg.FeedBuffer)
	}
	if cfg.LedgerPath != "stocksim.db" {
		t.Errorf("LedgerPath = %q, want stocksim.db", cfg.LedgerPath)
	}
	if cfg.SeedFile != "" {
		t.Errorf("SeedFile = %q, want empty", cfg.SeedFile)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != 10*time.Second {
		t.Errorf("WriteTimeout = %v, want 10s", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Errorf("IdleTimeout = %v, want 60s", cfg.IdleTimeout)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TICK_INTERVAL", "250ms")
	t.Setenv("MAX_TICK_DELTA", "200")
	t.Setenv("PRICE_FLOOR", "50")
	t.Setenv("FEED_BUFFER", "16")
	t.Setenv("LEDGER_PATH", "/tmp/ledger.db")
	t.Setenv("SEED_FILE", "seed.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %v, want 250ms", cfg.TickInterval)
	}
	if cfg.MaxTickDelta != 200 {
		t.Errorf("MaxTickDelta = %d, want 200", cfg.MaxTickDelta)
	}
	if cfg.PriceFloor != 50 {
		t.Errorf("PriceFloor = %d, want 50", cfg.PriceFloor)
	}
	if cfg.FeedBuffer != 16 {
		t.Errorf("FeedBuffer = %d, want 16", cfg.FeedBuffer)
	}
	if cfg.LedgerPath != "/tmp/ledger.db" {
		t.Errorf("LedgerPath = %q, want /tmp/ledger.db", cfg.LedgerPath)
	}
	if cfg.SeedFile != "seed.yaml" {
		t.Errorf("SeedFile = %q, want seed.yaml", cfg.SeedFile)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid PORT")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid LOG_LEVEL")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key string
		val string
	}{
		{"TICK_INTERVAL", "not-a-duration"},
		{"TICK_INTERVAL", "0s"},
		{"TICK_INTERVAL", "-1s"},
		{"MAX_TICK_DELTA", "abc"},
		{"MAX_TICK_DELTA", "0"},
		{"PRICE_FLOOR", "-5"},
		{"FEED_BUFFER", "0"},
		{"READ_TIMEOUT", "not-a-duration"},
		{"WRITE_TIMEOUT", "not-a-duration"},
		{"IDLE_TIMEOUT", "not-a-duration"},
		{"SHUTDOWN_TIMEOUT", "not-a-duration"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.val, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}
