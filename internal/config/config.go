package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the simulator.
type Config struct {
	Port            int
	LogLevel        string
	TickInterval    time.Duration
	MaxTickDelta    int64 // cents, bound of the per-tick random walk
	PriceFloor      int64 // cents, minimum price after a tick
	FeedBuffer      int   // snapshots buffered per feed subscriber
	LedgerPath      string
	SeedFile        string // empty means built-in seed set
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	tickInterval, err := getDuration("TICK_INTERVAL", 1*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid TICK_INTERVAL: %w", err)
	}
	if tickInterval <= 0 {
		return nil, fmt.Errorf("invalid TICK_INTERVAL: must be > 0")
	}

	maxTickDelta, err := getInt64("MAX_TICK_DELTA", 500)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_TICK_DELTA: %w", err)
	}
	if maxTickDelta <= 0 {
		return nil, fmt.Errorf("invalid MAX_TICK_DELTA: must be > 0")
	}

	priceFloor, err := getInt64("PRICE_FLOOR", 1000)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICE_FLOOR: %w", err)
	}
	if priceFloor <= 0 {
		return nil, fmt.Errorf("invalid PRICE_FLOOR: must be > 0")
	}

	feedBuffer, err := getInt("FEED_BUFFER", 4)
	if err != nil {
		return nil, fmt.Errorf("invalid FEED_BUFFER: %w", err)
	}
	if feedBuffer < 1 {
		return nil, fmt.Errorf("invalid FEED_BUFFER: must be >= 1")
	}

	readTimeout, err := getDuration("READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := getDuration("WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := getDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Port:            port,
		LogLevel:        logLevel,
		TickInterval:    tickInterval,
		MaxTickDelta:    maxTickDelta,
		PriceFloor:      priceFloor,
		FeedBuffer:      feedBuffer,
		LedgerPath:      getStr("LEDGER_PATH", "stocksim.db"),
		SeedFile:        getStr("SEED_FILE", ""),
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		IdleTimeout:     idleTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getInt64(key string, defaultVal int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
