// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// AppConfig provides application-level settings.
type AppConfig interface {
	GetEnv() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetReadTimeout() time.Duration
	GetWriteTimeout() time.Duration
	GetIdleTimeout() time.Duration
	GetShutdownTimeout() time.Duration
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// RateLimitConfig provides settings for the public API rate limiter.
type RateLimitConfig interface {
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// PresetsConfig provides settings for the input schema presets file.
type PresetsConfig interface {
	GetPresetsPath() string
	IsPresetsWatchEnabled() bool
}

// StreamConfig provides settings for live diagnostic stream sessions.
type StreamConfig interface {
	GetStreamMaxSessions() int
	GetStreamWriteTimeout() time.Duration
	GetStreamPingInterval() time.Duration
	GetStreamMaxMessageBytes() int64
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	IdleTimeout           time.Duration
	ShutdownTimeout       time.Duration
	CORSAllowAll          bool
	CORSOrigins           []string
	RateLimitRPS          float64
	RateLimitBurst        int
	PresetsPath           string
	PresetsWatch          bool
	StreamMaxSessions     int
	StreamWriteTimeout    time.Duration
	StreamPingInterval    time.Duration
	StreamMaxMessageBytes int64
}

// =============================================================================
// Interface Implementations
// =============================================================================

// AppConfig implementation
func (c *Config) GetEnv() string { return c.Env }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string               { return c.HTTPAddr }
func (c *Config) GetReadTimeout() time.Duration     { return c.ReadTimeout }
func (c *Config) GetWriteTimeout() time.Duration    { return c.WriteTimeout }
func (c *Config) GetIdleTimeout() time.Duration     { return c.IdleTimeout }
func (c *Config) GetShutdownTimeout() time.Duration { return c.ShutdownTimeout }
func (c *Config) GetCORSAllowAll() bool             { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string          { return c.CORSOrigins }

// RateLimitConfig implementation
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// PresetsConfig implementation
func (c *Config) GetPresetsPath() string      { return c.PresetsPath }
func (c *Config) IsPresetsWatchEnabled() bool { return c.PresetsWatch }

// StreamConfig implementation
func (c *Config) GetStreamMaxSessions() int            { return c.StreamMaxSessions }
func (c *Config) GetStreamWriteTimeout() time.Duration { return c.StreamWriteTimeout }
func (c *Config) GetStreamPingInterval() time.Duration { return c.StreamPingInterval }
func (c *Config) GetStreamMaxMessageBytes() int64      { return c.StreamMaxMessageBytes }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:           mustDuration(getEnv("HTTP_READ_TIMEOUT", "10s")),
		WriteTimeout:          mustDuration(getEnv("HTTP_WRITE_TIMEOUT", "15s")),
		IdleTimeout:           mustDuration(getEnv("HTTP_IDLE_TIMEOUT", "60s")),
		ShutdownTimeout:       mustDuration(getEnv("HTTP_SHUTDOWN_TIMEOUT", "10s")),
		CORSAllowAll:          corsAllowAll,
		CORSOrigins:           corsOrigins,
		RateLimitRPS:          mustFloat(getEnv("RATE_LIMIT_RPS", "20")),
		RateLimitBurst:        mustInt(getEnv("RATE_LIMIT_BURST", "40")),
		PresetsPath:           getEnv("PRESETS_PATH", "config/presets.yaml"),
		PresetsWatch:          strings.EqualFold(getEnv("PRESETS_WATCH", "true"), "true"),
		StreamMaxSessions:     mustInt(getEnv("STREAM_MAX_SESSIONS", "512")),
		StreamWriteTimeout:    mustDuration(getEnv("STREAM_WRITE_TIMEOUT", "10s")),
		StreamPingInterval:    mustDuration(getEnv("STREAM_PING_INTERVAL", "30s")),
		StreamMaxMessageBytes: mustInt64(getEnv("STREAM_MAX_MESSAGE_BYTES", "4096")),
	}

	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if cfg.PresetsPath == "" {
		return nil, fmt.Errorf("PRESETS_PATH is required")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be a positive duration")
	}
	if cfg.StreamMaxSessions <= 0 {
		return nil, fmt.Errorf("STREAM_MAX_SESSIONS must be positive")
	}
	if cfg.StreamPingInterval <= 0 || cfg.StreamWriteTimeout <= 0 {
		return nil, fmt.Errorf("stream timeouts must be positive durations")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
