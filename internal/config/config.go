package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Version is the seclog release version.
const Version = "0.3.0"

// Config holds all seclog configuration.
type Config struct {
	Source SourceConfig
	Engine EngineConfig
	Output OutputConfig

	LogLevel    string
	LogFile     string
	ShowVersion bool
}

// SourceConfig selects the event log backend and channel.
type SourceConfig struct {
	Provider   string // "wineventlog", "replay"
	Channel    string
	ReplayFile string
	BatchSize  int
	BufferSize int
}

// EngineConfig holds classification settings.
type EngineConfig struct {
	CatalogFile string // optional YAML override of the built-in catalog
	Timezone    string // IANA name or "Local"
}

// OutputConfig holds export settings.
type OutputConfig struct {
	ExportDir string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Source: SourceConfig{
			Provider:   getenv("SECLOG_SOURCE", DefaultProvider()),
			Channel:    getenv("SECLOG_CHANNEL", "Security"),
			ReplayFile: os.Getenv("SECLOG_REPLAY_FILE"),
			BatchSize:  getenvInt("SECLOG_BATCH_SIZE", 64),
			BufferSize: getenvInt("SECLOG_READ_BUFFER", 64*1024),
		},
		Engine: EngineConfig{
			CatalogFile: os.Getenv("SECLOG_CATALOG_FILE"),
			Timezone:    getenv("SECLOG_TIMEZONE", "Local"),
		},
		Output: OutputConfig{
			ExportDir: getenv("SECLOG_EXPORT_DIR", "."),
		},
		LogLevel: getenv("SECLOG_LOG_LEVEL", "info"),
		LogFile:  getenv("SECLOG_LOG_FILE", filepath.Join(os.TempDir(), "seclog.log")),
	}
}

// DefaultProvider is the native event log on Windows and replay elsewhere.
func DefaultProvider() string {
	if runtime.GOOS == "windows" {
		return "wineventlog"
	}
	return "replay"
}

// Location resolves Engine.Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Engine.Timezone == "" || strings.EqualFold(c.Engine.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Engine.Timezone)
}

// Validate checks all config values and returns every problem found.
func (c Config) Validate() error {
	var errs []error

	switch c.Source.Provider {
	case "wineventlog":
		if runtime.GOOS != "windows" {
			errs = append(errs, fmt.Errorf("source %q is only available on windows", c.Source.Provider))
		}
	case "replay":
		if c.Source.ReplayFile == "" {
			errs = append(errs, errors.New("SECLOG_REPLAY_FILE is required when source is replay"))
		} else if _, err := os.Stat(c.Source.ReplayFile); err != nil {
			errs = append(errs, fmt.Errorf("replay file: %w", err))
		}
	default:
		errs = append(errs, fmt.Errorf("source must be wineventlog or replay, got %q", c.Source.Provider))
	}

	if strings.TrimSpace(c.Source.Channel) == "" {
		errs = append(errs, errors.New("channel must not be empty"))
	}
	if c.Source.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("batch size must be positive, got %d", c.Source.BatchSize))
	}
	if c.Source.BufferSize < 1024 {
		errs = append(errs, fmt.Errorf("read buffer must be at least 1024 bytes, got %d", c.Source.BufferSize))
	}

	if c.Engine.CatalogFile != "" {
		if _, err := os.Stat(c.Engine.CatalogFile); err != nil {
			errs = append(errs, fmt.Errorf("catalog file: %w", err))
		}
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log level must be debug, info, warn or error, got %q", c.LogLevel))
	}

	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
