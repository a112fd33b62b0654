// Package config loads server and CLI settings from defaults, an optional
// YAML file, environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings.
type Config struct {
	// ServerAddr is the HTTP listen address.
	ServerAddr string `yaml:"server_addr,omitempty"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty"`
	// LogFormat is "console" or "json".
	LogFormat string `yaml:"log_format,omitempty"`
	// SessionTTL is how long an idle session is kept.
	SessionTTL time.Duration `yaml:"session_ttl,omitempty"`
	// MaxUploadBytes caps the size of an uploaded workbook.
	MaxUploadBytes int64 `yaml:"max_upload_bytes,omitempty"`
	// TimestampColumn names the reserved last-modified column.
	TimestampColumn string `yaml:"timestamp_column,omitempty"`
	// FilterColumn is the categorical column used for filtering and counts.
	FilterColumn string `yaml:"filter_column,omitempty"`
	// TreemapPath lists the columns of the treemap hierarchy, outermost first.
	TreemapPath []string `yaml:"treemap_path,omitempty"`
	// DownloadName is the file name offered for exports.
	DownloadName string `yaml:"download_name,omitempty"`
}

// Environment variable names.
const (
	EnvConfig          = "ROSTERGRID_CONFIG"
	EnvAddr            = "ROSTERGRID_ADDR"
	EnvLogLevel        = "ROSTERGRID_LOG_LEVEL"
	EnvLogFormat       = "ROSTERGRID_LOG_FORMAT"
	EnvSessionTTL      = "ROSTERGRID_SESSION_TTL"
	EnvMaxUploadBytes  = "ROSTERGRID_MAX_UPLOAD_BYTES"
	EnvTimestampColumn = "ROSTERGRID_TIMESTAMP_COLUMN"
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ServerAddr:      ":8080",
		LogLevel:        "info",
		LogFormat:       "console",
		SessionTTL:      2 * time.Hour,
		MaxUploadBytes:  32 << 20,
		TimestampColumn: "updated_on",
		FilterColumn:    "Team Manager",
		TreemapPath:     []string{"Team Manager", "Name"},
		DownloadName:    "updated_data.xlsx",
	}
}

// Load builds a Config from defaults, the YAML file at path (or the one
// named by ROSTERGRID_CONFIG when path is empty) and the environment.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.mergeEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() {
	c.ServerAddr = getEnv(EnvAddr, c.ServerAddr)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
	c.LogFormat = getEnv(EnvLogFormat, c.LogFormat)
	c.SessionTTL = getEnvDuration(EnvSessionTTL, c.SessionTTL)
	c.MaxUploadBytes = getEnvInt64(EnvMaxUploadBytes, c.MaxUploadBytes)
	c.TimestampColumn = getEnv(EnvTimestampColumn, c.TimestampColumn)
}

// Validate reports settings the server cannot run with.
func (c *Config) Validate() error {
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.TimestampColumn == "" {
		return errors.New("timestamp_column must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// Flag names registered by RegisterFlags.
const (
	FlagAddr            = "addr"
	FlagLogLevel        = "log-level"
	FlagLogFormat       = "log-format"
	FlagSessionTTL      = "session-ttl"
	FlagTimestampColumn = "timestamp-column"
	FlagFilterColumn    = "filter-column"
)

// RegisterFlags adds the overridable settings to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagAddr, d.ServerAddr, "HTTP listen address")
	fs.String(FlagLogLevel, d.LogLevel, "Log level: debug, info, warn, error")
	fs.String(FlagLogFormat, d.LogFormat, "Log format: console, json")
	fs.Duration(FlagSessionTTL, d.SessionTTL, "Idle session lifetime")
	fs.String(FlagTimestampColumn, d.TimestampColumn, "Name of the last-modified column")
	fs.String(FlagFilterColumn, d.FilterColumn, "Column used for filtering and counts")
}

// ApplyFlags copies explicitly set flags from fs onto c.
// Flags that were not registered or not changed are ignored.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) {
	if fs.Changed(FlagAddr) {
		c.ServerAddr, _ = fs.GetString(FlagAddr)
	}
	if fs.Changed(FlagLogLevel) {
		c.LogLevel, _ = fs.GetString(FlagLogLevel)
	}
	if fs.Changed(FlagLogFormat) {
		c.LogFormat, _ = fs.GetString(FlagLogFormat)
	}
	if fs.Changed(FlagSessionTTL) {
		c.SessionTTL, _ = fs.GetDuration(FlagSessionTTL)
	}
	if fs.Changed(FlagTimestampColumn) {
		c.TimestampColumn, _ = fs.GetString(FlagTimestampColumn)
	}
	if fs.Changed(FlagFilterColumn) {
		c.FilterColumn, _ = fs.GetString(FlagFilterColumn)
	}
}
