// Package config handles acktool configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/ackasset/internal/logger"
)

// Device backends.
const (
	BackendMemory = "memory"
	BackendGL     = "gl"
)

// Config holds all acktool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Device  DeviceConfig  `yaml:"device"`
	Limits  LimitsConfig  `yaml:"limits"`
	Library LibraryConfig `yaml:"library"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DeviceConfig selects the graphics device textures are uploaded to.
type DeviceConfig struct {
	Backend string `yaml:"backend"` // memory or gl
	// Size of the hidden window that owns the GL context.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LimitsConfig bounds what a decode may allocate.
type LimitsConfig struct {
	MaxPayloadMB int `yaml:"max_payload_mb"`
}

// LibraryConfig lists where asset files are looked up.
type LibraryConfig struct {
	Roots   []string `yaml:"roots"`
	CacheMB int      `yaml:"cache_mb"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Device: DeviceConfig{
			Backend: BackendMemory,
			Width:   64,
			Height:  64,
		},
		Limits: LimitsConfig{
			MaxPayloadMB: 256,
		},
		Library: LibraryConfig{
			Roots:   []string{"."},
			CacheMB: 64,
		},
	}
}

// MaxPayloadBytes returns the bitmap payload limit in bytes.
func (c *Config) MaxPayloadBytes() int64 {
	return int64(c.Limits.MaxPayloadMB) << 20
}

// CacheBytes returns the library cache budget in bytes.
func (c *Config) CacheBytes() int64 {
	return int64(c.Library.CacheMB) << 20
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Device.Backend {
	case BackendMemory, BackendGL:
	default:
		return fmt.Errorf("device.backend: unknown backend %q (want %s or %s)",
			c.Device.Backend, BackendMemory, BackendGL)
	}
	if c.Device.Width <= 0 || c.Device.Height <= 0 {
		return fmt.Errorf("device: window size %dx%d must be positive", c.Device.Width, c.Device.Height)
	}
	if c.Limits.MaxPayloadMB <= 0 {
		return fmt.Errorf("limits.max_payload_mb: %d must be positive", c.Limits.MaxPayloadMB)
	}
	if c.Library.CacheMB < 0 {
		return fmt.Errorf("library.cache_mb: %d must not be negative", c.Library.CacheMB)
	}
	return nil
}
