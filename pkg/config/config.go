package config

import (
	"time"

	"github.com/dj/customer-service/pkg/masking"
)

// Config is the umbrella configuration object returned by Initialize and
// used throughout the application.
type Config struct {
	configDir string // Configuration directory path (for reference)

	HTTP       *HTTPConfig
	Logging    *LoggingConfig
	Masking    *MaskingConfig
	Pagination *PaginationConfig
}

// HTTPConfig holds API server settings.
type HTTPConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig holds slog handler settings.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MaskingConfig holds the request and response masking hook settings.
type MaskingConfig struct {
	// InboundEnabled masks request arguments before they are logged.
	InboundEnabled bool
	// InboundInPlace hands masked arguments to business logic instead of
	// logging a masked copy.
	InboundInPlace bool
	// OutboundEnabled masks response bodies before serialization.
	OutboundEnabled bool
	// OutboundLogBody logs each successfully masked response body at info.
	OutboundLogBody bool
}

// PaginationConfig bounds customer search page sizes.
type PaginationConfig struct {
	DefaultSize int `yaml:"default_size"`
	MaxSize     int `yaml:"max_size"`
}

// ConfigDir returns the configuration directory path
func (c *Config) ConfigDir() string {
	return c.configDir
}

// MaskingServiceConfig converts the masking section into the hook settings
// used by masking.NewService.
func (c *Config) MaskingServiceConfig() masking.Config {
	m := c.Masking
	return masking.Config{
		Inbound: masking.InboundConfig{
			Enabled: m.InboundEnabled,
			InPlace: m.InboundInPlace,
		},
		Outbound: masking.OutboundConfig{
			Enabled: m.OutboundEnabled,
			LogBody: m.OutboundLogBody,
		},
	}
}
