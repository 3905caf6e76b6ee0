package config

import "time"

// DefaultHTTPConfig returns the built-in HTTP server defaults.
func DefaultHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		Port:            "8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// DefaultLoggingConfig returns the built-in logging defaults.
func DefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level:  LogLevelInfo,
		Format: LogFormatJSON,
	}
}

// DefaultMaskingConfig enables both hooks and body logging, masking copies
// of request arguments.
func DefaultMaskingConfig() *MaskingConfig {
	return &MaskingConfig{
		InboundEnabled:  true,
		OutboundEnabled: true,
		OutboundLogBody: true,
	}
}

// DefaultPaginationConfig returns the built-in page size bounds.
func DefaultPaginationConfig() *PaginationConfig {
	return &PaginationConfig{
		DefaultSize: 20,
		MaxSize:     100,
	}
}
