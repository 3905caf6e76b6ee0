package config

import (
	"fmt"
	"strconv"
)

// ConfigValidator validates configuration with clear error messages
type ConfigValidator struct {
	cfg *Config
}

// NewValidator creates a validator for the given configuration
func NewValidator(cfg *Config) *ConfigValidator {
	return &ConfigValidator{cfg: cfg}
}

// ValidateAll performs validation section by section (fail-fast, stops at
// the first error)
func (v *ConfigValidator) ValidateAll() error {
	if err := v.validateHTTP(); err != nil {
		return err
	}
	if err := v.validateLogging(); err != nil {
		return err
	}
	if err := v.validateMasking(); err != nil {
		return err
	}
	return v.validatePagination()
}

func (v *ConfigValidator) validateHTTP() error {
	h := v.cfg.HTTP
	port, err := strconv.Atoi(h.Port)
	if err != nil || port < 1 || port > 65535 {
		return NewValidationError("http", "port", fmt.Errorf("%w: %q is not a TCP port", ErrInvalidValue, h.Port))
	}
	if h.ReadTimeout <= 0 {
		return NewValidationError("http", "read_timeout", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	if h.WriteTimeout <= 0 {
		return NewValidationError("http", "write_timeout", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	if h.ShutdownTimeout <= 0 {
		return NewValidationError("http", "shutdown_timeout", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	return nil
}

func (v *ConfigValidator) validateLogging() error {
	l := v.cfg.Logging
	if !l.Level.IsValid() {
		return NewValidationError("logging", "level", fmt.Errorf("%w: %q", ErrInvalidValue, l.Level))
	}
	if !l.Format.IsValid() {
		return NewValidationError("logging", "format", fmt.Errorf("%w: %q", ErrInvalidValue, l.Format))
	}
	return nil
}

func (v *ConfigValidator) validateMasking() error {
	m := v.cfg.Masking
	if m.InboundInPlace && !m.InboundEnabled {
		return NewValidationError("masking", "inbound.in_place",
			fmt.Errorf("%w: requires inbound masking to be enabled", ErrInvalidValue))
	}
	return nil
}

func (v *ConfigValidator) validatePagination() error {
	p := v.cfg.Pagination
	if p.DefaultSize < 1 {
		return NewValidationError("pagination", "default_size", fmt.Errorf("%w: must be at least 1", ErrInvalidValue))
	}
	if p.MaxSize < p.DefaultSize {
		return NewValidationError("pagination", "max_size",
			fmt.Errorf("%w: %d is below default_size %d", ErrInvalidValue, p.MaxSize, p.DefaultSize))
	}
	return nil
}
