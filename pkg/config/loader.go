package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the config directory.
const FileName = "customer-service.yaml"

// ServiceYAMLConfig represents the complete customer-service.yaml file structure
type ServiceYAMLConfig struct {
	HTTP       *HTTPConfig        `yaml:"http"`
	Logging    *LoggingConfig     `yaml:"logging"`
	Masking    *MaskingYAMLConfig `yaml:"masking"`
	Pagination *PaginationConfig  `yaml:"pagination"`
}

// MaskingYAMLConfig holds masking settings from YAML. Pointers distinguish
// an explicit false from an omitted key.
type MaskingYAMLConfig struct {
	Inbound  *InboundMaskingYAMLConfig  `yaml:"inbound"`
	Outbound *OutboundMaskingYAMLConfig `yaml:"outbound"`
}

// InboundMaskingYAMLConfig holds request masking settings from YAML.
type InboundMaskingYAMLConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	InPlace *bool `yaml:"in_place,omitempty"`
}

// OutboundMaskingYAMLConfig holds response masking settings from YAML.
type OutboundMaskingYAMLConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	LogBody *bool `yaml:"log_body,omitempty"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
// This is the primary entry point for configuration loading.
//
// Steps performed:
//  1. Load customer-service.yaml from configDir (optional)
//  2. Expand environment variables
//  3. Parse YAML into structs
//  4. Merge user values over built-in defaults
//  5. Validate all configuration
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Info("Configuration initialized successfully",
		"http_port", cfg.HTTP.Port,
		"log_level", cfg.Logging.Level,
		"inbound_masking", cfg.Masking.InboundEnabled,
		"outbound_masking", cfg.Masking.OutboundEnabled)

	return cfg, nil
}

// load is the internal loader (not exported)
func load(_ context.Context, configDir string) (*Config, error) {
	info, err := os.Stat(configDir)
	if err != nil || !info.IsDir() {
		return nil, NewLoadError(configDir, fmt.Errorf("%w: %s", ErrConfigNotFound, configDir))
	}

	loader := &configLoader{configDir: configDir}
	user, err := loader.loadServiceYAML()
	if err != nil {
		return nil, NewLoadError(FileName, err)
	}

	httpCfg := DefaultHTTPConfig()
	if user.HTTP != nil {
		if err := mergo.Merge(httpCfg, user.HTTP, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge http config: %w", err)
		}
	}

	loggingCfg := DefaultLoggingConfig()
	if user.Logging != nil {
		if err := mergo.Merge(loggingCfg, user.Logging, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge logging config: %w", err)
		}
	}
	loggingCfg.Level = LogLevel(strings.ToLower(string(loggingCfg.Level)))
	loggingCfg.Format = LogFormat(strings.ToLower(string(loggingCfg.Format)))

	paginationCfg := DefaultPaginationConfig()
	if user.Pagination != nil {
		if err := mergo.Merge(paginationCfg, user.Pagination, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge pagination config: %w", err)
		}
	}

	return &Config{
		configDir:  configDir,
		HTTP:       httpCfg,
		Logging:    loggingCfg,
		Masking:    resolveMaskingConfig(user.Masking),
		Pagination: paginationCfg,
	}, nil
}

// validate performs comprehensive validation on loaded configuration
func validate(cfg *Config) error {
	return NewValidator(cfg).ValidateAll()
}

type configLoader struct {
	configDir string
}

// loadYAML reads filename into target. A missing file leaves target untouched.
func (l *configLoader) loadYAML(filename string, target any) error {
	path := filepath.Join(l.configDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("Configuration file not found, using defaults", "path", path)
			return nil
		}
		return err
	}

	// ExpandEnv passes through original data on template errors so the YAML
	// parser reports the problem instead.
	data = ExpandEnv(data)

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return nil
}

func (l *configLoader) loadServiceYAML() (*ServiceYAMLConfig, error) {
	var config ServiceYAMLConfig
	if err := l.loadYAML(FileName, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// resolveMaskingConfig applies masking YAML over the built-in defaults.
func resolveMaskingConfig(m *MaskingYAMLConfig) *MaskingConfig {
	cfg := DefaultMaskingConfig()
	if m == nil {
		return cfg
	}

	if in := m.Inbound; in != nil {
		if in.Enabled != nil {
			cfg.InboundEnabled = *in.Enabled
		}
		if in.InPlace != nil {
			cfg.InboundInPlace = *in.InPlace
		}
	}
	if out := m.Outbound; out != nil {
		if out.Enabled != nil {
			cfg.OutboundEnabled = *out.Enabled
		}
		if out.LogBody != nil {
			cfg.OutboundLogBody = *out.LogBody
		}
	}

	return cfg
}
