package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader defines the interface for loading configuration
type Loader interface {
	Load() (*Config, error)
	Validate(*Config) error
}

// ViperLoader implements Loader using Viper for configuration management
type ViperLoader struct {
	configFile string
	envPrefix  string
}

// NewViperLoader creates a new ViperLoader.
// configFile: path to configuration file (optional, can be empty)
// envPrefix: prefix for environment variables (e.g., "DATAAPI")
func NewViperLoader(configFile, envPrefix string) *ViperLoader {
	if strings.TrimSpace(envPrefix) == "" {
		envPrefix = "DATAAPI"
	}
	return &ViperLoader{
		configFile: configFile,
		envPrefix:  strings.ToUpper(envPrefix),
	}
}

// Load loads configuration with precedence: ENV > file > defaults
func (l *ViperLoader) Load() (*Config, error) {
	v := viper.New()

	l.setDefaults(v, DefaultConfig())

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	}

	v.SetEnvPrefix(l.envPrefix)
	l.bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (l *ViperLoader) setDefaults(v *viper.Viper, defaults Config) {
	v.SetDefault("data_api.operation_timeout", defaults.DataAPI.OperationTimeout)
	v.SetDefault("observability.log_level", defaults.Observability.LogLevel)
	v.SetDefault("observability.log_format", defaults.Observability.LogFormat)
}

// bindEnvVars explicitly binds environment variables for nested structs
func (l *ViperLoader) bindEnvVars(v *viper.Viper) {
	v.BindEnv("data_api.base_url", l.prefixedEnv("BASE_URL"))
	v.BindEnv("data_api.api_key", l.prefixedEnv("API_KEY"))
	v.BindEnv("data_api.data_source", l.prefixedEnv("DATA_SOURCE"))
	v.BindEnv("data_api.database", l.prefixedEnv("DATABASE"))
	v.BindEnv("data_api.collection", l.prefixedEnv("COLLECTION"))
	v.BindEnv("data_api.operation_timeout", l.prefixedEnv("OPERATION_TIMEOUT"))

	v.BindEnv("observability.log_level", l.prefixedEnv("LOG_LEVEL"))
	v.BindEnv("observability.log_format", l.prefixedEnv("LOG_FORMAT"))
}

func (l *ViperLoader) prefixedEnv(name string) string {
	return l.envPrefix + "_" + name
}

// Validate checks that the five required Data API values are present
// and that observability settings are recognized.
func (l *ViperLoader) Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"data_api.base_url", cfg.DataAPI.BaseURL},
		{"data_api.api_key", cfg.DataAPI.APIKey},
		{"data_api.data_source", cfg.DataAPI.DataSource},
		{"data_api.database", cfg.DataAPI.Database},
		{"data_api.collection", cfg.DataAPI.Collection},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if cfg.DataAPI.OperationTimeout < 0 {
		return errors.New("data_api.operation_timeout must not be negative")
	}

	switch cfg.Observability.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid observability.log_level: %s", cfg.Observability.LogLevel)
	}

	switch cfg.Observability.LogFormat {
	case "json", "text", "console":
	default:
		return fmt.Errorf("invalid observability.log_format: %s", cfg.Observability.LogFormat)
	}

	return nil
}
