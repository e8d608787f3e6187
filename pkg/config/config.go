// Package config loads Data API client configuration with precedence
// ENV > file > defaults.
package config

import "time"

// Config is the root configuration consumed by the CLI and by
// applications embedding the client.
type Config struct {
	DataAPI       DataAPIConfig       `mapstructure:"data_api" yaml:"data_api"`
	Observability ObservabilityConfig `mapstructure:"observability" yaml:"observability"`
}

// DataAPIConfig holds the five environment values the client is bound
// to, plus transport tuning.
type DataAPIConfig struct {
	BaseURL          string        `mapstructure:"base_url" yaml:"base_url"`
	APIKey           string        `mapstructure:"api_key" yaml:"api_key"`
	DataSource       string        `mapstructure:"data_source" yaml:"data_source"`
	Database         string        `mapstructure:"database" yaml:"database"`
	Collection       string        `mapstructure:"collection" yaml:"collection"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout" yaml:"operation_timeout"`
}

// ObservabilityConfig controls logging output.
type ObservabilityConfig struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// DefaultConfig returns the built-in defaults. The five Data API values
// have no defaults; they must come from file or environment.
func DefaultConfig() Config {
	return Config{
		DataAPI: DataAPIConfig{
			OperationTimeout: 30 * time.Second,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}
