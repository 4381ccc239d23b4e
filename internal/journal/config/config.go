package config

import (
	"go-trade-journal/pkg/config"
)

// Journal holds journal-specific configuration.
type Journal struct {
	SummaryCacheTTL string `mapstructure:"summary_cache_ttl"`
}

// Config holds the full configuration for the journal service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	API      config.API      `mapstructure:"api"`
	Auth     config.Auth     `mapstructure:"auth"`
	Uploads  config.Uploads  `mapstructure:"uploads"`
	Journal  Journal         `mapstructure:"journal"`
}

// Load loads the journal configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
