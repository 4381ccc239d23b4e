package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// App holds application configuration.
type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

// Logger holds logger configuration.
type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// Database holds database configuration for the local sqlite file.
type Database struct {
	Path          string `mapstructure:"path"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms"`
	LogLevel      string `mapstructure:"log_level"`
}

// API holds API server configuration.
type API struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Auth holds owner-mode authentication configuration.
type Auth struct {
	JWTSecret         string  `mapstructure:"jwt_secret"`
	TokenExpiry       string  `mapstructure:"token_expiry"`
	OwnerUsername     string  `mapstructure:"owner_username"`
	OwnerPasswordHash string  `mapstructure:"owner_password_hash"`
	LoginRatePerSec   float64 `mapstructure:"login_rate_per_sec"`
	LoginBurst        int     `mapstructure:"login_burst"`
}

// Uploads holds screenshot upload configuration.
type Uploads struct {
	Dir       string `mapstructure:"dir"`
	MaxSizeMB int64  `mapstructure:"max_size_mb"`
}

// Load loads configuration from a file into the given config struct.
func Load(path string, config interface{}) error {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Failed to read config file, falling back to environment variables")
	}

	return viper.Unmarshal(config)
}
