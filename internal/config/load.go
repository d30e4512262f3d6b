package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. MOMENTS_SERVER_PORT.
const EnvPrefix = "MOMENTS"

var (
	// ErrInvalidConfig wraps every validation failure returned by Load.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// defaults lists every known key so that environment variables are picked up
// by Unmarshal even when no config file mentions them.
var defaults = map[string]any{
	"server.port":                   8080,
	"server.log_level":              "info",
	"storage.driver":                DriverFile,
	"storage.path":                  "./data",
	"storage.url":                   "",
	"auth.jwt_secret":               "",
	"auth.password_hash":            "",
	"auth.token_lifetime_minutes":   60 * 24,
	"llm.gemini_api_key":            "",
	"llm.model_name":                "gemini-2.0-flash",
	"llm.timeout_seconds":           30,
	"notify.permission":             "granted",
	"notify.sweep_interval_seconds": 300,
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is like Load but reads the given config file instead of searching
// the working directory. An empty path falls back to the search.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and the rules that span several fields.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch cfg.Storage.Driver {
	case DriverFile, DriverSQLite:
		if cfg.Storage.Path == "" {
			return fmt.Errorf("%w: storage.path is required for the %s driver",
				ErrInvalidConfig, cfg.Storage.Driver)
		}
	case DriverPostgres:
		if cfg.Storage.URL == "" {
			return fmt.Errorf("%w: storage.url is required for the postgres driver", ErrInvalidConfig)
		}
	}

	if cfg.Auth.Enabled() && cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required when auth.password_hash is set",
			ErrInvalidConfig)
	}
	return nil
}
