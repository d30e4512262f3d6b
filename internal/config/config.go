package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Auth    AuthConfig    `mapstructure:"auth"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Notify  NotifyConfig  `mapstructure:"notify"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Storage drivers understood by the persistence layer.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// StorageConfig selects and configures the record store backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=file sqlite postgres memory"`
	// Path is a directory for the file driver and a database file for sqlite.
	Path string `mapstructure:"path"`
	// URL is the connection string for the postgres driver.
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains the single-owner login settings. Authentication is
// enabled only when PasswordHash is set.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"omitempty,min=32"`
	PasswordHash         string `mapstructure:"password_hash"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0,lte=43200"`
}

// Enabled reports whether the API requires a bearer token.
func (a AuthConfig) Enabled() bool {
	return a.PasswordHash != ""
}

// TokenLifetime returns the access token lifetime as a duration.
func (a AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(a.TokenLifetimeMinutes) * time.Minute
}

// LLMConfig contains the planning assistant settings. The assistant is
// disabled when GeminiAPIKey is empty.
type LLMConfig struct {
	GeminiAPIKey   string `mapstructure:"gemini_api_key"`
	ModelName      string `mapstructure:"model_name"      validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gt=0,lte=300"`
}

// Timeout returns the per-request assistant timeout.
func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// NotifyConfig configures reminder delivery.
type NotifyConfig struct {
	// Permission is the initial notification permission of the server's
	// log-backed capability.
	Permission           string `mapstructure:"permission"             validate:"required,oneof=granted denied default"`
	SweepIntervalSeconds int    `mapstructure:"sweep_interval_seconds" validate:"gte=0"`
}

// SweepInterval returns how often the server re-evaluates reminders.
// Zero disables the periodic sweep.
func (n NotifyConfig) SweepInterval() time.Duration {
	return time.Duration(n.SweepIntervalSeconds) * time.Second
}
