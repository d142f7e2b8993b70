package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"payroll-reconciliation-backend/internal/services/matching"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	CORS     CORSConfig
	Matching MatchingConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host        string
	Port        int
	MaxUploadMB int64
}

// DatabaseConfig points at the optional authoritative employees table
type DatabaseConfig struct {
	URL            string // Optional; uploads are used when empty
	EmployeesTable string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // trace, debug, info, warn, error, fatal, panic
	Environment string // production switches to JSON output
}

// CORSConfig holds CORS middleware settings
type CORSConfig struct {
	Origins []string
}

// MatchingConfig holds the acceptance policy
type MatchingConfig struct {
	MatchThreshold float64
	LinkThreshold  float64
	PrefixWords    int
	Workers        int
}

// Policy converts the settings into the matcher configuration.
func (m MatchingConfig) Policy() matching.Config {
	return matching.Config{
		MatchThreshold: m.MatchThreshold,
		LinkThreshold:  m.LinkThreshold,
		PrefixWords:    m.PrefixWords,
		Workers:        m.Workers,
	}
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8080
	DefaultMaxUploadMB    = 32
	DefaultEmployeesTable = "employees"
	DefaultLogLevel       = "info"
	DefaultEnvironment    = "development"
	DefaultCORSOrigins    = "http://localhost:3000"
	DefaultMatchThreshold = 85.0
	DefaultLinkThreshold  = 80.0
	DefaultPrefixWords    = 3
)

// DefaultWorkers spreads matching across every available CPU.
var DefaultWorkers = runtime.NumCPU()

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HOST", DefaultHost)
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("MAX_UPLOAD_MB", DefaultMaxUploadMB)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("EMPLOYEES_TABLE", DefaultEmployeesTable)
	v.SetDefault("LOG_LEVEL", DefaultLogLevel)
	v.SetDefault("APP_ENV", DefaultEnvironment)
	v.SetDefault("CORS_ORIGINS", DefaultCORSOrigins)
	v.SetDefault("MATCH_THRESHOLD", DefaultMatchThreshold)
	v.SetDefault("LINK_THRESHOLD", DefaultLinkThreshold)
	v.SetDefault("PREFIX_WORDS", DefaultPrefixWords)
	v.SetDefault("MATCH_WORKERS", DefaultWorkers)
	return v
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("HOST"),
			Port:        v.GetInt("PORT"),
			MaxUploadMB: v.GetInt64("MAX_UPLOAD_MB"),
		},
		Database: DatabaseConfig{
			URL:            v.GetString("DATABASE_URL"),
			EmployeesTable: v.GetString("EMPLOYEES_TABLE"),
		},
		Logger: LoggerConfig{
			Level:       v.GetString("LOG_LEVEL"),
			Environment: v.GetString("APP_ENV"),
		},
		CORS: CORSConfig{
			Origins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Matching: MatchingConfig{
			MatchThreshold: v.GetFloat64("MATCH_THRESHOLD"),
			LinkThreshold:  v.GetFloat64("LINK_THRESHOLD"),
			PrefixWords:    v.GetInt("PREFIX_WORDS"),
			Workers:        v.GetInt("MATCH_WORKERS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration for errors
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "PORT",
			Message: fmt.Sprintf("port must be between 0 and 65535, got %d", c.Server.Port),
		})
	}
	if c.Server.MaxUploadMB <= 0 {
		errs = append(errs, ValidationError{Field: "MAX_UPLOAD_MB", Message: "must be positive"})
	}

	validLogLevels := []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}
	if !contains(validLogLevels, strings.ToLower(c.Logger.Level)) {
		errs = append(errs, ValidationError{
			Field:   "LOG_LEVEL",
			Message: fmt.Sprintf("invalid log level %q, must be one of: %v", c.Logger.Level, validLogLevels),
		})
	}

	if c.Matching.MatchThreshold < 0 || c.Matching.MatchThreshold > 100 {
		errs = append(errs, ValidationError{Field: "MATCH_THRESHOLD", Message: "must be between 0 and 100"})
	}
	if c.Matching.LinkThreshold < 0 || c.Matching.LinkThreshold > 100 {
		errs = append(errs, ValidationError{Field: "LINK_THRESHOLD", Message: "must be between 0 and 100"})
	}
	if c.Matching.PrefixWords < 1 {
		errs = append(errs, ValidationError{Field: "PREFIX_WORDS", Message: "must be at least 1"})
	}
	if c.Matching.Workers < 1 {
		errs = append(errs, ValidationError{Field: "MATCH_WORKERS", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Logger.Environment, "production")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
