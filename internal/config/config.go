package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	defaultServiceName  = "phishing-detector"
	defaultServicePort  = 8080
	defaultVersion      = "0.1.0"
	defaultLoggingLevel = "info"
	defaultLoggingFmt   = "json"
	defaultDBHost       = "localhost"
	defaultDBPort       = 5432
	defaultDBName       = "phishing_detector"
	defaultDBUser       = "postgres"
	defaultDBSSLMode    = "disable"
	defaultStatsCacheS  = 60
)

// Config holds the application configuration.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"PHISHING_DETECTOR_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"              yaml:"debug"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host     string `env:"POSTGRES_HOST"     yaml:"host"`
	Port     int    `env:"POSTGRES_PORT"     yaml:"port"`
	User     string `env:"POSTGRES_USER"     yaml:"user"`
	Password string `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database string `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode  string `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// MigrateURL returns the PostgreSQL URL used by golang-migrate.
func (d *DatabaseConfig) MigrateURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// RedisConfig holds Redis configuration. An empty address disables the
// statistics cache.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"     yaml:"addr"`
	Password string        `env:"REDIS_PASSWORD" yaml:"password"`
	StatsTTL time.Duration `yaml:"stats_ttl"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setRedisDefaults(&cfg.Redis)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
}

func setDatabaseDefaults(db *DatabaseConfig) {
	if db.Host == "" {
		db.Host = defaultDBHost
	}
	if db.Port == 0 {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Database == "" {
		db.Database = defaultDBName
	}
	if db.SSLMode == "" {
		db.SSLMode = defaultDBSSLMode
	}
}

func setRedisDefaults(r *RedisConfig) {
	if r.StatsTTL == 0 {
		r.StatsTTL = defaultStatsCacheS * time.Second
	}
}

func setLoggingDefaults(log *LoggingConfig) {
	if log.Level == "" {
		log.Level = defaultLoggingLevel
	}
	if log.Format == "" {
		log.Format = defaultLoggingFmt
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validatePort checks that a port number is in the valid range.
func validatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return &ValidationError{Field: field, Message: "must be between 1 and 65535"}
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := validatePort("database.port", c.Database.Port); err != nil {
		return err
	}
	if c.Database.Host == "" {
		return &ValidationError{Field: "database.host", Message: "is required"}
	}
	if c.Database.Database == "" {
		return &ValidationError{Field: "database.database", Message: "is required"}
	}
	return nil
}
