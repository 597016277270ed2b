package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Notifier  NotifierConfig  `mapstructure:"notifier"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Health    HealthConfig    `mapstructure:"health"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	Env          string `mapstructure:"env"`
	ReadTimeout  string `mapstructure:"read_timeout"`
	WriteTimeout string `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	URL             string `mapstructure:"url"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NotifierConfig selects where approval notifications are delivered.
// driver is one of database, pubsub or log.
type NotifierConfig struct {
	Driver          string `mapstructure:"driver"`
	ProjectID       string `mapstructure:"project_id"`
	Topic           string `mapstructure:"topic"`
	CredentialsJSON string `mapstructure:"credentials_json"`
}

// StorageConfig selects how document file references become URLs.
// driver is one of gcs or static.
type StorageConfig struct {
	Driver      string `mapstructure:"driver"`
	Bucket      string `mapstructure:"bucket"`
	SignerEmail string `mapstructure:"signer_email"`
	PrivateKey  string `mapstructure:"private_key"`
	BaseURL     string `mapstructure:"base_url"`
	URLTTL      string `mapstructure:"url_ttl"`
}

type SchedulerConfig struct {
	ReminderCron string `mapstructure:"reminder_cron"`
	WindowDays   int    `mapstructure:"window_days"`
	LockTTL      string `mapstructure:"lock_ttl"`
	Timezone     string `mapstructure:"timezone"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"timeout"`
}

var defaults = map[string]any{
	"server.port":                "8080",
	"server.host":                "0.0.0.0",
	"server.env":                 "development",
	"server.read_timeout":        "15s",
	"server.write_timeout":       "15s",
	"database.url":               "",
	"database.max_open_conns":    25,
	"database.max_idle_conns":    5,
	"database.conn_max_lifetime": "5m",
	"redis.addr":                 "localhost:6379",
	"redis.password":             "",
	"redis.db":                   0,
	"logging.level":              "info",
	"logging.format":             "json",
	"notifier.driver":            "database",
	"notifier.project_id":        "",
	"notifier.topic":             "document-notifications",
	"notifier.credentials_json":  "",
	"storage.driver":             "static",
	"storage.bucket":             "",
	"storage.signer_email":       "",
	"storage.private_key":        "",
	"storage.base_url":           "",
	"storage.url_ttl":            "15m",
	"scheduler.reminder_cron":    "0 0 8 * * *",
	"scheduler.window_days":      3,
	"scheduler.lock_ttl":         "5m",
	"scheduler.timezone":         "America/Sao_Paulo",
	"health.timeout":             "5s",
}

// Load reads configuration from environment variables and an optional .env file.
// Keys map to upper-case variables, so server.port is read from SERVER_PORT.
func Load() (*Config, error) {
	// Don't fail if .env file doesn't exist
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	durations := map[string]string{
		"SERVER_READ_TIMEOUT":        c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":       c.Server.WriteTimeout,
		"DATABASE_CONN_MAX_LIFETIME": c.Database.ConnMaxLifetime,
		"STORAGE_URL_TTL":            c.Storage.URLTTL,
		"SCHEDULER_LOCK_TTL":         c.Scheduler.LockTTL,
		"HEALTH_TIMEOUT":             c.Health.Timeout,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s must be a valid duration: %w", name, err)
		}
	}

	switch c.Notifier.Driver {
	case "database", "log":
	case "pubsub":
		if c.Notifier.ProjectID == "" || c.Notifier.Topic == "" {
			return fmt.Errorf("NOTIFIER_PROJECT_ID and NOTIFIER_TOPIC are required for the pubsub notifier")
		}
	default:
		return fmt.Errorf("NOTIFIER_DRIVER %q is not supported", c.Notifier.Driver)
	}

	switch c.Storage.Driver {
	case "static":
	case "gcs":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required for the gcs storage driver")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER %q is not supported", c.Storage.Driver)
	}

	if c.Scheduler.WindowDays < 0 {
		return fmt.Errorf("SCHEDULER_WINDOW_DAYS must not be negative")
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// Address returns the host:port the HTTP server listens on
func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

// GetReadTimeout returns the server read timeout as duration
func (c *Config) GetReadTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Server.ReadTimeout)
	return timeout
}

// GetWriteTimeout returns the server write timeout as duration
func (c *Config) GetWriteTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Server.WriteTimeout)
	return timeout
}

// GetConnMaxLifetime returns the database connection lifetime as duration
func (c *Config) GetConnMaxLifetime() time.Duration {
	lifetime, _ := time.ParseDuration(c.Database.ConnMaxLifetime)
	return lifetime
}

// GetURLTTL returns how long signed file URLs stay valid
func (c *Config) GetURLTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Storage.URLTTL)
	return ttl
}

// GetLockTTL returns the reminder job lock expiry as duration
func (c *Config) GetLockTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Scheduler.LockTTL)
	return ttl
}

// GetLocation returns the scheduler timezone
func (c *Config) GetLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
