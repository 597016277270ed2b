package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/placement?sslmode=disable")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, "database", cfg.Notifier.Driver)
	assert.Equal(t, "static", cfg.Storage.Driver)
	assert.Equal(t, 3, cfg.Scheduler.WindowDays)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 15*time.Minute, cfg.GetURLTTL())
	assert.Equal(t, 5*time.Second, cfg.GetHealthTimeout())
	assert.Equal(t, "America/Sao_Paulo", cfg.GetLocation().String())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/placement")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("SCHEDULER_WINDOW_DAYS", "5")
	t.Setenv("STORAGE_DRIVER", "gcs")
	t.Setenv("STORAGE_BUCKET", "documents")
	t.Setenv("REDIS_DB", "2")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5, cfg.Scheduler.WindowDays)
	assert.Equal(t, "gcs", cfg.Storage.Driver)
	assert.Equal(t, "documents", cfg.Storage.Bucket)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:    ServerConfig{Port: "8080", ReadTimeout: "15s", WriteTimeout: "15s"},
			Database:  DatabaseConfig{URL: "postgres://db/placement", ConnMaxLifetime: "5m"},
			Notifier:  NotifierConfig{Driver: "database"},
			Storage:   StorageConfig{Driver: "static", URLTTL: "15m"},
			Scheduler: SchedulerConfig{WindowDays: 3, LockTTL: "5m", Timezone: "UTC"},
			Health:    HealthConfig{Timeout: "5s"},
		}
	}

	tests := []struct {
		name          string
		mutate        func(c *Config)
		expectedError string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing database url", mutate: func(c *Config) { c.Database.URL = "" }, expectedError: "DATABASE_URL is required"},
		{name: "bad duration", mutate: func(c *Config) { c.Health.Timeout = "soon" }, expectedError: "HEALTH_TIMEOUT"},
		{name: "pubsub without topic", mutate: func(c *Config) { c.Notifier.Driver = "pubsub"; c.Notifier.ProjectID = "p" }, expectedError: "NOTIFIER_TOPIC"},
		{name: "unknown notifier", mutate: func(c *Config) { c.Notifier.Driver = "sms" }, expectedError: "NOTIFIER_DRIVER"},
		{name: "gcs without bucket", mutate: func(c *Config) { c.Storage.Driver = "gcs" }, expectedError: "STORAGE_BUCKET"},
		{name: "negative window", mutate: func(c *Config) { c.Scheduler.WindowDays = -1 }, expectedError: "SCHEDULER_WINDOW_DAYS"},
		{name: "unknown timezone", mutate: func(c *Config) { c.Scheduler.Timezone = "Mars/Olympus" }, expectedError: "SCHEDULER_TIMEZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectedError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}
