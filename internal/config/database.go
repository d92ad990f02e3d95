package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"yatube/internal/infrastructure/database"
)

// LoadDatabaseConfig reads the DB_* variables. Unlike the app settings, a
// malformed number or duration is an error rather than a silent default.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	env := &strictEnv{}

	cfg := &database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     env.Int("DB_PORT", 5432),
		Username: getEnv("DB_USER", "yatube"),
		Password: getEnv("DB_PASSWORD", "secret"),
		DBName:   getEnv("DB_NAME", "yatube"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),

		MaxConns:          int32(env.Int("DB_MAX_CONNECTIONS", 25)),
		MinConns:          int32(env.Int("DB_MIN_CONNECTIONS", 5)),
		MaxConnLifetime:   env.Duration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   env.Duration("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: env.Duration("DB_HEALTH_CHECK_PERIOD", time.Minute),

		MaxRetries:     env.Int("DB_MAX_RETRIES", 5),
		RetryDelay:     env.Duration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout: env.Duration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}
	if env.err != nil {
		return nil, env.err
	}

	if err := validateDatabaseConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}
	return cfg, nil
}

func validateDatabaseConfig(cfg *database.DBConfig) error {
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.Host, validation.Required),
		validation.Field(&cfg.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&cfg.DBName, validation.Required),
		validation.Field(&cfg.SSLMode, validation.In("disable", "allow", "prefer", "require", "verify-ca", "verify-full")),
		validation.Field(&cfg.MaxConns, validation.Required, validation.Min(int32(1))),
		validation.Field(&cfg.MinConns, validation.Min(int32(0)), validation.Max(cfg.MaxConns)),
		validation.Field(&cfg.MaxRetries, validation.Min(0)),
	)
}

// strictEnv keeps the first malformed variable it was asked for
type strictEnv struct {
	err error
}

func (e *strictEnv) Int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" || e.err != nil {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
		return def
	}
	return v
}

func (e *strictEnv) Duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" || e.err != nil {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
		return def
	}
	return v
}
