package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Session SessionConfig
	MinIO   MinIOConfig
	Cache   CacheConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
	CookieName  string
	Secure      bool
}

// SessionConfig covers the flash message cookie store
type SessionConfig struct {
	Key  string
	Name string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string // yatube
	UseSSL    bool
}

type CacheConfig struct {
	IndexTTL time.Duration // full-page cache of "/"
	PageSize int
}

const (
	defaultJWTSecret  = "your-secret-key-change-in-production"
	defaultSessionKey = "session-key-change-in-production"
)

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Yatube"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", defaultJWTSecret),
			TokenExpiry: getEnvDuration("JWT_EXPIRY", 14*24*time.Hour),
			CookieName:  getEnv("AUTH_COOKIE_NAME", "yatube_token"),
			Secure:      getEnvBool("AUTH_COOKIE_SECURE", false),
		},
		Session: SessionConfig{
			Key:  getEnv("SESSION_KEY", defaultSessionKey),
			Name: getEnv("SESSION_NAME", "yatube_session"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "yatube"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Cache: CacheConfig{
			IndexTTL: getEnvDuration("INDEX_CACHE_TTL", 20*time.Second),
			PageSize: getEnvInt("PAGE_SIZE", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Cache.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.Cache.PageSize)
	}
	if c.Cache.IndexTTL < 0 {
		return fmt.Errorf("INDEX_CACHE_TTL must not be negative")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Session.Key == defaultSessionKey {
			return fmt.Errorf("SESSION_KEY must be set in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
