package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"yatube/internal/config"
)

// Config holds all configuration for the worker
type Config struct {
	Redis       config.RedisConfig
	Concurrency int
	HealthAddr  string
}

// loadConfig reuses the app's Redis settings; worker-only knobs come from env
func loadConfig(app *config.Config) *Config {
	cfg := &Config{
		Redis:       app.Redis,
		Concurrency: 4,
		HealthAddr:  ":9999",
	}
	if v, err := strconv.Atoi(os.Getenv("WORKER_CONCURRENCY")); err == nil && v > 0 {
		cfg.Concurrency = v
	}
	if v := os.Getenv("WORKER_HEALTH_ADDR"); v != "" {
		cfg.HealthAddr = v
	}

	log.Info().
		Str("redis", cfg.Redis.Host).
		Int("concurrency", cfg.Concurrency).
		Msg("[Config] Worker configuration loaded")

	return cfg
}
