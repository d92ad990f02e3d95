package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"yatube/pkg/container"
)

type healthCheck struct {
	name string
	fn   func(ctx context.Context) error
}

// startupChecks: the worker is useless without Redis (queue) and MinIO (images)
func startupChecks(c *container.Container) []healthCheck {
	return []healthCheck{
		{"Redis Connection", func(ctx context.Context) error {
			if c.Redis == nil {
				return errors.New("redis is not connected")
			}
			return c.Redis.Ping(ctx)
		}},
		{"Object Storage", func(ctx context.Context) error {
			if c.Storage == nil {
				return errors.New("minio is not connected")
			}
			return c.Storage.Ping(ctx)
		}},
	}
}

// runChecks stops at the first failing check
func runChecks(ctx context.Context, checks []healthCheck) error {
	for _, check := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := check.fn(checkCtx)
		cancel()

		if err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("[Startup] Check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("[Startup] OK")
	}
	return nil
}

// healthRouter serves the liveness and readiness endpoints
func healthRouter(checks []healthCheck) *gin.Engine {
	r := gin.New()
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": "yatube-worker"})
	})
	r.GET("/ready", func(ctx *gin.Context) {
		if err := runChecks(ctx.Request.Context(), checks); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_READY", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "READY"})
	})
	return r
}

func startHealthCheckServer(addr string, checks []healthCheck) {
	log.Info().Str("addr", addr).Msg("[Health] Starting health check server")
	if err := http.ListenAndServe(addr, healthRouter(checks)); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
