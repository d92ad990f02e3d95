package main

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"yatube/internal/infrastructure/queue"
	"yatube/internal/shared"
)

// asynqServer wraps asynq.Server with additional functionality
type asynqServer struct {
	*asynq.Server
}

func newMux(handlers *HandlerRegistry) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)
	return mux
}

// setupAsynqServer creates the server and starts consuming in the background
func setupAsynqServer(cfg *Config, handlers *HandlerRegistry) *asynqServer {
	mux := newMux(handlers)

	srv := asynq.NewServer(
		queue.RedisOpt(cfg.Redis),
		asynq.Config{
			Queues: map[string]int{
				shared.QueueImages: 10,
				"default":          1,
			},
			Concurrency:     cfg.Concurrency,
			ShutdownTimeout: 30 * time.Second,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).Msg("[Asynq] Task failed")
			}),
		},
	)

	go func() {
		log.Info().Msg("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("[Worker] Failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks up to ShutdownTimeout
func (s *asynqServer) Shutdown() {
	log.Info().Msg("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Info().Msg("[Worker] Gracefully stopped")
}
