package main

import (
	"github.com/hibiken/asynq"

	postJob "yatube/internal/domains/post/job"
	"yatube/internal/shared"
	"yatube/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	processPostImage *postJob.ProcessImageHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		processPostImage: c.ProcessImageJob,
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeProcessPostImage, h.processPostImage.ProcessTask)
}
