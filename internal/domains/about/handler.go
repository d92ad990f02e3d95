// Package about serves the static "about the author" and "technologies" pages.
package about

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/shared/response"
)

const (
	authorTemplate = "about/author.html"
	techTemplate   = "about/tech.html"
)

// Stack is listed on /about/tech/
var Stack = []string{
	"Go",
	"Gin",
	"PostgreSQL (pgx)",
	"Redis (go-redis, asynq)",
	"MinIO",
	"Prometheus",
	"html/template",
}

type Handler struct {
	stack []string
}

func NewHandler() *Handler {
	return &Handler{stack: Stack}
}

// Author - GET /about/author/
func (h *Handler) Author(c *gin.Context) {
	response.HTML(c, http.StatusOK, authorTemplate, nil)
}

// Tech - GET /about/tech/
func (h *Handler) Tech(c *gin.Context) {
	response.HTML(c, http.StatusOK, techTemplate, gin.H{"stack": h.stack})
}
