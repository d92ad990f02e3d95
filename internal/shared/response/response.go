package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"yatube/internal/shared/middleware"
)

const (
	NotFoundTemplate    = "core/404.html"
	ServerErrorTemplate = middleware.ServerErrorTemplate
)

// HTML renders a page template. Every page receives the current viewer,
// pending flash messages and the request path on top of data.
func HTML(c *gin.Context, status int, name string, data gin.H) {
	ctx := gin.H{
		"viewer":       middleware.GetViewer(c),
		"request_path": c.Request.URL.Path,
	}
	if messages := middleware.Flashes(c); len(messages) > 0 {
		ctx["messages"] = messages
		middleware.SkipPageCache(c)
	}
	for k, v := range data {
		ctx[k] = v
	}

	c.HTML(status, name, ctx)
}

// Redirect answers with 302 Found
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func NotFound(c *gin.Context) {
	HTML(c, http.StatusNotFound, NotFoundTemplate, gin.H{"path": c.Request.URL.Path})
	c.Abort()
}

// ServerError logs err and renders the generic 500 page
func ServerError(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Request failed")

	HTML(c, http.StatusInternalServerError, ServerErrorTemplate, nil)
	c.Abort()
}
