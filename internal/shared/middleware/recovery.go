package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ServerErrorTemplate is rendered for panics that reach the middleware chain
const ServerErrorTemplate = "core/500.html"

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Str("path", c.Request.URL.Path).
					Interface("error", err).
					Msg("Panic recovered")

				if !c.Writer.Written() {
					c.HTML(http.StatusInternalServerError, ServerErrorTemplate, gin.H{"request_path": c.Request.URL.Path})
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
