package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"
)

const (
	sessionStoreKey = "session_store"
	sessionNameKey  = "session_name"

	// gorilla/sessions default flash key
	flashesKey = "_flash"
)

// Sessions exposes a gorilla/sessions store to handlers for flash messages
func Sessions(store sessions.Store, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionStoreKey, store)
		c.Set(sessionNameKey, name)
		c.Next()
	}
}

func session(c *gin.Context) *sessions.Session {
	v, ok := c.Get(sessionStoreKey)
	if !ok {
		return nil
	}
	store, ok := v.(sessions.Store)
	if !ok {
		return nil
	}

	sess, err := store.Get(c.Request, c.GetString(sessionNameKey))
	if err != nil {
		// undecodable cookie (rotated key): continue with the fresh session
		log.Debug().Err(err).Msg("Discarding session cookie")
	}
	return sess
}

// AddFlash queues a one-time message shown on the next rendered page
func AddFlash(c *gin.Context, message string) {
	sess := session(c)
	if sess == nil {
		return
	}
	sess.AddFlash(message)
	if err := sess.Save(c.Request, c.Writer); err != nil {
		log.Warn().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("Failed to save flash message")
	}
}

// HasFlashes reports pending messages without consuming them
func HasFlashes(c *gin.Context) bool {
	sess := session(c)
	if sess == nil {
		return false
	}
	pending, _ := sess.Values[flashesKey].([]interface{})
	return len(pending) > 0
}

// Flashes pops all pending messages
func Flashes(c *gin.Context) []string {
	sess := session(c)
	if sess == nil {
		return nil
	}

	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(c.Request, c.Writer); err != nil {
		log.Warn().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("Failed to clear flash messages")
	}

	messages := make([]string, 0, len(raw))
	for _, m := range raw {
		if s, ok := m.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}
