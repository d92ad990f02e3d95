package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"yatube/pkg/cache"
)

const (
	CacheHeader  = "X-Cache"
	skipCacheKey = "page_cache_skip"
)

// PageCacheObserver counts lookups (metrics); may be nil
type PageCacheObserver interface {
	CacheHit()
	CacheMiss()
}

type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bufferedWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCache stores whole GET responses for ttl, keyed by viewer and request URI.
// Entries only expire; writes elsewhere never invalidate them.
// Only 200 responses are stored. A session holding flash messages bypasses the
// cache so the handler can render and consume them.
func PageCache(store cache.Cache, ttl time.Duration, obs PageCacheObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || ttl <= 0 || c.Request.Method != http.MethodGet || HasFlashes(c) {
			c.Next()
			return
		}

		key := PageCacheKey(GetViewer(c), c.Request.URL.RequestURI())

		var page cachedPage
		found, err := store.Get(c.Request.Context(), key, &page)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Page cache lookup failed")
		}
		if found {
			if obs != nil {
				obs.CacheHit()
			}
			c.Header(CacheHeader, "HIT")
			c.Data(page.Status, page.ContentType, page.Body)
			c.Abort()
			return
		}

		if obs != nil {
			obs.CacheMiss()
		}
		c.Header(CacheHeader, "MISS")

		w := &bufferedWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w
		c.Next()

		if w.Status() != http.StatusOK || c.GetBool(skipCacheKey) {
			return
		}

		entry := cachedPage{
			Status:      w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		}
		// the request context may already be cancelled by a disconnected client
		if err := store.Set(context.WithoutCancel(c.Request.Context()), key, entry, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Page cache store failed")
		}
	}
}

func PageCacheKey(v *Viewer, requestURI string) string {
	return "page:" + v.CacheKey() + ":" + requestURI
}

// SkipPageCache keeps the current response out of the page cache (one-time content)
func SkipPageCache(c *gin.Context) {
	c.Set(skipCacheKey, true)
}
