package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/pkg/cache"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type countingObserver struct{ hits, misses int }

func (o *countingObserver) CacheHit()  { o.hits++ }
func (o *countingObserver) CacheMiss() { o.misses++ }

// clock drives MemoryCache expiry without sleeping
type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newCachedRouter(store cache.Cache, obs PageCacheObserver, body *string, status *int) *gin.Engine {
	r := gin.New()
	r.GET("/", PageCache(store, 20*time.Second, obs), func(c *gin.Context) {
		c.Data(*status, "text/html; charset=utf-8", []byte(*body))
	})
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestPageCache_ServesStoredPageUntilExpiry(t *testing.T) {
	clk := &clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := cache.NewMemoryCache()
	store.Now = clk.Now
	obs := &countingObserver{}

	body, status := "first", http.StatusOK
	r := newCachedRouter(store, obs, &body, &status)

	w := get(r, "/")
	assert.Equal(t, "first", w.Body.String())
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))

	// a new post is invisible until the entry expires
	body = "second"
	clk.now = clk.now.Add(19 * time.Second)
	w = get(r, "/")
	assert.Equal(t, "first", w.Body.String())
	assert.Equal(t, "HIT", w.Header().Get(CacheHeader))
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	clk.now = clk.now.Add(2 * time.Second)
	w = get(r, "/")
	assert.Equal(t, "second", w.Body.String())
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))

	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 2, obs.misses)
}

func TestPageCache_KeyIncludesQuery(t *testing.T) {
	store := cache.NewMemoryCache()
	body, status := "page", http.StatusOK
	r := newCachedRouter(store, nil, &body, &status)

	get(r, "/?page=1")
	body = "other"
	assert.Equal(t, "other", get(r, "/?page=2").Body.String())
	assert.Equal(t, "page", get(r, "/?page=1").Body.String())
}

func TestPageCache_SkipsErrors(t *testing.T) {
	store := cache.NewMemoryCache()
	body, status := "boom", http.StatusInternalServerError
	r := newCachedRouter(store, nil, &body, &status)

	get(r, "/")

	body, status = "ok", http.StatusOK
	w := get(r, "/")
	assert.Equal(t, "ok", w.Body.String())
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))
}

func TestPageCache_PerViewer(t *testing.T) {
	store := cache.NewMemoryCache()
	body := "anon"

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if name := c.GetHeader("X-Test-User"); name != "" {
			SetViewer(c, &Viewer{ID: 7, Username: name})
		}
		c.Next()
	})
	r.GET("/", PageCache(store, time.Minute, nil), func(c *gin.Context) {
		c.String(http.StatusOK, body)
	})

	get(r, "/")
	body = "leo"
	assert.Equal(t, "anon", get(r, "/").Body.String())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Test-User", "leo")
	r.ServeHTTP(w, req)
	assert.Equal(t, "leo", w.Body.String())
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))
}

func TestPageCache_SkipFlag(t *testing.T) {
	store := cache.NewMemoryCache()
	n := 0

	r := gin.New()
	r.GET("/", PageCache(store, time.Minute, nil), func(c *gin.Context) {
		n++
		SkipPageCache(c)
		c.String(http.StatusOK, "flash")
	})

	get(r, "/")
	get(r, "/")
	assert.Equal(t, 2, n)
}

func TestPageCache_DisabledWithoutTTL(t *testing.T) {
	store := cache.NewMemoryCache()
	n := 0

	r := gin.New()
	r.GET("/", PageCache(store, 0, nil), func(c *gin.Context) {
		n++
		c.String(http.StatusOK, "x")
	})

	get(r, "/")
	w := get(r, "/")
	assert.Equal(t, 2, n)
	assert.Empty(t, w.Header().Get(CacheHeader))
}

func TestPageCacheKey(t *testing.T) {
	assert.Equal(t, "page:anon:/?page=2", PageCacheKey(nil, "/?page=2"))
	assert.Equal(t, "page:u5:/", PageCacheKey(&Viewer{ID: 5}, "/"))
}

func TestPageCache_PendingFlashesBypassCache(t *testing.T) {
	sessionStore := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	store := cache.NewMemoryCache()
	renders := 0

	r := gin.New()
	r.Use(Sessions(sessionStore, "yatube_session"))
	r.POST("/login/", func(c *gin.Context) {
		AddFlash(c, "Logged in as leo.")
		c.Redirect(http.StatusFound, "/")
	})
	r.GET("/", PageCache(store, 20*time.Second, nil), func(c *gin.Context) {
		renders++
		messages := Flashes(c)
		if len(messages) > 0 {
			SkipPageCache(c)
		}
		c.String(http.StatusOK, "index %s", strings.Join(messages, ","))
	})

	// warm the anonymous entry
	require.Equal(t, "MISS", get(r, "/").Header().Get(CacheHeader))
	require.Equal(t, "HIT", get(r, "/").Header().Get(CacheHeader))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login/", nil))
	require.Equal(t, http.StatusFound, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range w.Result().Cookies() {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "index Logged in as leo.", w.Body.String())
	assert.Empty(t, w.Header().Get(CacheHeader))
	assert.Equal(t, 2, renders)

	// the flash was consumed, so the next request is served from the cache again
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range w.Result().Cookies() {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "HIT", w.Header().Get(CacheHeader))
	assert.Equal(t, "index ", w.Body.String())
	assert.Equal(t, 2, renders)
}

func TestHasFlashes_DoesNotConsume(t *testing.T) {
	sessionStore := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))

	r := gin.New()
	r.Use(Sessions(sessionStore, "yatube_session"))
	r.GET("/", func(c *gin.Context) {
		before := HasFlashes(c)
		AddFlash(c, "hello")
		c.String(http.StatusOK, "%t %t", before, HasFlashes(c))
	})

	assert.Equal(t, "false true", get(r, "/").Body.String())
}
