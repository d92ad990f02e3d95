package middleware

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"yatube/pkg/jwt"
)

const viewerKey = "viewer"

// Viewer is the authenticated user behind the current request
type Viewer struct {
	ID       int64
	Username string
}

// CacheKey identifies the viewer in per-user cache keys
func (v *Viewer) CacheKey() string {
	if v == nil {
		return "anon"
	}
	return "u" + strconv.FormatInt(v.ID, 10)
}

// TokenValidator is satisfied by *jwt.Manager
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// CurrentUser resolves the auth cookie into a Viewer.
// Missing, expired or forged tokens leave the request anonymous.
func CurrentUser(tokens TokenValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("Ignoring invalid auth cookie")
			c.Next()
			return
		}

		c.Set(viewerKey, &Viewer{ID: claims.UserID, Username: claims.Username})
		c.Next()
	}
}

// RequireLogin redirects anonymous requests to loginURL, keeping the destination in ?next=
func RequireLogin(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetViewer(c) == nil {
			c.Redirect(http.StatusFound, LoginRedirectURL(loginURL, c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetViewer returns nil for anonymous requests
func GetViewer(c *gin.Context) *Viewer {
	v, ok := c.Get(viewerKey)
	if !ok {
		return nil
	}
	viewer, _ := v.(*Viewer)
	return viewer
}

// SetViewer marks the request as authenticated (login handler, tests)
func SetViewer(c *gin.Context, v *Viewer) {
	c.Set(viewerKey, v)
}

// LoginRedirectURL builds /login/?next=/create/ (slashes are left unescaped)
func LoginRedirectURL(loginURL, next string) string {
	q := strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
	return loginURL + "?next=" + q
}

// SafeNext accepts only local absolute paths as post-login destinations
func SafeNext(next string) (string, bool) {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "", false
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "", false
	}
	return next, true
}

// SetAuthCookie stores the session token in an HttpOnly cookie
func SetAuthCookie(c *gin.Context, name, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, token, maxAge, "/", "", secure, true)
}

func ClearAuthCookie(c *gin.Context, name string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", secure, true)
}
