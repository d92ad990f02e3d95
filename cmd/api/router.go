package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yatube/internal/shared/middleware"
	"yatube/internal/shared/response"
	"yatube/pkg/container"
)

const loginURL = "/auth/login/"

// multipart bodies above this spill to temp files
const maxMultipartMemory = 8 << 20

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.HTMLRender = c.Renderer
	router.MaxMultipartMemory = maxMultipartMemory

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Observe(c.Metrics),
		middleware.Sessions(c.SessionStore, c.Config.Session.Name),
		middleware.CurrentUser(c.JWTManager, c.Config.JWT.CookieName),
	)

	router.GET("/health", healthCheckHandler(healthDeps{
		DB:      dbPinger(c),
		Cache:   c.Cache,
		Storage: storagePinger(c),
		Version: c.Config.App.Version,
	}))
	router.GET("/metrics", gin.WrapH(c.Metrics.Handler()))

	setupPostRoutes(router, c)
	setupFollowRoutes(router, c)
	setupAuthRoutes(router, c)
	setupAboutRoutes(router, c)

	router.NoRoute(response.NotFound)

	return router
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/",
		middleware.PageCache(c.Cache, c.Config.Cache.IndexTTL, c.Metrics),
		c.PostHandler.Index,
	)
	router.GET("/group/:slug/", c.PostHandler.GroupPosts)
	router.GET("/profile/:username/", c.PostHandler.Profile)
	router.GET("/posts/:id/", c.PostHandler.Detail)

	auth := router.Group("/", middleware.RequireLogin(loginURL))
	{
		auth.GET("/create/", c.PostHandler.CreatePage)
		auth.POST("/create/", c.PostHandler.Create)
		auth.GET("/posts/:id/edit/", c.PostHandler.EditPage)
		auth.POST("/posts/:id/edit/", c.PostHandler.Edit)
		auth.POST("/posts/:id/comment/", c.PostHandler.AddComment)
	}
}

// ========================================
// FOLLOW ROUTES
// ========================================
func setupFollowRoutes(router *gin.Engine, c *container.Container) {
	auth := router.Group("/", middleware.RequireLogin(loginURL))
	{
		auth.GET("/follow/", c.FollowHandler.Feed)
		auth.POST("/profile/:username/follow/", c.FollowHandler.Follow)
		auth.POST("/profile/:username/unfollow/", c.FollowHandler.Unfollow)
	}
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(router *gin.Engine, c *container.Container) {
	auth := router.Group("/auth")
	{
		auth.GET("/signup/", c.UserHandler.SignupPage)
		auth.POST("/signup/", c.UserHandler.Signup)
		auth.GET("/login/", c.UserHandler.LoginPage)
		auth.POST("/login/", c.UserHandler.Login)
		auth.GET("/logout/", c.UserHandler.Logout)
		auth.POST("/logout/", c.UserHandler.Logout)
	}

	account := router.Group("/auth", middleware.RequireLogin(loginURL))
	{
		account.GET("/password_change/", c.UserHandler.PasswordChangePage)
		account.POST("/password_change/", c.UserHandler.PasswordChange)
		account.GET("/password_change/done/", c.UserHandler.PasswordChangeDone)
	}
}

func setupAboutRoutes(router *gin.Engine, c *container.Container) {
	about := router.Group("/about")
	about.GET("/author/", c.AboutHandler.Author)
	about.GET("/tech/", c.AboutHandler.Tech)
}

// ========================================
// HEALTH CHECK
// ========================================

type pinger interface {
	Ping(ctx context.Context) error
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// healthDeps: a nil Storage means uploads are disabled, not unhealthy
type healthDeps struct {
	DB      pinger
	Cache   pinger
	Storage pinger
	Version string
}

func dbPinger(c *container.Container) pinger {
	if c.DB == nil || c.DB.Pool == nil {
		return nil
	}
	return pingFunc(c.DB.HealthCheck)
}

func storagePinger(c *container.Container) pinger {
	if c.Storage == nil {
		return nil
	}
	return c.Storage
}

func checkDependency(ctx context.Context, p pinger, missing string) string {
	if p == nil {
		return missing
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return "ok"
}

func healthCheckHandler(deps healthDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		dbStatus := checkDependency(ctx, deps.DB, "disconnected")
		cacheStatus := checkDependency(ctx, deps.Cache, "disconnected")
		storageStatus := checkDependency(ctx, deps.Storage, "disabled")

		status := "ok"
		if dbStatus != "ok" || cacheStatus != "ok" {
			status = "degraded"
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   deps.Version,
			"services": gin.H{
				"database": dbStatus,
				"cache":    cacheStatus,
				"storage":  storageStatus,
			},
		})
	}
}
