package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"yatube/internal/config"
	infraCache "yatube/internal/infrastructure/cache"
	"yatube/internal/infrastructure/database"
	"yatube/internal/infrastructure/metrics"
	"yatube/internal/infrastructure/queue"
	"yatube/internal/infrastructure/storage"
	"yatube/internal/web"
	"yatube/pkg/cache"
	"yatube/pkg/jwt"

	// Domains
	"yatube/internal/domains/about"
	"yatube/internal/domains/follow"
	followHandler "yatube/internal/domains/follow/handler"
	followRepo "yatube/internal/domains/follow/repository"
	followService "yatube/internal/domains/follow/service"
	"yatube/internal/domains/group"
	groupRepo "yatube/internal/domains/group/repository"
	groupService "yatube/internal/domains/group/service"
	postHandler "yatube/internal/domains/post/handler"
	postJob "yatube/internal/domains/post/job"
	postRepo "yatube/internal/domains/post/repository"
	postService "yatube/internal/domains/post/service"
	"yatube/internal/domains/user"
	userHandler "yatube/internal/domains/user/handler"
	userRepo "yatube/internal/domains/user/repository"
	userService "yatube/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application.
// Optional infrastructure (Redis, MinIO, queue) is nil when unavailable.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config       *config.Config
	DB           *database.PostgresDB
	Cache        cache.Cache            // Redis, or in-process fallback
	Redis        *infraCache.RedisCache // nil when Redis is down
	Storage      *storage.MinIOStorage  // nil when MinIO is down
	Images       *storage.ImageProcessor
	Queue        *asynq.Client // nil when Redis is down
	Metrics      *metrics.Metrics
	JWTManager   *jwt.Manager
	SessionStore sessions.Store
	Renderer     *web.Renderer

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo   user.Repository
	GroupRepo  group.Repository
	PostRepo   postRepo.RepositoryInterface
	FollowRepo follow.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService   user.Service
	GroupService  group.Service
	PostService   postService.ServiceInterface
	FollowService follow.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler   *userHandler.UserHandler
	PostHandler   *postHandler.Handler
	FollowHandler *followHandler.FollowHandler
	AboutHandler  *about.Handler

	// ========================================
	// JOB HANDLERS (worker)
	// ========================================
	ProcessImageJob *postJob.ProcessImageHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph in order:
// config → database → cache → storage → queue → repositories → services → handlers
func NewContainer() (*Container, error) {
	log.Info().Msg("[CONTAINER] Initializing")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("[CONTAINER] Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	if err := c.initDatabase(); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 3: CACHE / STORAGE / QUEUE
	// ========================================
	c.initCache()
	c.initStorage()
	c.initQueue()

	// ========================================
	// STEP 4: SHARED COMPONENTS
	// ========================================
	c.Images = storage.NewImageProcessor()

	// ========================================
	// STEP 5: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	if err := c.InitWeb(); err != nil {
		return nil, err
	}

	log.Info().Msg("[CONTAINER] Initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database migration failed: %w", err)
	}

	c.DB = db
	return nil
}

// initCache: Redis failure không critical, the page cache then lives in process memory
func (c *Container) initCache() {
	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[CONTAINER] Redis unavailable, using in-memory cache")
		_ = rc.Close()
		c.Cache = cache.NewMemoryCache()
		return
	}

	c.Redis = rc
	c.Cache = rc
}

func (c *Container) initStorage() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		log.Warn().Err(err).Msg("[CONTAINER] MinIO unavailable, image uploads disabled")
		return
	}
	c.Storage = s
	log.Info().Str("bucket", c.Config.MinIO.Bucket).Msg("[CONTAINER] MinIO connected")
}

// initQueue shares the Redis instance with the cache
func (c *Container) initQueue() {
	if c.Redis == nil {
		log.Warn().Msg("[CONTAINER] No Redis, thumbnails will not be generated")
		return
	}
	c.Queue = queue.NewClient(c.Config.Redis)
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.GroupRepo = groupRepo.NewPostgresRepository(pool)
	c.PostRepo = postRepo.NewPostgresRepository(pool)
	c.FollowRepo = followRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, userService.DefaultBcryptCost)
	c.GroupService = groupService.NewGroupService(c.GroupRepo)

	deps := postService.Deps{
		Posts:   c.PostRepo,
		Groups:  c.GroupRepo,
		Users:   c.UserRepo,
		Follows: c.FollowRepo,
		Images:  c.Images,
		PerPage: c.Config.Cache.PageSize,
	}
	// typed nil pointers must not leak into the interfaces
	if c.Storage != nil {
		deps.Storage = c.Storage
	}
	if c.Queue != nil {
		deps.Queue = c.Queue
	}
	c.PostService = postService.NewPostService(deps)

	c.FollowService = followService.NewFollowService(c.FollowRepo, c.UserRepo, c.PostRepo, c.Config.Cache.PageSize)
}

// InitWeb builds the presentation layer on top of Config, Cache and the services
func (c *Container) InitWeb() error {
	c.Metrics = metrics.New(NewRegistry())
	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.TokenExpiry)
	c.SessionStore = NewSessionStore(c.Config)

	renderer, err := web.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	c.Renderer = renderer

	c.initHandlers()
	return nil
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.JWTManager, userHandler.CookieConfig{
		Name:   c.Config.JWT.CookieName,
		Secure: c.Config.JWT.Secure,
	})
	c.PostHandler = postHandler.NewHandler(c.PostService, c.Metrics)
	c.FollowHandler = followHandler.NewFollowHandler(c.FollowService, c.Metrics)
	c.AboutHandler = about.NewHandler()

	c.ProcessImageJob = postJob.NewProcessImageHandler(c.PostService)
}

// ========================================
// HELPERS
// ========================================

// NewRegistry is empty: metrics.New adds the runtime collectors itself
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// NewSessionStore keeps flash messages in a signed cookie
func NewSessionStore(cfg *config.Config) sessions.Store {
	store := sessions.NewCookieStore([]byte(cfg.Session.Key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		Secure:   cfg.JWT.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] Cleaning up resources")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close asynq client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close Redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("[CONTAINER] Cleanup completed")
}
