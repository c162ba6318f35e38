// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "inkwell/docs" // swagger docs
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/notifications"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	promMiddleware  *fiberprometheus.FiberPrometheus
	shutdownCtx     context.Context
	shutdownFn      context.CancelFunc
	tracingShutdown func(context.Context) error
	userRepo        repository.UserRepository
	tagRepo         repository.TagRepository
	postService     *service.PostService
	categoryService *service.CategoryService
	notifier        *notifications.Notifier
	hub             *notifications.Hub
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	tracingShutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "inkwell-api",
		ServiceVersion: "1.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExport,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	tagRepo := repository.NewTagRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	shutdownCtx, shutdownFn := context.WithCancel(context.Background())

	server := &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		promMiddleware:  observability.InitMetrics("inkwell-api"),
		shutdownCtx:     shutdownCtx,
		shutdownFn:      shutdownFn,
		tracingShutdown: tracingShutdown,
		userRepo:        userRepo,
		tagRepo:         tagRepo,
		postService:     service.NewPostService(postRepo),
		categoryService: service.NewCategoryService(categoryRepo),
	}

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
		server.hub = notifications.NewHub()
	}

	return server, nil
}

// SetupMiddleware attaches the global middleware chain.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.RequestLogger())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api.Get("/swagger/*", swagger.HandlerDefault)

	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Get("/:id", s.GetPost)
	posts.Post("/", middleware.AuthRequired, s.CreatePost)
	posts.Put("/:id", middleware.AuthRequired, s.UpdatePost)
	posts.Delete("/:id", middleware.AuthRequired, s.DeletePost)

	categories := api.Group("/categories")
	categories.Get("/", s.GetCategories)
	categories.Post("/", middleware.AuthRequired, s.CreateCategory)

	api.Get("/tags", s.GetTags)

	if s.hub != nil {
		app.Use("/ws", s.WebSocketUpgrade)
		app.Get("/ws/feed", s.FeedSocket())
	}
}

// Start wires everything together and begins listening. Blocks until the
// listener stops.
func (s *Server) Start(app *fiber.App) error {
	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	if s.notifier != nil && s.hub != nil {
		go func() {
			if err := s.hub.Run(s.shutdownCtx, s.notifier); err != nil && s.shutdownCtx.Err() == nil {
				log.Printf("feed hub stopped: %v", err)
			}
		}()
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownFn()

	if s.tracingShutdown != nil {
		if err := s.tracingShutdown(ctx); err != nil {
			log.Printf("tracing shutdown error: %v", err)
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("redis close error: %v", err)
		}
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}

// LivenessCheck reports process liveness.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the database is reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
