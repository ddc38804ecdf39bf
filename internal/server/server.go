// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "fachnmchi/docs" // swagger docs
	"fachnmchi/internal/alerts"
	"fachnmchi/internal/cache"
	"fachnmchi/internal/config"
	"fachnmchi/internal/database"
	"fachnmchi/internal/featureflags"
	"fachnmchi/internal/feed"
	"fachnmchi/internal/fixtures"
	"fachnmchi/internal/middleware"
	"fachnmchi/internal/models"
	"fachnmchi/internal/notifications"
	"fachnmchi/internal/repository"
	"fachnmchi/internal/routing"
	"fachnmchi/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// wireableHub is implemented by every WebSocket hub that can be wired to
// the notifier and gracefully shut down.
type wireableHub interface {
	Name() string
	StartWiring(ctx context.Context, n *notifications.Notifier) error
	Shutdown(ctx context.Context) error
}

// Server holds all dependencies and provides handlers
type Server struct {
	config           *config.Config
	db               *gorm.DB
	redis            *redis.Client
	app              *fiber.App
	promMiddleware   *fiberprometheus.FiberPrometheus
	shutdownCtx      context.Context
	shutdownFn       context.CancelFunc
	postRepo         repository.PostRepository
	notifier         *notifications.Notifier
	hub              *notifications.Hub
	hubs             []wireableHub
	featureFlags     *featureflags.Manager
	feedService      *service.FeedService
	routeService     *service.RouteService
	communityService *service.CommunityService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil && !errors.Is(err, database.ErrNoDatabase) {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// db and redisClient may be nil: the feed then lives in memory only and
// realtime events are delivered within this process.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	set, err := fixtures.Load()
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("fachnmchi-api"),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		notifier:       notifications.NewNotifier(redisClient),
		hub:            notifications.NewHub(),
	}
	server.hubs = []wireableHub{server.hub}

	if db != nil {
		server.postRepo = repository.NewPostRepository(db)
	}

	loc := cfg.Location()
	server.feedService = service.NewFeedService(feed.NewStore(set.Posts), service.FeedServiceOptions{
		PostRepo:     server.postRepo,
		Redis:        redisClient,
		Notifier:     server.notifier,
		Flags:        server.featureFlags,
		ShareBaseURL: cfg.ShareBaseURL,
		CacheTTL:     cfg.FeedCacheTTL(),
	})
	server.routeService = service.NewRouteService(
		routing.NewPlanner(set.Routes, loc),
		routing.NewNetwork(set.Stations),
		service.RouteServiceOptions{Redis: redisClient, CacheTTL: cfg.RouteCacheTTL()},
	)
	server.communityService = service.NewCommunityService(alerts.NewBoard(set.Alerts))

	return server, nil
}

// Load brings the feed in line with storage. Call it once before serving.
func (s *Server) Load(ctx context.Context) error {
	return s.feedService.Load(ctx)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(middleware.TracingMiddleware())
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS must run before anything that can short-circuit so error
	// responses still carry the headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:8080,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.ClientIDHeader + ", Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		MaxAge:       86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	api.Get("/", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Fach Nmchi Metrics Dashboard",
	}))

	api.Get("/swagger/*", swagger.HandlerDefault)

	writeLimit := middleware.RateLimit(s.redis, s.config.WriteRateLimit, s.config.WriteRateWindow(), "feed_write")

	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", writeLimit, s.CreatePost)
	// Specific /:id/:action routes before the generic /:id route
	posts.Post("/:id/like", writeLimit, s.LikePost)
	posts.Post("/:id/pin", writeLimit, s.PinPost)
	posts.Post("/:id/share", writeLimit, s.SharePost)
	posts.Get("/:id", s.GetPost)

	api.Get("/routes", s.GetRoutes)

	stations := api.Group("/stations")
	stations.Get("/", s.GetStations)
	stations.Get("/:id/departures", s.GetDepartures)

	api.Get("/alerts", s.GetAlerts)
	api.Post("/location", s.ReportLocation)
	api.Get("/feature-flags", s.GetFeatureFlags)

	ws := api.Group("/ws", s.UpgradeRequired())
	ws.Get("/feed", s.FeedStreamHandler())
}

// App builds the Fiber app with middleware and routes installed.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Fach Nmchi API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Storage and Redis are
// optional; only a configured dependency that fails makes the service unready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "disabled"
	if s.db != nil {
		dbStatus = "healthy"
		sqlDB, err := s.db.DB()
		if err != nil {
			dbStatus = "unhealthy"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbStatus = "unhealthy"
		}
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Fach Nmchi",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
			"clients":  s.hub.Count(),
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.App()

	for _, h := range s.hubs {
		if err := h.StartWiring(s.shutdownCtx, s.notifier); err != nil {
			middleware.Logger.Error("failed to start hub wiring",
				slog.String("hub", h.Name()), slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	for _, h := range s.hubs {
		if err := h.Shutdown(ctx); err != nil {
			middleware.Logger.Error("error shutting down hub",
				slog.String("hub", h.Name()), slog.String("error", err.Error()))
		}
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing database", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
