package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecity-api/internal/auth"
	"ecity-api/internal/client"
	"ecity-api/internal/database"
	"ecity-api/internal/handler"
	"ecity-api/internal/metrics"
	"ecity-api/internal/middleware"
	"ecity-api/internal/realtime"
	"ecity-api/internal/repository"
	"ecity-api/internal/service"
)

const (
	defaultIssueLimit  = 20
	defaultIssueWindow = 24 * time.Hour
	rateLimitPrefix    = "ecity:ratelimit:issues:"
)

// Config holds router configuration
type Config struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Logger   *zap.Logger
	Tokens   *auth.TokenManager
	BasePath string
	Metrics  *metrics.Metrics
	// Gatherer backs /metrics; nil means the default registry
	Gatherer prometheus.Gatherer
	Images   client.ImageStore
	Hub      *realtime.Hub

	CORSOrigins     []string
	IssuesPerWindow int
	IssueWindow     time.Duration
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "/api"
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger, cfg.BasePath))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics, cfg.BasePath))
	}

	// Prometheus metrics endpoint
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	metricsHandler := gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.GET("/metrics", metricsHandler)

	// Health check routes
	checks := map[string]handler.Pinger{
		"database": func(ctx context.Context) error { return database.Ping(ctx, cfg.DB) },
	}
	if cfg.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return cfg.Redis.Ping(ctx).Err() }
	}
	healthHandler := handler.NewHealthHandler(checks)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	issueRepo := repository.NewIssueRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	deptRepo := repository.NewDepartmentRepository(cfg.DB)
	announcementRepo := repository.NewAnnouncementRepository(cfg.DB)
	eventRepo := repository.NewEventRepository(cfg.DB)

	// Initialize services
	var events service.EventPublisher
	if cfg.Hub != nil {
		events = cfg.Hub
	}
	authService := service.NewAuthService(userRepo, cfg.Tokens, cfg.Logger)
	userService := service.NewUserService(userRepo, cfg.Logger)
	issueService := service.NewIssueService(issueRepo, cfg.Images, events, cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(commentRepo, issueRepo, cfg.Metrics, cfg.Logger)
	statsService := service.NewStatsService(issueRepo)
	departmentService := service.NewDepartmentService(deptRepo, cfg.Logger)
	announcementService := service.NewAnnouncementService(announcementRepo)
	eventService := service.NewEventService(eventRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	issueHandler := handler.NewIssueHandler(issueService)
	commentHandler := handler.NewCommentHandler(commentService)
	statsHandler := handler.NewStatsHandler(statsService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	eventHandler := handler.NewEventHandler(eventService)

	authMiddleware := middleware.Auth(cfg.Tokens)
	adminOnly := middleware.RequireAdmin()

	issueLimit := cfg.IssuesPerWindow
	if issueLimit == 0 {
		issueLimit = defaultIssueLimit
	}
	issueWindow := cfg.IssueWindow
	if issueWindow == 0 {
		issueWindow = defaultIssueWindow
	}
	var limiterStore middleware.FixedWindowStore
	if cfg.Redis != nil {
		limiterStore = middleware.NewRedisWindowStore(cfg.Redis, rateLimitPrefix)
	}
	issueLimiter := middleware.RateLimit(middleware.RateLimitConfig{
		Store:   limiterStore,
		Limit:   issueLimit,
		Window:  issueWindow,
		Metrics: cfg.Metrics,
		Logger:  cfg.Logger,
	})

	api := r.Group(cfg.BasePath)
	// Ingress only forwards the base path, so metrics are mirrored under it
	api.GET("/metrics", metricsHandler)

	// ============================================================
	// Auth routes
	// ============================================================
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/me", authMiddleware, authHandler.Me)
	}

	// ============================================================
	// User administration
	// ============================================================
	users := api.Group("/users", authMiddleware, adminOnly)
	{
		users.GET("", userHandler.ListUsers)
		users.PATCH("/:id/role", userHandler.UpdateRole)
	}

	// ============================================================
	// Issue routes
	// ============================================================
	api.POST("/issues", middleware.OptionalAuth(cfg.Tokens), issueLimiter, issueHandler.CreateIssue)
	issues := api.Group("/issues", authMiddleware)
	{
		issues.GET("", issueHandler.ListIssues)
		issues.GET("/:id", issueHandler.GetIssue)
		issues.POST("/:id/upvote", issueHandler.Upvote)
		issues.GET("/:id/comments", commentHandler.ListComments)
		issues.POST("/:id/comments", commentHandler.AddComment)

		issues.PATCH("/:id/status", adminOnly, issueHandler.UpdateStatus)
		issues.GET("/:id/history", adminOnly, issueHandler.GetStatusHistory)
		issues.DELETE("/:id", adminOnly, issueHandler.DeleteIssue)
	}

	// ============================================================
	// Departments, announcements and events
	// ============================================================
	departments := api.Group("/departments", authMiddleware)
	{
		departments.GET("", departmentHandler.ListDepartments)
		departments.GET("/:id", departmentHandler.GetDepartment)
		departments.POST("", adminOnly, departmentHandler.CreateDepartment)
		departments.PUT("/:id", adminOnly, departmentHandler.UpdateDepartment)
		departments.DELETE("/:id", adminOnly, departmentHandler.DeleteDepartment)
	}

	announcements := api.Group("/announcements", authMiddleware)
	{
		announcements.GET("", announcementHandler.ListAnnouncements)
		announcements.POST("", adminOnly, announcementHandler.CreateAnnouncement)
		announcements.PUT("/:id", adminOnly, announcementHandler.UpdateAnnouncement)
		announcements.DELETE("/:id", adminOnly, announcementHandler.DeleteAnnouncement)
	}

	eventRoutes := api.Group("/events", authMiddleware)
	{
		eventRoutes.GET("", eventHandler.ListEvents)
		eventRoutes.GET("/:id", eventHandler.GetEvent)
		eventRoutes.POST("/:id/join", eventHandler.JoinEvent)
		eventRoutes.POST("", adminOnly, eventHandler.CreateEvent)
		eventRoutes.PUT("/:id", adminOnly, eventHandler.UpdateEvent)
		eventRoutes.DELETE("/:id", adminOnly, eventHandler.DeleteEvent)
	}

	// ============================================================
	// Statistics
	// ============================================================
	stats := api.Group("/stats", authMiddleware)
	{
		stats.GET("", statsHandler.GetStats)
		stats.GET("/categories", statsHandler.CategoryStats)
		stats.GET("/status", statsHandler.StatusStats)
		stats.GET("/trend", statsHandler.Trend)
	}

	// ============================================================
	// Live feed
	// ============================================================
	if cfg.Hub != nil {
		api.GET("/ws/issues", middleware.WSAuth(cfg.Tokens), cfg.Hub.ServeWS)
	}

	return r
}
