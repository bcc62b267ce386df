package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/creatorbase/influencer-api/docs"
	"github.com/creatorbase/influencer-api/internal/api/handler"
	"github.com/creatorbase/influencer-api/internal/api/middleware"
	"github.com/creatorbase/influencer-api/internal/core/domain"
	"github.com/creatorbase/influencer-api/internal/core/ports"
	"github.com/creatorbase/influencer-api/internal/core/service"
	"github.com/creatorbase/influencer-api/internal/infrastructure/config"
	mongodb "github.com/creatorbase/influencer-api/internal/infrastructure/db/mongo"
	redisdb "github.com/creatorbase/influencer-api/internal/infrastructure/db/redis"
)

// Denial messages surfaced on 403s, fixed per route group.
const (
	deniedBrands      = "Access denied. Only staff and admin users can view brands"
	deniedUsers       = "Access denied. Only staff and admin users can view users"
	deniedInfluencers = "Access denied. Only staff and admin users can view influencers"
	deniedAdmin       = "Access denied. Administrator access required"
	deniedOnboarding  = "Access denied. Onboarding is available to influencer accounts only"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the sync service so the cron scheduler can share the
// single in-process job instance.
func NewRouter(db *mongo.Database, rdb *redis.Client, provider ports.ProviderClient, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *service.SyncService) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("creatorbase"))

	// --- Dependencies ---
	brandRepo := mongodb.NewBrandRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	influencerRepo := mongodb.NewInfluencerRepository(db)
	draftStore := redisdb.NewDraftStore(rdb, cfg.Onboarding.DraftTTL)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	brandService := service.NewBrandService(brandRepo, log)
	userService := service.NewUserService(userRepo)
	influencerService := service.NewInfluencerService(influencerRepo)
	syncService := service.NewSyncService(influencerRepo, provider, service.SyncConfig{
		BatchSize:   cfg.Sync.BatchSize,
		RecordDelay: cfg.Sync.RecordDelay,
		RunHourUTC:  cfg.Sync.RunHourUTC,
	}, log)
	onboardingService := service.NewOnboardingService(draftStore, influencerRepo, service.OnboardingConfig{
		SaveMaxRetries: cfg.Onboarding.SaveMaxRetries,
		SaveBaseDelay:  cfg.Onboarding.SaveBaseDelay,
	}, log)

	authHandler := handler.NewAuthHandler(authService)
	sessionHandler := handler.NewSessionHandler()
	brandHandler := handler.NewBrandHandler(brandService)
	userHandler := handler.NewUserHandler(userService)
	influencerHandler := handler.NewInfluencerHandler(influencerService)
	syncHandler := handler.NewSyncHandler(syncService, cfg.Sync.DailyCreditBudget)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)

	auth := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	apiGroup := e.Group("/api", auth)
	apiGroup.GET("/session", sessionHandler.Resolve)

	brands := apiGroup.Group("/brands", middleware.Portal(domain.PortalStaff, deniedBrands))
	brands.GET("", brandHandler.List)
	brands.POST("", brandHandler.Create)
	brands.GET("/:id", brandHandler.Get)
	brands.PATCH("/:id", brandHandler.Update)

	users := apiGroup.Group("/users", middleware.Portal(domain.PortalStaff, deniedUsers))
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)

	influencers := apiGroup.Group("/influencers", middleware.Portal(domain.PortalStaff, deniedInfluencers))
	influencers.GET("", influencerHandler.List)
	influencers.GET("/:id", influencerHandler.Get)

	admin := apiGroup.Group("/admin", middleware.RequireRole(domain.RoleAdmin, deniedAdmin))
	admin.GET("/sync/status", syncHandler.Status)
	admin.POST("/sync/run", syncHandler.Run)
	admin.POST("/sync/influencers", syncHandler.UpdateInfluencers)

	onboarding := apiGroup.Group("/onboarding", middleware.Portal(domain.PortalInfluencer, deniedOnboarding))
	onboarding.GET("/draft", onboardingHandler.Draft)
	onboarding.PUT("/draft/:step", onboardingHandler.SaveStep)
	onboarding.POST("/complete", onboardingHandler.Complete)

	// --- Health probes, metrics, API docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, syncService
}
