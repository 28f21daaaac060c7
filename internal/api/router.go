package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/havenpoint/recovery-platform/internal/api/handler"
	"github.com/havenpoint/recovery-platform/internal/api/middleware"
	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/service"
	"github.com/havenpoint/recovery-platform/internal/infrastructure/config"
	mongodb "github.com/havenpoint/recovery-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/havenpoint/recovery-platform/internal/infrastructure/db/redis"
)

// NewRouter wires repositories, services and handlers, and returns the Echo
// instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("recovery"))

	// --- Repositories ---
	accountRepo := mongodb.NewAccountRepository(db)
	claimsRepo := mongodb.NewClaimsRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	residentRepo := mongodb.NewResidentRepository(db)
	tenantRepo := mongodb.NewTenantRepository(db)
	enrollmentRepo := mongodb.NewEnrollmentRepository(db)
	joinRequestRepo := mongodb.NewJoinRequestRepository(db)
	eventRepo := mongodb.NewHouseEventRepository(db)
	claimsCache := redisdb.NewClaimsVersionCache(rdb)

	// --- Services ---
	profileSvc := service.NewProfileService(profileRepo, residentRepo, log)
	claimsSvc := service.NewClaimsService(claimsRepo, claimsCache, log)
	tenantSvc := service.NewTenantService(tenantRepo, claimsRepo, claimsCache, log)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, log)
	joinRequestSvc := service.NewJoinRequestService(joinRequestRepo, tenantRepo, profileRepo, enrollmentSvc, log)
	feedSvc := service.NewFeedService(profileRepo, enrollmentRepo, eventRepo, cfg.FeedFanoutLimit, log)
	authSvc := service.NewAuthService(accountRepo, claimsRepo, profileSvc, cfg.JWTSecret, cfg.TokenTTL, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authSvc)
	claimsHandler := handler.NewClaimsHandler(claimsSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	tenantHandler := handler.NewTenantHandler(tenantSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	joinRequestHandler := handler.NewJoinRequestHandler(joinRequestSvc)
	eventHandler := handler.NewEventHandler(eventRepo, feedSvc)

	authn := middleware.Auth(cfg.JWTSecret, claimsCache)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/v1/tenants/slug/:slug", tenantHandler.GetBySlug)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Authenticated, not tenant-scoped ---
	e.POST("/auth/refresh", authHandler.Refresh, authn)
	e.GET("/v1/me", profileHandler.Me, authn)
	e.PATCH("/v1/me", profileHandler.UpdateMe, authn)
	e.GET("/v1/me/feed", eventHandler.Feed, authn)
	e.POST("/v1/residents", profileHandler.CreateResident, authn)
	e.POST("/v1/profiles/:uid/resident", profileHandler.LinkResident, authn)
	e.GET("/v1/claims/:uid", claimsHandler.Get, authn)
	e.PUT("/v1/claims/:uid", claimsHandler.Set, authn)
	e.POST("/v1/tenants", tenantHandler.Create, authn)

	// --- Platform administration ---
	admin := e.Group("/v1/tenants/:tenantID", authn, middleware.RequireSuperAdmin())
	admin.POST("/approve", tenantHandler.Approve)
	admin.POST("/reject", tenantHandler.Reject)
	admin.POST("/suspend", tenantHandler.Suspend)
	admin.POST("/activate", tenantHandler.Activate)

	// --- Tenant-scoped staff routes ---
	read := e.Group("/v1/tenants/:tenantID", authn, middleware.RequireCapability(domain.CapRead))
	read.GET("", tenantHandler.Get)
	read.GET("/enrollments", enrollmentHandler.List)
	read.GET("/enrollments/stats", enrollmentHandler.Stats)
	read.GET("/events", eventHandler.List)

	write := e.Group("/v1/tenants/:tenantID", authn, middleware.RequireCapability(domain.CapWrite))
	write.POST("/enrollments", enrollmentHandler.Create)
	write.PATCH("/enrollments/:residentID", enrollmentHandler.Update)
	write.GET("/join-requests", joinRequestHandler.ListPending)
	write.POST("/join-requests/:uid/decide", joinRequestHandler.Decide)
	write.POST("/events", eventHandler.Create)

	// --- Tenant-scoped resident routes (enrollment-gated, disjoint from
	// the staff gate) ---
	resident := e.Group("/v1/tenants/:tenantID/my", authn, middleware.ResidentAccess(profileSvc, enrollmentSvc))
	resident.GET("/events", eventHandler.List)

	// Join-request submission checks the resident role in the service; the
	// requester has no enrollment yet, so neither gate applies.
	e.POST("/v1/tenants/:tenantID/join-requests", joinRequestHandler.Create, authn)

	return e
}
