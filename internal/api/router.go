package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/appointly/identity-service/docs"
	"github.com/appointly/identity-service/internal/api/handler"
	"github.com/appointly/identity-service/internal/api/middleware"
	"github.com/appointly/identity-service/internal/core/domain"
	"github.com/appointly/identity-service/internal/core/ports"
)

// Deps bundles the constructed services and infrastructure the router wires
// into routes. All of them are built once in main and read-only afterwards.
type Deps struct {
	Auth     ports.AuthService
	Identity ports.IdentityService
	Tokens   ports.TokenService
	Denylist ports.TokenDenylist
	Audit    ports.AuditSink
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Guards ---
	authn := middleware.Auth(deps.Tokens, deps.Denylist)
	anyAuthenticated := middleware.RBAC(deps.Audit)
	adminOnly := middleware.RBAC(deps.Audit, domain.RoleAdmin)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authn, anyAuthenticated)
	e.GET("/auth/profile", authHandler.Profile, authn, anyAuthenticated)

	// --- Identity management ---
	userHandler := handler.NewUserHandler(deps.Identity)
	users := e.Group("/users", authn)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/:id", userHandler.Get, anyAuthenticated)
	users.PATCH("/:id/password", userHandler.ChangePassword, anyAuthenticated)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
