package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fwedwicc/rebyuwer-app/internal/api/handler"
	"github.com/fwedwicc/rebyuwer-app/internal/api/middleware"
	"github.com/fwedwicc/rebyuwer-app/internal/core/service"
	mongodb "github.com/fwedwicc/rebyuwer-app/internal/infrastructure/db/mongo"
	redisdb "github.com/fwedwicc/rebyuwer-app/internal/infrastructure/db/redis"
)

// RouterConfig carries the knobs the router needs beyond its dependencies.
type RouterConfig struct {
	JWTSecret          string
	TokenTTL           time.Duration
	LoginMaxAttempts   int
	LoginAttemptWindow time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rebyuwer"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	setRepo := mongodb.NewCardSetRepository(db)
	cardRepo := mongodb.NewCardRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.LoginMaxAttempts, cfg.LoginAttemptWindow)
	authService := service.NewAuthService(userRepo, tokenService, throttle)
	userService := service.NewUserService(userRepo)
	cardSetService := service.NewCardSetService(setRepo, cardRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	cardSetHandler := handler.NewCardSetHandler(cardSetService)
	cardHandler := handler.NewCardHandler(cardSetService)

	authMiddleware := middleware.Auth(tokenService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- User routes ---
	user := e.Group("/user", authMiddleware)
	user.GET("/me", userHandler.Me)
	user.GET("", userHandler.List, middleware.RBAC("admin"))

	// --- Card set routes ---
	cardSet := e.Group("/cardSet", authMiddleware)
	cardSet.GET("", cardSetHandler.List)
	cardSet.POST("", cardSetHandler.Create)
	cardSet.PUT("/:id", cardSetHandler.Rename)
	cardSet.DELETE("/:id", cardSetHandler.Delete)

	// --- Card routes ---
	card := e.Group("/card", authMiddleware)
	card.GET("/:cardSetId", cardHandler.List)
	card.POST("/:cardSetId", cardHandler.Add)
	card.PUT("/:cardSetId/:cardId", cardHandler.Edit)
	card.DELETE("/:cardSetId/:cardId", cardHandler.Delete)

	// --- Metrics + health probes (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
