package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/hydrai/telemetry-system/docs"
	"github.com/hydrai/telemetry-system/internal/api/handler"
	"github.com/hydrai/telemetry-system/internal/api/middleware"
	"github.com/hydrai/telemetry-system/internal/core/ports"
	"github.com/hydrai/telemetry-system/internal/core/service"
	mongodb "github.com/hydrai/telemetry-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/hydrai/telemetry-system/internal/infrastructure/db/redis"
	"github.com/hydrai/telemetry-system/internal/infrastructure/queue"
	"github.com/hydrai/telemetry-system/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the measurement dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, gen ports.TextGenerator, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("hydrai"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	meterRepo := mongodb.NewMeterRepository(db)

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, cfg.BcryptCost, log)
	meterService := service.NewMeterService(meterRepo, log)
	analysisService := service.NewAnalysisService(meterRepo, gen, redisinfra.NewAnalysisCache(rdb), log)

	dispatcher := queue.NewDispatcher(cfg.Workers, meterService, log)

	authHandler := handler.NewAuthHandler(authService)
	meterHandler := handler.NewMeterHandler(meterService, dispatcher)
	analysisHandler := handler.NewAnalysisHandler(analysisService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// --- Open routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)

	// --- Protected routes ---
	protected := e.Group("/api", middleware.Auth(tokens, userRepo, log))
	protected.GET("/meters", meterHandler.List)
	protected.POST("/meters", meterHandler.Create)
	protected.POST("/meters/:id/measurements", meterHandler.Receive)
	protected.POST("/analysis", analysisHandler.Analyze)

	// --- Ops surface (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, dispatcher
}
