package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamsite/content-api/internal/api/handler"
	"github.com/teamsite/content-api/internal/api/middleware"
	"github.com/teamsite/content-api/internal/core/ports"
	"github.com/teamsite/content-api/internal/core/service"
)

// RouterDeps carries the constructed collaborators the router wires together.
// Redis may be nil when the cache layer is disabled.
type RouterDeps struct {
	Records *service.RecordService
	Locales *service.LocaleService
	Gate    *service.AuthGate
	Assets  ports.AssetStore
	Mongo   *mongo.Database
	Redis   *redis.Client
	Logger  zerolog.Logger

	// Metrics overrides the Prometheus registry; nil uses the default one.
	// Tests standing up several routers in one process need their own.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer := prometheus.Registerer(prometheus.DefaultRegisterer)
	gatherer := prometheus.Gatherer(prometheus.DefaultGatherer)
	if deps.Metrics != nil {
		registerer = deps.Metrics
		gatherer = deps.Metrics
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "content",
		Registerer: registerer,
	}))

	// --- Handlers ---
	recordHandler := handler.NewRecordHandler(deps.Records)
	localeHandler := handler.NewLocaleHandler(deps.Locales)
	assetHandler := handler.NewAssetHandler(deps.Assets)
	adminAuth := middleware.StaticToken(deps.Gate)

	// --- Record pipeline ---
	e.POST("/v1/records", recordHandler.Save)
	e.DELETE("/v1/records", recordHandler.Delete)

	// --- Unauthenticated reads ---
	e.GET("/v1/records/:kind", recordHandler.List)
	e.GET("/v1/records/:kind/:id", recordHandler.Get)
	e.GET("/v1/locales", localeHandler.List)
	e.GET("/assets/:filename", assetHandler.Get)

	// --- Locale admin ---
	e.POST("/v1/locales", localeHandler.Create, adminAuth)
	e.DELETE("/v1/locales/:language", localeHandler.Delete, adminAuth)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis, deps.Assets)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))

	return e
}
