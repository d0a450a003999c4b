package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/eventica/registration-api/internal/http/handlers"
	"github.com/eventica/registration-api/internal/http/middlewares"
	"github.com/eventica/registration-api/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RouterDeps carries everything the router needs, wired explicitly at
// startup. No package-level singletons.
type RouterDeps struct {
	Log   *slog.Logger
	Store handlers.RegistrationStore

	// Ping reports store reachability for /readyz; nil means always ready.
	Ping func(ctx context.Context) error

	Prom    *observability.Prom
	Metrics prometheus.Gatherer

	MaxBodyBytes int64
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if os.Getenv("APP_ENV") != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(deps.Log))
	r.Use(middlewares.CORS())
	r.Use(middlewares.MaxBodyBytes(deps.MaxBodyBytes))
	r.Use(otelgin.Middleware("eventica-registration"))

	if deps.Prom != nil {
		r.Use(deps.Prom.GinMiddleware())
	}

	// unmatched paths 404, matched paths with the wrong method 405
	r.HandleMethodNotAllowed = true

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	r.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// health
	h := handlers.NewHealthHandler(deps.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	// registration routes
	regHandler := handlers.NewRegistrationsHandler(deps.Store, deps.Log)

	r.POST("/register", regHandler.Register)
	r.GET("/registrations", regHandler.List)
	r.DELETE("/registrations/:id", regHandler.Delete)

	return r
}
