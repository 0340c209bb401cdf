// Package router assembles the Gin engine from the application container:
// global middleware, operational endpoints, then every module's routes.
package router

import (
	"net/http"
	"time"

	apphttp "revenue_leak_backend/internal/http"
	"revenue_leak_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the HTTP engine. Middleware order matters: recovery first,
// then request identity and logging so every later handler observes them,
// then metrics and CORS. The per-IP rate limiter guards only /api/v1;
// /healthz and /metrics stay unlimited for probes and scrapers.
func New(app *apphttp.App) *gin.Engine {
	if app.Config.GetEnv() == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	if app.Metrics != nil {
		engine.Use(app.Metrics.GinMiddleware())
	}
	engine.Use(cors.New(corsConfig(app)))

	engine.GET("/healthz", healthHandler(app))
	if app.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(app.Metrics.Handler()))
	}

	limiter := httpkit.NewIPRateLimiter(
		rate.Limit(app.Config.GetRateLimitRPS()),
		app.Config.GetRateLimitBurst(),
		app.Logger,
	)

	v1 := engine.Group("/api/v1")
	v1.Use(limiter.RateLimit())

	ctx := &apphttp.RouterContext{Engine: engine, V1: v1}
	for _, m := range app.Modules {
		m.RegisterRoutes(ctx)
		app.Logger.Info("registered module routes", "module", m.Name())
	}

	return engine
}

func corsConfig(app *apphttp.App) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", httpkit.RequestIDHeader},
		ExposeHeaders: []string{httpkit.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if app.Config.GetCORSAllowAll() {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = app.Config.GetCORSOrigins()
	}
	return cfg
}

func healthHandler(app *apphttp.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if app.Health != nil {
			if err := app.Health.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
