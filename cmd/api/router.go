package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"bookshelf-api/internal/shared/middleware"
	"bookshelf-api/internal/shared/response"
	"bookshelf-api/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	// Request bodies only accept declared fields
	binding.EnableDecoderDisallowUnknownFields = true

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// gin trusts every peer by default; forwarding headers count only from configured proxies
	if err := router.SetTrustedProxies(c.Config.HTTP.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("Invalid trusted proxies, ignoring forwarding headers")
		_ = router.SetTrustedProxies(nil)
	}

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	if rl := c.Config.RateLimit; rl.Enabled {
		router.Use(middleware.RateLimit(middleware.NewIPRateLimiter(rate.Limit(rl.RPS), rl.Burst)))
		log.Info().Float64("rps", rl.RPS).Int("burst", rl.Burst).Msg("Rate limiting enabled")
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Cannot "+ctx.Request.Method+" "+ctx.Request.URL.Path)
	})
	router.NoMethod(func(ctx *gin.Context) {
		response.Abort(ctx, http.StatusMethodNotAllowed, "Method "+ctx.Request.Method+" is not allowed on "+ctx.Request.URL.Path)
	})

	router.GET("/health", healthCheckHandler(c))

	setupAuthorRoutes(&router.RouterGroup, c)
	setupBookRoutes(&router.RouterGroup, c)

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(rg *gin.RouterGroup, c *container.Container) {
	c.AuthorHandler.RegisterRoutes(rg)
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(rg *gin.RouterGroup, c *container.Container) {
	c.BookHandler.RegisterRoutes(rg)
}

// healthCheckHandler reports database reachability and pool counters.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		if appCtx.Health == nil {
			response.Abort(c, http.StatusServiceUnavailable, "Database is not configured")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.Health.HealthCheck(ctx); err != nil {
			log.Warn().Err(err).Msg("Health check failed")
			response.Abort(c, http.StatusServiceUnavailable, "Database is unreachable")
			return
		}

		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}
		if stats, err := appCtx.Health.Stats(); err == nil {
			health["database"] = stats
		}

		response.OK(c, health)
	}
}
