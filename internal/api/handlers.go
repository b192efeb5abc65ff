package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/nutriai/backend/internal/middleware"
	"github.com/pageza/nutriai/backend/internal/service"
)

// Services bundles what the handlers depend on. Planner, Coach and Limiter may be nil.
type Services struct {
	Accounts  service.IAccountService
	Profiles  service.IProfileService
	Theme     *service.ThemeService
	Hydration service.IHydrationService
	CheckIns  service.ICheckInService
	Library   service.ILibraryService
	Planner   service.IPlannerService
	Coach     service.ICoachService
	Limiter   *middleware.RateLimiter
	Health    func(ctx context.Context) error
}

// HealthCheck reports whether the storage backend answers.
func HealthCheck(check func(ctx context.Context) error, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				log.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"message": "storage backend unavailable",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "NutriAI API is running",
			"version": "v1.0.0",
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services, log *zap.Logger) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck(svc.Health, log))

	v1 := router.Group("/api/v1")
	v1.GET("/health", HealthCheck(svc.Health, log))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Accounts))

	NewAuthHandler(svc.Accounts).RegisterRoutes(v1, protected)
	NewProfileHandler(svc.Profiles, svc.Theme).RegisterRoutes(protected)
	NewTrackerHandler(svc.Hydration, svc.CheckIns, svc.Profiles).RegisterRoutes(protected)
	NewLibraryHandler(svc.Library).RegisterRoutes(protected)
	NewGenerateHandler(svc.Planner, svc.Library, svc.Profiles, svc.Limiter).RegisterRoutes(protected)
	NewCoachHandler(svc.Coach, svc.Profiles, svc.Limiter).RegisterRoutes(protected)
}
