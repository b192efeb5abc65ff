package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/nutriai/backend/internal/api"
	"github.com/pageza/nutriai/backend/internal/middleware"
)

// SetupRouter builds the gin engine with the shared middleware chain and
// every API route.
func SetupRouter(allowedOrigins []string, svc api.Services, log *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(allowedOrigins))

	api.RegisterRoutes(router, svc, log)
	return router
}
