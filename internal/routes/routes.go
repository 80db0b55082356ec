package routes

import (
	"net/http"

	"jobmatch_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all HTTP routes.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.ProfileHandler.RegisterRoutes(api)
		appHandlers.RecommendationHandler.RegisterRoutes(api)
		appHandlers.PredictionHandler.RegisterRoutes(api)
	}
}
