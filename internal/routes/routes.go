package routes

import (
	"net/http"

	"jobportal_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every handler under the /api prefix.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.JobHandler.RegisterRoutes(api)
		appHandlers.ApplicationHandler.RegisterRoutes(api)
	}
}
