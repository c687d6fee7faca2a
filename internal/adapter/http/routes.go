package http

import (
	"planloop/internal/adapter/http/handlers"
	"planloop/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler, syncHandler *handlers.SyncHandler) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)

		api.GET("/tasks", taskHandler.ListTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.PATCH("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
		api.POST("/tasks/:id/toggle", taskHandler.ToggleComplete)
		api.POST("/tasks/:id/extend", taskHandler.ExtendSeries)

		api.DELETE("/series/:id", taskHandler.DeleteSeries)
		api.POST("/undo/:token", taskHandler.Undo)

		api.POST("/sync/notify", syncHandler.NotifyChange)
	}
}
