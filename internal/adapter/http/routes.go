package http

import (
	"github.com/gin-gonic/gin"

	"boardsync/internal/adapter/http/handlers"
	"boardsync/internal/adapter/http/middleware"
)

func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, boardHandler *handlers.BoardHandler) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
		api.GET("/board", boardHandler.GetBoard)
		api.GET("/board/todos/:id", boardHandler.GetTodo)
	}
}
