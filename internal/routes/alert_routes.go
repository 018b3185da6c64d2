package routes

import (
	"github.com/gin-gonic/gin"

	"zoumai/internal/controllers"
	"zoumai/internal/middleware"
)

func AlertRoutes(r *gin.Engine) {
	alerts := r.Group("/alerts")
	alerts.Use(middleware.RequireAuth())
	{
		alerts.GET("", controllers.ListAlerts)
		alerts.POST("/:id/resolve", controllers.ResolveAlert)
	}
}
