package routes

import (
	"github.com/gin-gonic/gin"

	"zoumai/internal/controllers"
	"zoumai/internal/middleware"
	"zoumai/internal/models"
	"zoumai/internal/service"
)

func DriverRoutes(r *gin.Engine, trips *service.TripLifecycle) {
	driver := r.Group("/driver")
	driver.Use(middleware.RequireAuthWithRole(models.RoleDriver))
	{
		driver.GET("/trips", controllers.ListMyTrips)
		driver.GET("/trips/:id", controllers.GetMyTrip)
		driver.POST("/trips/:id/start", controllers.StartTrip(trips))
		driver.PATCH("/trips/:id/checklist/:itemId", controllers.UpdateChecklistItem(trips))
		driver.GET("/trips/:id/alerts", controllers.ListTripAlerts)
		driver.GET("/alerts", controllers.ListDriverAlerts)
	}
}
