package routes

import (
	"github.com/gin-gonic/gin"

	"zoumai/internal/controllers"
	"zoumai/internal/middleware"
	"zoumai/internal/models"
)

func ManagerRoutes(r *gin.Engine) {
	manager := r.Group("/manager")
	manager.Use(middleware.RequireAuthWithRole(models.RoleManager))
	{
		manager.GET("/dashboard", controllers.GetDashboard)

		manager.GET("/vehicles", controllers.ListVehicles)
		manager.POST("/vehicles", controllers.CreateVehicle)
		manager.GET("/fleet", controllers.FleetOverview)

		manager.GET("/trips", controllers.ListTrips)
		manager.POST("/trips", controllers.CreateTrip)

		manager.GET("/drivers", controllers.ListDrivers)
		manager.GET("/drivers/detailed", controllers.ListDriversDetailed)
		manager.POST("/drivers", controllers.CreateDriver)

		manager.GET("/maintenance", controllers.ListMaintenanceTickets)
		manager.POST("/maintenance", controllers.CreateMaintenanceTicket)
		manager.PATCH("/maintenance/:id", controllers.UpdateMaintenanceTicket)

		manager.POST("/alerts", controllers.CreateAlert)
	}
}
