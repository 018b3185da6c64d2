package routes

import (
	"github.com/gin-gonic/gin"

	"zoumai/internal/controllers"
	"zoumai/internal/middleware"
)

func FleetRoutes(r *gin.Engine) {
	fleet := r.Group("/fleet")
	fleet.Use(middleware.RequireAuth())
	{
		fleet.GET("/positions", controllers.VehiclePositions)
		fleet.GET("/positions/geojson", controllers.VehiclePositionsGeoJSON)
	}
}
