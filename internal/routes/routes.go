package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"zoumai/internal/service"
)

// SetupRouter assembles every route group onto one engine. Middleware
// has to be attached before the groups register their handlers.
func SetupRouter(trips *service.TripLifecycle) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r)
	DriverRoutes(r, trips)
	ManagerRoutes(r)
	FleetRoutes(r)
	AlertRoutes(r)

	return r
}
