package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"zoumai/internal/config"
	"zoumai/internal/models"
)

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// GetDashboard aggregates the numbers behind the manager's landing
// screen: fleet totals, per-status rollups, recent trips and upcoming
// maintenance.
func GetDashboard(c *gin.Context) {
	var (
		totalVehicles int64
		activeTrips   int64
		totalDrivers  int64
		activeAlerts  int64
	)
	config.DB.Model(&models.Vehicle{}).Count(&totalVehicles)
	config.DB.Model(&models.Trip{}).Where("status = ?", models.TripInProgress).Count(&activeTrips)
	config.DB.Model(&models.User{}).Where("role = ?", models.RoleDriver).Count(&totalDrivers)
	config.DB.Model(&models.Alert{}).Where("resolved = ?", false).Count(&activeAlerts)

	var vehiclesByStatus []statusCount
	if err := config.DB.Model(&models.Vehicle{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&vehiclesByStatus).Error; err != nil {
		logrus.WithError(err).Error("Error grouping vehicles by status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var tripsByStatus []statusCount
	if err := config.DB.Model(&models.Trip{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&tripsByStatus).Error; err != nil {
		logrus.WithError(err).Error("Error grouping trips by status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var recentTrips []models.Trip
	config.DB.
		Preload("Driver").
		Preload("Vehicle").
		Order("created_at DESC").
		Limit(10).
		Find(&recentTrips)

	var tickets []models.MaintenanceTicket
	config.DB.
		Preload("Vehicle").
		Order("scheduled_at ASC NULLS LAST").
		Limit(10).
		Find(&tickets)

	c.JSON(http.StatusOK, gin.H{
		"total_vehicles":      totalVehicles,
		"active_trips":        activeTrips,
		"total_drivers":       totalDrivers,
		"active_alerts":       activeAlerts,
		"vehicles_by_status":  vehiclesByStatus,
		"trips_by_status":     tripsByStatus,
		"recent_trips":        recentTrips,
		"maintenance_tickets": tickets,
	})
}
