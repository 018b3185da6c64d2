package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"zoumai/internal/config"
	"zoumai/internal/models"
)

// CreateVehicle registers a new vehicle; status defaults to AVAILABLE.
func CreateVehicle(c *gin.Context) {
	var input struct {
		PlateNumber string `json:"plate_number" binding:"required"`
		Model       string `json:"model" binding:"required"`
		Year        int    `json:"year"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants"})
		return
	}

	vehicle := models.Vehicle{
		PlateNumber:  input.PlateNumber,
		VehicleModel: input.Model,
		Year:         input.Year,
		Status:       models.VehicleAvailable,
	}
	if err := config.DB.Create(&vehicle).Error; err != nil {
		logrus.WithError(err).Error("Error creating vehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// ListVehicles returns vehicles ordered by plate, optionally filtered
// by status.
func ListVehicles(c *gin.Context) {
	query := config.DB.Model(&models.Vehicle{})
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var vehicles []models.Vehicle
	if err := query.Order("plate_number ASC").Find(&vehicles).Error; err != nil {
		logrus.WithError(err).Error("Error listing vehicles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// FleetOverview returns every vehicle with its running trip (if any),
// total trip count and unresolved alert count, for the fleet screen.
func FleetOverview(c *gin.Context) {
	query := config.DB.Model(&models.Vehicle{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("plate_number ILIKE ? OR model ILIKE ?", like, like)
	}
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var vehicles []models.Vehicle
	if err := query.Order("plate_number ASC").Find(&vehicles).Error; err != nil {
		logrus.WithError(err).Error("Error fetching fleet")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	out := make([]gin.H, 0, len(vehicles))
	for _, vehicle := range vehicles {
		var tripCount, alertCount int64
		config.DB.Model(&models.Trip{}).Where("vehicle_id = ?", vehicle.ID).Count(&tripCount)
		config.DB.Model(&models.Alert{}).Where("vehicle_id = ? AND resolved = ?", vehicle.ID, false).Count(&alertCount)

		var currentTrip models.Trip
		var current interface{}
		err := config.DB.
			Where("vehicle_id = ? AND status = ?", vehicle.ID, models.TripInProgress).
			Preload("Driver").
			First(&currentTrip).Error
		if err == nil {
			current = gin.H{
				"id":          currentTrip.ID,
				"start_point": currentTrip.StartPoint,
				"end_point":   currentTrip.EndPoint,
				"start_time":  currentTrip.StartTime,
				"driver":      gin.H{"name": currentTrip.Driver.Name},
			}
		}

		out = append(out, gin.H{
			"id":           vehicle.ID,
			"plate_number": vehicle.PlateNumber,
			"model":        vehicle.VehicleModel,
			"year":         vehicle.Year,
			"status":       vehicle.Status,
			"last_lat":     vehicle.LastLat,
			"last_lng":     vehicle.LastLng,
			"last_update":  vehicle.LastUpdate,
			"trip_count":   tripCount,
			"alert_count":  alertCount,
			"current_trip": current,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}
