package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"zoumai/internal/config"
	"zoumai/internal/models"
)

// ListTrips returns all trips for the manager view, with optional free
// text search (points, driver name, plate) and status filter.
func ListTrips(c *gin.Context) {
	query := config.DB.Model(&models.Trip{}).
		Select("trips.*").
		Joins("LEFT JOIN users ON users.id = trips.driver_id").
		Joins("LEFT JOIN vehicles ON vehicles.id = trips.vehicle_id")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"trips.start_point ILIKE ? OR trips.end_point ILIKE ? OR users.name ILIKE ? OR vehicles.plate_number ILIKE ?",
			like, like, like, like,
		)
	}
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("trips.status = ?", status)
	}

	var trips []models.Trip
	if err := query.
		Preload("Driver").
		Preload("Vehicle").
		Order("trips.created_at DESC").
		Find(&trips).Error; err != nil {
		logrus.WithError(err).Error("Error listing trips")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": trips})
}

type createTripInput struct {
	StartPoint    string `json:"start_point" binding:"required"`
	EndPoint      string `json:"end_point" binding:"required"`
	DriverID      uint   `json:"driver_id" binding:"required"`
	VehicleID     uint   `json:"vehicle_id" binding:"required"`
	ScheduledDate string `json:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime string `json:"scheduled_time"` // HH:MM
}

// CreateTrip schedules a PLANNED trip on an AVAILABLE vehicle and
// instantiates one checklist item per template, all in one transaction.
func CreateTrip(c *gin.Context) {
	var input createTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants"})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, input.VehicleID).Error; err != nil || vehicle.Status != models.VehicleAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Véhicule non disponible"})
		return
	}

	// Scheduled start, when both parts are provided.
	var startTime *time.Time
	if input.ScheduledDate != "" && input.ScheduledTime != "" {
		if t, err := time.Parse("2006-01-02 15:04", input.ScheduledDate+" "+input.ScheduledTime); err == nil {
			startTime = &t
		}
	}

	trip := models.Trip{
		StartPoint: input.StartPoint,
		EndPoint:   input.EndPoint,
		Status:     models.TripPlanned,
		StartTime:  startTime,
		DriverID:   input.DriverID,
		VehicleID:  input.VehicleID,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trip).Error; err != nil {
			return err
		}

		var templates []models.ChecklistItemTemplate
		if err := tx.Order("display_order ASC").Find(&templates).Error; err != nil {
			return err
		}

		items := make([]models.TripChecklistItem, 0, len(templates))
		for _, template := range templates {
			items = append(items, models.TripChecklistItem{
				TripID:     trip.ID,
				TemplateID: template.ID,
			})
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		logrus.WithError(err).Error("Error creating trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var created models.Trip
	if err := config.DB.
		Preload("Driver").
		Preload("Vehicle").
		First(&created, trip.ID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("Error reloading created trip")
	}

	c.JSON(http.StatusCreated, gin.H{"trip": created})
}
