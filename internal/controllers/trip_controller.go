package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"zoumai/internal/config"
	"zoumai/internal/middleware"
	"zoumai/internal/models"
	"zoumai/internal/service"
)

// --- Driver-facing trip endpoints ---

// ListMyTrips returns the authenticated driver's trips, newest first,
// with the vehicle summary and checklist progress counts.
func ListMyTrips(c *gin.Context) {
	driverID := middleware.UserID(c)

	var trips []models.Trip
	if err := config.DB.
		Where("driver_id = ?", driverID).
		Preload("Vehicle").
		Preload("ChecklistItems").
		Order("created_at DESC").
		Find(&trips).Error; err != nil {
		logrus.WithError(err).Error("Error fetching driver trips")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	out := make([]gin.H, 0, len(trips))
	for _, trip := range trips {
		completed := 0
		for _, item := range trip.ChecklistItems {
			if item.Checked {
				completed++
			}
		}
		out = append(out, gin.H{
			"id":          trip.ID,
			"start_point": trip.StartPoint,
			"end_point":   trip.EndPoint,
			"status":      trip.Status,
			"start_time":  trip.StartTime,
			"end_time":    trip.EndTime,
			"distance":    trip.Distance,
			"created_at":  trip.CreatedAt,
			"vehicle": gin.H{
				"plate_number": trip.Vehicle.PlateNumber,
				"model":        trip.Vehicle.VehicleModel,
			},
			"checklist_completed": completed,
			"checklist_total":     len(trip.ChecklistItems),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}

// GetMyTrip returns one of the driver's trips with its vehicle and the
// checklist ordered by template display order.
func GetMyTrip(c *gin.Context) {
	driverID := middleware.UserID(c)

	tripID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de trajet invalide"})
		return
	}

	var trip models.Trip
	if err := config.DB.
		Where("id = ? AND driver_id = ?", uint(tripID), driverID).
		Preload("Vehicle").
		Preload("ChecklistItems", func(db *gorm.DB) *gorm.DB {
			return db.Select("trip_checklist_items.*").
				Joins("JOIN checklist_item_templates ON checklist_item_templates.id = trip_checklist_items.template_id").
				Order("checklist_item_templates.display_order ASC")
		}).
		Preload("ChecklistItems.Template").
		First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trajet non trouvé"})
			return
		}
		logrus.WithError(err).Error("Error fetching trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// StartTrip runs the PLANNED→IN_PROGRESS transition through the
// lifecycle service and maps its error kinds to HTTP statuses.
func StartTrip(svc *service.TripLifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := middleware.UserID(c)

		tripID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de trajet invalide"})
			return
		}

		trip, err := svc.StartTrip(c.Request.Context(), uint(tripID), driverID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTripNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Trajet non trouvé"})
			case errors.Is(err, service.ErrTripNotStartable):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Le trajet ne peut pas être démarré"})
			case errors.Is(err, service.ErrChecklistIncomplete):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Tous les éléments requis de la checklist doivent être validés"})
			default:
				logrus.WithError(err).Error("Error starting trip")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"trip": trip})
	}
}

type checklistItemPayload struct {
	Checked *bool   `json:"checked" binding:"required"`
	Notes   *string `json:"notes"`
}

// UpdateChecklistItem sets checked/notes on one checklist item of the
// driver's trip.
func UpdateChecklistItem(svc *service.TripLifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := middleware.UserID(c)

		tripID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de trajet invalide"})
			return
		}
		itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant d'élément invalide"})
			return
		}

		var payload checklistItemPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Corps de requête invalide: " + err.Error()})
			return
		}

		item, err := svc.UpdateChecklistItem(c.Request.Context(), uint(tripID), uint(itemID), driverID, *payload.Checked, payload.Notes)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTripNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Trajet non trouvé"})
			case errors.Is(err, service.ErrItemNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Élément de checklist non trouvé"})
			default:
				logrus.WithError(err).Error("Error updating checklist item")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}

// ListTripAlerts returns the unresolved alerts of the vehicle assigned
// to one of the driver's trips.
func ListTripAlerts(c *gin.Context) {
	driverID := middleware.UserID(c)

	tripID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de trajet invalide"})
		return
	}

	var trip models.Trip
	if err := config.DB.
		Select("id", "vehicle_id").
		Where("id = ? AND driver_id = ?", uint(tripID), driverID).
		First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trajet non trouvé"})
			return
		}
		logrus.WithError(err).Error("Error fetching trip for alerts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var alerts []models.Alert
	if err := config.DB.
		Where("vehicle_id = ? AND resolved = ?", trip.VehicleID, false).
		Order("created_at DESC").
		Find(&alerts).Error; err != nil {
		logrus.WithError(err).Error("Error fetching trip alerts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": alerts})
}
