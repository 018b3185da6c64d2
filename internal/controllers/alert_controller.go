package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"zoumai/internal/config"
	"zoumai/internal/middleware"
	"zoumai/internal/models"
)

// activeTripVehiclesSubquery scopes alerts to the vehicles a driver is
// currently assigned to through a PLANNED or IN_PROGRESS trip.
func activeTripVehiclesSubquery(driverID uint) *gorm.DB {
	return config.DB.Model(&models.Trip{}).
		Select("vehicle_id").
		Where("driver_id = ? AND status IN ?", driverID, []string{models.TripPlanned, models.TripInProgress})
}

// ListAlerts returns alerts most urgent first. Managers see the whole
// fleet; drivers only their active vehicles.
func ListAlerts(c *gin.Context) {
	resolved := c.Query("resolved") == "true"
	query := config.DB.Model(&models.Alert{}).Where("resolved = ?", resolved)

	if severity := c.Query("severity"); severity != "" {
		query = query.Where("severity = ?", severity)
	}
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	role, _ := c.Get("role")
	if role == models.RoleDriver {
		query = query.Where("vehicle_id IN (?)", activeTripVehiclesSubquery(middleware.UserID(c)))
	}

	var alerts []models.Alert
	if err := query.
		Preload("Vehicle").
		Order(models.SeverityOrderSQL).
		Order("created_at DESC").
		Limit(50).
		Find(&alerts).Error; err != nil {
		logrus.WithError(err).Error("Error listing alerts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": alerts})
}

// ListDriverAlerts returns the ten most urgent unresolved alerts for
// the authenticated driver's active vehicles.
func ListDriverAlerts(c *gin.Context) {
	driverID := middleware.UserID(c)

	var alerts []models.Alert
	if err := config.DB.
		Where("resolved = ?", false).
		Where("vehicle_id IN (?)", activeTripVehiclesSubquery(driverID)).
		Preload("Vehicle").
		Order(models.SeverityOrderSQL).
		Order("created_at DESC").
		Limit(10).
		Find(&alerts).Error; err != nil {
		logrus.WithError(err).Error("Error listing driver alerts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": alerts})
}

type createAlertInput struct {
	VehicleID uint   `json:"vehicle_id" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Message   string `json:"message" binding:"required"`
	Severity  string `json:"severity"`
}

// CreateAlert lets a manager raise an alert by hand.
func CreateAlert(c *gin.Context) {
	var input createAlertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants"})
		return
	}

	severity := input.Severity
	if severity == "" {
		severity = models.SeverityMedium
	}

	alert := models.Alert{
		VehicleID: input.VehicleID,
		Type:      input.Type,
		Message:   input.Message,
		Severity:  severity,
	}
	if err := config.DB.Create(&alert).Error; err != nil {
		logrus.WithError(err).Error("Error creating alert")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	config.DB.Preload("Vehicle").First(&alert, alert.ID)
	c.JSON(http.StatusCreated, gin.H{"alert": alert})
}

// ResolveAlert marks an alert resolved and stamps the resolution time.
func ResolveAlert(c *gin.Context) {
	alertID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant d'alerte invalide"})
		return
	}

	var alert models.Alert
	if err := config.DB.First(&alert, uint(alertID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alerte non trouvée"})
			return
		}
		logrus.WithError(err).Error("Error fetching alert")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	now := time.Now()
	alert.Resolved = true
	alert.ResolvedAt = &now
	if err := config.DB.Save(&alert).Error; err != nil {
		logrus.WithError(err).Error("Error resolving alert")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	config.DB.Preload("Vehicle").First(&alert, alert.ID)
	c.JSON(http.StatusOK, gin.H{"alert": alert})
}
