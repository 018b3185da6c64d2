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

const priorityOrderSQL = "CASE priority WHEN 'CRITICAL' THEN 0 WHEN 'HIGH' THEN 1 WHEN 'MEDIUM' THEN 2 WHEN 'LOW' THEN 3 ELSE 4 END"

// ListMaintenanceTickets returns tickets most urgent first, with search
// and status/priority filters.
func ListMaintenanceTickets(c *gin.Context) {
	query := config.DB.Model(&models.MaintenanceTicket{}).
		Select("maintenance_tickets.*").
		Joins("LEFT JOIN vehicles ON vehicles.id = maintenance_tickets.vehicle_id")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"maintenance_tickets.title ILIKE ? OR maintenance_tickets.description ILIKE ? OR vehicles.plate_number ILIKE ?",
			like, like, like,
		)
	}
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("maintenance_tickets.status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" && priority != "all" {
		query = query.Where("maintenance_tickets.priority = ?", priority)
	}

	var tickets []models.MaintenanceTicket
	if err := query.
		Preload("Vehicle").
		Preload("AssignedTo").
		Order(priorityOrderSQL).
		Order("scheduled_at ASC NULLS LAST").
		Order("maintenance_tickets.created_at DESC").
		Find(&tickets).Error; err != nil {
		logrus.WithError(err).Error("Error listing maintenance tickets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tickets})
}

type createTicketInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	VehicleID   uint   `json:"vehicle_id" binding:"required"`
	Priority    string `json:"priority"`
	ScheduledAt string `json:"scheduled_at"` // RFC 3339
}

// CreateMaintenanceTicket opens a PENDING ticket assigned to the
// requesting manager.
func CreateMaintenanceTicket(c *gin.Context) {
	var input createTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants"})
		return
	}

	priority := input.Priority
	if priority == "" {
		priority = models.SeverityMedium
	}

	var scheduledAt *time.Time
	if input.ScheduledAt != "" {
		if t, err := time.Parse(time.RFC3339, input.ScheduledAt); err == nil {
			scheduledAt = &t
		}
	}

	ticket := models.MaintenanceTicket{
		Title:        input.Title,
		Description:  input.Description,
		Status:       models.TicketPending,
		Priority:     priority,
		ScheduledAt:  scheduledAt,
		VehicleID:    input.VehicleID,
		AssignedToID: middleware.UserID(c),
	}
	if err := config.DB.Create(&ticket).Error; err != nil {
		logrus.WithError(err).Error("Error creating maintenance ticket")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	config.DB.Preload("Vehicle").Preload("AssignedTo").First(&ticket, ticket.ID)
	c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
}

type updateTicketInput struct {
	Status *string  `json:"status"`
	Cost   *float64 `json:"cost"`
}

// UpdateMaintenanceTicket patches status and/or cost; moving to
// COMPLETED stamps CompletedAt.
func UpdateMaintenanceTicket(c *gin.Context) {
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de ticket invalide"})
		return
	}

	var input updateTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corps de requête invalide"})
		return
	}

	var ticket models.MaintenanceTicket
	if err := config.DB.First(&ticket, uint(ticketID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket non trouvé"})
			return
		}
		logrus.WithError(err).Error("Error fetching maintenance ticket")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if input.Status != nil {
		ticket.Status = *input.Status
		if *input.Status == models.TicketCompleted {
			now := time.Now()
			ticket.CompletedAt = &now
		}
	}
	if input.Cost != nil {
		ticket.Cost = input.Cost
	}

	if err := config.DB.Save(&ticket).Error; err != nil {
		logrus.WithError(err).Error("Error updating maintenance ticket")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	config.DB.Preload("Vehicle").Preload("AssignedTo").First(&ticket, ticket.ID)
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}
