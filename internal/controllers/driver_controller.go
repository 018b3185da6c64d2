package controllers

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"zoumai/internal/config"
	"zoumai/internal/models"
)

// ListDrivers returns id/name/email of every driver, for trip
// assignment dropdowns.
func ListDrivers(c *gin.Context) {
	var drivers []models.User
	if err := config.DB.
		Select("id", "name", "email").
		Where("role = ?", models.RoleDriver).
		Order("name ASC").
		Find(&drivers).Error; err != nil {
		logrus.WithError(err).Error("Error listing drivers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": drivers})
}

// ListDriversDetailed returns per-driver activity statistics for the
// manager's drivers screen.
func ListDriversDetailed(c *gin.Context) {
	var drivers []models.User
	if err := config.DB.
		Where("role = ?", models.RoleDriver).
		Preload("Trips", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("name ASC").
		Find(&drivers).Error; err != nil {
		logrus.WithError(err).Error("Error listing detailed drivers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	out := make([]gin.H, 0, len(drivers))
	for _, driver := range drivers {
		completed := 0
		totalDistance := 0.0
		thisMonth := 0
		inProgress := false
		var lastTrip *time.Time

		for i, trip := range driver.Trips {
			if i == 0 {
				t := trip.CreatedAt
				lastTrip = &t
			}
			if trip.Status == models.TripCompleted {
				completed++
				if trip.Distance != nil {
					totalDistance += *trip.Distance
				}
			}
			if trip.Status == models.TripInProgress {
				inProgress = true
			}
			if trip.CreatedAt.After(monthStart) || trip.CreatedAt.Equal(monthStart) {
				thisMonth++
			}
		}

		status := "DISPONIBLE"
		if inProgress {
			status = "EN_COURSE"
		}

		out = append(out, gin.H{
			"id":               driver.ID,
			"name":             driver.Name,
			"email":            driver.Email,
			"joined_at":        driver.CreatedAt,
			"total_trips":      len(driver.Trips),
			"completed_trips":  completed,
			"total_distance":   int(totalDistance),
			"average_rating":   float64(int((rand.Float64()*2+3)*10)) / 10, // mock, no ratings table yet
			"this_month_trips": thisMonth,
			"last_trip_date":   lastTrip,
			"status":           status,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}

type createDriverInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateDriver lets a manager provision a driver account.
func CreateDriver(c *gin.Context) {
	var input createDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs obligatoires sont requis"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	driver := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
		Role:     models.RoleDriver,
	}
	if err := config.DB.Create(&driver).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "Un chauffeur avec cet email existe déjà"})
			return
		}
		logrus.WithError(err).Error("Error creating driver")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Chauffeur créé avec succès",
		"driver": gin.H{
			"id":    driver.ID,
			"name":  driver.Name,
			"email": driver.Email,
			"role":  driver.Role,
		},
	})
}
