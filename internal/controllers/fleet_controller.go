package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"zoumai/internal/config"
	"zoumai/internal/models"
)

func locatedVehicles() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := config.DB.
		Where("last_lat IS NOT NULL AND last_lng IS NOT NULL").
		Find(&vehicles).Error
	return vehicles, err
}

// VehiclePositions returns the latest known position of every located
// vehicle; the live map polls this endpoint.
func VehiclePositions(c *gin.Context) {
	vehicles, err := locatedVehicles()
	if err != nil {
		logrus.WithError(err).Error("Error fetching vehicle positions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	positions := make([]gin.H, 0, len(vehicles))
	for _, vehicle := range vehicles {
		lastUpdate := time.Now()
		if vehicle.LastUpdate != nil {
			lastUpdate = *vehicle.LastUpdate
		}
		positions = append(positions, gin.H{
			"id":           vehicle.ID,
			"plate_number": vehicle.PlateNumber,
			"lat":          *vehicle.LastLat,
			"lng":          *vehicle.LastLng,
			"status":       vehicle.Status,
			"last_update":  lastUpdate.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": positions})
}

// VehiclePositionsGeoJSON returns the same positions as a GeoJSON
// FeatureCollection for map clients that ingest layers directly.
func VehiclePositionsGeoJSON(c *gin.Context) {
	vehicles, err := locatedVehicles()
	if err != nil {
		logrus.WithError(err).Error("Error fetching vehicle positions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	fc := &geojson.FeatureCollection{}
	for _, vehicle := range vehicles {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{*vehicle.LastLng, *vehicle.LastLat}),
			Properties: map[string]interface{}{
				"id":           vehicle.ID,
				"plate_number": vehicle.PlateNumber,
				"status":       vehicle.Status,
				"last_update":  vehicle.LastUpdate,
			},
		})
	}

	c.JSON(http.StatusOK, fc)
}
