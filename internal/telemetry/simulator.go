// Package telemetry generates mock position fixes for vehicles that are
// out on a trip, and raises threshold alerts on the numbers it invents.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	logrus "github.com/sirupsen/logrus"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"gorm.io/gorm"

	"zoumai/internal/models"
)

// Unlocated vehicles start their walk from central Paris.
const (
	defaultLat = 48.8566
	defaultLng = 2.3522

	// maxJitterDeg bounds each random step to roughly one kilometer.
	maxJitterDeg = 0.005

	metersPerDegree = 111195.0
)

// Fuel and speed thresholds behind the generated alerts.
const (
	fuelLowPct      = 20.0
	fuelCriticalPct = 10.0
	speedLimitKmh   = 80.0
	speedHighKmh    = 90.0
)

type Simulator struct {
	db  *gorm.DB
	rng *rand.Rand
}

func NewSimulator(db *gorm.DB) *Simulator {
	return &Simulator{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run produces one telemetry fix for every IN_USE vehicle.
func (s *Simulator) Run(ctx context.Context) error {
	var vehicles []models.Vehicle
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.VehicleInUse).
		Find(&vehicles).Error; err != nil {
		return err
	}

	if len(vehicles) == 0 {
		logrus.Info("no vehicles in use, nothing to simulate")
		return nil
	}

	for i := range vehicles {
		if err := s.step(ctx, &vehicles[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) step(ctx context.Context, vehicle *models.Vehicle) error {
	lat, lng := defaultLat, defaultLng
	if vehicle.LastLat != nil && vehicle.LastLng != nil {
		lat, lng = *vehicle.LastLat, *vehicle.LastLng
	}

	newLat, newLng := Perturb(s.rng, lat, lng)
	distance := DistanceMeters(lat, lng, newLat, newLng)

	speed := s.rng.Float64()*90 + 10 // 10-100 km/h
	fuel := math.Max(10, s.rng.Float64()*100)

	now := time.Now()
	err := s.db.WithContext(ctx).Model(vehicle).Updates(map[string]interface{}{
		"last_lat":    newLat,
		"last_lng":    newLng,
		"last_update": now,
	}).Error
	if err != nil {
		return err
	}

	fix := models.Telemetry{
		VehicleID:        vehicle.ID,
		Lat:              newLat,
		Lng:              newLng,
		Speed:            speed,
		Fuel:             fuel,
		DistanceFromLast: distance,
	}
	if err := s.db.WithContext(ctx).Create(&fix).Error; err != nil {
		return err
	}

	if severity, low := FuelAlert(fuel); low {
		if err := s.refreshFuelAlert(ctx, vehicle.ID, fuel, severity); err != nil {
			return err
		}
	}

	if severity, speeding := SpeedAlert(speed); speeding {
		alert := models.Alert{
			VehicleID: vehicle.ID,
			Type:      models.AlertSpeedLimit,
			Message:   fmt.Sprintf("Excès de vitesse détecté: %.1f km/h", speed),
			Severity:  severity,
		}
		if err := s.db.WithContext(ctx).Create(&alert).Error; err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"plate": vehicle.PlateNumber,
		"lat":   fmt.Sprintf("%.4f", newLat),
		"lng":   fmt.Sprintf("%.4f", newLng),
		"speed": fmt.Sprintf("%.1f", speed),
		"fuel":  fmt.Sprintf("%.1f", fuel),
	}).Info("telemetry updated")

	return nil
}

// refreshFuelAlert updates the open FUEL_LOW alert for the vehicle
// instead of stacking a new one per fix.
func (s *Simulator) refreshFuelAlert(ctx context.Context, vehicleID uint, fuel float64, severity string) error {
	message := fmt.Sprintf("Niveau de carburant faible: %.1f%%", fuel)

	var alert models.Alert
	err := s.db.WithContext(ctx).
		Where("vehicle_id = ? AND type = ? AND resolved = ?", vehicleID, models.AlertFuelLow, false).
		First(&alert).Error
	if err == nil {
		alert.Message = message
		alert.Severity = severity
		return s.db.WithContext(ctx).Save(&alert).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	alert = models.Alert{
		VehicleID: vehicleID,
		Type:      models.AlertFuelLow,
		Message:   message,
		Severity:  severity,
	}
	return s.db.WithContext(ctx).Create(&alert).Error
}

// Perturb moves a position by at most maxJitterDeg on each axis.
func Perturb(rng *rand.Rand, lat, lng float64) (float64, float64) {
	return lat + (rng.Float64()-0.5)*2*maxJitterDeg,
		lng + (rng.Float64()-0.5)*2*maxJitterDeg
}

// DistanceMeters approximates the ground distance between two fixes by
// projecting them onto a local plane and measuring with go-geom. Good
// enough at random-walk scale; not a geodesic.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	midLat := (lat1 + lat2) / 2 * math.Pi / 180
	scale := math.Cos(midLat) * metersPerDegree
	p1 := geom.Coord{lng1 * scale, lat1 * metersPerDegree}
	p2 := geom.Coord{lng2 * scale, lat2 * metersPerDegree}
	return xy.Distance(p1, p2)
}

// FuelAlert reports whether the fuel level warrants a FUEL_LOW alert
// and at which severity.
func FuelAlert(fuel float64) (string, bool) {
	switch {
	case fuel < fuelCriticalPct:
		return models.SeverityHigh, true
	case fuel < fuelLowPct:
		return models.SeverityMedium, true
	default:
		return "", false
	}
}

// SpeedAlert reports whether the speed warrants a SPEED_LIMIT alert and
// at which severity.
func SpeedAlert(speed float64) (string, bool) {
	switch {
	case speed > speedHighKmh:
		return models.SeverityHigh, true
	case speed > speedLimitKmh:
		return models.SeverityMedium, true
	default:
		return "", false
	}
}
