// internal/models/vehicle.go
package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	VehicleAvailable    = "AVAILABLE"
	VehicleInUse        = "IN_USE"
	VehicleMaintenance  = "MAINTENANCE"
	VehicleOutOfService = "OUT_OF_SERVICE"
)

type Vehicle struct {
	gorm.Model
	PlateNumber  string     `json:"plate_number" gorm:"unique"`
	VehicleModel string     `json:"model" gorm:"column:model"`
	Year         int        `json:"year"`
	Status       string     `json:"status" gorm:"default:AVAILABLE"`
	LastLat      *float64   `json:"last_lat"`
	LastLng      *float64   `json:"last_lng"`
	LastUpdate   *time.Time `json:"last_update"`

	Trips  []Trip  `gorm:"foreignKey:VehicleID" json:"trips,omitempty"`
	Alerts []Alert `gorm:"foreignKey:VehicleID" json:"alerts,omitempty"`
}
