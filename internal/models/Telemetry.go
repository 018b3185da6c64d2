package models

import (
	"gorm.io/gorm"
)

// Telemetry is one simulated position fix for a vehicle.
type Telemetry struct {
	gorm.Model
	VehicleID        uint    `json:"vehicle_id" gorm:"index"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	Speed            float64 `json:"speed"` // km/h
	Fuel             float64 `json:"fuel"`  // percent
	DistanceFromLast float64 `json:"distance_from_last"` // meters

	Vehicle Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}
