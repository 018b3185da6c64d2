package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TripPlanned    = "PLANNED"
	TripInProgress = "IN_PROGRESS"
	TripCompleted  = "COMPLETED"
	TripCancelled  = "CANCELLED"
)

// Trip assigns one driver and one vehicle to travel from a start point
// to an end point. PLANNED trips carry a pre-departure checklist that
// gates the transition to IN_PROGRESS.
type Trip struct {
	gorm.Model
	StartPoint string     `json:"start_point" binding:"required"`
	EndPoint   string     `json:"end_point" binding:"required"`
	Status     string     `json:"status" gorm:"default:PLANNED"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	Distance   *float64   `json:"distance"`

	DriverID  uint    `json:"driver_id" gorm:"index"`
	VehicleID uint    `json:"vehicle_id" gorm:"index"`
	Driver    User    `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Vehicle   Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`

	ChecklistItems []TripChecklistItem `gorm:"foreignKey:TripID" json:"checklist_items,omitempty"`
}
