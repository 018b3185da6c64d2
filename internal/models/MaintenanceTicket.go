package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TicketPending    = "PENDING"
	TicketInProgress = "IN_PROGRESS"
	TicketCompleted  = "COMPLETED"
	TicketCancelled  = "CANCELLED"
)

type MaintenanceTicket struct {
	gorm.Model
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" gorm:"default:PENDING"`
	Priority    string     `json:"priority" gorm:"default:MEDIUM"`
	Cost        *float64   `json:"cost"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	VehicleID    uint    `json:"vehicle_id" gorm:"index"`
	AssignedToID uint    `json:"assigned_to_id"`
	Vehicle      Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	AssignedTo   User    `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
}
