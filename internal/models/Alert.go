package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

const (
	AlertFuelLow       = "FUEL_LOW"
	AlertSpeedLimit    = "SPEED_LIMIT"
	AlertMaintenance   = "MAINTENANCE"
	AlertEngineWarning = "ENGINE_WARNING"
	AlertTirePressure  = "TIRE_PRESSURE"
)

type Alert struct {
	gorm.Model
	VehicleID  uint       `json:"vehicle_id" gorm:"index"`
	Type       string     `json:"type"`
	Message    string     `json:"message"`
	Severity   string     `json:"severity" gorm:"default:MEDIUM"`
	Resolved   bool       `json:"resolved" gorm:"default:false"`
	ResolvedAt *time.Time `json:"resolved_at"`

	Vehicle Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

// SeverityRank orders severities most urgent first. Unknown values sink
// below LOW so they never displace ranked alerts.
func SeverityRank(severity string) int {
	switch severity {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// SeverityOrderSQL is the ORDER BY expression used wherever alerts are
// listed most urgent first.
const SeverityOrderSQL = "CASE severity WHEN 'CRITICAL' THEN 0 WHEN 'HIGH' THEN 1 WHEN 'MEDIUM' THEN 2 WHEN 'LOW' THEN 3 ELSE 4 END"
