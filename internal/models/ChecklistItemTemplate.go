package models

import "gorm.io/gorm"

// ChecklistItemTemplate is administratively managed reference data.
// Every trip instantiates one TripChecklistItem per template; templates
// flagged Required gate the trip start.
type ChecklistItemTemplate struct {
	gorm.Model
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Required     bool   `json:"required" gorm:"default:true"`
	DisplayOrder int    `json:"order" gorm:"column:display_order"`
}
