package models

import "gorm.io/gorm"

type TripChecklistItem struct {
	gorm.Model
	TripID     uint    `json:"trip_id" gorm:"index"`
	TemplateID uint    `json:"template_id" gorm:"index"`
	Checked    bool    `json:"checked" gorm:"default:false"`
	Notes      *string `json:"notes"`

	Template ChecklistItemTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
}
