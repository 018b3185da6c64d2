package models

import "gorm.io/gorm"

const (
	RoleDriver  = "DRIVER"
	RoleManager = "MANAGER"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Role     string `json:"role"` // "DRIVER" or "MANAGER"

	Trips []Trip `gorm:"foreignKey:DriverID" json:"trips,omitempty"`
}
