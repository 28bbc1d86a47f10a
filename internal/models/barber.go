package models

import "time"

type Barber struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BarbershopID uint       `gorm:"not null;index" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID       *uint      `json:"user_id"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	Specialty    *string `gorm:"size:100" json:"specialty"`
	Active       bool    `gorm:"default:true" json:"active"`
	HasAppAccess bool    `gorm:"default:false" json:"has_app_access"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
