package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleBarber = "barber"
)

type UserRole struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"not null;uniqueIndex:idx_user_roles_user_shop_role,priority:1" json:"user_id"`
	BarbershopID uint   `gorm:"not null;uniqueIndex:idx_user_roles_user_shop_role,priority:2;index" json:"barbershop_id"`
	Role         string `gorm:"size:20;not null;uniqueIndex:idx_user_roles_user_shop_role,priority:3" json:"role"`

	User       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Barbershop Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barbershop,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
