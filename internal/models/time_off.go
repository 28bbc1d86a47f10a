package models

import "time"

type ProfessionalTimeOff struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	BarberID     uint    `gorm:"not null;uniqueIndex:idx_time_off_barber_date,priority:1" json:"barber_id"`
	Barber       Barber  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	BarbershopID uint    `gorm:"not null;index" json:"barbershop_id"`
	OffDate      string  `gorm:"size:10;not null;uniqueIndex:idx_time_off_barber_date,priority:2;index" json:"off_date"` // YYYY-MM-DD
	Reason       *string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

func (ProfessionalTimeOff) TableName() string {
	return "professional_time_off"
}
