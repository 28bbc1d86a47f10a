package models

import "time"

type ProfessionalSchedule struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	BarberID     uint   `gorm:"not null;uniqueIndex:idx_schedule_barber_day,priority:1" json:"barber_id"`
	Barber       Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	BarbershopID uint   `gorm:"not null;index" json:"barbershop_id"`
	DayOfWeek    int    `gorm:"not null;uniqueIndex:idx_schedule_barber_day,priority:2" json:"day_of_week"`

	IsWorkingDay bool    `gorm:"not null" json:"is_working_day"`
	StartTime    *string `gorm:"size:5" json:"start_time"`
	EndTime      *string `gorm:"size:5" json:"end_time"`
	BreakStart   *string `gorm:"size:5" json:"break_start"`
	BreakEnd     *string `gorm:"size:5" json:"break_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
