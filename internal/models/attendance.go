package models

import "time"

// ProfessionalAttendance is one status per barber per day.
type ProfessionalAttendance struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	BarberID       uint   `gorm:"not null;uniqueIndex:idx_attendance_barber_date,priority:1" json:"barber_id"`
	Barber         Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	BarbershopID   uint   `gorm:"not null;index" json:"barbershop_id"`
	AttendanceDate string `gorm:"size:10;not null;uniqueIndex:idx_attendance_barber_date,priority:2" json:"attendance_date"` // YYYY-MM-DD
	Status         string `gorm:"size:20;not null;default:'pending'" json:"status"`

	MarkedBy *uint     `json:"marked_by"`
	MarkedAt time.Time `json:"marked_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProfessionalAttendance) TableName() string {
	return "professional_attendance"
}
