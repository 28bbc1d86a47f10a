package models

// All lists every table managed by AutoMigrate, parents first.
func All() []any {
	return []any{
		&Barbershop{},
		&User{},
		&UserRole{},
		&Barber{},
		&ProfessionalAttendance{},
		&ProfessionalTimeOff{},
		&ProfessionalSchedule{},
		&PasswordResetToken{},
		&AuditLog{},
	}
}
