package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-hub/internal/domain/attendance"
	"github.com/BruksfildServices01/barber-hub/internal/models"
)

type AttendanceGormRepository struct {
	db      *gorm.DB
	barbers *BarberGormRepository
}

func NewAttendanceGormRepository(db *gorm.DB) *AttendanceGormRepository {
	return &AttendanceGormRepository{db: db, barbers: NewBarberGormRepository(db)}
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *AttendanceGormRepository) ListActiveBarbers(
	ctx context.Context,
	barbershopID uint,
) ([]models.Barber, error) {
	return r.barbers.List(ctx, barbershopID, true)
}

func (r *AttendanceGormRepository) GetBarber(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.Barber, error) {
	return r.barbers.Get(ctx, barbershopID, barberID)
}

// --------------------------------------------------
// Attendance
// --------------------------------------------------

func (r *AttendanceGormRepository) ListAttendanceForDate(
	ctx context.Context,
	barbershopID uint,
	date string,
) ([]models.ProfessionalAttendance, error) {

	var rows []models.ProfessionalAttendance
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND attendance_date = ?", barbershopID, date).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AttendanceGormRepository) MarkAttendance(
	ctx context.Context,
	a *models.ProfessionalAttendance,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBarber(tx, a.BarberID); err != nil {
			return err
		}

		var off int64
		if err := tx.Model(&models.ProfessionalTimeOff{}).
			Where("barber_id = ? AND off_date = ?", a.BarberID, a.AttendanceDate).
			Count(&off).Error; err != nil {
			return err
		}
		if off > 0 {
			return attendance.ErrOnTimeOff
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barber_id"}, {Name: "attendance_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by", "marked_at", "updated_at"}),
		}).
			Create(a).Error
	})
}

// --------------------------------------------------
// Time-off
// --------------------------------------------------

func (r *AttendanceGormRepository) ListTimeOffFrom(
	ctx context.Context,
	barbershopID uint,
	from string,
) ([]models.ProfessionalTimeOff, error) {

	rows := []models.ProfessionalTimeOff{}
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND off_date >= ?", barbershopID, from).
		Order("off_date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AttendanceGormRepository) CreateTimeOff(
	ctx context.Context,
	t *models.ProfessionalTimeOff,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBarber(tx, t.BarberID); err != nil {
			return err
		}
		return tx.Create(t).Error
	})
}

func (r *AttendanceGormRepository) DeleteTimeOff(
	ctx context.Context,
	barbershopID uint,
	timeOffID uint,
) (*models.ProfessionalTimeOff, error) {

	var t models.ProfessionalTimeOff
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("id = ? AND barbershop_id = ?", timeOffID, barbershopID).
			First(&t).Error; err != nil {
			return err
		}
		return tx.Delete(&t).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &t, nil
}

// lockBarber takes the barber row lock that orders attendance marks against
// time-off writes. SQLite has no FOR UPDATE and serializes writers anyway.
func lockBarber(tx *gorm.DB, barberID uint) error {
	var b models.Barber
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", barberID).
		Take(&b).Error
}

var _ attendance.Repository = (*AttendanceGormRepository)(nil)
