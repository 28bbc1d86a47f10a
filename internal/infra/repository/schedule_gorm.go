package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-hub/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-hub/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) ListForBarbers(
	ctx context.Context,
	barbershopID uint,
	barberIDs []uint,
) ([]models.ProfessionalSchedule, error) {

	rows := []models.ProfessionalSchedule{}
	if len(barberIDs) == 0 {
		return rows, nil
	}
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND barber_id IN ?", barbershopID, barberIDs).
		Order("barber_id ASC, day_of_week ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ScheduleGormRepository) ListForBarber(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) ([]models.ProfessionalSchedule, error) {
	return r.ListForBarbers(ctx, barbershopID, []uint{barberID})
}

func (r *ScheduleGormRepository) UpsertWeek(
	ctx context.Context,
	rows []models.ProfessionalSchedule,
) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "barber_id"}, {Name: "day_of_week"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"is_working_day", "start_time", "end_time",
					"break_start", "break_end", "updated_at",
				}),
			}).
			Create(&rows).Error
	})
}

var _ schedule.Repository = (*ScheduleGormRepository)(nil)
