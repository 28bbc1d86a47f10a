package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-hub/internal/domain/barber"
	"github.com/BruksfildServices01/barber-hub/internal/models"
)

type BarberGormRepository struct {
	db *gorm.DB
}

func NewBarberGormRepository(db *gorm.DB) *BarberGormRepository {
	return &BarberGormRepository{db: db}
}

func (r *BarberGormRepository) List(
	ctx context.Context,
	barbershopID uint,
	activeOnly bool,
) ([]models.Barber, error) {

	q := r.db.WithContext(ctx).Where("barbershop_id = ?", barbershopID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	barbers := []models.Barber{}
	if err := q.Order("name ASC").Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *BarberGormRepository) Get(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.Barber, error) {

	var b models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", barberID, barbershopID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BarberGormRepository) Create(ctx context.Context, b *models.Barber) error {
	active := b.Active
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		// a false value is skipped on insert because of the column default
		if !active {
			b.Active = false
			return tx.Model(b).Update("active", false).Error
		}
		return nil
	})
}

func (r *BarberGormRepository) Update(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	fields map[string]any,
) (*models.Barber, error) {

	b, err := r.Get(ctx, barbershopID, barberID)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return b, nil
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("id = ? AND barbershop_id = ?", barberID, barbershopID).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, barbershopID, barberID)
}

var _ barber.Repository = (*BarberGormRepository)(nil)
