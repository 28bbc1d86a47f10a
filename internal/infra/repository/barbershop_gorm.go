package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-hub/internal/domain/tenant"
	"github.com/BruksfildServices01/barber-hub/internal/models"
)

type BarbershopGormRepository struct {
	db *gorm.DB
}

func NewBarbershopGormRepository(db *gorm.DB) *BarbershopGormRepository {
	return &BarbershopGormRepository{db: db}
}

func (r *BarbershopGormRepository) FindActiveBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND active = ?", slug, true).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BarbershopGormRepository) ListActive(
	ctx context.Context,
) ([]tenant.Preview, error) {

	var out []tenant.Preview
	if err := r.db.WithContext(ctx).
		Model(&models.Barbershop{}).
		Select("id, slug, name, logo_url, primary_color").
		Where("active = ?", true).
		Order("name ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	if out == nil {
		out = []tenant.Preview{}
	}
	return out, nil
}

func (r *BarbershopGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BarbershopGormRepository) Update(
	ctx context.Context,
	id uint,
	fields map[string]any,
) (*models.Barbershop, error) {

	if len(fields) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.Barbershop{}).
			Where("id = ?", id).
			Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetByID(ctx, id)
}

var _ tenant.Repository = (*BarbershopGormRepository)(nil)
