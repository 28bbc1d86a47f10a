package barber

import (
	"context"

	"github.com/BruksfildServices01/barber-hub/internal/models"
)

type Repository interface {
	List(ctx context.Context, barbershopID uint, activeOnly bool) ([]models.Barber, error)
	Get(ctx context.Context, barbershopID, barberID uint) (*models.Barber, error)
	Create(ctx context.Context, b *models.Barber) error
	// Update applies fields to a barber of the tenant and returns the fresh row.
	Update(ctx context.Context, barbershopID, barberID uint, fields map[string]any) (*models.Barber, error)
}
