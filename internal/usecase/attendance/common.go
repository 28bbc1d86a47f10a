package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-hub/internal/domain/tenant"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/models"
	"github.com/BruksfildServices01/barber-hub/internal/timezone"
)

func loadShop(ctx context.Context, shops tenant.Repository, id uint) (*models.Barbershop, error) {
	shop, err := shops.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barbershop_not_found")
		}
		return nil, err
	}
	return shop, nil
}

// resolveDate defaults to today in the barbershop's timezone.
func resolveDate(shop *models.Barbershop, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return timezone.Today(shop.Timezone), nil
	}
	d, _, err := timezone.ParseDate(raw)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_date")
	}
	return d, nil
}

func parseRequiredDate(raw string) (string, time.Time, error) {
	d, t, err := timezone.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return "", time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return d, t, nil
}

func notFoundAs(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}
