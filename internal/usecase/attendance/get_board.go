package attendance

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/barber-hub/internal/domain/attendance"
	"github.com/BruksfildServices01/barber-hub/internal/domain/tenant"
)

type GetBoard struct {
	repo  domain.Repository
	shops tenant.Repository
}

func NewGetBoard(repo domain.Repository, shops tenant.Repository) *GetBoard {
	return &GetBoard{repo: repo, shops: shops}
}

// Execute builds the attendance board of one day. An empty date means
// today in the barbershop's timezone.
func (uc *GetBoard) Execute(
	ctx context.Context,
	barbershopID uint,
	date string,
) (*domain.Board, error) {

	shop, err := loadShop(ctx, uc.shops, barbershopID)
	if err != nil {
		return nil, err
	}

	day, err := resolveDate(shop, date)
	if err != nil {
		return nil, err
	}

	barbers, err := uc.repo.ListActiveBarbers(ctx, barbershopID)
	if err != nil {
		return nil, fmt.Errorf("list barbers: %w", err)
	}

	marks, err := uc.repo.ListAttendanceForDate(ctx, barbershopID, day)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	timeOff, err := uc.repo.ListTimeOffFrom(ctx, barbershopID, day)
	if err != nil {
		return nil, fmt.Errorf("list time-off: %w", err)
	}

	board := domain.BuildBoard(day, barbers, marks, timeOff)
	board.ProfessionalsLabel = tenant.ProfessionalsLabel(shop.BusinessType)
	return &board, nil
}
