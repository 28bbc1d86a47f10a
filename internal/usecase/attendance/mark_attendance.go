package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-hub/internal/audit"
	domain "github.com/BruksfildServices01/barber-hub/internal/domain/attendance"
	"github.com/BruksfildServices01/barber-hub/internal/domain/tenant"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type MarkAttendanceInput struct {
	BarbershopID uint
	UserID       uint
	BarberID     uint
	Date         string
	Status       string
}

// ======================================================
// USE CASE
// ======================================================

type MarkAttendance struct {
	repo  domain.Repository
	shops tenant.Repository
	audit audit.Recorder
	now   func() time.Time
}

func NewMarkAttendance(
	repo domain.Repository,
	shops tenant.Repository,
	audit audit.Recorder,
) *MarkAttendance {
	return &MarkAttendance{
		repo:  repo,
		shops: shops,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *MarkAttendance) Execute(
	ctx context.Context,
	in MarkAttendanceInput,
) (*models.ProfessionalAttendance, error) {

	status, err := domain.ParseMarkable(in.Status)
	if err != nil {
		return nil, err
	}

	shop, err := loadShop(ctx, uc.shops, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	day, err := resolveDate(shop, in.Date)
	if err != nil {
		return nil, err
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, notFoundAs(err, "barber_not_found")
	}
	if !barber.Active {
		return nil, httperr.ErrBusiness("barber_inactive")
	}

	markedBy := in.UserID
	row := &models.ProfessionalAttendance{
		BarberID:       barber.ID,
		BarbershopID:   in.BarbershopID,
		AttendanceDate: day,
		Status:         string(status),
		MarkedBy:       &markedBy,
		MarkedAt:       uc.now().UTC(),
	}

	if err := uc.repo.MarkAttendance(ctx, row); err != nil {
		if errors.Is(err, domain.ErrOnTimeOff) {
			return nil, httperr.ErrBusiness("barber_on_time_off")
		}
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &markedBy,
		Action:       audit.ActionAttendanceMarked,
		Entity:       "barber",
		EntityID:     &barber.ID,
		Metadata: map[string]string{
			"date":   day,
			"status": string(status),
		},
	})

	return row, nil
}
