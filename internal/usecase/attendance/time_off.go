package attendance

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/barber-hub/internal/audit"
	domain "github.com/BruksfildServices01/barber-hub/internal/domain/attendance"
	"github.com/BruksfildServices01/barber-hub/internal/domain/tenant"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/models"
)

// ======================================================
// ADD
// ======================================================

type AddTimeOffInput struct {
	BarbershopID uint
	UserID       uint
	BarberID     uint
	Date         string
	Reason       string
}

type AddTimeOff struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewAddTimeOff(repo domain.Repository, audit audit.Recorder) *AddTimeOff {
	return &AddTimeOff{repo: repo, audit: audit}
}

func (uc *AddTimeOff) Execute(
	ctx context.Context,
	in AddTimeOffInput,
) (*models.ProfessionalTimeOff, error) {

	day, _, err := parseRequiredDate(in.Date)
	if err != nil {
		return nil, err
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, notFoundAs(err, "barber_not_found")
	}

	t := &models.ProfessionalTimeOff{
		BarberID:     barber.ID,
		BarbershopID: in.BarbershopID,
		OffDate:      day,
	}
	if reason := strings.TrimSpace(in.Reason); reason != "" {
		t.Reason = &reason
	}

	if err := uc.repo.CreateTimeOff(ctx, t); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("time_off_exists")
		}
		return nil, fmt.Errorf("create time-off: %w", err)
	}

	userID := in.UserID
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &userID,
		Action:       audit.ActionTimeOffCreated,
		Entity:       "time_off",
		EntityID:     &t.ID,
		Metadata: map[string]any{
			"barber_id": barber.ID,
			"off_date":  day,
		},
	})

	return t, nil
}

// ======================================================
// REMOVE
// ======================================================

type RemoveTimeOff struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewRemoveTimeOff(repo domain.Repository, audit audit.Recorder) *RemoveTimeOff {
	return &RemoveTimeOff{repo: repo, audit: audit}
}

func (uc *RemoveTimeOff) Execute(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	timeOffID uint,
) error {

	t, err := uc.repo.DeleteTimeOff(ctx, barbershopID, timeOffID)
	if err != nil {
		return notFoundAs(err, "time_off_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       audit.ActionTimeOffRemoved,
		Entity:       "time_off",
		EntityID:     &t.ID,
		Metadata: map[string]any{
			"barber_id": t.BarberID,
			"off_date":  t.OffDate,
		},
	})
	return nil
}

// ======================================================
// LIST
// ======================================================

type ListTimeOff struct {
	repo  domain.Repository
	shops tenant.Repository
}

func NewListTimeOff(repo domain.Repository, shops tenant.Repository) *ListTimeOff {
	return &ListTimeOff{repo: repo, shops: shops}
}

// Execute lists time-off from the given date on (today when empty).
func (uc *ListTimeOff) Execute(
	ctx context.Context,
	barbershopID uint,
	from string,
) ([]models.ProfessionalTimeOff, error) {

	shop, err := loadShop(ctx, uc.shops, barbershopID)
	if err != nil {
		return nil, err
	}

	day, err := resolveDate(shop, from)
	if err != nil {
		return nil, err
	}

	return uc.repo.ListTimeOffFrom(ctx, barbershopID, day)
}
