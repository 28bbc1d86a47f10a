package schedule

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-hub/internal/audit"
	"github.com/BruksfildServices01/barber-hub/internal/domain/barber"
	domain "github.com/BruksfildServices01/barber-hub/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/models"
)

// BarberWeek is one barber's full week as shown on the schedules page.
type BarberWeek struct {
	Barber  models.Barber `json:"barber"`
	Days    domain.Week   `json:"days"`
	Summary string        `json:"work_days_summary"`
}

func newBarberWeek(b models.Barber, w domain.Week) BarberWeek {
	return BarberWeek{Barber: b, Days: w, Summary: w.Summary()}
}

// ======================================================
// GET
// ======================================================

type GetSchedules struct {
	repo    domain.Repository
	barbers barber.Repository
}

func NewGetSchedules(repo domain.Repository, barbers barber.Repository) *GetSchedules {
	return &GetSchedules{repo: repo, barbers: barbers}
}

func (uc *GetSchedules) Execute(ctx context.Context, barbershopID uint) ([]BarberWeek, error) {
	barbers, err := uc.barbers.List(ctx, barbershopID, true)
	if err != nil {
		return nil, fmt.Errorf("list barbers: %w", err)
	}

	ids := make([]uint, len(barbers))
	for i, b := range barbers {
		ids[i] = b.ID
	}

	rows, err := uc.repo.ListForBarbers(ctx, barbershopID, ids)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	byBarber := make(map[uint][]models.ProfessionalSchedule, len(barbers))
	for _, r := range rows {
		byBarber[r.BarberID] = append(byBarber[r.BarberID], r)
	}

	out := make([]BarberWeek, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, newBarberWeek(b, domain.FillWeek(byBarber[b.ID])))
	}
	return out, nil
}

// ======================================================
// SAVE
// ======================================================

type SaveScheduleInput struct {
	BarbershopID uint
	UserID       uint
	BarberID     uint
	Days         []domain.Day
}

type SaveSchedule struct {
	repo    domain.Repository
	barbers barber.Repository
	audit   audit.Recorder
}

func NewSaveSchedule(
	repo domain.Repository,
	barbers barber.Repository,
	audit audit.Recorder,
) *SaveSchedule {
	return &SaveSchedule{repo: repo, barbers: barbers, audit: audit}
}

// Execute writes all seven days of a barber. Days missing from the input
// keep their current (or default) value.
func (uc *SaveSchedule) Execute(ctx context.Context, in SaveScheduleInput) (*BarberWeek, error) {
	b, err := uc.barbers.Get(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		return nil, err
	}

	rows, err := uc.repo.ListForBarber(ctx, in.BarbershopID, b.ID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	week, err := domain.FillWeek(rows).Merge(in.Days)
	if err != nil {
		return nil, err
	}
	if err := week.Validate(); err != nil {
		return nil, err
	}

	toSave := make([]models.ProfessionalSchedule, 0, domain.DaysInWeek)
	for _, d := range week {
		toSave = append(toSave, d.ToModel(in.BarbershopID, b.ID))
	}

	if err := uc.repo.UpsertWeek(ctx, toSave); err != nil {
		return nil, fmt.Errorf("save schedules: %w", err)
	}

	userID := in.UserID
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &userID,
		Action:       audit.ActionScheduleSaved,
		Entity:       "barber",
		EntityID:     &b.ID,
		Metadata:     map[string]string{"work_days": week.Summary()},
	})

	bw := newBarberWeek(*b, week)
	return &bw, nil
}
