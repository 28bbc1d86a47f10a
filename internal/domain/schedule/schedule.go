package schedule

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/models"
	"github.com/BruksfildServices01/barber-hub/internal/validators"
)

const (
	DefaultStart = "09:00"
	DefaultEnd   = "18:00"

	DaysInWeek = 7
)

// ShortLabels are indexed by day_of_week, Sunday first.
var ShortLabels = [DaysInWeek]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

var Labels = [DaysInWeek]string{
	"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira",
	"Quinta-feira", "Sexta-feira", "Sábado",
}

// Day is the editable view of one weekday. Empty strings mean "not set".
type Day struct {
	DayOfWeek    int    `json:"day_of_week"`
	Label        string `json:"label"`
	IsWorkingDay bool   `json:"is_working_day"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakStart   string `json:"break_start"`
	BreakEnd     string `json:"break_end"`
}

type Week [DaysInWeek]Day

// Default is the day used when nothing is stored: working 09:00-18:00,
// except Sunday.
func Default(dayOfWeek int) Day {
	return Day{
		DayOfWeek:    dayOfWeek,
		Label:        Labels[dayOfWeek],
		IsWorkingDay: dayOfWeek != 0,
		StartTime:    DefaultStart,
		EndTime:      DefaultEnd,
	}
}

// FromModel converts a stored row, falling back to the default hours for
// null times.
func FromModel(m models.ProfessionalSchedule) Day {
	d := Default(m.DayOfWeek)
	d.IsWorkingDay = m.IsWorkingDay
	d.StartTime = deref(m.StartTime, DefaultStart)
	d.EndTime = deref(m.EndTime, DefaultEnd)
	d.BreakStart = deref(m.BreakStart, "")
	d.BreakEnd = deref(m.BreakEnd, "")
	return d
}

// ToModel builds the row to persist. Empty times become NULL.
func (d Day) ToModel(barbershopID, barberID uint) models.ProfessionalSchedule {
	return models.ProfessionalSchedule{
		BarberID:     barberID,
		BarbershopID: barbershopID,
		DayOfWeek:    d.DayOfWeek,
		IsWorkingDay: d.IsWorkingDay,
		StartTime:    nullable(d.StartTime),
		EndTime:      nullable(d.EndTime),
		BreakStart:   nullable(d.BreakStart),
		BreakEnd:     nullable(d.BreakEnd),
	}
}

// FillWeek returns all seven days, stored rows overriding defaults.
// Rows with an out-of-range day are ignored.
func FillWeek(rows []models.ProfessionalSchedule) Week {
	var w Week
	for i := range w {
		w[i] = Default(i)
	}
	for _, r := range rows {
		if r.DayOfWeek < 0 || r.DayOfWeek >= DaysInWeek {
			continue
		}
		w[r.DayOfWeek] = FromModel(r)
	}
	return w
}

// Merge overlays the submitted days on the current week. Days not present
// in updates keep their current value.
func (w Week) Merge(updates []Day) (Week, error) {
	out := w
	for _, u := range updates {
		if u.DayOfWeek < 0 || u.DayOfWeek >= DaysInWeek {
			return Week{}, httperr.ErrBusiness("invalid_schedule")
		}
		u.Label = Labels[u.DayOfWeek]
		u.StartTime = strings.TrimSpace(u.StartTime)
		u.EndTime = strings.TrimSpace(u.EndTime)
		u.BreakStart = strings.TrimSpace(u.BreakStart)
		u.BreakEnd = strings.TrimSpace(u.BreakEnd)
		out[u.DayOfWeek] = u
	}
	return out, nil
}

// Summary lists the short labels of the working days, e.g. "Seg, Ter, Qua".
func (w Week) Summary() string {
	var parts []string
	for _, d := range w {
		if d.IsWorkingDay {
			parts = append(parts, ShortLabels[d.DayOfWeek])
		}
	}
	return strings.Join(parts, ", ")
}

func (w Week) Validate() error {
	for _, d := range w {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the times of one day. HH:MM strings compare correctly as
// text, so no parsing beyond the format check is needed.
func (d Day) Validate() error {
	for _, s := range []string{d.StartTime, d.EndTime, d.BreakStart, d.BreakEnd} {
		if s != "" && !validators.IsClock(s) {
			return httperr.ErrBusiness("invalid_schedule")
		}
	}

	if !d.IsWorkingDay {
		return nil
	}

	if d.StartTime == "" || d.EndTime == "" || d.StartTime >= d.EndTime {
		return httperr.ErrBusiness("invalid_schedule")
	}

	if d.BreakStart == "" && d.BreakEnd == "" {
		return nil
	}
	if d.BreakStart == "" || d.BreakEnd == "" {
		return httperr.ErrBusiness("invalid_schedule")
	}
	if d.BreakStart >= d.BreakEnd ||
		d.BreakStart < d.StartTime ||
		d.BreakEnd > d.EndTime {
		return httperr.ErrBusiness("invalid_schedule")
	}
	return nil
}

// ===============================
// Persistence
// ===============================

type Repository interface {
	ListForBarbers(ctx context.Context, barbershopID uint, barberIDs []uint) ([]models.ProfessionalSchedule, error)
	ListForBarber(ctx context.Context, barbershopID, barberID uint) ([]models.ProfessionalSchedule, error)
	// UpsertWeek writes the given rows atomically on (barber_id, day_of_week).
	UpsertWeek(ctx context.Context, rows []models.ProfessionalSchedule) error
}

func deref(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
