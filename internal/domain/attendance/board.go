package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-hub/internal/models"
)

type Counts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Pending int `json:"pending"`
	TimeOff int `json:"time_off"`
}

func (c *Counts) Add(s Status) {
	switch s {
	case StatusPresent:
		c.Present++
	case StatusAbsent:
		c.Absent++
	case StatusTimeOff:
		c.TimeOff++
	default:
		c.Pending++
	}
}

type ProfessionalDay struct {
	Barber      models.Barber `json:"barber"`
	Status      Status        `json:"status"`
	StatusLabel string        `json:"status_label"`
	MarkedAt    *time.Time    `json:"marked_at"`
	TimeOffID   *uint         `json:"time_off_id"`
}

type Board struct {
	Date               string                       `json:"date"`
	ProfessionalsLabel string                       `json:"professionals_label"`
	Counts             Counts                       `json:"counts"`
	Professionals      []ProfessionalDay            `json:"professionals"`
	UpcomingTimeOff    []models.ProfessionalTimeOff `json:"upcoming_time_off"`
}

// BuildBoard combines the day's rows into per-professional statuses.
// barbers must already be ordered for display.
func BuildBoard(
	date string,
	barbers []models.Barber,
	marks []models.ProfessionalAttendance,
	timeOff []models.ProfessionalTimeOff,
) Board {
	byBarber := make(map[uint]models.ProfessionalAttendance, len(marks))
	for _, m := range marks {
		if m.AttendanceDate == date {
			byBarber[m.BarberID] = m
		}
	}

	offToday := make(map[uint]uint)
	upcoming := make([]models.ProfessionalTimeOff, 0, len(timeOff))
	for _, t := range timeOff {
		if t.OffDate == date {
			offToday[t.BarberID] = t.ID
		}
		if t.OffDate >= date {
			upcoming = append(upcoming, t)
		}
	}

	b := Board{
		Date:            date,
		Professionals:   make([]ProfessionalDay, 0, len(barbers)),
		UpcomingTimeOff: upcoming,
	}

	for _, barber := range barbers {
		day := ProfessionalDay{Barber: barber}

		var stored *Status
		if m, ok := byBarber[barber.ID]; ok {
			s := Status(m.Status)
			stored = &s
			markedAt := m.MarkedAt
			day.MarkedAt = &markedAt
		}

		offID, off := offToday[barber.ID]
		if off {
			id := offID
			day.TimeOffID = &id
		}

		day.Status = Effective(off, stored)
		day.StatusLabel = day.Status.Label()
		b.Counts.Add(day.Status)
		b.Professionals = append(b.Professionals, day)
	}

	return b
}

// ErrOnTimeOff is returned by MarkAttendance when the barber has time-off
// registered on the attendance date.
var ErrOnTimeOff = errors.New("barber on time-off")

type Repository interface {
	ListActiveBarbers(ctx context.Context, barbershopID uint) ([]models.Barber, error)
	GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.Barber, error)

	ListAttendanceForDate(ctx context.Context, barbershopID uint, date string) ([]models.ProfessionalAttendance, error)
	// MarkAttendance upserts the mark unless the barber is off that day.
	// The time-off check and the write are serialized with CreateTimeOff
	// on the same barber.
	MarkAttendance(ctx context.Context, a *models.ProfessionalAttendance) error

	ListTimeOffFrom(ctx context.Context, barbershopID uint, from string) ([]models.ProfessionalTimeOff, error)
	CreateTimeOff(ctx context.Context, t *models.ProfessionalTimeOff) error
	DeleteTimeOff(ctx context.Context, barbershopID, timeOffID uint) (*models.ProfessionalTimeOff, error)
}
