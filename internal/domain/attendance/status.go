package attendance

import "github.com/BruksfildServices01/barber-hub/internal/httperr"

// ===============================
// Attendance Status
// ===============================

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusPending Status = "pending"

	// StatusTimeOff is never stored; it is derived from a time-off record.
	StatusTimeOff Status = "time_off"
)

// ParseMarkable accepts only the statuses an admin can set by hand.
func ParseMarkable(s string) (Status, error) {
	switch Status(s) {
	case StatusPresent, StatusAbsent:
		return Status(s), nil
	default:
		return "", httperr.ErrBusiness("invalid_status")
	}
}

// Label is the pt-BR caption shown next to the status.
func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Presente"
	case StatusAbsent:
		return "Ausente"
	case StatusTimeOff:
		return "Folga"
	default:
		return "Pendente"
	}
}

// Effective resolves what a professional's day looks like: a time-off wins
// over any stored mark, and an unmarked day is pending.
func Effective(hasTimeOff bool, stored *Status) Status {
	if hasTimeOff {
		return StatusTimeOff
	}
	if stored == nil || *stored == "" {
		return StatusPending
	}
	return *stored
}
