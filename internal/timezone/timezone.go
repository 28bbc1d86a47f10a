package timezone

import "time"

const DateLayout = "2006-01-02"

// DefaultTimezone applies to barbershops without a valid timezone.
// It is overridden from configuration at startup.
var DefaultTimezone = "Africa/Maputo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Today is the current calendar date (YYYY-MM-DD) in tz.
func Today(tz string) string {
	return NowIn(tz).Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD string and returns it normalised.
func ParseDate(s string) (string, time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", time.Time{}, err
	}
	return d.Format(DateLayout), d, nil
}
