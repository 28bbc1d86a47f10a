package validators

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barber-hub/internal/timezone"
)

const ClockLayout = "15:04"

// IsClock reports whether s is a 24h "HH:MM" time.
func IsClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || IsClock(s)
}

func validateDate(fl validator.FieldLevel) bool {
	_, _, err := timezone.ParseDate(fl.Field().String())
	return err == nil
}

func validateTimezone(fl validator.FieldLevel) bool {
	return timezone.IsValid(fl.Field().String())
}

// Register installs the custom tags on the validator gin uses for binding:
// hhmm (empty or HH:MM), isodate (YYYY-MM-DD) and iana_tz.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("hhmm", validateClock); err != nil {
		return err
	}
	if err := v.RegisterValidation("isodate", validateDate); err != nil {
		return err
	}
	return v.RegisterValidation("iana_tz", validateTimezone)
}
