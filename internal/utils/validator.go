package utils

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	Validate *validator.Validate

	clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

func InitValidator() {
	if Validate != nil {
		return
	}
	v := validator.New()
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	Validate = v
}

// IsClock reports whether value is a 24h HH:MM time.
func IsClock(value string) bool {
	return clockPattern.MatchString(value)
}
