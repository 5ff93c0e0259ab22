package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	hhmmRE    = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	dateYMDRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// RegisterValidators wires the slot field formats (HH:MM clock times and
// YYYY-MM-DD dates) into gin's binding validator.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmRE.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("dateymd", func(fl validator.FieldLevel) bool {
		return dateYMDRE.MatchString(fl.Field().String())
	})
}
