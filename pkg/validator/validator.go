package validator

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// bloodPressurePattern matches systolic/diastolic readings like "120/80"
var bloodPressurePattern = regexp.MustCompile(`^\d{2,3}/\d{2,3}$`)

// RegisterCustom installs domain validation rules on gin's binding engine
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine")
	}

	if err := v.RegisterValidation("bloodpressure", validateBloodPressure); err != nil {
		return fmt.Errorf("failed to register bloodpressure rule: %w", err)
	}
	return nil
}

func validateBloodPressure(fl validator.FieldLevel) bool {
	return bloodPressurePattern.MatchString(fl.Field().String())
}
