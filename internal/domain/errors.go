package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrValidation marks every input error raised by the domain layer.
// Callers match it with errors.Is and report it before any side effect.
var ErrValidation = errors.New("validation failed")

var validate = validator.New(validator.WithRequiredStructEnabled())

// validationErr wraps a formatted message with ErrValidation.
func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// validateStruct runs the struct tags and reports the first failing field.
func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return validationErr("%v", err)
		}
		return validationErr("%s: failed on '%s'", errs[0].Field(), errs[0].Tag())
	}
	return nil
}
