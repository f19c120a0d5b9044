package validators

import (
	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// ParseFunc reports whether a string field holds a valid value.
type ParseFunc func(value string) error

// New creates a new validator instance.
func New() *Validate {
	return validator.New()
}

// RegisterParser registers tag as a string validation backed by parse.
// Empty values pass so the tag composes with "required" and "omitempty".
func RegisterParser(validate *Validate, tag string, parse ParseFunc) error {
	return validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return parse(value) == nil
	})
}
