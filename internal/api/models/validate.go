package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request model against its struct tags and returns the
// violations as field errors, or nil when the model is valid.
func Validate(v interface{}) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error(), Code: "invalid"}}
	}

	fieldErrors := make([]FieldError, 0, len(violations))
	for _, violation := range violations {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   violation.Field(),
			Message: messageFor(violation),
			Code:    violation.Tag(),
		})
	}
	return fieldErrors
}

func messageFor(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", violation.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", violation.Param())
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", violation.Param())
	default:
		return fmt.Sprintf("failed %s validation", violation.Tag())
	}
}
