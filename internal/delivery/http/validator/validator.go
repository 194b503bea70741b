// Package validator adapts go-playground/validator onto echo's Validator
// interface and shapes violations into field-level error details.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "conduit/internal/domain/errors"
	"conduit/internal/errors"
)

// CustomValidator wraps a validator.Validate instance for echo.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds the validator used by the HTTP server. Field names in error
// details follow the json tag, not the Go field name.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &CustomValidator{validate: v}
}

// Validate implements echo.Validator. Violations surface as a single
// validation-failed domain error listing every offending field.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return errors.Wrap(err, "validation failed")
	}

	details := make([]string, 0, len(violations))
	for _, violation := range violations {
		details = append(details, fieldError(violation))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; "))
}

// fieldError renders one violation as "field: constraint".
func fieldError(violation validator.FieldError) string {
	field := violation.Field()

	switch violation.Tag() {
	case "required":
		return field + ": required"
	case "email":
		return field + ": not a valid email"
	case "url":
		return field + ": not a valid url"
	case "min":
		return fmt.Sprintf("%s: must be at least %s characters", field, violation.Param())
	default:
		return fmt.Sprintf("%s: failed %s constraint", field, violation.Tag())
	}
}
