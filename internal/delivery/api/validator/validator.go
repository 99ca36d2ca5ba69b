// Package validator adapts go-playground/validator to Echo.
package validator

import (
	domainerrors "helloworld/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator validates bound request DTOs through their `validate` tags.
type RequestValidator struct {
	validate *validator.Validate
}

// New returns the validator installed as echo.Echo.Validator.
func New() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Failures map to ErrValidationFailed
// with the offending fields in the details.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
