// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "booker/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validator.Validate
}

// New creates an Echo-compatible request validator.
func New() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate runs struct validation and converts the first failure into the
// domain's validation error, so the error middleware renders it as a 400.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			return domainerrors.ErrValidationFailed.WithDetails(fieldErrors[0].Error())
		}

		return domainerrors.ErrValidationFailed
	}

	return nil
}
