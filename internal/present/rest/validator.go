package rest

import (
	"github.com/go-playground/validator/v10"

	"github.com/totegamma/sendlog/internal/domain"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	validator *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validator: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *Validator) Validate(i any) error {
	if err := v.validator.Struct(i); err != nil {
		return domain.ValidationError{Message: err.Error()}
	}
	return nil
}
