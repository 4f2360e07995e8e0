package entities

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingTimestamp = errors.New("missing timestamp")
	ErrTotalMismatch    = errors.New("order total does not match line items")
)

var validate = validator.New()

// Validate runs the struct tag rules of v.
func Validate(v any) error {
	return validate.Struct(v)
}
