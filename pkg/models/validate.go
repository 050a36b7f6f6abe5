package models

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the model-specific rules registered
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
			return Platform(fl.Field().String()).Valid()
		})
	})
	return validate
}

// Validate checks v against its struct tags
func Validate(v any) error {
	return Validator().Struct(v)
}
