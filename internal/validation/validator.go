package validation

import (
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with the custom tags used by request types.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// notblank rejects strings that are empty after trimming whitespace.
	_ = v.RegisterValidation("notblank", notBlank)

	return v
}

func notBlank(fl validatorv10.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
