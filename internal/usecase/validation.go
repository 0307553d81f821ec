package usecase

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	digitsPattern  = regexp.MustCompile(`^[0-9]+$`)
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	inputValidator = newInputValidator()
)

func newInputValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// validateVar checks a single value against validator tags and maps the
// failure onto ErrInvalidInput.
func validateVar(field string, value any, tag string) error {
	if err := inputValidator.Var(value, tag); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidInput, field, err)
	}
	return nil
}
