package application

import (
	"errors"
	"reflect"
	"regexp"
	"unicode"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{6,10}$`)

const minPasswordLength = 8

// newValidator reports fields by their `field` tag so errors name the wire
// field, not the Go one.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("field"); name != "" {
			return name
		}
		return field.Name
	})

	// Registration of built-in names cannot fail; these tags are new.
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return strongPassword(fl.Field().String())
	})

	return v
}

func strongPassword(password string) bool {
	if len([]rune(password)) < minPasswordLength {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

// validationError turns validator output into a *domain.ValidationError. Any
// other error is returned as is.
func validationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		fields = append(fields, fieldErr.Field())
	}
	return &domain.ValidationError{Fields: fields}
}
