// Package validation configures the go-playground validator shared by the
// input schemas of every service. Errors name fields by their JSON tag.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"themargin/internal/apperr"
)

var validate = New()

// New returns a validator that reports JSON field names and understands
// the notblank tag (non-empty after trimming whitespace).
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Struct validates s and converts the first failure into a validation error.
func Struct(s any) error {
	return Check(s, "")
}

// Check validates s like Struct, except that when any required field is
// missing the error carries the single message missing.
func Check(s any, missing string) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Internal(err)
	}
	if missing != "" {
		for _, fe := range verrs {
			if isPresenceTag(fe.Tag()) {
				return apperr.Validation(missing)
			}
		}
	}
	return apperr.Validation(FieldMessage(verrs[0]))
}

func isPresenceTag(tag string) bool {
	return tag == "required" || tag == "notblank"
}

// FieldMessage renders one field error as a sentence.
func FieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required."
	case "email":
		return field + " must be a valid email."
	case "url", "http_url":
		return field + " must be a valid URL."
	case "oneof":
		return field + " must be one of: " + strings.Join(strings.Fields(param), ", ") + "."
	case "max":
		return field + " must be at most " + param + " characters long."
	case "min":
		return field + " must be at least " + param + " characters long."
	case "uuid":
		return field + " must be a valid UUID."
	default:
		return field + " is invalid."
	}
}
