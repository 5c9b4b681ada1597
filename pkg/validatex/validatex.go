// Package validatex runs go-playground/validator tags and reports failures
// as errx validation errors.
package validatex

import (
	"errors"
	"reflect"
	"strings"

	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/go-playground/validator/v10"
)

var validateErrors = errx.NewRegistry("VALIDATE")

// ErrInvalid is returned for any struct that fails its tags.
var ErrInvalid = validateErrors.Register("INVALID", errx.TypeValidation, 400, "Invalid request")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates s. On failure the error carries the default message and
// a "fields" detail listing the offending JSON field names.
func Struct(s any) error {
	return StructWithMessage(s, ErrInvalid.Message)
}

// StructWithMessage validates s and reports failures with message.
func StructWithMessage(s any, message string) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return validateErrors.NewWithCause(ErrInvalid, err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return validateErrors.NewWithMessage(ErrInvalid, message).
		WithDetail("fields", fields)
}

// Var validates a single value against tag.
func Var(value any, tag string) error {
	return validate.Var(value, tag)
}
