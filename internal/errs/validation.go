package errs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// ValidateStruct runs validator tags on v and converts failures to a 400 with
// one FieldError per failing field. Field names are the lower-cased struct
// field names unless a `form` tag names them.
func ValidateStruct(v any, message string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return NewBadRequestError(message, fieldErrors(verrs))
}

func fieldErrors(verrs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required", "required_without":
			msg = "is required"
		case "email":
			msg = "must be a valid email address"
		case "url", "http_url":
			msg = "must be a valid URL"
		case "max":
			msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
		default:
			msg = fe.Tag()
		}
		out = append(out, FieldError{Field: fe.Field(), Error: msg})
	}
	return out
}
