package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator adapts go-playground/validator to the echo.Validator
// interface. Field names in messages come from the json tag, so errors read
// in the same vocabulary as the request payload.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns the validator wired into echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies echo.Validator. All offending fields are reported in a
// single message rather than just the first.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = describe(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

// describe renders one constraint violation.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("missing required field %q", fe.Field())
	case "email":
		return fmt.Sprintf("%q is not a valid email address", fe.Field())
	case "url":
		return fmt.Sprintf("%q is not a valid URL", fe.Field())
	case "gt":
		return fmt.Sprintf("%q must be greater than %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%q is below the minimum of %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%q exceeds the maximum of %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%q violates the %q constraint", fe.Field(), fe.Tag())
	}
}
