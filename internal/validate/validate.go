// Package validate checks dashboard forms before they reach the backend.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/go-playground/validator/v10"
)

var (
	defaultValidator = newValidator()
	tenDigits        = regexp.MustCompile(`^[0-9]{10}$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return tenDigits.MatchString(NormalizePhone(fl.Field().String()))
	})
	return v
}

// Form aliases. The custom tags they use (notblank, phone10) are registered
// on the package validator.
type (
	Broker = models.BrokerInput
	Region = models.RegionInput
)

// Struct validates v and returns one FieldError per failing field, or nil.
func Struct(v any) []apierror.FieldError {
	err := defaultValidator.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apierror.FieldError{{Field: "", Message: "invalid request body", Code: "invalid"}}
	}

	out := make([]apierror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apierror.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
			Code:    fe.ActualTag(),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	label := strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.ActualTag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return "Please enter a valid email address"
	case "phone10":
		return "Phone number must be 10 digits"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// NormalizePhone strips spaces, dashes and a leading +91 or 0.
func NormalizePhone(phone string) string {
	phone = strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
	phone = strings.TrimPrefix(phone, "+91")
	if len(phone) == 11 && phone[0] == '0' {
		phone = phone[1:]
	}
	return phone
}

// UniquePhone reports a FieldError when phone already belongs to another
// broker in existing.
func UniquePhone(phone string, existing []string) *apierror.FieldError {
	want := NormalizePhone(phone)
	for _, p := range existing {
		if NormalizePhone(p) == want {
			return &apierror.FieldError{
				Field:   "phone",
				Message: "A broker with this phone number already exists",
				Code:    "unique",
			}
		}
	}
	return nil
}
