// Package validator wraps go-playground/validator with the portal's custom
// rules and turns failures into per-field messages for inline display.
package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

// phone rule: digits only, 9 to 11 of them, optional leading +.
var phonePattern = regexp.MustCompile(`^\+?\d{9,11}$`)

type Validator struct {
	v *playground.Validate
}

func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())

	// Registration can only fail for a blank tag name; these are constants.
	_ = v.RegisterValidation("phone", func(fl playground.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("dateformat", func(fl playground.FieldLevel) bool {
		_, err := time.Parse(model.DateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("notpast", func(fl playground.FieldLevel) bool {
		t, err := time.Parse(model.DateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		today, _ := time.Parse(model.DateLayout, time.Now().Format(model.DateLayout))
		return !t.Before(today)
	})
	_ = v.RegisterValidation("slot", func(fl playground.FieldLevel) bool {
		return model.ValidSlot(fl.Field().String())
	})

	return &Validator{v: v}
}

// Validate checks a tagged struct and returns nil or a FieldErrors map.
func (va *Validator) Validate(obj interface{}) error {
	err := va.v.Struct(obj)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = messageFor(fe)
	}
	return fields
}

// FieldErrors maps field name (lower-cased) to a user-facing message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for field, msg := range f {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

func messageFor(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "dateformat":
		return "must be a date in yyyy-mm-dd form"
	case "notpast":
		return "date cannot be in the past"
	case "slot":
		return "must be one of the offered time slots"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return "is invalid"
	}
}
