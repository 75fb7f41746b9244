package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is used when no region is configured.
const DefaultPhoneRegion = "ES"

// Validator wraps the go-playground validator. Field errors are reported
// under their JSON names.
type Validator struct {
	v           *validator.Validate
	phoneRegion string
}

// New creates a Validator. It registers the "phone" tag, which accepts
// numbers that parse as valid for phoneRegion.
func New(phoneRegion string) *Validator {
	if phoneRegion == "" {
		phoneRegion = DefaultPhoneRegion
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	val := &Validator{v: v, phoneRegion: phoneRegion}
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return val.ValidPhone(fl.Field().String())
	})
	return val
}

// ValidPhone reports whether s is a valid number in the configured region.
func (val *Validator) ValidPhone(s string) bool {
	number, err := phonenumbers.Parse(strings.TrimSpace(s), val.phoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(number)
}

// NormalizePhone formats a phone number to E.164. If parsing fails, it
// returns the trimmed input.
func (val *Validator) NormalizePhone(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return trimmed
	}
	number, err := phonenumbers.Parse(trimmed, val.phoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// Struct validates s and returns a map of JSON field path to message. A nil
// map means s is valid.
func (val *Validator) Struct(s interface{}) (map[string]string, error) {
	err := val.v.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = message(fe)
	}
	return out, nil
}

// fieldPath drops the root struct name: "Submission.building.floors" -> "building.floors".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "numeric":
		return "must contain only digits"
	case "url":
		return "must be a valid URL"
	case "gt":
		return "must be greater than " + fe.Param()
	case "quantity":
		return "must be a positive number"
	case "combine":
		return "cannot be selected together with other works"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// RegisterCustomTypeFunc lets a domain type present itself to the tag checks
// as a plain value.
func (val *Validator) RegisterCustomTypeFunc(fn validator.CustomTypeFunc, types ...interface{}) {
	val.v.RegisterCustomTypeFunc(fn, types...)
}

// RegisterStructValidation registers a cross-field check for the given types.
func (val *Validator) RegisterStructValidation(fn validator.StructLevelFunc, types ...interface{}) {
	val.v.RegisterStructValidation(fn, types...)
}
