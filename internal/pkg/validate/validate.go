package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// EmailTag is the rule name for the address shape accepted at signup and
// profile edit: something@something.something without whitespace.
const EmailTag = "skillswap_email"

// PasswordTag accepts 6 to 19 UTF-16 code units, the way browsers count
// string length, within bcrypt's 72 byte input limit.
const PasswordTag = "skillswap_password"

const (
	passwordMinUnits = 6
	passwordMaxUnits = 19
	passwordMaxBytes = 72
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Error lists failed fields by their json name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed validation.
func (e *Error) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	_ = v.RegisterValidation(PasswordTag, func(fl validator.FieldLevel) bool {
		return IsPassword(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct validates s. Rule violations come back as *Error.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	out := &Error{Fields: make(map[string]string, len(ves))}
	for _, fe := range ves {
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func IsPassword(s string) bool {
	if len(s) > passwordMaxBytes {
		return false
	}
	n := len(utf16.Encode([]rune(s)))
	return n >= passwordMinUnits && n <= passwordMaxUnits
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case EmailTag:
		return "must be a valid email address"
	case PasswordTag:
		return fmt.Sprintf("must be %d-%d characters", passwordMinUnits, passwordMaxUnits)
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}
