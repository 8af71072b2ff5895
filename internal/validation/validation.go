// Package validation checks request payloads against their struct-tag schema and
// turns failures into field-level messages keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Errors is a structured rejection: JSON field name -> message
type Errors struct {
	Fields map[string]string
}

func (e *Errors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field builds a single-field rejection
func Field(name, message string) *Errors {
	return &Errors{Fields: map[string]string{name: message}}
}

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
)

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
	mustRegister(v, "cardnumber", func(fl validator.FieldLevel) bool {
		return cardNumberRe.MatchString(strings.ReplaceAll(fl.Field().String(), " ", ""))
	})
	mustRegister(v, "expiry", func(fl validator.FieldLevel) bool {
		return expiryRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "cvv", func(fl validator.FieldLevel) bool {
		return cvvRe.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// Struct validates s. It returns *Errors for rule violations and nil when s is valid.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Errors{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Bool {
			return label + " must be accepted"
		}
		return label + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", label, strings.ToLower(humanize(lowerFirst(fe.Param()))))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "cardnumber":
		return "Card number must be 16 digits"
	case "expiry":
		return "Expiry date must be in MM/YY format"
	case "cvv":
		return "CVV must be 3 or 4 digits"
	default:
		return label + " is invalid"
	}
}

// humanize turns "firstName" into "First name"
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
