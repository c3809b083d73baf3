// Package forms applies declarative per-field validation rules to submitted
// form values, producing either coerced typed values or a map of per-field
// messages suitable for re-rendering the form.
package forms

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Errors maps field names to the messages recorded against them
type Errors map[string][]string

// Add records a message against a field
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Decoded holds the coerced values of an accepted submission, keyed by field
type Decoded map[string]any

// String returns the coerced string value of a field, or ""
func (d Decoded) String(field string) string {
	v, _ := d[field].(string)
	return v
}

// Int64 returns the coerced int64 value of a field, or 0
func (d Decoded) Int64(field string) int64 {
	v, _ := d[field].(int64)
	return v
}

// DecodeFunc coerces a raw field value into its typed form. It returns the
// coerced value, or a message describing why the value was rejected.
type DecodeFunc func(raw string) (any, string)

// CheckFunc inspects a coerced value and returns a message when it is invalid
type CheckFunc func(v any) string

// Field describes one form field: whether it is required, how its raw value
// is coerced, and which checks run against the coerced value.
type Field struct {
	name     string
	required string // message recorded when the field is missing; "" means optional
	decode   DecodeFunc
	checks   []CheckFunc
}

// Schema is an ordered set of field rules applied to submitted form values
type Schema struct {
	fields []Field
}

// NewSchema builds a schema from field rules
func NewSchema(fields ...Field) *Schema {
	return &Schema{fields: fields}
}

// Parse applies every field rule to values. It returns the coerced values on
// success, or the messages recorded per field. Fields are validated
// independently; within one field, rules run in order and stop at the first
// failure. Parse never touches storage.
func (s *Schema) Parse(values url.Values) (Decoded, Errors) {
	decoded := Decoded{}
	errs := Errors{}

	for _, f := range s.fields {
		raw := strings.TrimSpace(values.Get(f.name))

		if raw == "" {
			if f.required != "" {
				errs.Add(f.name, f.required)
			}
			continue
		}

		v := any(raw)
		if f.decode != nil {
			coerced, msg := f.decode(raw)
			if msg != "" {
				errs.Add(f.name, msg)
				continue
			}
			v = coerced
		}

		ok := true
		for _, check := range f.checks {
			if msg := check(v); msg != "" {
				errs.Add(f.name, msg)
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		decoded[f.name] = v
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return decoded, nil
}

// Text declares a required text field. msg is recorded when the field is
// missing; checks run against the trimmed value.
func Text(name, msg string, checks ...CheckFunc) Field {
	return Field{name: name, required: msg, checks: checks}
}

// Optional declares a text field that may be absent
func Optional(name string, checks ...CheckFunc) Field {
	return Field{name: name, checks: checks}
}

// Cents declares a required money field coerced from a decimal string into
// integer minor units. msg is recorded when the field is missing or not a
// number. Fractions smaller than a cent are truncated.
func Cents(name, msg string, checks ...CheckFunc) Field {
	return Field{
		name:     name,
		required: msg,
		decode: func(raw string) (any, string) {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, msg
			}
			return d.Mul(decimal.NewFromInt(100)).IntPart(), ""
		},
		checks: checks,
	}
}

// Positive checks that a coerced cents value is greater than zero
func Positive(msg string) CheckFunc {
	return func(v any) string {
		if n, ok := v.(int64); !ok || n <= 0 {
			return msg
		}
		return ""
	}
}

// Length checks that a text value has between min and max characters
func Length(min, max int, msg string) CheckFunc {
	return func(v any) string {
		s, _ := v.(string)
		if n := utf8.RuneCountInString(s); n < min || n > max {
			return msg
		}
		return ""
	}
}

// OneOf checks that a text value is one of the allowed values
func OneOf(allowed []string, msg string) CheckFunc {
	return func(v any) string {
		s, _ := v.(string)
		for _, a := range allowed {
			if s == a {
				return ""
			}
		}
		return msg
	}
}

// Email checks that a text value is a well-formed email address
func Email(msg string) CheckFunc {
	return func(v any) string {
		s, _ := v.(string)
		if validate.Var(s, "email") != nil {
			return msg
		}
		return ""
	}
}

// URL checks that a text value is a well-formed URL
func URL(msg string) CheckFunc {
	return func(v any) string {
		s, _ := v.(string)
		if validate.Var(s, "url") != nil {
			return msg
		}
		return ""
	}
}
