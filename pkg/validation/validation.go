// Package validation describes field-level input failures in a form callers can
// render without parsing messages.
package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind names the rule a field broke.
type Kind string

const (
	KindRequired           Kind = "required"
	KindTooShort           Kind = "too_short"
	KindTooLong            Kind = "too_long"
	KindInvalidCharacters  Kind = "invalid_characters"
	KindLeadingWhitespace  Kind = "leading_whitespace"
	KindTrailingWhitespace Kind = "trailing_whitespace"
	KindImmutable          Kind = "immutable"
)

// Param keys carried in FieldError.Params.
const (
	ParamMin     = "min"
	ParamMax     = "max"
	ParamAllowed = "allowed"
)

// FieldError reports the first rule a single field failed.
type FieldError struct {
	Field  string         `json:"field"`
	Kind   Kind           `json:"kind"`
	Params map[string]any `json:"params,omitempty"`
}

func (e FieldError) Error() string {
	switch e.Kind {
	case KindRequired:
		return fmt.Sprintf("%s is required", e.Field)
	case KindTooShort:
		return fmt.Sprintf("%s must be at least %v characters", e.Field, e.Params[ParamMin])
	case KindTooLong:
		return fmt.Sprintf("%s must be at most %v characters", e.Field, e.Params[ParamMax])
	case KindInvalidCharacters:
		return fmt.Sprintf("%s may only contain %v", e.Field, e.Params[ParamAllowed])
	case KindLeadingWhitespace:
		return fmt.Sprintf("%s must not start with whitespace", e.Field)
	case KindTrailingWhitespace:
		return fmt.Sprintf("%s must not end with whitespace", e.Field)
	case KindImmutable:
		return fmt.Sprintf("%s cannot be changed", e.Field)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

// Required builds a KindRequired error.
func Required(field string) *FieldError {
	return &FieldError{Field: field, Kind: KindRequired}
}

// Immutable builds a KindImmutable error.
func Immutable(field string) *FieldError {
	return &FieldError{Field: field, Kind: KindImmutable}
}

// StringRule bounds a string field by rune length and an allowed alphabet.
type StringRule struct {
	Field   string
	Min     int
	Max     int
	Allowed func(r rune) bool
	// Describes Allowed for clients; reported as the "allowed" param.
	AllowedDesc string
}

// Check applies the rule. Order: required, leading whitespace, trailing whitespace,
// length, alphabet. The first failure wins.
func (r StringRule) Check(value string) *FieldError {
	if value == "" {
		return Required(r.Field)
	}
	first, _ := utf8.DecodeRuneInString(value)
	if unicode.IsSpace(first) {
		return &FieldError{Field: r.Field, Kind: KindLeadingWhitespace}
	}
	last, _ := utf8.DecodeLastRuneInString(value)
	if unicode.IsSpace(last) {
		return &FieldError{Field: r.Field, Kind: KindTrailingWhitespace}
	}
	n := utf8.RuneCountInString(value)
	if r.Min > 0 && n < r.Min {
		return &FieldError{Field: r.Field, Kind: KindTooShort, Params: map[string]any{ParamMin: r.Min}}
	}
	if r.Max > 0 && n > r.Max {
		return &FieldError{Field: r.Field, Kind: KindTooLong, Params: map[string]any{ParamMax: r.Max}}
	}
	if r.Allowed != nil && strings.IndexFunc(value, not(r.Allowed)) >= 0 {
		return &FieldError{Field: r.Field, Kind: KindInvalidCharacters, Params: map[string]any{ParamAllowed: r.AllowedDesc}}
	}
	return nil
}

func not(f func(rune) bool) func(rune) bool {
	return func(r rune) bool { return !f(r) }
}
