package validation

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringRuleCheck(t *testing.T) {
	rule := StringRule{
		Field:       "name",
		Min:         2,
		Max:         5,
		Allowed:     unicode.IsLetter,
		AllowedDesc: "letters",
	}

	tests := []struct {
		name  string
		value string
		kind  Kind
	}{
		{"empty", "", KindRequired},
		{"leading space", " ab", KindLeadingWhitespace},
		{"trailing tab", "ab\t", KindTrailingWhitespace},
		{"whitespace only reports leading", "   ", KindLeadingWhitespace},
		{"too short", "a", KindTooShort},
		{"too long", "abcdef", KindTooLong},
		{"digits", "ab1", KindInvalidCharacters},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Check(tt.value)
			require.NotNil(t, err)
			assert.Equal(t, "name", err.Field)
			assert.Equal(t, tt.kind, err.Kind)
		})
	}

	t.Run("length counts runes", func(t *testing.T) {
		assert.Nil(t, rule.Check("ÅÄÖÜ"))
	})

	t.Run("params carry bounds", func(t *testing.T) {
		assert.Equal(t, 2, rule.Check("a").Params[ParamMin])
		assert.Equal(t, 5, rule.Check("abcdef").Params[ParamMax])
		assert.Equal(t, "letters", rule.Check("a1").Params[ParamAllowed])
	})
}

func TestFieldErrorMessage(t *testing.T) {
	assert.Equal(t, "id cannot be changed", Immutable("id").Error())
	assert.Equal(t, "name is required", Required("name").Error())
	tooLong := FieldError{Field: "name", Kind: KindTooLong, Params: map[string]any{ParamMax: 64}}
	assert.Equal(t, "name must be at most 64 characters", tooLong.Error())
}
