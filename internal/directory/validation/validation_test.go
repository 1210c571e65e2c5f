package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillset/internal/directory/models"
	"skillset/pkg/validation"
)

func TestValidatePerson(t *testing.T) {
	valid := []string{"Joe", "Anne-Marie O'Neil", "J. R. R. Tolkien", "Søren Kierkegaard", "李小龍"}
	for _, name := range valid {
		t.Run("valid "+name, func(t *testing.T) {
			assert.Nil(t, ValidatePerson(&models.Person{Name: name}))
		})
	}

	invalid := []struct {
		name string
		in   string
		kind validation.Kind
	}{
		{"empty", "", validation.KindRequired},
		{"single rune", "J", validation.KindTooShort},
		{"too long", strings.Repeat("a", 65), validation.KindTooLong},
		{"digits", "Joe 2", validation.KindInvalidCharacters},
		{"underscore", "joe_smith", validation.KindInvalidCharacters},
		{"leading space", " Joe", validation.KindLeadingWhitespace},
		{"trailing space", "Joe ", validation.KindTrailingWhitespace},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePerson(&models.Person{Name: tt.in})
			require.NotNil(t, err)
			assert.Equal(t, "name", err.Field)
			assert.Equal(t, tt.kind, err.Kind)
		})
	}
}

func TestValidateSkill(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, s := range []models.Skill{
			{ID: "dot-net", Name: ".NET"},
			{ID: "cpp", Name: "C++"},
			{ID: "c-sharp", Name: "C#"},
			{ID: "ci-cd", Name: "CI/CD"},
			{ID: "k8s", Name: "K"},
		} {
			assert.Nil(t, ValidateSkill(&s), s.ID)
		}
	})

	t.Run("id is checked before name", func(t *testing.T) {
		err := ValidateSkill(&models.Skill{ID: "", Name: ""})
		require.NotNil(t, err)
		assert.Equal(t, "id", err.Field)
		assert.Equal(t, validation.KindRequired, err.Kind)
	})

	t.Run("uppercase id", func(t *testing.T) {
		err := ValidateSkill(&models.Skill{ID: "DotNet", Name: ".NET"})
		require.NotNil(t, err)
		assert.Equal(t, validation.KindInvalidCharacters, err.Kind)
		assert.Equal(t, "lowercase letters, digits and hyphens", err.Params[validation.ParamAllowed])
	})

	t.Run("id too long", func(t *testing.T) {
		err := ValidateSkill(&models.Skill{ID: strings.Repeat("x", 33), Name: "X"})
		require.NotNil(t, err)
		assert.Equal(t, validation.KindTooLong, err.Kind)
		assert.Equal(t, 32, err.Params[validation.ParamMax])
	})

	t.Run("name with trailing whitespace", func(t *testing.T) {
		err := ValidateSkill(&models.Skill{ID: "go", Name: "Go\n"})
		require.NotNil(t, err)
		assert.Equal(t, "name", err.Field)
		assert.Equal(t, validation.KindTrailingWhitespace, err.Kind)
	})

	t.Run("name with symbols", func(t *testing.T) {
		err := ValidateSkill(&models.Skill{ID: "go", Name: "Go!"})
		require.NotNil(t, err)
		assert.Equal(t, validation.KindInvalidCharacters, err.Kind)
	})
}

func TestNilEntitiesPanic(t *testing.T) {
	assert.Panics(t, func() { ValidatePerson(nil) })
	assert.Panics(t, func() { ValidateSkill(nil) })
}

func TestValidateSkillUpdate(t *testing.T) {
	t.Run("id change is rejected before other rules", func(t *testing.T) {
		err := ValidateSkillUpdate("dot-net", &models.Skill{ID: "DOTNET", Name: ""})
		require.NotNil(t, err)
		assert.Equal(t, "id", err.Field)
		assert.Equal(t, validation.KindImmutable, err.Kind)
	})

	t.Run("matching id falls through to skill rules", func(t *testing.T) {
		err := ValidateSkillUpdate("dot-net", &models.Skill{ID: "dot-net", Name: ""})
		require.NotNil(t, err)
		assert.Equal(t, "name", err.Field)
		assert.Equal(t, validation.KindRequired, err.Kind)
	})

	t.Run("valid rename", func(t *testing.T) {
		assert.Nil(t, ValidateSkillUpdate("dot-net", &models.Skill{ID: "dot-net", Name: "NET"}))
	})
}
