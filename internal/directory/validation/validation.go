// Package validation holds the pure input rules for directory records.
package validation

import (
	"unicode"

	"skillset/internal/directory/models"
	"skillset/pkg/validation"
)

var (
	personName = validation.StringRule{
		Field:       "name",
		Min:         2,
		Max:         64,
		Allowed:     isPersonNameRune,
		AllowedDesc: "letters, spaces, apostrophes, hyphens and dots",
	}
	skillID = validation.StringRule{
		Field:       "id",
		Min:         2,
		Max:         32,
		Allowed:     isSkillIDRune,
		AllowedDesc: "lowercase letters, digits and hyphens",
	}
	skillName = validation.StringRule{
		Field:       "name",
		Min:         1,
		Max:         48,
		Allowed:     isSkillNameRune,
		AllowedDesc: "letters, digits, spaces and + # . - /",
	}
)

// ValidatePerson returns the first rule the person breaks, or nil.
// Panics on a nil person.
func ValidatePerson(p *models.Person) *validation.FieldError {
	if p == nil {
		panic("validation: nil person")
	}
	return personName.Check(p.Name)
}

// ValidateSkill checks the id before the name. Panics on a nil skill.
func ValidateSkill(s *models.Skill) *validation.FieldError {
	if s == nil {
		panic("validation: nil skill")
	}
	if err := skillID.Check(s.ID); err != nil {
		return err
	}
	return skillName.Check(s.Name)
}

func isPersonNameRune(r rune) bool {
	switch r {
	case ' ', '\'', '-', '.':
		return true
	}
	return unicode.IsLetter(r)
}

func isSkillIDRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
}

func isSkillNameRune(r rune) bool {
	switch r {
	case ' ', '+', '#', '.', '-', '/':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ValidateSkillUpdate rejects a body whose id differs from the addressed id, then
// applies ValidateSkill.
func ValidateSkillUpdate(id string, s *models.Skill) *validation.FieldError {
	if s == nil {
		panic("validation: nil skill")
	}
	if s.ID != id {
		return validation.Immutable("id")
	}
	return ValidateSkill(s)
}
