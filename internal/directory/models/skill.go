package models

import "strings"

// Skill is a directory entry keyed by an immutable ID.
//
// Invariants:
//   - ID is 2..32 lowercase ASCII letters, digits or hyphens and never changes
//   - Name is unique across skills, compared case-insensitively
type Skill struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func (s *Skill) Key() string {
	return s.ID
}

// NameKey folds a skill name for uniqueness comparisons.
func NameKey(name string) string {
	return strings.ToLower(name)
}
