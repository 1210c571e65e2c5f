package models

// Person is a directory entry keyed by its name.
//
// Invariants (enforced by the directory validators, not by construction):
//   - Name is 2..64 letters, spaces, apostrophes, hyphens or dots
//   - Name has no leading or trailing whitespace
type Person struct {
	Name string `json:"name" yaml:"name"`
}

// Key returns the identity the repositories index the person by.
func (p *Person) Key() string {
	return p.Name
}
