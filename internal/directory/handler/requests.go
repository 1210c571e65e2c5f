package handler

import "skillset/internal/directory/models"

// PersonRequest is the body of POST /people and PUT /people/{name}. Values are
// passed to the manager untouched; trimming would hide whitespace violations.
type PersonRequest struct {
	Name string `json:"name"`
}

func (r PersonRequest) toModel() *models.Person {
	return &models.Person{Name: r.Name}
}

// SkillRequest is the body of POST /skills and PUT /skills/{id}. On update an
// omitted id defaults to the path id.
type SkillRequest struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

func (r SkillRequest) toModel(pathID string) *models.Skill {
	s := &models.Skill{ID: pathID, Name: r.Name}
	if r.ID != nil {
		s.ID = *r.ID
	}
	return s
}
