package skill

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"skillset/internal/directory/models"
	"skillset/pkg/platform/sentinel"
	"skillset/pkg/result"
)

// InMemory stores skills by id with a case-insensitive name index.
type InMemory struct {
	mu     sync.RWMutex
	skills map[string]models.Skill
	names  map[string]string // folded name -> id
}

func NewInMemory() *InMemory {
	return &InMemory{
		skills: make(map[string]models.Skill),
		names:  make(map[string]string),
	}
}

func (s *InMemory) Create(_ context.Context, sk models.Skill) (result.CreateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.skills[sk.ID]; ok {
		return nil, fmt.Errorf("create skill %q: %w", sk.ID, sentinel.ErrConflict)
	}
	if _, ok := s.names[models.NameKey(sk.Name)]; ok {
		return nil, fmt.Errorf("create skill %q: name %q: %w", sk.ID, sk.Name, sentinel.ErrConflict)
	}
	s.skills[sk.ID] = sk
	s.names[models.NameKey(sk.Name)] = sk.ID
	return result.Success[models.Skill]{Value: sk}, nil
}

func (s *InMemory) Update(_ context.Context, id string, sk models.Skill) (result.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.skills[id]
	if !ok {
		return result.NotFound{}, nil
	}
	if owner, taken := s.names[models.NameKey(sk.Name)]; taken && owner != id {
		return nil, fmt.Errorf("rename skill %q to %q: %w", id, sk.Name, sentinel.ErrConflict)
	}
	delete(s.names, models.NameKey(current.Name))
	sk.ID = id
	s.skills[id] = sk
	s.names[models.NameKey(sk.Name)] = id
	return result.Success[models.Skill]{Value: sk}, nil
}

func (s *InMemory) Delete(_ context.Context, id string) (result.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sk, ok := s.skills[id]
	if !ok {
		return result.NotFound{}, nil
	}
	delete(s.skills, id)
	delete(s.names, models.NameKey(sk.Name))
	return result.Deleted{}, nil
}

func (s *InMemory) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.skills[id]
	return ok, nil
}

// ExistsByName reports whether any skill carries name, ignoring case.
func (s *InMemory) ExistsByName(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.names[models.NameKey(name)]
	return ok, nil
}

// GetAll returns skills ordered by id.
func (s *InMemory) GetAll(_ context.Context) ([]models.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Skill, 0, len(s.skills))
	for _, sk := range s.skills {
		out = append(out, sk)
	}
	slices.SortFunc(out, func(a, b models.Skill) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *InMemory) GetOne(_ context.Context, id string) (result.GetOneResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sk, ok := s.skills[id]
	if !ok {
		return result.NotFound{}, nil
	}
	return result.Success[models.Skill]{Value: sk}, nil
}
