package person

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

// InMemory stores people in a map guarded by a RWMutex.
// Duplicate names surface as errors wrapping sentinel.ErrConflict.
type InMemory struct {
	mu     sync.RWMutex
	people map[string]models.Person
}

func NewInMemory() *InMemory {
	return &InMemory{people: make(map[string]models.Person)}
}

func (s *InMemory) Create(_ context.Context, p models.Person) (result.CreateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.people[p.Name]; ok {
		return nil, fmt.Errorf("create person %q: %w", p.Name, sentinel.ErrConflict)
	}
	s.people[p.Name] = p
	return result.Success[models.Person]{Value: p}, nil
}

func (s *InMemory) Update(_ context.Context, oldName string, p models.Person) (result.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.people[oldName]; !ok {
		return result.NotFound{}, nil
	}
	if p.Name != oldName {
		if _, taken := s.people[p.Name]; taken {
			return nil, fmt.Errorf("rename person %q to %q: %w", oldName, p.Name, sentinel.ErrConflict)
		}
		delete(s.people, oldName)
	}
	s.people[p.Name] = p
	return result.Success[models.Person]{Value: p}, nil
}

func (s *InMemory) Delete(_ context.Context, name string) (result.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.people[name]; !ok {
		return result.NotFound{}, nil
	}
	delete(s.people, name)
	return result.Deleted{}, nil
}

func (s *InMemory) Exists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.people[name]
	return ok, nil
}

// GetAll returns people ordered by name.
func (s *InMemory) GetAll(_ context.Context) ([]models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Person, 0, len(s.people))
	for _, p := range s.people {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b models.Person) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (s *InMemory) GetOne(_ context.Context, name string) (result.GetOneResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.people[name]
	if !ok {
		return result.NotFound{}, nil
	}
	return result.Success[models.Person]{Value: p}, nil
}
