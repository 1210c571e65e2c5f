package manager

import (
	"context"
	"errors"

	"skillset/internal/directory/models"
	"skillset/internal/directory/validation"
	audit "skillset/pkg/platform/audit"
	"skillset/pkg/result"
)

// PersonManager applies the directory write protocol to people.
// It holds no mutable state and is safe for concurrent use.
type PersonManager struct {
	base
	repo PersonRepository
}

func NewPersonManager(repo PersonRepository, opts ...Option) (*PersonManager, error) {
	if repo == nil {
		return nil, errors.New("person repository is required")
	}
	return &PersonManager{base: newBase("person", opts), repo: repo}, nil
}

func (m *PersonManager) existsProbe(name string) probe {
	return func(ctx context.Context) (bool, error) {
		return m.repo.Exists(ctx, name)
	}
}

// Create validates and stores a new person. A failed write is reported as Conflict
// only if the name is afterwards observed to exist.
func (m *PersonManager) Create(ctx context.Context, person *models.Person) (result.CreateResult, error) {
	if person == nil {
		return nil, m.violation(ctx, opCreate, "person is required")
	}
	p := *person

	return observe(ctx, &m.base, opCreate, p.Name, func(ctx context.Context, c *call) result.CreateResult {
		if ferr := validation.ValidatePerson(&p); ferr != nil {
			return result.ValidationFailure{Err: *ferr}
		}

		r, err := attempt(ctx, func(ctx context.Context) (result.CreateResult, error) {
			return m.repo.Create(ctx, p)
		})
		if err != nil {
			return m.reconcileCreate(ctx, c, err, m.existsProbe(p.Name), "name")
		}
		if r == nil {
			return result.RepositoryFailure{Cause: result.ErrNoOutcome}
		}
		if r.Kind() == result.KindSuccess {
			m.emit(ctx, audit.EventPersonCreated, p.Name, p.Name)
		}
		return r
	}), nil
}

// Update renames the person stored under name. After a failed write the old name
// is probed first, then the new one.
func (m *PersonManager) Update(ctx context.Context, name string, person *models.Person) (result.UpdateResult, error) {
	if name == "" {
		return nil, m.violation(ctx, opUpdate, "name is required")
	}
	if person == nil {
		return nil, m.violation(ctx, opUpdate, "person is required")
	}
	p := *person

	return observe(ctx, &m.base, opUpdate, name, func(ctx context.Context, c *call) result.UpdateResult {
		if ferr := validation.ValidatePerson(&p); ferr != nil {
			return result.ValidationFailure{Err: *ferr}
		}

		r, err := attempt(ctx, func(ctx context.Context) (result.UpdateResult, error) {
			return m.repo.Update(ctx, name, p)
		})
		if err != nil {
			return m.reconcileUpdate(ctx, c, err, m.existsProbe(name), m.existsProbe(p.Name))
		}
		if r == nil {
			return result.RepositoryFailure{Cause: result.ErrNoOutcome}
		}
		if r.Kind() == result.KindSuccess {
			m.emit(ctx, audit.EventPersonUpdated, p.Name, name)
		}
		return r
	}), nil
}

func (m *PersonManager) Delete(ctx context.Context, name string) (result.DeleteResult, error) {
	if name == "" {
		return nil, m.violation(ctx, opDelete, "name is required")
	}

	return observe(ctx, &m.base, opDelete, name, func(ctx context.Context, c *call) result.DeleteResult {
		r, err := attempt(ctx, func(ctx context.Context) (result.DeleteResult, error) {
			return m.repo.Delete(ctx, name)
		})
		if err != nil {
			return m.reconcileDelete(ctx, c, err, m.existsProbe(name))
		}
		if r == nil {
			return result.RepositoryFailure{Cause: result.ErrNoOutcome}
		}
		if r.Kind() == result.KindSuccess {
			m.emit(ctx, audit.EventPersonDeleted, name, name)
		}
		return r
	}), nil
}

func (m *PersonManager) Exists(ctx context.Context, name string) (result.ExistsResult, error) {
	if name == "" {
		return nil, m.violation(ctx, opExists, "name is required")
	}

	return observe(ctx, &m.base, opExists, name, func(ctx context.Context, _ *call) result.ExistsResult {
		found, err := attempt(ctx, m.existsProbe(name))
		if err != nil {
			return result.RepositoryFailure{Cause: err}
		}
		return result.Success[bool]{Value: found}
	}), nil
}

// GetAll lists every person. The list is never nil on success.
func (m *PersonManager) GetAll(ctx context.Context) result.GetAllResult {
	return observe(ctx, &m.base, opGetAll, "", func(ctx context.Context, _ *call) result.GetAllResult {
		people, err := attempt(ctx, m.repo.GetAll)
		if err != nil {
			return result.RepositoryFailure{Cause: err}
		}
		if people == nil {
			people = []models.Person{}
		}
		return result.Success[[]models.Person]{Value: people}
	})
}

func (m *PersonManager) GetOne(ctx context.Context, name string) (result.GetOneResult, error) {
	if name == "" {
		return nil, m.violation(ctx, opGetOne, "name is required")
	}

	return observe(ctx, &m.base, opGetOne, name, func(ctx context.Context, _ *call) result.GetOneResult {
		r, err := attempt(ctx, func(ctx context.Context) (result.GetOneResult, error) {
			return m.repo.GetOne(ctx, name)
		})
		if err != nil {
			return result.RepositoryFailure{Cause: err}
		}
		if r == nil {
			return result.RepositoryFailure{Cause: result.ErrNoOutcome}
		}
		return r
	}), nil
}
