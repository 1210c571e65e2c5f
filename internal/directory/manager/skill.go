package manager

import (
	"context"
	"errors"

	"skillset/internal/directory/models"
	"skillset/internal/directory/validation"
	audit "skillset/pkg/platform/audit"
	"skillset/pkg/result"
)

// SkillManager applies the directory write protocol to skills. Skill ids never
// change; names are unique and may be renamed.
type SkillManager struct {
	base
	repo SkillRepository
}

func NewSkillManager(repo SkillRepository, opts ...Option) (*SkillManager, error) {
	if repo == nil {
		return nil, errors.New("skill repository is required")
	}
	return &SkillManager{base: newBase("skill", opts), repo: repo}, nil
}

func (m *SkillManager) existsProbe(id string) probe {
	return func(ctx context.Context) (bool, error) {
		return m.repo.Exists(ctx, id)
	}
}

func (m *SkillManager) nameProbe(name string) probe {
	return func(ctx context.Context) (bool, error) {
		return m.repo.ExistsByName(ctx, name)
	}
}

// Create stores a new skill. Reconciliation only checks the id; a failed write
// caused by a duplicate name stays a RepositoryFailure.
func (m *SkillManager) Create(ctx context.Context, skill *models.Skill) (result.CreateResult, error) {
	if skill == nil {
		return nil, m.violation(ctx, opCreate, "skill is required")
	}
	s := *skill

	return observe(ctx, &m.base, opCreate, s.ID, func(ctx context.Context, c *call) result.CreateResult {
		if ferr := validation.ValidateSkill(&s); ferr != nil {
			return result.ValidationFailure{Err: *ferr}
		}

		r, err := attempt(ctx, func(ctx context.Context) (result.CreateResult, error) {
			return m.repo.Create(ctx, s)
		})
		if err != nil {
			return m.reconcileCreate(ctx, c, err, m.existsProbe(s.ID), "id")
		}
		if r == nil {
			return result.RepositoryFailure{Cause: result.ErrNoOutcome}
		}
		if r.Kind() == result.KindSuccess {
			m.emit(ctx, audit.EventSkillCreated, s.ID, s.ID)
		}
		return r
	}), nil
}

// Update renames the skill stored under id. The body id must equal id.
func (m *SkillManager) Update(ctx context.Context, id string, skill *models.Skill) (result.UpdateResult, error) {
	if id == "" {
		return nil, m.violation(ctx, opUpdate, "id is required")
	}
	if skill == nil {
		return nil, m.violation(ctx, opUpdate, "skill is required")
	}
	s := *skill

	return observe(ctx, &m.base, opUpdate, id, func(ctx context.Context, c *call) result.UpdateResult {
		if ferr := validation.ValidateSkillUpdate(id, &s); ferr != nil {
			return result.ValidationFailure{Err: *ferr}
		}

		r, err := attempt(ctx, func(ctx context.Context) (result.UpdateResult, error) {
			return m.repo.Update(ctx, id, s)
		})
		if err != nil {
			return m.reconcileUpdate(ctx, c, err, m.existsProbe(id), m.nameProbe(s.Name))
		}
		if r == nil {
			return result.RepositoryFailure{Cause: result.ErrNoOutcome}
		}
		if r.Kind() == result.KindSuccess {
			m.emit(ctx, audit.EventSkillUpdated, id, id)
		}
		return r
	}), nil
}

func (m *SkillManager) Delete(ctx context.Context, id string) (result.DeleteResult, error) {
	if id == "" {
		return nil, m.violation(ctx, opDelete, "id is required")
	}

	return observe(ctx, &m.base, opDelete, id, func(ctx context.Context, c *call) result.DeleteResult {
		r, err := attempt(ctx, func(ctx context.Context) (result.DeleteResult, error) {
			return m.repo.Delete(ctx, id)
		})
		if err != nil {
			return m.reconcileDelete(ctx, c, err, m.existsProbe(id))
		}
		if r == nil {
			return result.RepositoryFailure{Cause: result.ErrNoOutcome}
		}
		if r.Kind() == result.KindSuccess {
			m.emit(ctx, audit.EventSkillDeleted, id, id)
		}
		return r
	}), nil
}

func (m *SkillManager) Exists(ctx context.Context, id string) (result.ExistsResult, error) {
	if id == "" {
		return nil, m.violation(ctx, opExists, "id is required")
	}

	return observe(ctx, &m.base, opExists, id, func(ctx context.Context, _ *call) result.ExistsResult {
		found, err := attempt(ctx, m.existsProbe(id))
		if err != nil {
			return result.RepositoryFailure{Cause: err}
		}
		return result.Success[bool]{Value: found}
	}), nil
}

func (m *SkillManager) GetAll(ctx context.Context) result.GetAllResult {
	return observe(ctx, &m.base, opGetAll, "", func(ctx context.Context, _ *call) result.GetAllResult {
		skills, err := attempt(ctx, m.repo.GetAll)
		if err != nil {
			return result.RepositoryFailure{Cause: err}
		}
		if skills == nil {
			skills = []models.Skill{}
		}
		return result.Success[[]models.Skill]{Value: skills}
	})
}

func (m *SkillManager) GetOne(ctx context.Context, id string) (result.GetOneResult, error) {
	if id == "" {
		return nil, m.violation(ctx, opGetOne, "id is required")
	}

	return observe(ctx, &m.base, opGetOne, id, func(ctx context.Context, _ *call) result.GetOneResult {
		r, err := attempt(ctx, func(ctx context.Context) (result.GetOneResult, error) {
			return m.repo.GetOne(ctx, id)
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
