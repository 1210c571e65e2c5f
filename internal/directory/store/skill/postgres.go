package skill

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skillset/internal/directory/models"
	"skillset/internal/platform/postgres"
	"skillset/pkg/platform/sentinel"
	"skillset/pkg/result"
)

// PostgresStore persists skills. Name uniqueness is enforced by a unique index
// on name_key, which holds models.NameKey(name).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, sk models.Skill) (result.CreateResult, error) {
	_, err := s.db.ExecContext(ctx, `INSERT INTO skills (id, name, name_key) VALUES ($1, $2, $3)`,
		sk.ID, sk.Name, models.NameKey(sk.Name))
	if err != nil {
		return nil, writeError("create skill", err)
	}
	return result.Success[models.Skill]{Value: sk}, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, sk models.Skill) (result.UpdateResult, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE skills SET name = $2, name_key = $3 WHERE id = $1`,
		id, sk.Name, models.NameKey(sk.Name))
	if err != nil {
		return nil, writeError("update skill", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update skill: rows affected: %w", err)
	}
	if n == 0 {
		return result.NotFound{}, nil
	}
	sk.ID = id
	return result.Success[models.Skill]{Value: sk}, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) (result.DeleteResult, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("delete skill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("delete skill: rows affected: %w", err)
	}
	if n == 0 {
		return result.NotFound{}, nil
	}
	return result.Deleted{}, nil
}

func (s *PostgresStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM skills WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check skill exists: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM skills WHERE name_key = $1)`, models.NameKey(name)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check skill name exists: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) GetAll(ctx context.Context) ([]models.Skill, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM skills ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		var sk models.Skill
		if err := rows.Scan(&sk.ID, &sk.Name); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, sk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skills: %w", err)
	}
	return skills, nil
}

func (s *PostgresStore) GetOne(ctx context.Context, id string) (result.GetOneResult, error) {
	var sk models.Skill
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM skills WHERE id = $1`, id).Scan(&sk.ID, &sk.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return result.NotFound{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find skill: %w", err)
	}
	return result.Success[models.Skill]{Value: sk}, nil
}

func writeError(op string, err error) error {
	if postgres.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
