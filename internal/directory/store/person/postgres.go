package person

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

// PostgresStore persists people in the people table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed person store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, p models.Person) (result.CreateResult, error) {
	_, err := s.db.ExecContext(ctx, `INSERT INTO people (name) VALUES ($1)`, p.Name)
	if err != nil {
		return nil, writeError("create person", err)
	}
	return result.Success[models.Person]{Value: p}, nil
}

func (s *PostgresStore) Update(ctx context.Context, oldName string, p models.Person) (result.UpdateResult, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE people SET name = $2 WHERE name = $1`, oldName, p.Name)
	if err != nil {
		return nil, writeError("update person", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update person: rows affected: %w", err)
	}
	if n == 0 {
		return result.NotFound{}, nil
	}
	return result.Success[models.Person]{Value: p}, nil
}

func (s *PostgresStore) Delete(ctx context.Context, name string) (result.DeleteResult, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM people WHERE name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("delete person: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("delete person: rows affected: %w", err)
	}
	if n == 0 {
		return result.NotFound{}, nil
	}
	return result.Deleted{}, nil
}

func (s *PostgresStore) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM people WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check person exists: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) GetAll(ctx context.Context) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM people ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	people := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.Name); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	return people, nil
}

func (s *PostgresStore) GetOne(ctx context.Context, name string) (result.GetOneResult, error) {
	var p models.Person
	err := s.db.QueryRowContext(ctx, `SELECT name FROM people WHERE name = $1`, name).Scan(&p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return result.NotFound{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find person: %w", err)
	}
	return result.Success[models.Person]{Value: p}, nil
}

func writeError(op string, err error) error {
	if postgres.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
