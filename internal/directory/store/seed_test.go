package store_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillset/internal/directory/manager"
	"skillset/internal/directory/models"
	"skillset/internal/directory/store"
	"skillset/internal/directory/store/person"
	"skillset/internal/directory/store/skill"
	"skillset/pkg/result"
)

const seedYAML = `
people:
  - name: Ada Lovelace
  - name: " Grace"
skills:
  - id: go
    name: Go
  - id: dot-net
    name: .NET
`

func TestParseSeed(t *testing.T) {
	sf, err := store.ParseSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	want := &store.SeedFile{
		People: []models.Person{{Name: "Ada Lovelace"}, {Name: " Grace"}},
		Skills: []models.Skill{{ID: "go", Name: "Go"}, {ID: "dot-net", Name: ".NET"}},
	}
	if diff := cmp.Diff(want, sf); diff != "" {
		t.Fatalf("seed mismatch (-want +got):\n%s", diff)
	}

	t.Run("empty document", func(t *testing.T) {
		sf, err := store.ParseSeed(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, sf.People)
	})

	t.Run("unknown keys rejected", func(t *testing.T) {
		_, err := store.ParseSeed(strings.NewReader("teams: []\n"))
		assert.Error(t, err)
	})
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	sf, err := store.LoadSeedFile(path)
	require.NoError(t, err)
	assert.Len(t, sf.Skills, 2)

	_, err = store.LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)
	people, err := manager.NewPersonManager(person.NewInMemory())
	require.NoError(t, err)
	skills, err := manager.NewSkillManager(skill.NewInMemory())
	require.NoError(t, err)

	sf, err := store.ParseSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	report, err := sf.Apply(ctx, people, skills, logger)
	require.NoError(t, err)
	assert.Equal(t, store.SeedReport{Created: 3, Invalid: 1}, report)

	report, err = sf.Apply(ctx, people, skills, logger)
	require.NoError(t, err)
	assert.Equal(t, store.SeedReport{Skipped: 3, Invalid: 1}, report)
}

type failingSkills struct{}

func (failingSkills) Create(context.Context, *models.Skill) (result.CreateResult, error) {
	return result.RepositoryFailure{Cause: errors.New("disk full")}, nil
}

func TestApplyCollectsFailures(t *testing.T) {
	people, err := manager.NewPersonManager(person.NewInMemory())
	require.NoError(t, err)
	sf := &store.SeedFile{Skills: []models.Skill{{ID: "go", Name: "Go"}, {ID: "rust", Name: "Rust"}}}

	report, err := sf.Apply(context.Background(), people, failingSkills{}, slog.New(slog.DiscardHandler))
	assert.Equal(t, 2, report.Failed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `seed skill "rust": disk full`)
}
