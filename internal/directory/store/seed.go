// Package store holds what is shared by the directory store backends: the seed
// file format and its loader.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"skillset/internal/directory/models"
	"skillset/pkg/result"
)

// SeedFile is the YAML document accepted by SKILLSET_SEED_FILE and skillctl seed.
//
//	people:
//	  - name: Ada Lovelace
//	skills:
//	  - id: go
//	    name: Go
type SeedFile struct {
	People []models.Person `yaml:"people"`
	Skills []models.Skill  `yaml:"skills"`
}

// SeedReport counts seed outcomes. Existing records count as skipped so reseeding
// is idempotent.
type SeedReport struct {
	Created int
	Skipped int
	Invalid int
	Failed  int
}

type PersonCreator interface {
	Create(ctx context.Context, person *models.Person) (result.CreateResult, error)
}

type SkillCreator interface {
	Create(ctx context.Context, skill *models.Skill) (result.CreateResult, error)
}

func LoadSeedFile(path string) (*SeedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return ParseSeed(f)
}

// ParseSeed decodes a seed document, rejecting unknown keys.
func ParseSeed(r io.Reader) (*SeedFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sf SeedFile
	if err := dec.Decode(&sf); err != nil {
		if errors.Is(err, io.EOF) {
			return &sf, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &sf, nil
}

// Apply creates every record through the managers, so seeded data passes the same
// validation as API writes. Repository failures are collected and returned
// together after all records were attempted.
func (sf *SeedFile) Apply(ctx context.Context, people PersonCreator, skills SkillCreator, logger *slog.Logger) (SeedReport, error) {
	var report SeedReport
	var errs []error

	record := func(entity, key string, r result.CreateResult, err error) {
		if err != nil {
			report.Failed++
			errs = append(errs, fmt.Errorf("seed %s %q: %w", entity, key, err))
			return
		}
		switch v := r.(type) {
		case result.Success[models.Person], result.Success[models.Skill]:
			report.Created++
		case result.Conflict:
			report.Skipped++
			logger.DebugContext(ctx, "seed record already present", "entity", entity, "key", key, "field", v.Field)
		case result.ValidationFailure:
			report.Invalid++
			logger.WarnContext(ctx, "seed record rejected", "entity", entity, "key", key, "error", v.Err.Error())
		case result.RepositoryFailure:
			report.Failed++
			errs = append(errs, fmt.Errorf("seed %s %q: %w", entity, key, v.Cause))
		default:
			panic(result.Unexpected(r))
		}
	}

	for i := range sf.People {
		p := sf.People[i]
		r, err := people.Create(ctx, &p)
		record("person", p.Name, r, err)
	}
	for i := range sf.Skills {
		s := sf.Skills[i]
		r, err := skills.Create(ctx, &s)
		record("skill", s.ID, r, err)
	}

	logger.InfoContext(ctx, "seed applied",
		"created", report.Created,
		"skipped", report.Skipped,
		"invalid", report.Invalid,
		"failed", report.Failed,
	)
	return report, errors.Join(errs...)
}
