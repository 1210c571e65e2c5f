// Package directory assembles the person and skill managers over a configured
// storage backend.
package directory

import (
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"

	"skillset/internal/directory/manager"
	"skillset/internal/directory/store/person"
	"skillset/internal/directory/store/skill"
	"skillset/internal/platform/config"
)

// Stores pairs the repositories of one backend.
type Stores struct {
	People manager.PersonRepository
	Skills manager.SkillRepository
}

// Backends carries the connections a backend may need. Only the one matching the
// selected storage has to be set.
type Backends struct {
	DB    *sql.DB
	Redis *redis.Client
}

func NewStores(kind config.StorageBackend, b Backends) (Stores, error) {
	switch kind {
	case config.StorageMemory, "":
		return Stores{People: person.NewInMemory(), Skills: skill.NewInMemory()}, nil
	case config.StoragePostgres:
		if b.DB == nil {
			return Stores{}, fmt.Errorf("postgres storage selected without a database handle")
		}
		return Stores{People: person.NewPostgres(b.DB), Skills: skill.NewPostgres(b.DB)}, nil
	case config.StorageRedis:
		if b.Redis == nil {
			return Stores{}, fmt.Errorf("redis storage selected without a redis client")
		}
		return Stores{People: person.NewRedis(b.Redis), Skills: skill.NewRedis(b.Redis)}, nil
	}
	return Stores{}, fmt.Errorf("unknown storage backend %q", kind)
}

// Directory holds both managers; they share the options they were built with.
type Directory struct {
	People *manager.PersonManager
	Skills *manager.SkillManager
}

func New(stores Stores, opts ...manager.Option) (*Directory, error) {
	people, err := manager.NewPersonManager(stores.People, opts...)
	if err != nil {
		return nil, err
	}
	skills, err := manager.NewSkillManager(stores.Skills, opts...)
	if err != nil {
		return nil, err
	}
	return &Directory{People: people, Skills: skills}, nil
}
