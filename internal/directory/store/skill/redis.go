package skill

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"skillset/internal/directory/models"
	"skillset/pkg/platform/sentinel"
	"skillset/pkg/result"
)

// Three hashes: id -> name, id -> folded name, folded name -> id.
// Folding happens in Go so Lua never has to lowercase non-ASCII text.
const (
	skillsKey    = "skillset:skills"
	foldedKey    = "skillset:skill_folded"
	nameIndexKey = "skillset:skill_names"
)

var keys = []string{skillsKey, foldedKey, nameIndexKey}

// createScript returns -1 when the id exists, -2 when the name is taken, 1 on success.
var createScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 1 then
	return -1
end
if redis.call('HEXISTS', KEYS[3], ARGV[3]) == 1 then
	return -2
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
redis.call('HSET', KEYS[2], ARGV[1], ARGV[3])
redis.call('HSET', KEYS[3], ARGV[3], ARGV[1])
return 1
`)

// updateScript returns 0 when the id is absent, -2 when another skill owns the name, 1 on success.
var updateScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 0 then
	return 0
end
local owner = redis.call('HGET', KEYS[3], ARGV[3])
if owner and owner ~= ARGV[1] then
	return -2
end
local old = redis.call('HGET', KEYS[2], ARGV[1])
if old then
	redis.call('HDEL', KEYS[3], old)
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
redis.call('HSET', KEYS[2], ARGV[1], ARGV[3])
redis.call('HSET', KEYS[3], ARGV[3], ARGV[1])
return 1
`)

// deleteScript returns 0 when the id is absent, 1 on success.
var deleteScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 0 then
	return 0
end
local old = redis.call('HGET', KEYS[2], ARGV[1])
if old then
	redis.call('HDEL', KEYS[3], old)
end
redis.call('HDEL', KEYS[1], ARGV[1])
redis.call('HDEL', KEYS[2], ARGV[1])
return 1
`)

// RedisStore keeps skills in Redis hashes, updated atomically by Lua scripts.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, sk models.Skill) (result.CreateResult, error) {
	code, err := createScript.Run(ctx, s.client, keys, sk.ID, sk.Name, models.NameKey(sk.Name)).Int()
	if err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}
	switch code {
	case -1:
		return nil, fmt.Errorf("create skill %q: %w", sk.ID, sentinel.ErrConflict)
	case -2:
		return nil, fmt.Errorf("create skill %q: name %q: %w", sk.ID, sk.Name, sentinel.ErrConflict)
	}
	return result.Success[models.Skill]{Value: sk}, nil
}

func (s *RedisStore) Update(ctx context.Context, id string, sk models.Skill) (result.UpdateResult, error) {
	code, err := updateScript.Run(ctx, s.client, keys, id, sk.Name, models.NameKey(sk.Name)).Int()
	if err != nil {
		return nil, fmt.Errorf("update skill: %w", err)
	}
	switch code {
	case 0:
		return result.NotFound{}, nil
	case -2:
		return nil, fmt.Errorf("rename skill %q to %q: %w", id, sk.Name, sentinel.ErrConflict)
	}
	sk.ID = id
	return result.Success[models.Skill]{Value: sk}, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) (result.DeleteResult, error) {
	code, err := deleteScript.Run(ctx, s.client, keys, id).Int()
	if err != nil {
		return nil, fmt.Errorf("delete skill: %w", err)
	}
	if code == 0 {
		return result.NotFound{}, nil
	}
	return result.Deleted{}, nil
}

func (s *RedisStore) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.HExists(ctx, skillsKey, id).Result()
	if err != nil {
		return false, fmt.Errorf("check skill exists: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	ok, err := s.client.HExists(ctx, nameIndexKey, models.NameKey(name)).Result()
	if err != nil {
		return false, fmt.Errorf("check skill name exists: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) GetAll(ctx context.Context) ([]models.Skill, error) {
	all, err := s.client.HGetAll(ctx, skillsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	skills := make([]models.Skill, 0, len(all))
	for id, name := range all {
		skills = append(skills, models.Skill{ID: id, Name: name})
	}
	slices.SortFunc(skills, func(a, b models.Skill) int {
		return strings.Compare(a.ID, b.ID)
	})
	return skills, nil
}

func (s *RedisStore) GetOne(ctx context.Context, id string) (result.GetOneResult, error) {
	name, err := s.client.HGet(ctx, skillsKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return result.NotFound{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find skill: %w", err)
	}
	return result.Success[models.Skill]{Value: models.Skill{ID: id, Name: name}}, nil
}
