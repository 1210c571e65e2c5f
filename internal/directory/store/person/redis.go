package person

import (
	"context"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"skillset/internal/directory/models"
	"skillset/pkg/platform/sentinel"
	"skillset/pkg/result"
)

const peopleKey = "skillset:people"

// renameScript moves ARGV[1] to ARGV[2] within the set.
// Returns 0 when ARGV[1] is absent, -1 when ARGV[2] is taken, 1 on success.
var renameScript = redis.NewScript(`
if redis.call('SISMEMBER', KEYS[1], ARGV[1]) == 0 then
	return 0
end
if ARGV[1] == ARGV[2] then
	return 1
end
if redis.call('SISMEMBER', KEYS[1], ARGV[2]) == 1 then
	return -1
end
redis.call('SREM', KEYS[1], ARGV[1])
redis.call('SADD', KEYS[1], ARGV[2])
return 1
`)

// RedisStore keeps people as members of a single Redis set.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, p models.Person) (result.CreateResult, error) {
	added, err := s.client.SAdd(ctx, peopleKey, p.Name).Result()
	if err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	if added == 0 {
		return nil, fmt.Errorf("create person %q: %w", p.Name, sentinel.ErrConflict)
	}
	return result.Success[models.Person]{Value: p}, nil
}

func (s *RedisStore) Update(ctx context.Context, oldName string, p models.Person) (result.UpdateResult, error) {
	code, err := renameScript.Run(ctx, s.client, []string{peopleKey}, oldName, p.Name).Int()
	if err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}
	switch code {
	case 0:
		return result.NotFound{}, nil
	case -1:
		return nil, fmt.Errorf("rename person %q to %q: %w", oldName, p.Name, sentinel.ErrConflict)
	}
	return result.Success[models.Person]{Value: p}, nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) (result.DeleteResult, error) {
	removed, err := s.client.SRem(ctx, peopleKey, name).Result()
	if err != nil {
		return nil, fmt.Errorf("delete person: %w", err)
	}
	if removed == 0 {
		return result.NotFound{}, nil
	}
	return result.Deleted{}, nil
}

func (s *RedisStore) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, peopleKey, name).Result()
	if err != nil {
		return false, fmt.Errorf("check person exists: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) GetAll(ctx context.Context) ([]models.Person, error) {
	names, err := s.client.SMembers(ctx, peopleKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	slices.Sort(names)
	people := make([]models.Person, 0, len(names))
	for _, n := range names {
		people = append(people, models.Person{Name: n})
	}
	return people, nil
}

func (s *RedisStore) GetOne(ctx context.Context, name string) (result.GetOneResult, error) {
	ok, err := s.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return result.NotFound{}, nil
	}
	return result.Success[models.Person]{Value: models.Person{Name: name}}, nil
}
