//go:build integration

package person_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"skillset/internal/directory/manager"
	"skillset/internal/directory/models"
	"skillset/internal/directory/store/person"
	"skillset/pkg/platform/sentinel"
	"skillset/pkg/result"
	"skillset/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *person.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = person.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "people"))
}

func (s *PostgresStoreSuite) TestCRUD() {
	ctx := context.Background()

	_, err := s.store.Create(ctx, models.Person{Name: "Joe"})
	s.Require().NoError(err)
	_, err = s.store.Create(ctx, models.Person{Name: "Ann"})
	s.Require().NoError(err)

	_, err = s.store.Create(ctx, models.Person{Name: "Joe"})
	s.ErrorIs(err, sentinel.ErrConflict)

	r, err := s.store.Update(ctx, "Joe", models.Person{Name: "Joseph"})
	s.Require().NoError(err)
	s.Equal(result.Success[models.Person]{Value: models.Person{Name: "Joseph"}}, r)

	_, err = s.store.Update(ctx, "Joseph", models.Person{Name: "Ann"})
	s.ErrorIs(err, sentinel.ErrConflict)

	r, err = s.store.Update(ctx, "Nobody", models.Person{Name: "Somebody"})
	s.Require().NoError(err)
	s.Equal(result.NotFound{}, r)

	all, err := s.store.GetAll(ctx)
	s.Require().NoError(err)
	s.Equal([]models.Person{{Name: "Ann"}, {Name: "Joseph"}}, all)

	one, err := s.store.GetOne(ctx, "Nobody")
	s.Require().NoError(err)
	s.Equal(result.NotFound{}, one)

	d, err := s.store.Delete(ctx, "Ann")
	s.Require().NoError(err)
	s.Equal(result.Deleted{}, d)

	d, err = s.store.Delete(ctx, "Ann")
	s.Require().NoError(err)
	s.Equal(result.NotFound{}, d)
}

// TestConcurrentCreateReconciles drives the manager against the real table: exactly
// one create wins and every loser is reconciled to a Conflict on name.
func (s *PostgresStoreSuite) TestConcurrentCreateReconciles() {
	ctx := context.Background()
	mgr, err := manager.NewPersonManager(s.store)
	s.Require().NoError(err)

	const goroutines = 20
	var wg sync.WaitGroup
	var created, conflicts atomic.Int32
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := mgr.Create(ctx, &models.Person{Name: "Race"})
			if err != nil {
				return
			}
			switch r.(type) {
			case result.Success[models.Person]:
				created.Add(1)
			case result.Conflict:
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), created.Load())
	s.Equal(int32(goroutines-1), conflicts.Load())
}
