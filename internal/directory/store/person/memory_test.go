package person

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"skillset/internal/directory/models"
	"skillset/pkg/platform/sentinel"
	"skillset/pkg/result"
)

type InMemorySuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemorySuite) seed(names ...string) {
	for _, n := range names {
		_, err := s.store.Create(s.ctx, models.Person{Name: n})
		s.Require().NoError(err)
	}
}

func (s *InMemorySuite) TestCreate() {
	s.Run("new person", func() {
		r, err := s.store.Create(s.ctx, models.Person{Name: "Joe"})
		s.Require().NoError(err)
		s.Equal(result.Success[models.Person]{Value: models.Person{Name: "Joe"}}, r)
	})

	s.Run("duplicate surfaces as conflict error", func() {
		_, err := s.store.Create(s.ctx, models.Person{Name: "Joe"})
		s.ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *InMemorySuite) TestUpdate() {
	s.seed("Joe", "Ann")

	s.Run("rename", func() {
		r, err := s.store.Update(s.ctx, "Joe", models.Person{Name: "Joseph"})
		s.Require().NoError(err)
		s.Equal(result.KindSuccess, r.Kind())

		found, _ := s.store.Exists(s.ctx, "Joe")
		s.False(found)
		found, _ = s.store.Exists(s.ctx, "Joseph")
		s.True(found)
	})

	s.Run("same name is a no-op success", func() {
		r, err := s.store.Update(s.ctx, "Ann", models.Person{Name: "Ann"})
		s.Require().NoError(err)
		s.Equal(result.KindSuccess, r.Kind())
	})

	s.Run("rename onto existing person", func() {
		_, err := s.store.Update(s.ctx, "Joseph", models.Person{Name: "Ann"})
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("missing person", func() {
		r, err := s.store.Update(s.ctx, "Nobody", models.Person{Name: "Somebody"})
		s.Require().NoError(err)
		s.Equal(result.NotFound{}, r)
	})
}

func (s *InMemorySuite) TestDeleteAndReads() {
	s.seed("Zoe", "Ann")

	people, err := s.store.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]models.Person{{Name: "Ann"}, {Name: "Zoe"}}, people)

	r, err := s.store.GetOne(s.ctx, "Ann")
	s.Require().NoError(err)
	s.Equal(result.Success[models.Person]{Value: models.Person{Name: "Ann"}}, r)

	d, err := s.store.Delete(s.ctx, "Ann")
	s.Require().NoError(err)
	s.Equal(result.Deleted{}, d)

	d, _ = s.store.Delete(s.ctx, "Ann")
	s.Equal(result.NotFound{}, d)

	r, _ = s.store.GetOne(s.ctx, "Ann")
	s.Equal(result.NotFound{}, r)
}
