package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"fairmeter/internal/assessment/models"
	"fairmeter/internal/indicator"
	"fairmeter/pkg/domain"
	"fairmeter/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Memory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) newAssessment(subject string, createdAt time.Time) *models.Assessment {
	return &models.Assessment{
		ID:       domain.NewAssessmentID(),
		Subject:  subject,
		Endpoint: "http://repo.example.org/oai",
		Results: []indicator.Result{
			{Code: "RDA-F1-01M", Score: 100, Message: "ok"},
		},
		Summary:   models.Summary{Score: 100, Status: indicator.StatusPass, Color: indicator.ColorGreen},
		CreatedAt: createdAt,
	}
}

func (s *MemoryStoreSuite) TestSaveAndFind() {
	a := s.newAssessment("10.1234/abc", time.Now())
	s.Require().NoError(s.store.Save(s.ctx, a))

	found, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(a.Subject, found.Subject)
	s.Equal(a.Summary.Score, found.Summary.Score)

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, domain.NewAssessmentID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestSavedCopyIsIsolated() {
	a := s.newAssessment("10.1234/abc", time.Now())
	s.Require().NoError(s.store.Save(s.ctx, a))

	a.Subject = "mutated"
	found, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal("10.1234/abc", found.Subject)
}

func (s *MemoryStoreSuite) TestListOrdersNewestFirst() {
	base := time.Now()
	older := s.newAssessment("10.1/old", base.Add(-time.Hour))
	newer := s.newAssessment("10.1/new", base)
	s.Require().NoError(s.store.Save(s.ctx, older))
	s.Require().NoError(s.store.Save(s.ctx, newer))

	all, err := s.store.List(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("10.1/new", all[0].Subject)

	s.Run("limit and offset page through", func() {
		page, err := s.store.List(s.ctx, 1, 1)
		s.Require().NoError(err)
		s.Require().Len(page, 1)
		s.Equal("10.1/old", page[0].Subject)
	})

	s.Run("offset past the end is empty", func() {
		page, err := s.store.List(s.ctx, 10, 10)
		s.Require().NoError(err)
		s.Empty(page)
	})
}

func (s *MemoryStoreSuite) TestDelete() {
	a := s.newAssessment("10.1234/abc", time.Now())
	s.Require().NoError(s.store.Save(s.ctx, a))
	s.Require().NoError(s.store.Delete(s.ctx, a.ID))

	_, err := s.store.FindByID(s.ctx, a.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(s.ctx, a.ID), sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestOpenSelectsDriver() {
	st, err := Open(s.ctx, "", "")
	s.Require().NoError(err)
	s.IsType(&Memory{}, st)

	_, err = Open(s.ctx, "bogus", "")
	s.Error(err)
}
