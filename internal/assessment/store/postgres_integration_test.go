//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"fairmeter/internal/assessment/models"
	"fairmeter/internal/assessment/store"
	"fairmeter/internal/indicator"
	"fairmeter/pkg/domain"
	"fairmeter/pkg/platform/sentinel"
	"fairmeter/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	store *store.Postgres
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	pg := containers.NewPostgresContainer(s.T())
	st, err := store.OpenPostgres(s.ctx, pg.DSN)
	s.Require().NoError(err)
	s.store = st
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func newAssessment(subject string) *models.Assessment {
	return &models.Assessment{
		ID:       domain.NewAssessmentID(),
		Subject:  subject,
		Endpoint: "http://repo.example.org/oai",
		Results: []indicator.Result{
			{Code: "RDA-F1-01M", Score: 100, Message: "ok"},
			{Code: "RDA-F2-01M", Score: 50, Message: "missing terms"},
		},
		Summary:   models.Summary{Score: 75, Status: indicator.StatusPass, Color: indicator.ColorAmber},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	a := newAssessment("10.1234/abc")
	s.Require().NoError(s.store.Save(s.ctx, a))

	found, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(a.Subject, found.Subject)
	s.Equal(a.Results, found.Results)
	s.Equal(a.Summary, found.Summary)
	s.WithinDuration(a.CreatedAt, found.CreatedAt, time.Millisecond)
}

func (s *PostgresStoreSuite) TestSaveIsIdempotentPerID() {
	a := newAssessment("10.1234/abc")
	s.Require().NoError(s.store.Save(s.ctx, a))

	a.Summary.Score = 80
	s.Require().NoError(s.store.Save(s.ctx, a))

	found, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(80, found.Summary.Score)
}

func (s *PostgresStoreSuite) TestListAndDelete() {
	a := newAssessment("10.1234/list-me")
	s.Require().NoError(s.store.Save(s.ctx, a))

	all, err := s.store.List(s.ctx, 100, 0)
	s.Require().NoError(err)
	s.NotEmpty(all)

	s.Require().NoError(s.store.Delete(s.ctx, a.ID))
	_, err = s.store.FindByID(s.ctx, a.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(s.ctx, a.ID), sentinel.ErrNotFound)
}
