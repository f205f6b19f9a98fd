package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"fairmeter/pkg/platform/audit"
	"fairmeter/pkg/platform/audit/store/memory"
)

type PublisherSuite struct {
	suite.Suite
	store     *memory.Store
	publisher *audit.Publisher
}

func (s *PublisherSuite) SetupTest() {
	s.store = memory.New()
	s.publisher = audit.NewPublisher(s.store)
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) TestEmitStampsMissingTimestamp() {
	err := s.publisher.Emit(context.Background(), audit.Event{
		Subject: "10.1234/abc",
		Action:  audit.ActionAssessmentCreated,
		Outcome: "pass",
	})
	s.Require().NoError(err)

	events, err := s.publisher.Recent(context.Background(), 10)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.False(events[0].Timestamp.IsZero())
}

func (s *PublisherSuite) TestEmitKeepsExplicitTimestamp() {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := s.publisher.Emit(context.Background(), audit.Event{
		Timestamp: ts,
		Subject:   "10.1234/abc",
		Action:    audit.ActionAssessmentDeleted,
	})
	s.Require().NoError(err)

	events, err := s.publisher.Recent(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal(ts, events[0].Timestamp)
}

func (s *PublisherSuite) TestRecentReturnsNewestFirst() {
	ctx := context.Background()
	for _, subject := range []string{"a", "b", "c"} {
		s.Require().NoError(s.publisher.Emit(ctx, audit.Event{Subject: subject}))
	}

	events, err := s.publisher.Recent(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("c", events[0].Subject)
	s.Equal("b", events[1].Subject)
}

func (s *PublisherSuite) TestWorkerPersistsFromChannel() {
	inbox := make(chan audit.Event, 1)
	worker := audit.NewWorker(s.store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- audit.Event{Subject: "10.1/x", Action: audit.ActionAssessmentCreated}

	s.Eventually(func() bool {
		events, err := s.store.Recent(context.Background(), 1)
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	s.ErrorIs(<-done, context.Canceled)
}
