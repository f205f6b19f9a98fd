package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairmeter/pkg/platform/audit"
	"fairmeter/pkg/platform/audit/store/memory"
)

type failingSink struct{ err error }

func (f failingSink) Emit(context.Context, audit.Event) error { return f.err }

func TestFanoutDeliversToAllSinks(t *testing.T) {
	first := memory.New()
	second := memory.New()
	fanout := audit.NewFanout(audit.NewPublisher(first), audit.NewPublisher(second))

	err := fanout.Emit(context.Background(), audit.Event{
		Subject: "10.1234/abc",
		Action:  audit.ActionAssessmentCreated,
		Outcome: "success",
	})
	require.NoError(t, err)

	for _, store := range []*memory.Store{first, second} {
		events, err := store.Recent(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "10.1234/abc", events[0].Subject)
	}
}

func TestFanoutKeepsGoingPastFailures(t *testing.T) {
	sinkErr := errors.New("broker unreachable")
	store := memory.New()
	fanout := audit.NewFanout(failingSink{err: sinkErr}, audit.NewPublisher(store))

	err := fanout.Emit(context.Background(), audit.Event{
		Subject: "10.1234/abc",
		Action:  audit.ActionAssessmentDeleted,
		Outcome: "success",
	})
	assert.ErrorIs(t, err, sinkErr)

	events, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, events, 1, "healthy sinks still receive the event")
}
