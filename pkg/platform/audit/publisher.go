package audit

import (
	"context"
	"time"
)

// Publisher appends events to a store. Tests swap the store for a memory
// sink; production wiring may add a Kafka sink behind the same interface.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// Emit records one event, stamping the time when the caller left it zero.
func (p *Publisher) Emit(ctx context.Context, e Event) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	return p.store.Append(ctx, e)
}

// Recent lists the newest events, most recent first.
func (p *Publisher) Recent(ctx context.Context, limit int) ([]Event, error) {
	return p.store.Recent(ctx, limit)
}
