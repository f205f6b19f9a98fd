package audit

import "context"

// ChannelSink feeds emitted events into a worker inbox so emitters never
// wait on sink latency.
type ChannelSink struct {
	inbox chan<- Event
}

// NewChannelSink builds a sink over the given inbox.
func NewChannelSink(inbox chan<- Event) *ChannelSink {
	return &ChannelSink{inbox: inbox}
}

// Emit enqueues the event, blocking only while the inbox is full.
func (c *ChannelSink) Emit(ctx context.Context, e Event) error {
	select {
	case c.inbox <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
