package audit

import "context"

// Sink receives emitted events. Publisher and the Kafka sink both satisfy it.
type Sink interface {
	Emit(ctx context.Context, e Event) error
}

// Fanout delivers each event to every configured sink. All sinks are
// attempted even when one fails; the first error is returned.
type Fanout struct {
	sinks []Sink
}

// NewFanout builds a fan-out over the given sinks.
func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

// Emit forwards the event to all sinks.
func (f *Fanout) Emit(ctx context.Context, e Event) error {
	var first error
	for _, s := range f.sinks {
		if err := s.Emit(ctx, e); err != nil && first == nil {
			first = err
		}
	}
	return first
}
