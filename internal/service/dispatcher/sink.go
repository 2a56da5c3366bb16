package dispatcher

import (
	"context"

	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/internal/service/queue"
)

type SinkFunc func(ev core.Event)

func (f SinkFunc) Emit(ev core.Event) {
	f(ev)
}

type fanOut []core.ResultSink

// FanOut delivers every event to each sink in order, synchronously.
func FanOut(sinks ...core.ResultSink) core.ResultSink {
	res := make(fanOut, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			res = append(res, s)
		}
	}
	return res
}

func (f fanOut) Emit(ev core.Event) {
	for _, s := range f {
		s.Emit(ev)
	}
}

// EventStream is an unbounded ordered channel from the dispatcher to a
// presentation layer. Emit never blocks the dispatcher.
type EventStream struct {
	q *queue.Queue[core.Event]
}

func NewEventStream() *EventStream {
	return &EventStream{q: queue.New[core.Event]()}
}

func (s *EventStream) Emit(ev core.Event) {
	s.q.Push(ev)
}

// Next blocks until an event is available or ctx is done.
func (s *EventStream) Next(ctx context.Context) (core.Event, error) {
	ev, err := s.q.Pop(ctx)
	if err != nil {
		return core.Event{}, err
	}
	s.q.Done()
	return ev, nil
}

func (s *EventStream) Len() int {
	return s.q.Len()
}
