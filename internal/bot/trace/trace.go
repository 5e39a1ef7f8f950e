// Package trace provides the structured decision sink injected into the
// planning components. Tests assert on recorded events instead of parsing
// log output.
package trace

import (
	"sync"

	"go.uber.org/zap"
)

// Event is one recorded decision with its supporting fields.
type Event struct {
	Name   string
	Fields []zap.Field
}

// Tracer receives decision events from the goal manager, planner and
// strategies. Implementations must be safe for use from a single bot's
// turn loop; they are not required to be goroutine safe across bots.
type Tracer interface {
	Event(name string, fields ...zap.Field)
}

type zapTracer struct {
	log *zap.Logger
}

// NewZap returns a Tracer that forwards events to a zap logger at debug
// level. A nil logger yields a no-op tracer.
func NewZap(log *zap.Logger) Tracer {
	if log == nil {
		return Nop()
	}
	return &zapTracer{log: log}
}

func (t *zapTracer) Event(name string, fields ...zap.Field) {
	t.log.Debug(name, fields...)
}

type nopTracer struct{}

// Nop returns a Tracer that discards all events.
func Nop() Tracer {
	return nopTracer{}
}

func (nopTracer) Event(string, ...zap.Field) {}

// Recorder is a Tracer that keeps events in memory for test assertions.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder returns an empty in-memory tracer.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Event appends the event to the recorder.
func (r *Recorder) Event(name string, fields ...zap.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Name: name, Fields: fields})
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Seen reports whether an event with the given name was recorded.
func (r *Recorder) Seen(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.Name == name {
			return true
		}
	}
	return false
}
