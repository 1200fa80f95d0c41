package observe

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
)

// Emit is a shorthand used by components holding a possibly nil observer.
func Emit(ctx context.Context, obs contractx.Observer, level zerolog.Level, name string, fields map[string]any) {
	if obs == nil {
		return
	}
	obs.Observe(ctx, contractx.Event{Name: name, Level: level, Fields: fields})
}

// Zerolog writes every event as a single log entry.
type Zerolog struct {
	logger zerolog.Logger
}

func NewZerolog(logger zerolog.Logger) *Zerolog {
	return &Zerolog{logger: logger}
}

func (z *Zerolog) Observe(_ context.Context, evt contractx.Event) {
	entry := z.logger.WithLevel(evt.Level)
	if entry == nil {
		return
	}

	keys := make([]string, 0, len(evt.Fields))
	for k := range evt.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		entry = entry.Interface(k, evt.Fields[k])
	}
	entry.Str("event", evt.Name).Send()
}

type Nop struct{}

func (Nop) Observe(context.Context, contractx.Event) {}

// Recorder keeps events in memory. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []contractx.Event
}

func (r *Recorder) Observe(_ context.Context, evt contractx.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *Recorder) Events() []contractx.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]contractx.Event(nil), r.events...)
}

// Named returns recorded events with the given name in emission order.
func (r *Recorder) Named(name string) []contractx.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]contractx.Event, 0, len(r.events))
	for _, evt := range r.events {
		if evt.Name == name {
			out = append(out, evt)
		}
	}
	return out
}
