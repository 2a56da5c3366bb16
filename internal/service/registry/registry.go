package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sandevgo/debugtool/internal/core"
	"github.com/sandevgo/debugtool/pkg/log"
)

var ErrDuplicateHandler = errors.New("handler already registered")

// Info is a snapshot of a registered handler.
type Info struct {
	Name    string
	Enabled bool
	Usage   []core.Usage
}

type entry struct {
	handler core.Handler
	enabled atomic.Bool
}

// Registry holds command handlers in registration order. Registration happens
// at startup; enabled flags may change at any time from any goroutine.
type Registry struct {
	mu      sync.RWMutex
	entries []*entry
	byName  map[string]*entry
}

func New() *Registry {
	return &Registry{
		byName: make(map[string]*entry),
	}
}

func (r *Registry) Register(h core.Handler, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := h.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateHandler, name)
	}

	e := &entry{handler: h}
	e.enabled.Store(enabled)
	r.entries = append(r.entries, e)
	r.byName[name] = e
	return nil
}

func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]Info, 0, len(r.entries))
	for _, e := range r.entries {
		info := Info{
			Name:    e.handler.Name(),
			Enabled: e.enabled.Load(),
		}
		if doc, ok := e.handler.(core.Documented); ok {
			info.Usage = doc.Usage()
		}
		res = append(res, info)
	}
	return res
}

// SetEnabled toggles a handler by name. Unknown names are ignored; the return
// value only reports whether the name was found.
func (r *Registry) SetEnabled(name string, enabled bool) bool {
	r.mu.RLock()
	e, ok := r.byName[name]
	r.mu.RUnlock()

	if !ok {
		return false
	}
	e.enabled.Store(enabled)
	return true
}

func (r *Registry) SetAllEnabled(enabled bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		e.enabled.Store(enabled)
	}
}

// Dispatch offers the command to every enabled handler in registration order.
//
// Any success makes the aggregate a success and only success texts are
// returned. Failure texts are returned only when no handler succeeded.
func (r *Registry) Dispatch(ctx context.Context, command string) (core.Outcome, string) {
	r.mu.RLock()
	entries := make([]*entry, len(r.entries))
	copy(entries, r.entries)
	r.mu.RUnlock()

	logger := log.FromCtx(ctx)
	outcome := core.OutcomeNotFound
	var succeeded, failed []string

	for _, e := range entries {
		if !e.enabled.Load() {
			continue
		}

		res, text := invoke(ctx, e.handler, command)
		logger.Debug().
			Str("handler", e.handler.Name()).
			Str("outcome", res.String()).
			Msg("handler returned")

		switch res {
		case core.OutcomeSuccess:
			succeeded = append(succeeded, text)
			outcome = core.OutcomeSuccess
		case core.OutcomeFailed:
			failed = append(failed, text)
			if outcome != core.OutcomeSuccess {
				outcome = core.OutcomeFailed
			}
		}
	}

	switch outcome {
	case core.OutcomeSuccess:
		return outcome, strings.Join(succeeded, "\n")
	case core.OutcomeFailed:
		return outcome, strings.Join(failed, "\n")
	default:
		return core.OutcomeNotFound, ""
	}
}

func invoke(ctx context.Context, h core.Handler, command string) (res core.Outcome, text string) {
	defer func() {
		if p := recover(); p != nil {
			log.FromCtx(ctx).Error().
				Str("handler", h.Name()).
				Interface("panic", p).
				Msg("handler panicked")
			res = core.OutcomeFailed
			text = fmt.Sprintf("%s: handler panic: %v", h.Name(), p)
		}
	}()
	return h.Execute(ctx, command)
}
