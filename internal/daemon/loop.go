package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/tagwm/internal/platform"
)

// EventSource yields display events. NextEvent blocks.
type EventSource interface {
	NextEvent() (platform.Event, error)
}

// Handler consumes events on the loop goroutine.
type Handler interface {
	Handle(ev platform.Event)
	// Running turns false once the handler asked to quit.
	Running() bool
}

// LoopConfig holds configuration for the event loop.
type LoopConfig struct {
	// Buffer is the number of events read ahead of the handler.
	Buffer int
	Logger *slog.Logger
	// Stale, when set, is asked on the handler goroutine before each event
	// is dispatched. Events it reports are dropped, even if they were read
	// ahead before the handler decided they are stale.
	Stale func(platform.Event) bool
}

// Loop feeds events from a reader goroutine to a single handler goroutine.
// Only the handler goroutine touches window manager state.
type Loop struct {
	source  EventSource
	handler Handler
	buffer  int
	logger  *slog.Logger
	stale   func(platform.Event) bool
}

// NewLoop creates a loop reading from source and dispatching to handler.
func NewLoop(cfg LoopConfig, source EventSource, handler Handler) *Loop {
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = 64
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Loop{
		source:  source,
		handler: handler,
		buffer:  buffer,
		logger:  logger,
		stale:   cfg.Stale,
	}
}

// Run dispatches events until the handler stops running, the context is
// cancelled or the source fails. A closed display and a cancelled context
// are clean exits and return nil.
func (l *Loop) Run(ctx context.Context) error {
	events := make(chan platform.Event, l.buffer)
	errs := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev, err := l.source.NextEvent()
			if err != nil {
				errs <- err
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	l.logger.Info("event loop started")

	for l.handler.Running() {
		select {
		case <-ctx.Done():
			l.logger.Info("event loop stopped", "reason", context.Cause(ctx))
			return nil
		case err := <-errs:
			if errors.Is(err, platform.ErrClosed) {
				l.logger.Info("display connection closed")
				return nil
			}
			return fmt.Errorf("event loop: %w", err)
		case ev := <-events:
			l.dispatch(ev)
		}
	}

	l.logger.Info("event loop stopped", "reason", "quit")
	return nil
}

func (l *Loop) dispatch(ev platform.Event) {
	if l.stale != nil && l.stale(ev) {
		return
	}
	// Recover from panics to keep the session alive.
	defer func() {
		if err := recover(); err != nil {
			l.logger.Error("event handler panic recovered", "event", fmt.Sprintf("%T", ev), "error", err)
		}
	}()
	l.handler.Handle(ev)
}
