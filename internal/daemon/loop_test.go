package daemon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/1broseidon/tagwm/internal/platform"
)

type chanSource struct {
	events chan platform.Event
	err    error
}

func (s *chanSource) NextEvent() (platform.Event, error) {
	ev, ok := <-s.events
	if !ok {
		return nil, s.err
	}
	return ev, nil
}

type recordingHandler struct {
	seen    []platform.Event
	quitOn  platform.WindowID
	running bool
	panicOn platform.WindowID
}

func (h *recordingHandler) Handle(ev platform.Event) {
	h.seen = append(h.seen, ev)
	if m, ok := ev.(platform.MapRequest); ok {
		if m.Window == h.panicOn {
			panic("boom")
		}
		if m.Window == h.quitOn {
			h.running = false
		}
	}
}

func (h *recordingHandler) Running() bool { return h.running }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoop_StopsWhenHandlerQuits(t *testing.T) {
	src := &chanSource{events: make(chan platform.Event, 4)}
	src.events <- platform.MapRequest{Window: 1}
	src.events <- platform.MapRequest{Window: 2}
	h := &recordingHandler{running: true, quitOn: 2}

	loop := NewLoop(LoopConfig{Logger: quietLogger()}, src, h)
	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.seen) != 2 {
		t.Fatalf("expected 2 events, got %d", len(h.seen))
	}
}

func TestLoop_ClosedDisplayIsCleanExit(t *testing.T) {
	src := &chanSource{events: make(chan platform.Event), err: platform.ErrClosed}
	close(src.events)
	h := &recordingHandler{running: true}

	if err := NewLoop(LoopConfig{Logger: quietLogger()}, src, h).Run(context.Background()); err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
}

func TestLoop_SourceErrorIsReturned(t *testing.T) {
	boom := errors.New("bad request")
	src := &chanSource{events: make(chan platform.Event), err: boom}
	close(src.events)
	h := &recordingHandler{running: true}

	err := NewLoop(LoopConfig{Logger: quietLogger()}, src, h).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestLoop_ContextCancel(t *testing.T) {
	src := &chanSource{events: make(chan platform.Event)}
	h := &recordingHandler{running: true}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- NewLoop(LoopConfig{Logger: quietLogger()}, src, h).Run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("loop did not stop after cancel")
	}
}

func TestLoop_RecoversHandlerPanic(t *testing.T) {
	src := &chanSource{events: make(chan platform.Event, 4)}
	src.events <- platform.MapRequest{Window: 7}
	src.events <- platform.MapRequest{Window: 8}
	h := &recordingHandler{running: true, panicOn: 7, quitOn: 8}

	if err := NewLoop(LoopConfig{Logger: quietLogger()}, src, h).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.seen) != 2 {
		t.Fatalf("expected loop to continue after panic, saw %d events", len(h.seen))
	}
}

// restackingHandler discards crossings through seq when it sees a map, the
// way a restack does.
type restackingHandler struct {
	recordingHandler
	filter *platform.EnterFilter
	seq    uint16
}

func (h *restackingHandler) Handle(ev platform.Event) {
	h.recordingHandler.Handle(ev)
	if m, ok := ev.(platform.MapRequest); ok && m.Window == 1 {
		h.filter.DiscardThrough(h.seq)
	}
}

func TestLoop_DropsStaleEventsReadAhead(t *testing.T) {
	src := &chanSource{events: make(chan platform.Event, 8)}
	src.events <- platform.MapRequest{Window: 1}
	src.events <- platform.EnterNotify{Window: 10, Normal: true, Sequence: 3}
	src.events <- platform.EnterNotify{Window: 11, Normal: true, Sequence: 5}
	src.events <- platform.EnterNotify{Window: 12, Normal: true, Sequence: 9}
	src.events <- platform.MapRequest{Window: 2}

	filter := &platform.EnterFilter{}
	h := &restackingHandler{
		recordingHandler: recordingHandler{running: true, quitOn: 2},
		filter:           filter,
		seq:              5,
	}
	loop := NewLoop(LoopConfig{Logger: quietLogger(), Stale: filter.Stale}, src, h)
	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var entered []platform.WindowID
	for _, ev := range h.seen {
		if e, ok := ev.(platform.EnterNotify); ok {
			entered = append(entered, e.Window)
		}
	}
	if len(entered) != 1 || entered[0] != 12 {
		t.Fatalf("expected only the crossing after the restack, got %v", entered)
	}
	if len(h.seen) != 3 {
		t.Fatalf("expected 3 dispatched events, got %d", len(h.seen))
	}
}
