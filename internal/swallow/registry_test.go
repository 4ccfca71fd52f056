package swallow

import (
	"errors"
	"testing"

	"github.com/1broseidon/tagwm/internal/registry"
)

func TestQueue_UpsertKeepsOneIntentPerOwner(t *testing.T) {
	r := NewRegistry(0)

	if err := r.Queue(1, registry.KindRegular, Filter{Class: "Zathura"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Queue(1, registry.KindRegular, Filter{Class: "mpv"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Len() != 1 {
		t.Fatalf("expected 1 intent, got %d", r.Len())
	}
	if got := r.Intents()[0].Filter.Class; got != "mpv" {
		t.Fatalf("expected updated class filter mpv, got %q", got)
	}
}

func TestQueue_RejectsHiddenOwner(t *testing.T) {
	r := NewRegistry(0)

	err := r.Queue(7, registry.KindSwallower, Filter{})
	if !errors.Is(err, ErrNestedSwallow) {
		t.Fatalf("expected ErrNestedSwallow, got %v", err)
	}
	if err := r.Queue(8, registry.KindNone, Filter{}); !errors.Is(err, ErrUnknownOwner) {
		t.Fatalf("expected ErrUnknownOwner, got %v", err)
	}
	if err := r.Queue(9, registry.KindSwallowee, Filter{}); err != nil {
		t.Fatalf("expected chain head to queue, got %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("expected only the chain head intent, got %d", r.Len())
	}
}

func TestMatch_MostRecentFirst(t *testing.T) {
	r := NewRegistry(0)
	r.Queue(1, registry.KindRegular, Filter{})
	r.Queue(2, registry.KindRegular, Filter{})

	in := r.Match(Properties{Class: "St", Instance: "st", Title: "vim"})
	if in == nil || in.Owner != 2 {
		t.Fatalf("expected most recent intent (owner 2), got %+v", in)
	}
}

func TestMatch_SubstringFilters(t *testing.T) {
	r := NewRegistry(0)
	r.Queue(1, registry.KindRegular, Filter{Class: "Zath", Title: "paper"})

	cases := []struct {
		name  string
		props Properties
		want  bool
	}{
		{name: "all match", props: Properties{Class: "Zathura", Instance: "zathura", Title: "paper.pdf"}, want: true},
		{name: "class mismatch", props: Properties{Class: "mpv", Instance: "gl", Title: "paper.pdf"}, want: false},
		{name: "title mismatch", props: Properties{Class: "Zathura", Instance: "zathura", Title: "notes.pdf"}, want: false},
		{name: "missing title is wildcard", props: Properties{Class: "Zathura", Instance: "zathura"}, want: true},
		{name: "missing class is wildcard", props: Properties{Title: "paper"}, want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Match(tc.props) != nil
			if got != tc.want {
				t.Fatalf("expected match=%v, got %v", tc.want, got)
			}
		})
	}
}

func TestUnqueue(t *testing.T) {
	r := NewRegistry(0)
	r.Queue(1, registry.KindRegular, Filter{Class: "a"})
	r.Queue(2, registry.KindRegular, Filter{Class: "b"})
	r.Queue(3, registry.KindRegular, Filter{Class: "c"})

	r.Unqueue(r.Match(Properties{Class: "b"}))
	if r.Pending(2) || r.Len() != 2 {
		t.Fatalf("expected owner 2 removed, intents=%+v", r.Intents())
	}

	if !r.UnqueueOwner(3) || r.UnqueueOwner(3) {
		t.Fatalf("expected UnqueueOwner to remove exactly once")
	}

	r.UnqueueAll()
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
}

func TestDecay(t *testing.T) {
	r := NewRegistry(2)
	r.Queue(1, registry.KindRegular, Filter{})

	if expired := r.Decay(); len(expired) != 0 {
		t.Fatalf("expected intent to survive first decay, expired %v", expired)
	}
	expired := r.Decay()
	if len(expired) != 1 || expired[0] != 1 {
		t.Fatalf("expected owner 1 to expire, got %v", expired)
	}
	if r.Len() != 0 {
		t.Fatalf("expected no intents left, got %d", r.Len())
	}

	off := NewRegistry(0)
	off.Queue(1, registry.KindRegular, Filter{})
	for i := 0; i < 10; i++ {
		off.Decay()
	}
	if off.Len() != 1 {
		t.Fatalf("expected decay disabled with 0")
	}
}
