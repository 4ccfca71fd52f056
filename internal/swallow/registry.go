package swallow

import (
	"errors"
	"strings"

	"github.com/1broseidon/tagwm/internal/registry"
)

var (
	// ErrNestedSwallow rejects intents owned by a hidden chain member.
	ErrNestedSwallow = errors.New("swallow: owner is hidden inside a swallow chain")
	// ErrUnknownOwner rejects intents for windows that are not managed.
	ErrUnknownOwner = errors.New("swallow: owner is not a managed client")
)

// Filter selects a future window by substring. Empty fields match anything.
type Filter struct {
	Class    string
	Instance string
	Title    string
}

// Properties are the identifying strings of a newly mapped window. Empty
// fields are treated as absent and match every filter.
type Properties struct {
	Class    string
	Instance string
	Title    string
}

func (f Filter) matches(p Properties) bool {
	return (p.Class == "" || strings.Contains(p.Class, f.Class)) &&
		(p.Instance == "" || strings.Contains(p.Instance, f.Instance)) &&
		(p.Title == "" || strings.Contains(p.Title, f.Title))
}

// Intent is a queued request for Owner to be hidden behind the next window
// matching Filter.
type Intent struct {
	Owner  registry.ClientID
	Filter Filter
	// Remaining counts unrelated windows the intent survives. Zero disables
	// decay.
	Remaining int
}

// Registry holds pending intents, most recently queued first.
type Registry struct {
	intents []*Intent
	decay   int
}

// NewRegistry creates an empty registry. A positive decay drops an intent
// after that many windows were managed without matching it.
func NewRegistry(decay int) *Registry {
	return &Registry{decay: max(decay, 0)}
}

// Queue creates or updates the intent for owner. Only visible chain heads
// may own an intent.
func (r *Registry) Queue(owner registry.ClientID, kind registry.Kind, f Filter) error {
	switch kind {
	case registry.KindRegular, registry.KindSwallowee:
	case registry.KindSwallower:
		return ErrNestedSwallow
	default:
		return ErrUnknownOwner
	}

	if in := r.find(owner); in != nil {
		in.Filter = f
		in.Remaining = r.decay
		return nil
	}

	in := &Intent{Owner: owner, Filter: f, Remaining: r.decay}
	r.intents = append([]*Intent{in}, r.intents...)
	return nil
}

// Match returns the most recently queued intent whose filters accept p.
func (r *Registry) Match(p Properties) *Intent {
	for _, in := range r.intents {
		if in.Filter.matches(p) {
			return in
		}
	}
	return nil
}

// Unqueue removes one intent.
func (r *Registry) Unqueue(in *Intent) {
	for i, v := range r.intents {
		if v == in {
			r.intents = append(r.intents[:i], r.intents[i+1:]...)
			return
		}
	}
}

// UnqueueOwner removes the intent owned by owner, if any.
func (r *Registry) UnqueueOwner(owner registry.ClientID) bool {
	if in := r.find(owner); in != nil {
		r.Unqueue(in)
		return true
	}
	return false
}

// UnqueueAll drops every intent.
func (r *Registry) UnqueueAll() {
	r.intents = nil
}

// Decay ages every intent by one unrelated window and drops the expired ones.
func (r *Registry) Decay() []registry.ClientID {
	if r.decay == 0 {
		return nil
	}
	var expired []registry.ClientID
	kept := r.intents[:0]
	for _, in := range r.intents {
		in.Remaining--
		if in.Remaining <= 0 {
			expired = append(expired, in.Owner)
			continue
		}
		kept = append(kept, in)
	}
	r.intents = kept
	return expired
}

// Pending reports whether owner has a queued intent.
func (r *Registry) Pending(owner registry.ClientID) bool {
	return r.find(owner) != nil
}

// Len returns the number of queued intents.
func (r *Registry) Len() int {
	return len(r.intents)
}

// Intents returns a snapshot in match order.
func (r *Registry) Intents() []Intent {
	out := make([]Intent, len(r.intents))
	for i, in := range r.intents {
		out[i] = *in
	}
	return out
}

func (r *Registry) find(owner registry.ClientID) *Intent {
	for _, in := range r.intents {
		if in.Owner == owner {
			return in
		}
	}
	return nil
}
