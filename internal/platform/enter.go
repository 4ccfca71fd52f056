package platform

import "sync/atomic"

// EnterFilter drops EnterNotify events caused by requests the window
// manager issued itself, such as a restack. Both methods are called on the
// handler goroutine, after events may already have been read ahead.
type EnterFilter struct {
	// floor holds the last discarded sequence, with bit 16 set while active.
	floor atomic.Uint32
}

// DiscardThrough marks every EnterNotify with a sequence up to seq as stale.
func (f *EnterFilter) DiscardThrough(seq uint16) {
	f.floor.Store(uint32(seq) | 1<<16)
}

// Stale reports whether ev is an EnterNotify at or below the floor. The first
// newer EnterNotify clears the floor so sequence wrap-around cannot hide
// later crossings.
func (f *EnterFilter) Stale(ev Event) bool {
	e, ok := ev.(EnterNotify)
	if !ok {
		return false
	}
	floor := f.floor.Load()
	if floor&(1<<16) == 0 {
		return false
	}
	if int16(e.Sequence-uint16(floor)) <= 0 {
		return true
	}
	f.floor.CompareAndSwap(floor, 0)
	return false
}
