package registry

import (
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// MonitorDefaults seeds every newly created monitor.
type MonitorDefaults struct {
	MFact   float64
	NMaster int
	Gap     int
	ShowBar bool
	TopBar  bool
	Layouts []tiling.Layout
}

// Monitor is one layout surface.
type Monitor struct {
	Num    int
	Bounds tiling.Rect
	Work   tiling.Rect
	BarY   int

	MFact   float64
	NMaster int
	Gap     int
	ShowBar bool
	TopBar  bool

	SelTags   int
	TagSet    [2]uint32
	SelLayout int
	Layouts   [2]tiling.Layout
	Symbol    string

	// Clients is tiling order, Stack is focus order. Both hold chain heads only.
	Clients []ClientID
	Stack   []ClientID
	Sel     ClientID

	BarWin platform.WindowID
}

func newMonitor(d MonitorDefaults) *Monitor {
	m := &Monitor{
		MFact:   d.MFact,
		NMaster: d.NMaster,
		Gap:     d.Gap,
		ShowBar: d.ShowBar,
		TopBar:  d.TopBar,
		TagSet:  [2]uint32{1, 1},
	}
	if n := len(d.Layouts); n > 0 {
		m.Layouts[0] = d.Layouts[0]
		m.Layouts[1] = d.Layouts[1%n]
	}
	m.Symbol = m.Layouts[0].Symbol
	return m
}

// Tags returns the active tag mask.
func (m *Monitor) Tags() uint32 {
	return m.TagSet[m.SelTags]
}

// Layout returns the active layout.
func (m *Monitor) Layout() tiling.Layout {
	return m.Layouts[m.SelLayout]
}

// Arranges reports whether the active layout imposes geometry.
func (m *Monitor) Arranges() bool {
	return m.Layout().Arranges()
}

// UpdateBarPos recomputes the usable rectangle from the bar reservation.
func (m *Monitor) UpdateBarPos(barHeight int) {
	m.Work = m.Bounds
	if m.ShowBar {
		m.Work.Height -= barHeight
		if m.TopBar {
			m.BarY = m.Work.Y
			m.Work.Y += barHeight
		} else {
			m.BarY = m.Work.Y + m.Work.Height
		}
	} else {
		m.BarY = -barHeight
	}
}

// View switches to mask, remembering the previous tag set. A mask equal to
// the active one is a no-op and returns false. A zero mask flips back to the
// previous view.
func (m *Monitor) View(mask, tagMask uint32) bool {
	if mask&tagMask == m.Tags() {
		return false
	}
	m.SelTags ^= 1
	if mask&tagMask != 0 {
		m.TagSet[m.SelTags] = mask & tagMask
	}
	return true
}

// ToggleView toggles mask in the active tag set unless that empties it.
func (m *Monitor) ToggleView(mask, tagMask uint32) bool {
	next := m.Tags() ^ (mask & tagMask)
	if next == 0 {
		return false
	}
	m.TagSet[m.SelTags] = next
	return true
}

// SetLayout selects l, or toggles to the previously used layout when l is nil
// or differs from the active one.
func (m *Monitor) SetLayout(l *tiling.Layout) {
	if l == nil || *l != m.Layout() {
		m.SelLayout ^= 1
	}
	if l != nil {
		m.Layouts[m.SelLayout] = *l
	}
	m.Symbol = m.Layout().Symbol
}

// SetMFact adjusts the master factor. A delta above 1.0 sets the factor
// absolutely to delta-1.0. Values outside [MinMFact, MaxMFact] are rejected.
func (m *Monitor) SetMFact(delta float64) bool {
	if !m.Arranges() {
		return false
	}
	f := delta + m.MFact
	if delta >= 1.0 {
		f = delta - 1.0
	}
	if f < tiling.MinMFact || f > tiling.MaxMFact {
		return false
	}
	m.MFact = f
	return true
}

// IncNMaster changes the master count, never below zero.
func (m *Monitor) IncNMaster(delta int) {
	m.NMaster = max(m.NMaster+delta, 0)
}

// SetGaps changes the gap. Zero resets it and it never goes negative.
func (m *Monitor) SetGaps(delta int) {
	if delta == 0 || m.Gap+delta < 0 {
		m.Gap = 0
		return
	}
	m.Gap += delta
}

func indexOf(ids []ClientID, id ClientID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func remove(ids []ClientID, id ClientID) []ClientID {
	if i := indexOf(ids, id); i >= 0 {
		return append(ids[:i], ids[i+1:]...)
	}
	return ids
}

func insertAt(ids []ClientID, i int, id ClientID) []ClientID {
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}
