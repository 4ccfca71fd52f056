package wm

import (
	"github.com/1broseidon/tagwm/internal/movemode"
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/registry"
	"github.com/1broseidon/tagwm/internal/tiling"
)

func (m *Manager) sessionMotion(e platform.MotionNotify) {
	if m.session.Phase == movemode.PhasePicking || !m.session.Accept(e.Time) {
		return
	}
	c := m.reg.Client(m.session.Client)
	if c == nil || c.Mon == nil {
		return
	}
	mon := m.reg.Selected
	snap := m.cfg.Snap

	switch m.session.Phase {
	case movemode.PhaseMoving:
		nx, ny := m.session.MovePosition(e.RootX, e.RootY, mon.Work, c.OuterWidth(), c.OuterHeight(), snap)
		if !c.Floating && mon.Arranges() && movemode.BeyondSnap(nx-c.Geom.X, ny-c.Geom.Y, snap) {
			m.toggleFloating()
		}
		if !mon.Arranges() || c.Floating {
			m.resize(c, tiling.Rect{X: nx, Y: ny, Width: c.Geom.Width, Height: c.Geom.Height}, true)
		}

	case movemode.PhaseResizing:
		nw, nh := m.session.ResizeSize(e.RootX, e.RootY, c.Border)
		cw, sw := c.Mon.Work, mon.Work
		inside := cw.X+nw >= sw.X && cw.X+nw <= sw.X+sw.Width &&
			cw.Y+nh >= sw.Y && cw.Y+nh <= sw.Y+sw.Height
		if inside && !c.Floating && mon.Arranges() &&
			movemode.BeyondSnap(nw-c.Geom.Width, nh-c.Geom.Height, snap) {
			m.toggleFloating()
		}
		if !mon.Arranges() || c.Floating {
			m.resize(c, tiling.Rect{X: c.Geom.X, Y: c.Geom.Y, Width: nw, Height: nh}, true)
		}
	}
}

// sessionRelease ends the pointer session and replays what it held back.
func (m *Manager) sessionRelease(e platform.ButtonRelease) {
	phase := m.session.Phase
	c := m.reg.Client(m.session.Client)
	pending := m.session.End()

	switch phase {
	case movemode.PhaseMoving:
		m.backend.UngrabPointer()
	case movemode.PhaseResizing:
		if c != nil {
			m.backend.WarpPointer(c.Window, c.Geom.Width+c.Border-1, c.Geom.Height+c.Border-1)
		}
		m.backend.UngrabPointer()
		m.backend.DiscardEnterEvents()
	case movemode.PhasePicking:
		m.backend.UngrabPointer()
		m.pick(c, e.Child)
		m.backend.DiscardEnterEvents()
	}

	if phase != movemode.PhasePicking && c != nil && c.Mon != nil {
		if mon := m.reg.RectToMonitor(c.Geom); mon != m.reg.Selected {
			m.sendMon(c, mon)
			m.reg.Selected = mon
			m.focus(nil)
		}
	}
	m.logger.Debug("pointer session ended", "phase", phase, "held", len(pending))

	for _, ev := range pending {
		if phase != movemode.PhaseMoving && isEnter(ev) {
			continue
		}
		m.Handle(ev)
	}
}

// pick hides the window released on behind swee.
func (m *Manager) pick(swee *registry.Client, child platform.WindowID) {
	if swee == nil || !m.isVisibleHead(swee) {
		return
	}
	kind, swer, _ := m.reg.Classify(child)
	if !isHead(kind) || swer == swee {
		return
	}
	m.swal(swer, swee)
}
