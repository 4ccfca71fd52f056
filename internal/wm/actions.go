package wm

import (
	"github.com/1broseidon/tagwm/internal/config"
	"github.com/1broseidon/tagwm/internal/movemode"
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/registry"
)

// cfact bounds for setcfact.
const (
	minCFact = 0.25
	maxCFact = 4.0
)

// trigger carries what the pointer hit for button bound actions.
type trigger struct {
	button      uint8
	statusIndex int
}

func (m *Manager) run(action config.Action, arg config.Arg, t trigger) {
	m.logger.Debug("running action", "action", action)

	switch action {
	case config.ActionView:
		m.view(arg.Mask)
	case config.ActionToggleView:
		m.toggleView(arg.Mask)
	case config.ActionTag:
		m.tag(arg.Mask)
	case config.ActionToggleTag:
		m.toggleTag(arg.Mask)
	case config.ActionFocusStack:
		m.focusStack(arg.Int)
	case config.ActionMoveClient:
		m.moveClient(arg.Int)
	case config.ActionZoom:
		m.zoom()
	case config.ActionIncNMaster:
		m.reg.Selected.IncNMaster(arg.Int)
		m.arrange(m.reg.Selected)
	case config.ActionSetMFact:
		if m.reg.Selected.SetMFact(arg.Float) {
			m.arrange(m.reg.Selected)
		}
	case config.ActionSetCFact:
		m.setCFact(arg.Float)
	case config.ActionSetGaps:
		m.reg.Selected.SetGaps(arg.Int)
		m.arrange(m.reg.Selected)
	case config.ActionSetLayout:
		m.setLayout(arg.Layout)
	case config.ActionToggleBar:
		m.toggleBar()
	case config.ActionToggleFloating:
		m.toggleFloating()
	case config.ActionToggleFullscreen:
		if sel := m.selected(); sel != nil {
			m.setFullscreen(sel, !sel.Fullscreen)
		}
	case config.ActionFocusMon:
		m.focusMon(arg.Int)
	case config.ActionTagMon:
		m.tagMon(arg.Int)
	case config.ActionKillClient:
		m.killClient()
	case config.ActionSpawn:
		m.spawn(config.ShellCommand(arg.Command), nil)
	case config.ActionQuit:
		m.running = false
		m.restart = arg.Restart
		m.logger.Info("quit requested", "restart", arg.Restart)
	case config.ActionMoveMouse:
		m.startPointerSession(movemode.PhaseMoving)
	case config.ActionResizeMouse:
		m.startPointerSession(movemode.PhaseResizing)
	case config.ActionSwallowMouse:
		m.startPointerSession(movemode.PhasePicking)
	case config.ActionSwallowStop:
		if sel := m.selected(); sel != nil && sel.SwallowedBy != 0 {
			m.swalStop(sel)
		}
	case config.ActionStatusClick:
		m.statusClick(t)
	default:
		m.logger.Warn("unknown action", "action", action)
	}
}

func (m *Manager) view(mask uint32) {
	if !m.reg.Selected.View(mask, m.tagMask) {
		return
	}
	m.focus(nil)
	m.arrange(m.reg.Selected)
}

func (m *Manager) toggleView(mask uint32) {
	if !m.reg.Selected.ToggleView(mask, m.tagMask) {
		return
	}
	m.focus(nil)
	m.arrange(m.reg.Selected)
}

func (m *Manager) tag(mask uint32) {
	sel := m.selected()
	if sel == nil || mask&m.tagMask == 0 {
		return
	}
	sel.Tags = mask & m.tagMask
	m.focus(nil)
	m.arrange(m.reg.Selected)
}

func (m *Manager) toggleTag(mask uint32) {
	sel := m.selected()
	if sel == nil {
		return
	}
	next := sel.Tags ^ (mask & m.tagMask)
	if next == 0 {
		return
	}
	sel.Tags = next
	m.focus(nil)
	m.arrange(m.reg.Selected)
}

func (m *Manager) focusStack(dir int) {
	sel := m.selected()
	if sel == nil || sel.Fullscreen {
		return
	}
	next := m.reg.NextVisible(m.reg.Selected, sel, dir, func(c *registry.Client) bool {
		return c.Visible()
	})
	if next != nil {
		m.focus(next)
		m.restack(m.reg.Selected)
	}
}

func (m *Manager) moveClient(dir int) {
	sel := m.selected()
	if sel == nil || sel.Floating {
		return
	}
	other := m.reg.NextVisible(m.reg.Selected, sel, dir, func(c *registry.Client) bool {
		return c.Visible() && !c.Floating
	})
	if other == nil {
		return
	}
	m.reg.Swap(sel, other)
	m.arrange(m.reg.Selected)
}

func (m *Manager) zoom() {
	c := m.selected()
	mon := m.reg.Selected
	if c == nil || c.Floating || !mon.Arranges() {
		return
	}
	tiled := m.reg.Tiled(mon)
	if len(tiled) > 0 && tiled[0] == c {
		if len(tiled) < 2 {
			return
		}
		c = tiled[1]
	}
	m.reg.Pop(c)
	m.focus(c)
	m.arrange(c.Mon)
}

func (m *Manager) setCFact(delta float64) {
	c := m.selected()
	if c == nil || !m.reg.Selected.Arranges() {
		return
	}
	f := c.CFact + delta
	if delta == 0 {
		f = 1.0
	} else if f < minCFact || f > maxCFact {
		return
	}
	c.CFact = f
	m.arrange(m.reg.Selected)
}

func (m *Manager) setLayout(idx int) {
	mon := m.reg.Selected
	if idx >= 0 && idx < len(m.layouts) {
		mon.SetLayout(&m.layouts[idx])
	} else {
		mon.SetLayout(nil)
	}
	if m.selected() != nil {
		m.arrange(mon)
	} else {
		m.drawBar(mon)
	}
}

func (m *Manager) toggleBar() {
	mon := m.reg.Selected
	mon.ShowBar = !mon.ShowBar
	mon.UpdateBarPos(m.barHeight)
	if mon.BarWin != 0 {
		m.backend.MoveResize(mon.BarWin, m.barRect(mon))
	}
	m.arrange(mon)
}

func (m *Manager) toggleFloating() {
	sel := m.selected()
	if sel == nil || sel.Fullscreen {
		return
	}
	sel.Floating = !sel.Floating || sel.Hints.Fixed
	if sel.Floating {
		m.resize(sel, sel.Geom, false)
	}
	m.arrange(m.reg.Selected)
}

func (m *Manager) focusMon(dir int) {
	if len(m.reg.Monitors) < 2 {
		return
	}
	mon := m.reg.DirToMonitor(dir)
	if mon == m.reg.Selected {
		return
	}
	m.selectMonitor(mon)
}

func (m *Manager) tagMon(dir int) {
	sel := m.selected()
	if sel == nil || len(m.reg.Monitors) < 2 {
		return
	}
	m.sendMon(sel, m.reg.DirToMonitor(dir))
}

func (m *Manager) killClient() {
	sel := m.selected()
	if sel == nil {
		return
	}
	if m.backend.SupportsProtocol(sel.Window, "WM_DELETE_WINDOW") {
		err := m.backend.SendProtocol(sel.Window, "WM_DELETE_WINDOW")
		if err == nil {
			return
		}
		m.logger.Debug("WM_DELETE_WINDOW failed, killing client", "window", sel.Window, "error", err)
	}
	m.backend.Kill(sel.Window)
}

// startPointerSession grabs the pointer for a move, resize or swallow pick
// on the selected client.
func (m *Manager) startPointerSession(phase movemode.Phase) {
	c := m.selected()
	if c == nil {
		return
	}
	if phase != movemode.PhasePicking && c.Fullscreen {
		return
	}
	if phase != movemode.PhasePicking {
		m.restack(m.reg.Selected)
	}

	cursor := platform.CursorMove
	switch phase {
	case movemode.PhaseResizing:
		cursor = platform.CursorResize
	case movemode.PhasePicking:
		cursor = platform.CursorSwallow
	}
	if !m.backend.GrabPointer(cursor) {
		return
	}

	px, py := 0, 0
	switch phase {
	case movemode.PhaseMoving:
		var ok bool
		if px, py, ok = m.backend.QueryPointer(); !ok {
			m.backend.UngrabPointer()
			return
		}
	case movemode.PhaseResizing:
		m.backend.WarpPointer(c.Window, c.Geom.Width+c.Border-1, c.Geom.Height+c.Border-1)
	}
	m.session.Begin(phase, c.ID, c.Geom, px, py)
	m.logger.Debug("pointer session started", "phase", phase, "window", c.Window)
}
