package wm

import (
	"fmt"

	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/registry"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// focus gives input focus to c, or to the most recently focused visible
// client of the selected monitor when c is nil or hidden.
func (m *Manager) focus(c *registry.Client) {
	if c == nil || !c.Visible() {
		c = m.reg.FirstVisible(m.reg.Selected)
	}
	if sel := m.selected(); sel != nil && sel != c {
		m.unfocus(sel, false)
	}

	if c != nil {
		if c.Mon != m.reg.Selected {
			m.reg.Selected = c.Mon
		}
		if c.Urgent {
			c.Urgent = false
			m.backend.ClearUrgency(c.Window)
		}
		m.reg.DetachStack(c)
		m.reg.AttachStack(c)
		m.grabButtons(c, true)
		m.backend.SetBorderColor(c.Window, m.selBorder)
		m.setFocus(c)
	} else {
		m.backend.Focus(0)
		m.backend.SetActiveWindow(0)
	}

	if mon := m.reg.Selected; mon != nil {
		mon.Sel = 0
		if c != nil {
			mon.Sel = c.ID
		}
	}
	m.drawBars()
}

func (m *Manager) unfocus(c *registry.Client, setFocus bool) {
	if c == nil {
		return
	}
	m.grabButtons(c, false)
	m.backend.SetBorderColor(c.Window, m.normBorder)
	if setFocus {
		m.backend.Focus(0)
		m.backend.SetActiveWindow(0)
	}
}

func (m *Manager) setFocus(c *registry.Client) {
	if !c.NeverFocus {
		m.backend.Focus(c.Window)
		m.backend.SetActiveWindow(c.Window)
	}
	if m.backend.SupportsProtocol(c.Window, "WM_TAKE_FOCUS") {
		if err := m.backend.SendProtocol(c.Window, "WM_TAKE_FOCUS"); err != nil {
			m.logger.Debug("failed to send WM_TAKE_FOCUS", "window", c.Window, "error", err)
		}
	}
}

// arrange lays out mon, or every monitor when mon is nil.
func (m *Manager) arrange(mon *registry.Monitor) {
	if mon != nil {
		m.showHide(mon)
		m.arrangeMonitor(mon)
		m.restack(mon)
		return
	}
	for _, mm := range m.reg.Monitors {
		m.showHide(mm)
	}
	for _, mm := range m.reg.Monitors {
		m.arrangeMonitor(mm)
	}
}

func (m *Manager) arrangeMonitor(mon *registry.Monitor) {
	layout := mon.Layout()
	mon.Symbol = layout.Symbol
	fn := layout.Arrange()
	if fn == nil {
		return
	}

	if layout.Kind == tiling.KindMonocle {
		n := 0
		for _, c := range m.reg.Clients(mon) {
			if c.Visible() {
				n++
			}
		}
		if n > 0 {
			mon.Symbol = fmt.Sprintf("[%d]", n)
		}
	}

	tiled := m.reg.Tiled(mon)
	tiles := make([]tiling.Tile, len(tiled))
	for i, c := range tiled {
		tiles[i] = tiling.Tile{CFact: c.CFact, Border: c.Border}
	}
	area := tiling.Area{Work: mon.Work, MFact: mon.MFact, NMaster: mon.NMaster, Gap: mon.Gap}
	fn(area, tiles, func(i int, r tiling.Rect) int {
		c := tiled[i]
		m.resize(c, r, false)
		return c.OuterHeight()
	})
}

// showHide moves visible clients into place top-down and parks hidden ones
// left of the screen bottom-up.
func (m *Manager) showHide(mon *registry.Monitor) {
	stack := m.reg.Stack(mon)
	for _, c := range stack {
		if !c.Visible() {
			continue
		}
		m.backend.Move(c.Window, c.Geom.X, c.Geom.Y)
		if (!mon.Arranges() || c.Floating) && !c.Fullscreen {
			m.resize(c, c.Geom, false)
		}
	}
	for i := len(stack) - 1; i >= 0; i-- {
		c := stack[i]
		if c.Visible() {
			continue
		}
		m.backend.Move(c.Window, -2*c.OuterWidth(), c.Geom.Y)
	}
}

func (m *Manager) restack(mon *registry.Monitor) {
	m.drawBar(mon)
	sel := m.reg.SelectedClient(mon)
	if sel == nil {
		return
	}
	if sel.Floating || !mon.Arranges() {
		m.backend.Raise(sel.Window)
	}
	if mon.Arranges() {
		sibling := mon.BarWin
		for _, c := range m.reg.Stack(mon) {
			if c.Floating || !c.Visible() {
				continue
			}
			m.backend.StackBelow(c.Window, sibling)
			sibling = c.Window
		}
	}
	m.backend.DiscardEnterEvents()
}

// resize applies size hints to want and reconfigures c when it changed.
func (m *Manager) resize(c *registry.Client, want tiling.Rect, interactive bool) {
	g, changed := tiling.ApplySizeHints(tiling.HintRequest{
		Want:         want,
		Current:      c.Geom,
		Border:       c.Border,
		Hints:        c.Hints,
		Interactive:  interactive,
		Screen:       m.screen,
		Work:         c.Mon.Work,
		BarHeight:    m.barHeight,
		RespectHints: m.cfg.ResizeHints,
		Floating:     c.Floating,
		Arranged:     c.Mon.Arranges(),
	})
	if changed {
		m.resizeClient(c, g)
	}
}

func (m *Manager) resizeClient(c *registry.Client, g tiling.Rect) {
	c.SetGeometry(g)
	m.backend.Configure(c.Window, g, c.Border)
	m.configure(c)
}

// configure sends c a synthetic ConfigureNotify with its managed geometry.
func (m *Manager) configure(c *registry.Client) {
	m.backend.SendConfigureNotify(c.Window, c.Geom, c.Border)
}

// selectMonitor moves the selection to mon, unfocusing the old selection.
func (m *Manager) selectMonitor(mon *registry.Monitor) {
	if mon == nil || mon == m.reg.Selected {
		return
	}
	m.unfocus(m.selected(), false)
	m.reg.Selected = mon
	m.focus(nil)
}

func (m *Manager) sendMon(c *registry.Client, mon *registry.Monitor) {
	if c.Mon == mon {
		return
	}
	m.unfocus(c, true)
	m.reg.SendToMonitor(c, mon)
	m.focus(nil)
	m.arrange(nil)
	m.logger.Debug("client sent to monitor", "window", c.Window, "monitor", mon.Num)
}

func (m *Manager) setFullscreen(c *registry.Client, on bool) {
	if on && !c.Fullscreen {
		m.backend.SetFullscreenState(c.Window, true)
		c.Fullscreen = true
		c.WasFloating = c.Floating
		c.OldBorder = c.Border
		c.Border = 0
		c.Floating = true
		m.resizeClient(c, c.Mon.Bounds)
		m.backend.Raise(c.Window)
	} else if !on && c.Fullscreen {
		m.backend.SetFullscreenState(c.Window, false)
		c.Fullscreen = false
		c.Floating = c.WasFloating
		c.Border = c.OldBorder
		c.Geom = c.Old
		m.resizeClient(c, c.Geom)
		m.arrange(c.Mon)
	}
}

// isVisibleHead reports whether c is a chain head currently in a tiling list.
func (m *Manager) isVisibleHead(c *registry.Client) bool {
	return c != nil && m.reg.Visible(c.Window) == c
}

// isEnter reports whether ev is a crossing event.
func isEnter(ev platform.Event) bool {
	_, ok := ev.(platform.EnterNotify)
	return ok
}
