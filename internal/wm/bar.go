package wm

import (
	"github.com/1broseidon/tagwm/internal/bar"
	"github.com/1broseidon/tagwm/internal/registry"
	"github.com/1broseidon/tagwm/internal/tiling"
)

func (m *Manager) barRect(mon *registry.Monitor) tiling.Rect {
	return tiling.Rect{X: mon.Work.X, Y: mon.BarY, Width: mon.Work.Width, Height: m.barHeight}
}

// updateBars creates a bar window for every monitor that lacks one.
func (m *Manager) updateBars() {
	for _, mon := range m.reg.Monitors {
		if mon.BarWin != 0 {
			continue
		}
		win, err := m.backend.CreateBar(m.barRect(mon))
		if err != nil {
			m.logger.Warn("failed to create bar", "monitor", mon.Num, "error", err)
			continue
		}
		mon.BarWin = win
	}
}

func (m *Manager) barState(mon *registry.Monitor) bar.State {
	s := bar.State{
		Width:   mon.Work.Width,
		Active:  mon.Tags(),
		Symbol:  mon.Symbol,
		Focused: mon == m.reg.Selected,
		Status:  m.status,
	}
	for _, c := range m.reg.Clients(mon) {
		s.Occupied |= c.Tags
		if c.Urgent {
			s.Urgent |= c.Tags
		}
	}
	if sel := m.reg.SelectedClient(mon); sel != nil {
		s.HasSel = true
		s.Title = sel.Name
		s.Swallowing = sel.SwallowedBy != 0
		if s.Focused {
			s.SelTags = sel.Tags
		}
	}
	return s
}

func (m *Manager) drawBar(mon *registry.Monitor) {
	if mon == nil || mon.BarWin == 0 || !mon.ShowBar {
		return
	}
	m.backend.DrawBar(mon.BarWin, m.bar.Draw(m.barState(mon)))
}

func (m *Manager) drawBars() {
	for _, mon := range m.reg.Monitors {
		m.drawBar(mon)
	}
}

// updateStatus reads the status text from the root window name.
func (m *Manager) updateStatus() {
	name := m.backend.RootName()
	if name == "" {
		name = "tagwm-" + m.version
	}
	m.status = name
	m.drawBar(m.reg.Selected)
}
