package wm

import (
	"strings"

	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/registry"
	"github.com/1broseidon/tagwm/internal/swallow"
	"github.com/1broseidon/tagwm/internal/tiling"
)

const brokenName = "broken"

// manage turns a mapped top-level window into a client.
func (m *Manager) manage(win platform.WindowID, geom tiling.Rect, border int) {
	c := m.reg.NewClient(win)
	c.Geom, c.Old = geom, geom
	c.OldBorder = border
	m.updateTitle(c)

	parentWin, transient := m.backend.TransientFor(win)
	if parent := m.reg.Visible(parentWin); transient && parent != nil {
		c.Mon = parent.Mon
		c.Tags = parent.Tags
	} else {
		c.Mon = m.reg.Selected
		m.applyRules(c)
	}

	m.pruneGeometry(c)
	c.Border = m.cfg.BorderPx
	m.backend.SetBorderWidth(win, c.Border)
	m.backend.SetBorderColor(win, m.normBorder)
	m.configure(c)
	m.updateWindowType(c)
	m.updateSizeHints(c)
	m.updateWMHints(c)
	m.backend.SelectClientInput(win)
	m.grabButtons(c, false)
	if !c.Floating {
		c.Floating = transient || c.Hints.Fixed
		c.WasFloating = c.Floating
	}
	if c.Floating {
		m.backend.Raise(win)
	}

	m.reg.AttachBottom(c)
	m.reg.AttachStack(c)
	m.updateClientList()
	// Park it off-screen until arrange places it.
	m.backend.MoveResize(win, tiling.Rect{X: c.Geom.X + 2*m.screen.Width, Y: c.Geom.Y, Width: c.Geom.Width, Height: c.Geom.Height})
	m.backend.SetWMState(win, platform.NormalState)
	if c.Mon == m.reg.Selected {
		m.unfocus(m.selected(), false)
	}
	c.Mon.Sel = c.ID
	m.arrange(c.Mon)
	m.backend.Map(win)
	m.focus(nil)

	m.logger.Debug("client managed", "window", win, "class", c.Class, "tags", c.Tags, "floating", c.Floating)
}

// pruneGeometry keeps a new client inside its monitor and off a top bar.
func (m *Manager) pruneGeometry(c *registry.Client) {
	mon := c.Mon
	b := mon.Bounds
	if c.Geom.X+c.OuterWidth() > b.X+b.Width {
		c.Geom.X = b.X + b.Width - c.OuterWidth()
	}
	if c.Geom.Y+c.OuterHeight() > b.Y+b.Height {
		c.Geom.Y = b.Y + b.Height - c.OuterHeight()
	}
	c.Geom.X = max(c.Geom.X, b.X)

	minY := b.Y
	centre := c.Geom.X + c.Geom.Width/2
	if mon.BarY == b.Y && centre >= mon.Work.X && centre < mon.Work.X+mon.Work.Width {
		minY = b.Y + m.barHeight
	}
	c.Geom.Y = max(c.Geom.Y, minY)
}

// applyRules assigns tags, floating state and monitor from the rule table.
func (m *Manager) applyRules(c *registry.Client) {
	c.Floating = false
	c.Tags = 0
	for _, r := range m.cfg.Rules {
		if !strings.Contains(c.Title, r.Title) ||
			!strings.Contains(c.Class, r.Class) ||
			!strings.Contains(c.Instance, r.Instance) {
			continue
		}
		c.Floating = r.Floating
		c.Tags |= m.cfg.RuleTags(r)
		if mon := m.reg.MonitorByNum(r.Monitor); mon != nil {
			c.Mon = mon
		}
	}
	if c.Tags&m.tagMask != 0 {
		c.Tags &= m.tagMask
	} else {
		c.Tags = c.Mon.Tags()
	}
}

// unmanage releases c. When c hid another client, that client takes c's
// place in the tiling list and is mapped again.
func (m *Manager) unmanage(c *registry.Client, destroyed bool) {
	if c == nil {
		return
	}
	mon := c.Mon

	if hidden := m.reg.Client(c.SwallowedBy); hidden != nil {
		hidden.Mon = c.Mon
		hidden.Tags = c.Tags
		hidden.CFact = c.CFact
		hidden.Floating = c.Floating
		m.reg.InsertAfter(c, hidden)
		m.reg.AttachStack(hidden)
		m.resizeClient(hidden, c.Geom)
		m.backend.Map(hidden.Window)
		m.logger.Debug("swallowed client restored", "window", hidden.Window, "by", c.Window)
	}

	m.swallows.UnqueueOwner(c.ID)
	m.reg.Detach(c)
	m.reg.DetachStack(c)
	if !destroyed {
		m.backend.SetBorderWidth(c.Window, c.OldBorder)
		m.backend.UngrabButtons(c.Window)
		m.backend.SetWMState(c.Window, platform.WithdrawnState)
	}
	m.reg.Forget(c)
	m.focus(nil)
	m.updateClientList()
	m.arrange(mon)

	m.logger.Debug("client unmanaged", "window", c.Window, "destroyed", destroyed)
}

func (m *Manager) updateTitle(c *registry.Client) {
	class, instance, ok := m.backend.ClassHint(c.Window)
	if !ok {
		class, instance = brokenName, brokenName
	}
	c.Class = class
	c.Instance = instance
	c.Name = class
	if c.Name == "" {
		c.Name = brokenName
	}
	c.Title = m.backend.Title(c.Window)
}

func (m *Manager) properties(c *registry.Client) swallow.Properties {
	return m.propertiesOf(c.Class, c.Instance, c.Title)
}

func (m *Manager) propertiesOf(class, instance, title string) swallow.Properties {
	return swallow.Properties{Class: class, Instance: instance, Title: title}
}

func (m *Manager) updateSizeHints(c *registry.Client) {
	nh, _ := m.backend.NormalHints(c.Window)
	c.Hints = tiling.SizeHintsFromNormal(nh)
}

func (m *Manager) updateWMHints(c *registry.Client) {
	h, ok := m.backend.WMHints(c.Window)
	if !ok {
		return
	}
	if c.ID == c.Mon.Sel && m.reg.Selected == c.Mon && h.Urgent {
		m.backend.ClearUrgency(c.Window)
	} else {
		c.Urgent = h.Urgent
	}
	c.NeverFocus = h.HasInput && !h.Input
}

func (m *Manager) updateWindowType(c *registry.Client) {
	t := m.backend.WindowType(c.Window)
	if t.Fullscreen {
		m.setFullscreen(c, true)
	}
	if t.Dialog {
		c.Floating = true
	}
}
