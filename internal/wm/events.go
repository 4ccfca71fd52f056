package wm

import (
	"github.com/1broseidon/tagwm/internal/bar"
	"github.com/1broseidon/tagwm/internal/config"
	"github.com/1broseidon/tagwm/internal/hotkeys"
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/registry"
	"github.com/1broseidon/tagwm/internal/tiling"
)

func (m *Manager) mapRequest(e platform.MapRequest) {
	attrs, err := m.backend.Attributes(e.Window)
	if err != nil || attrs.OverrideRedirect {
		return
	}

	kind, c, root := m.reg.Classify(e.Window)
	switch kind {
	case registry.KindRegular, registry.KindSwallowee:
		return
	case registry.KindSwallower:
		m.unswallowOnMap(root, c)
		return
	}

	class, instance, _ := m.backend.ClassHint(e.Window)
	props := m.propertiesOf(class, instance, m.backend.Title(e.Window))
	if in := m.swallows.Match(props); in != nil {
		if owner := m.reg.Client(in.Owner); m.isVisibleHead(owner) {
			m.swallows.Unqueue(in)
			m.manageSwallow(owner, e.Window)
			return
		}
		m.swallows.Unqueue(in)
	}

	for _, owner := range m.swallows.Decay() {
		m.logger.Debug("swallow intent expired", "owner", owner)
	}
	geom, border, err := m.backend.Geometry(e.Window)
	if err != nil {
		m.logger.Debug("window vanished before manage", "window", e.Window, "error", err)
		return
	}
	m.manage(e.Window, geom, border)
}

func (m *Manager) destroyNotify(e platform.DestroyNotify) {
	kind, c, root := m.reg.Classify(e.Window)
	switch kind {
	case registry.KindRegular, registry.KindSwallowee:
		m.unmanage(c, true)
	case registry.KindSwallower:
		m.splice(root, c)
	}
}

func (m *Manager) unmapNotify(e platform.UnmapNotify) {
	c := m.reg.Visible(e.Window)
	if c == nil {
		return
	}
	if e.Synthetic {
		m.backend.SetWMState(c.Window, platform.WithdrawnState)
		return
	}
	m.unmanage(c, false)
}

func (m *Manager) configureRequest(e platform.ConfigureRequest) {
	c := m.reg.Visible(e.Window)
	if c == nil {
		m.backend.ForwardConfigure(e)
		return
	}

	if e.Mask&platform.ConfigBorder != 0 {
		c.Border = e.Border
		return
	}
	if !c.Floating && m.reg.Selected.Arranges() {
		// Tiled clients keep their geometry and are told so.
		m.configure(c)
		return
	}

	b := c.Mon.Bounds
	if e.Mask&platform.ConfigX != 0 {
		c.Old.X = c.Geom.X
		c.Geom.X = b.X + e.X
	}
	if e.Mask&platform.ConfigY != 0 {
		c.Old.Y = c.Geom.Y
		c.Geom.Y = b.Y + e.Y
	}
	if e.Mask&platform.ConfigWidth != 0 {
		c.Old.Width = c.Geom.Width
		c.Geom.Width = e.Width
	}
	if e.Mask&platform.ConfigHeight != 0 {
		c.Old.Height = c.Geom.Height
		c.Geom.Height = e.Height
	}
	if c.Geom.X+c.Geom.Width > b.X+b.Width && c.Floating {
		c.Geom.X = b.X + (b.Width/2 - c.OuterWidth()/2)
	}
	if c.Geom.Y+c.Geom.Height > b.Y+b.Height && c.Floating {
		c.Geom.Y = b.Y + (b.Height/2 - c.OuterHeight()/2)
	}
	moveOnly := e.Mask&(platform.ConfigX|platform.ConfigY) != 0 &&
		e.Mask&(platform.ConfigWidth|platform.ConfigHeight) == 0
	if moveOnly {
		m.configure(c)
	}
	if c.Visible() {
		m.backend.MoveResize(c.Window, c.Geom)
	}
}

func (m *Manager) configureNotify(e platform.ConfigureNotify) {
	if e.Window != m.root {
		return
	}
	dirty := m.screen.Width != e.Geom.Width || m.screen.Height != e.Geom.Height
	m.screen = tiling.Rect{Width: e.Geom.Width, Height: e.Geom.Height}
	if !m.updateGeometry() && !dirty {
		return
	}

	m.updateBars()
	for _, mon := range m.reg.Monitors {
		for _, c := range m.reg.Clients(mon) {
			if c.Fullscreen {
				m.resizeClient(c, mon.Bounds)
			}
		}
		if mon.BarWin != 0 {
			m.backend.MoveResize(mon.BarWin, m.barRect(mon))
		}
	}
	m.focus(nil)
	m.arrange(nil)
}

func (m *Manager) propertyNotify(e platform.PropertyNotify) {
	if e.Window == m.root {
		if e.Atom == "WM_NAME" && !m.runCommand(m.backend.RootName()) {
			m.updateStatus()
		}
		return
	}
	if e.Deleted {
		return
	}
	c := m.reg.Visible(e.Window)
	if c == nil {
		return
	}

	switch e.Atom {
	case "WM_TRANSIENT_FOR":
		if parent, ok := m.backend.TransientFor(c.Window); ok && !c.Floating && m.reg.Visible(parent) != nil {
			c.Floating = true
			m.arrange(c.Mon)
		}
	case "WM_NORMAL_HINTS":
		m.updateSizeHints(c)
	case "WM_HINTS":
		m.updateWMHints(c)
		m.drawBars()
	case "WM_NAME", "_NET_WM_NAME":
		m.updateTitle(c)
		if c.ID == c.Mon.Sel {
			m.drawBar(c.Mon)
		}
		if m.cfg.Swallow.Retroactive {
			m.retroactiveSwallow(c)
		}
	case "_NET_WM_WINDOW_TYPE":
		m.updateWindowType(c)
	}
}

// retroactiveSwallow hides the owner of a queued intent behind c once c's
// new title matches it.
func (m *Manager) retroactiveSwallow(c *registry.Client) {
	in := m.swallows.Match(m.properties(c))
	if in == nil {
		return
	}
	owner := m.reg.Client(in.Owner)
	if owner == c || !m.isVisibleHead(owner) {
		return
	}
	m.swal(owner, c)
}

func (m *Manager) fullscreenRequest(e platform.FullscreenRequest) {
	c := m.reg.Visible(e.Window)
	if c == nil {
		return
	}
	on := e.Action == platform.StateAdd || (e.Action == platform.StateToggle && !c.Fullscreen)
	m.setFullscreen(c, on)
}

func (m *Manager) activateRequest(e platform.ActivateRequest) {
	c := m.reg.Visible(e.Window)
	if c == nil {
		return
	}
	for i := range m.cfg.Tags {
		if c.Tags&(1<<i) == 0 {
			continue
		}
		m.reg.Selected = c.Mon
		m.view(1 << i)
		m.focus(c)
		m.restack(m.reg.Selected)
		return
	}
}

func (m *Manager) enterNotify(e platform.EnterNotify) {
	if (!e.Normal || e.Inferior) && e.Window != m.root {
		return
	}
	c := m.reg.Visible(e.Window)
	mon := m.windowMonitor(e.Window)
	if c != nil {
		mon = c.Mon
	}
	sel := m.selected()
	if mon != m.reg.Selected {
		m.unfocus(sel, true)
		m.reg.Selected = mon
	} else if c == nil || c == sel {
		return
	}
	m.focus(c)
}

func (m *Manager) motionNotify(e platform.MotionNotify) {
	if e.Window != m.root {
		return
	}
	mon := m.reg.RectToMonitor(tiling.Rect{X: e.RootX, Y: e.RootY, Width: 1, Height: 1})
	if mon != m.pointerMon && m.pointerMon != nil {
		m.unfocus(m.selected(), true)
		m.reg.Selected = mon
		m.focus(nil)
	}
	m.pointerMon = mon
}

func (m *Manager) focusIn(e platform.FocusIn) {
	if sel := m.selected(); sel != nil && e.Window != sel.Window {
		m.setFocus(sel)
	}
}

func (m *Manager) expose(e platform.Expose) {
	if e.Count != 0 {
		return
	}
	if mon := m.windowMonitor(e.Window); mon != nil {
		m.drawBar(mon)
	}
}

func (m *Manager) mappingNotify(e platform.MappingNotify) {
	m.backend.RefreshKeyboard()
	if e.Keyboard {
		m.grabKeys()
	}
}

func (m *Manager) keyPress(e platform.KeyPress) {
	state := hotkeys.CleanMask(e.State, m.backend.LockMask())
	for _, k := range m.keys {
		if k.keysym != 0 && k.keysym == e.Keysym && hotkeys.CleanMask(k.combo.Mods, m.backend.LockMask()) == state {
			m.run(k.action, k.arg, trigger{})
		}
	}
}

func (m *Manager) buttonPress(e platform.ButtonPress) {
	click := config.ClickRootWindow
	var hit bar.Hit

	if mon := m.windowMonitor(e.Window); mon != nil && mon != m.reg.Selected {
		m.unfocus(m.selected(), true)
		m.reg.Selected = mon
		m.focus(nil)
	}

	if mon := m.reg.MonitorByBar(e.Window); mon != nil {
		hit = m.bar.HitTest(m.barState(mon), e.X)
		click = hit.Click
	} else if c := m.reg.Visible(e.Window); c != nil {
		m.focus(c)
		m.restack(m.reg.Selected)
		m.backend.ReplayPointer()
		click = config.ClickClientWindow
	}

	state := hotkeys.CleanMask(e.State, m.backend.LockMask())
	for _, b := range m.buttons {
		if b.click != click || b.combo.Button != e.Button ||
			hotkeys.CleanMask(b.combo.Mods, m.backend.LockMask()) != state {
			continue
		}
		arg := b.arg
		if click == config.ClickTagBar && arg.Mask == 0 {
			arg.Mask = hit.Tag
		}
		m.run(b.action, arg, trigger{button: e.Button, statusIndex: hit.Index})
	}
}
