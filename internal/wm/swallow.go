package wm

import (
	"github.com/1broseidon/tagwm/internal/ipc"
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/registry"
	"github.com/1broseidon/tagwm/internal/swallow"
)

// manageSwallow manages win directly in place of swer, which is hidden
// behind it.
func (m *Manager) manageSwallow(swer *registry.Client, win platform.WindowID) {
	m.setFullscreen(swer, false)

	swee := m.reg.NewClient(win)
	swee.SwallowedBy = swer.ID
	swee.Mon = swer.Mon
	swee.Geom, swee.Old = swer.Geom, swer.Geom
	swee.Floating = swer.Floating
	swee.Border = swer.Border
	swee.OldBorder = swer.OldBorder
	swee.CFact = swer.CFact
	swee.Tags = swer.Tags
	m.updateTitle(swee)

	m.reg.Replace(swer, swee)
	m.reg.DetachStack(swer)
	m.reg.AttachStack(swee)

	m.backend.SetBorderWidth(win, swee.Border)
	m.backend.SetBorderColor(win, m.normBorder)
	m.configure(swee)
	m.updateSizeHints(swee)
	m.backend.SelectClientInput(win)
	m.grabButtons(swee, false)
	if swee.Floating {
		m.backend.Raise(win)
	}

	m.updateClientList()
	m.backend.SetWMState(win, platform.NormalState)
	if swee.Mon == m.reg.Selected {
		m.unfocus(m.selected(), false)
	}
	swee.Mon.Sel = swee.ID

	m.backend.MoveResize(win, swee.Geom)
	m.backend.Map(win)
	m.backend.Unmap(swer.Window)
	m.focus(nil)

	m.logger.Debug("new window swallowed client", "window", win, "hidden", swer.Window)
}

// swal hides swer behind swee. Both must be visible chain heads. swee's
// whole chain is kept and swer is appended to its end.
func (m *Manager) swal(swer, swee *registry.Client) {
	m.swallows.UnqueueOwner(swer.ID)
	m.swallows.UnqueueOwner(swee.ID)
	m.setFullscreen(swer, false)
	m.setFullscreen(swee, false)

	m.reg.Detach(swee)
	m.reg.DetachStack(swee)
	m.reg.DetachStack(swer)

	swee.Tags = swer.Tags
	swee.Mon = swer.Mon
	swee.Geom = swer.Geom
	swee.Old = swer.Old
	swee.Floating = swer.Floating
	swee.Border = swer.Border
	swee.OldBorder = swer.OldBorder
	swee.CFact = swer.CFact

	m.reg.ChainTail(swee).SwallowedBy = swer.ID
	m.reg.Replace(swer, swee)
	m.reg.AttachStack(swee)

	m.backend.Unmap(swer.Window)
	m.arrange(nil)
	m.backend.MoveResize(swee.Window, swee.Geom)
	m.focus(nil)

	m.logger.Debug("client swallowed", "window", swee.Window, "hidden", swer.Window)
}

// swalStop brings back the client directly hidden behind swee.
func (m *Manager) swalStop(swee *registry.Client) {
	swer := m.reg.Client(swee.SwallowedBy)
	if swer == nil {
		return
	}
	swee.SwallowedBy = 0
	swer.Mon = swee.Mon
	swer.Tags = swee.Tags
	m.reg.InsertAfter(swee, swer)
	m.reg.AttachStack(swer)
	m.arrange(swer.Mon)
	m.backend.Map(swer.Window)

	m.logger.Debug("client unswallowed", "window", swer.Window, "by", swee.Window)
}

// unswallowOnMap reinstates hidden client c, which mapped itself again,
// right behind the head of its chain.
func (m *Manager) unswallowOnMap(root, c *registry.Client) {
	if prev := m.reg.ChainParent(root, c); prev != nil {
		prev.SwallowedBy = 0
	}
	c.Mon = root.Mon
	c.Tags = root.Tags
	c.Floating = false
	m.reg.InsertAfter(root, c)
	m.reg.AttachStack(c)
	m.focus(nil)
	m.arrange(c.Mon)
	m.backend.Map(c.Window)
	m.backend.SetWMState(c.Window, platform.NormalState)
	m.focus(nil)

	m.logger.Debug("hidden client mapped itself", "window", c.Window, "chain", root.Window)
}

// splice drops hidden client c from root's chain. What c hid moves up one
// link and stays hidden.
func (m *Manager) splice(root, c *registry.Client) {
	if prev := m.reg.ChainParent(root, c); prev != nil {
		prev.SwallowedBy = c.SwallowedBy
	}
	m.swallows.UnqueueOwner(c.ID)
	m.reg.Forget(c)
	m.updateClientList()
	m.drawBars()

	m.logger.Debug("hidden client destroyed", "window", c.Window, "chain", root.Window)
}

// runCommand executes a root-name command. It reports false when name is
// plain status text.
func (m *Manager) runCommand(name string) bool {
	req, ok := ipc.Parse(name)
	if !ok {
		return false
	}
	if err := req.Validate(); err != nil {
		m.logger.Warn("ignoring root name command", "error", err)
		return true
	}

	switch req.Command {
	case ipc.CommandSwallowQueue:
		m.queueSwallow(req)
	case ipc.CommandSwallow:
		m.swallowCommand(req)
	}
	return true
}

func (m *Manager) queueSwallow(req ipc.Request) {
	id, err := ipc.ParseWindowID(req.Arg(0))
	if err != nil {
		m.logger.Warn("swallowqueue: bad window", "arg", req.Arg(0), "error", err)
		return
	}
	kind, c, _ := m.reg.Classify(platform.WindowID(id))
	var owner registry.ClientID
	if c != nil {
		owner = c.ID
	}
	f := swallow.Filter{Class: req.Arg(1), Instance: req.Arg(2), Title: req.Arg(3)}
	replaced := c != nil && m.swallows.Pending(c.ID)
	if err := m.swallows.Queue(owner, kind, f); err != nil {
		m.logger.Warn("swallowqueue rejected", "window", id, "kind", kind, "error", err)
		return
	}
	m.logger.Debug("swallow queued", "window", id, "class", f.Class, "instance", f.Instance, "title", f.Title, "replaced", replaced)
}

func (m *Manager) swallowCommand(req ipc.Request) {
	hiddenID, err := ipc.ParseWindowID(req.Arg(0))
	if err != nil {
		m.logger.Warn("swallow: bad window", "arg", req.Arg(0), "error", err)
		return
	}
	visibleID, err := ipc.ParseWindowID(req.Arg(1))
	if err != nil {
		m.logger.Warn("swallow: bad window", "arg", req.Arg(1), "error", err)
		return
	}
	hk, swer, _ := m.reg.Classify(platform.WindowID(hiddenID))
	vk, swee, _ := m.reg.Classify(platform.WindowID(visibleID))
	if !isHead(hk) || !isHead(vk) || swer == swee {
		m.logger.Warn("swallow: both windows must be distinct visible clients",
			"hidden", hiddenID, "hidden_kind", hk, "visible", visibleID, "visible_kind", vk)
		return
	}
	m.swal(swer, swee)
}

func isHead(k registry.Kind) bool {
	return k == registry.KindRegular || k == registry.KindSwallowee
}
