package registry

import (
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// Registry owns every client and monitor. It never talks to the display.
type Registry struct {
	clients  map[ClientID]*Client
	windows  map[platform.WindowID]ClientID
	nextID   ClientID
	defaults MonitorDefaults

	Monitors []*Monitor
	Selected *Monitor
}

// New creates an empty registry. Monitors appear through Reconcile.
func New(defaults MonitorDefaults) *Registry {
	return &Registry{
		clients:  make(map[ClientID]*Client),
		windows:  make(map[platform.WindowID]ClientID),
		defaults: defaults,
	}
}

// NewClient allocates a client for win. It is not attached to any list.
func (r *Registry) NewClient(win platform.WindowID) *Client {
	r.nextID++
	c := &Client{ID: r.nextID, Window: win, CFact: 1.0}
	r.clients[c.ID] = c
	r.windows[win] = c.ID
	return c
}

// Forget drops c from the arena. Callers detach it first.
func (r *Registry) Forget(c *Client) {
	if c == nil {
		return
	}
	delete(r.clients, c.ID)
	if r.windows[c.Window] == c.ID {
		delete(r.windows, c.Window)
	}
}

// Client resolves an ID, returning nil for zero or unknown IDs.
func (r *Registry) Client(id ClientID) *Client {
	if id == 0 {
		return nil
	}
	return r.clients[id]
}

// ByWindow finds any known client for win, visible or hidden.
func (r *Registry) ByWindow(win platform.WindowID) *Client {
	id, ok := r.windows[win]
	if !ok {
		return nil
	}
	return r.clients[id]
}

// Len returns the number of clients in the arena.
func (r *Registry) Len() int {
	return len(r.clients)
}

// Visible returns the chain head for win, or nil when win is unknown or hidden.
func (r *Registry) Visible(win platform.WindowID) *Client {
	c := r.ByWindow(win)
	if c == nil || c.Mon == nil || indexOf(c.Mon.Clients, c.ID) < 0 {
		return nil
	}
	return c
}

// Classify resolves win into its swallow role. For KindSwallower the chain
// head that ultimately hides the window is returned as root.
func (r *Registry) Classify(win platform.WindowID) (Kind, *Client, *Client) {
	for _, m := range r.Monitors {
		for _, id := range m.Clients {
			c := r.clients[id]
			if c.Window == win {
				if c.SwallowedBy == 0 {
					return KindRegular, c, nil
				}
				return KindSwallowee, c, nil
			}
			for d := r.Client(c.SwallowedBy); d != nil; d = r.Client(d.SwallowedBy) {
				if d.Window == win {
					return KindSwallower, d, c
				}
			}
		}
	}
	return KindNone, nil, nil
}

// ChainParent returns the chain member whose SwallowedBy is c, starting the
// walk at root.
func (r *Registry) ChainParent(root, c *Client) *Client {
	for p := root; p != nil; p = r.Client(p.SwallowedBy) {
		if p.SwallowedBy == c.ID {
			return p
		}
	}
	return nil
}

// ChainTail returns the last member of c's swallow chain.
func (r *Registry) ChainTail(c *Client) *Client {
	for c.SwallowedBy != 0 {
		next := r.Client(c.SwallowedBy)
		if next == nil {
			break
		}
		c = next
	}
	return c
}

// Chain returns c followed by every client it hides.
func (r *Registry) Chain(c *Client) []*Client {
	var out []*Client
	for d := c; d != nil; d = r.Client(d.SwallowedBy) {
		out = append(out, d)
	}
	return out
}

// Attach puts c at the front of its monitor's tiling list.
func (r *Registry) Attach(c *Client) {
	c.Mon.Clients = insertAt(c.Mon.Clients, 0, c.ID)
}

// AttachBottom appends c to its monitor's tiling list.
func (r *Registry) AttachBottom(c *Client) {
	c.Mon.Clients = append(c.Mon.Clients, c.ID)
}

// InsertAfter places c right behind anchor in anchor's tiling list.
func (r *Registry) InsertAfter(anchor, c *Client) {
	m := anchor.Mon
	i := indexOf(m.Clients, anchor.ID)
	if i < 0 {
		m.Clients = append(m.Clients, c.ID)
		return
	}
	m.Clients = insertAt(m.Clients, i+1, c.ID)
}

// Replace puts c into old's tiling slot. old leaves the list.
func (r *Registry) Replace(old, c *Client) {
	m := old.Mon
	i := indexOf(m.Clients, old.ID)
	if i < 0 {
		m.Clients = append(m.Clients, c.ID)
		return
	}
	m.Clients[i] = c.ID
}

// Detach removes c from its monitor's tiling list.
func (r *Registry) Detach(c *Client) {
	if c.Mon != nil {
		c.Mon.Clients = remove(c.Mon.Clients, c.ID)
	}
}

// AttachStack puts c on top of its monitor's focus stack.
func (r *Registry) AttachStack(c *Client) {
	c.Mon.Stack = insertAt(c.Mon.Stack, 0, c.ID)
}

// DetachStack removes c from the focus stack. When c was selected, selection
// moves to the next visible client in focus order, or none.
func (r *Registry) DetachStack(c *Client) {
	m := c.Mon
	if m == nil {
		return
	}
	m.Stack = remove(m.Stack, c.ID)
	if m.Sel == c.ID {
		m.Sel = 0
		for _, id := range m.Stack {
			if r.clients[id].Visible() {
				m.Sel = id
				break
			}
		}
	}
}

// Clients returns the monitor's tiling list.
func (r *Registry) Clients(m *Monitor) []*Client {
	return r.resolve(m.Clients)
}

// Stack returns the monitor's focus stack, most recent first.
func (r *Registry) Stack(m *Monitor) []*Client {
	return r.resolve(m.Stack)
}

// Tiled returns visible, non-floating clients in tiling order.
func (r *Registry) Tiled(m *Monitor) []*Client {
	var out []*Client
	for _, id := range m.Clients {
		c := r.clients[id]
		if c.Visible() && !c.Floating {
			out = append(out, c)
		}
	}
	return out
}

// Selected returns the selected client of m.
func (r *Registry) SelectedClient(m *Monitor) *Client {
	if m == nil {
		return nil
	}
	return r.Client(m.Sel)
}

// FirstVisible returns the most recently focused visible client of m.
func (r *Registry) FirstVisible(m *Monitor) *Client {
	for _, id := range m.Stack {
		if c := r.clients[id]; c.Visible() {
			return c
		}
	}
	return nil
}

// Heads returns every visible chain head across all monitors.
func (r *Registry) Heads() []*Client {
	var out []*Client
	for _, m := range r.Monitors {
		out = append(out, r.Clients(m)...)
	}
	return out
}

// NextVisible walks the tiling list from sel in direction dir and returns
// the next client accepted by ok, wrapping around.
func (r *Registry) NextVisible(m *Monitor, sel *Client, dir int, ok func(*Client) bool) *Client {
	list := r.Clients(m)
	i := -1
	for j, c := range list {
		if c == sel {
			i = j
			break
		}
	}
	if i < 0 || len(list) == 0 {
		return nil
	}
	n := len(list)
	for step := 1; step < n; step++ {
		var j int
		if dir > 0 {
			j = (i + step) % n
		} else {
			j = (i - step + n) % n
		}
		if ok(list[j]) {
			return list[j]
		}
	}
	return nil
}

// Swap exchanges the tiling positions of a and b on their shared monitor.
func (r *Registry) Swap(a, b *Client) {
	m := a.Mon
	i, j := indexOf(m.Clients, a.ID), indexOf(m.Clients, b.ID)
	if i < 0 || j < 0 {
		return
	}
	m.Clients[i], m.Clients[j] = m.Clients[j], m.Clients[i]
}

// Pop moves c to the front of its monitor's tiling list.
func (r *Registry) Pop(c *Client) {
	r.Detach(c)
	r.Attach(c)
}

// SendToMonitor moves c to the bottom of m's lists and adopts m's active tags.
func (r *Registry) SendToMonitor(c *Client, m *Monitor) {
	if c.Mon == m {
		return
	}
	r.Detach(c)
	r.DetachStack(c)
	c.Mon = m
	c.Tags = m.Tags()
	r.AttachBottom(c)
	r.AttachStack(c)
}

// RectToMonitor returns the monitor sharing the largest area with rect,
// falling back to the selected monitor.
func (r *Registry) RectToMonitor(rect tiling.Rect) *Monitor {
	best, area := r.Selected, 0
	for _, m := range r.Monitors {
		if a := rect.Intersect(m.Work); a > area {
			area = a
			best = m
		}
	}
	return best
}

// DirToMonitor returns the monitor after (dir > 0) or before the selected one.
func (r *Registry) DirToMonitor(dir int) *Monitor {
	n := len(r.Monitors)
	if n == 0 {
		return nil
	}
	i := r.monitorIndex(r.Selected)
	if i < 0 {
		return r.Monitors[0]
	}
	if dir > 0 {
		return r.Monitors[(i+1)%n]
	}
	return r.Monitors[(i-1+n)%n]
}

// MonitorByBar finds the monitor owning a bar window.
func (r *Registry) MonitorByBar(win platform.WindowID) *Monitor {
	for _, m := range r.Monitors {
		if m.BarWin != 0 && m.BarWin == win {
			return m
		}
	}
	return nil
}

// MonitorByNum returns the monitor with the given index, or nil.
func (r *Registry) MonitorByNum(num int) *Monitor {
	for _, m := range r.Monitors {
		if m.Num == num {
			return m
		}
	}
	return nil
}

func (r *Registry) monitorIndex(m *Monitor) int {
	for i, mm := range r.Monitors {
		if mm == m {
			return i
		}
	}
	return -1
}

func (r *Registry) resolve(ids []ClientID) []*Client {
	out := make([]*Client, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.clients[id])
	}
	return out
}
