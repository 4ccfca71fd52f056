package registry

import (
	"testing"

	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

func testDefaults() MonitorDefaults {
	return MonitorDefaults{
		MFact:   0.55,
		NMaster: 1,
		Gap:     10,
		ShowBar: true,
		TopBar:  true,
		Layouts: []tiling.Layout{
			{Symbol: "[]=", Kind: tiling.KindTile},
			{Symbol: "><>", Kind: tiling.KindFloat},
		},
	}
}

func newTestRegistry(t *testing.T, outputs ...tiling.Rect) *Registry {
	t.Helper()
	r := New(testDefaults())
	r.Reconcile(outputs, tiling.Rect{Width: 3840, Height: 1080}, 20)
	return r
}

func manageOn(r *Registry, m *Monitor, win platform.WindowID) *Client {
	c := r.NewClient(win)
	c.Mon = m
	c.Tags = m.Tags()
	r.AttachBottom(c)
	r.AttachStack(c)
	m.Sel = c.ID
	return c
}

func ids(cs []*Client) []ClientID {
	out := make([]ClientID, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func sameIDs(a, b []ClientID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestClassify(t *testing.T) {
	r := newTestRegistry(t)
	m := r.Monitors[0]

	a := manageOn(r, m, 1)
	b := manageOn(r, m, 2)
	hidden := r.NewClient(3)
	hidden.Mon = m
	deeper := r.NewClient(4)
	deeper.Mon = m
	b.SwallowedBy = hidden.ID
	hidden.SwallowedBy = deeper.ID

	if kind, c, _ := r.Classify(1); kind != KindRegular || c != a {
		t.Fatalf("expected window 1 regular, got %v", kind)
	}
	if kind, c, _ := r.Classify(2); kind != KindSwallowee || c != b {
		t.Fatalf("expected window 2 swallowee, got %v", kind)
	}
	kind, c, root := r.Classify(4)
	if kind != KindSwallower || c != deeper || root != b {
		t.Fatalf("expected window 4 swallower under 2, got %v", kind)
	}
	if kind, _, _ := r.Classify(99); kind != KindNone {
		t.Fatalf("expected unknown window to classify as none, got %v", kind)
	}

	if p := r.ChainParent(b, deeper); p != hidden {
		t.Fatalf("expected chain parent of 4 to be 3")
	}
	if tail := r.ChainTail(b); tail != deeper {
		t.Fatalf("expected chain tail to be 4")
	}
	if r.Visible(3) != nil {
		t.Fatalf("expected hidden window to have no visible client")
	}
}

func TestDetachStack_ReassignsSelection(t *testing.T) {
	r := newTestRegistry(t)
	m := r.Monitors[0]

	a := manageOn(r, m, 1)
	b := manageOn(r, m, 2)
	c := manageOn(r, m, 3)
	c.Tags = 1 << 3 // not on the visible tag

	// Focus order is c, b, a.
	m.Sel = c.ID
	r.DetachStack(c)
	if m.Sel != b.ID {
		t.Fatalf("expected selection to move to b, got %d", m.Sel)
	}

	r.DetachStack(b)
	if m.Sel != a.ID {
		t.Fatalf("expected selection to move to a, got %d", m.Sel)
	}

	r.DetachStack(a)
	if m.Sel != 0 {
		t.Fatalf("expected no selection, got %d", m.Sel)
	}
}

func TestDetachStack_SkipsInvisible(t *testing.T) {
	r := newTestRegistry(t)
	m := r.Monitors[0]

	a := manageOn(r, m, 1)
	b := manageOn(r, m, 2)
	c := manageOn(r, m, 3)
	b.Tags = 1 << 4

	r.DetachStack(c)
	if m.Sel != a.ID {
		t.Fatalf("expected selection to skip hidden b and land on a, got %d", m.Sel)
	}
}

func TestReplaceAndInsertAfter(t *testing.T) {
	r := newTestRegistry(t)
	m := r.Monitors[0]

	a := manageOn(r, m, 1)
	b := manageOn(r, m, 2)
	c := manageOn(r, m, 3)

	s := r.NewClient(4)
	s.Mon = m
	r.Replace(b, s)
	if !sameIDs(m.Clients, []ClientID{a.ID, s.ID, c.ID}) {
		t.Fatalf("expected s in b's slot, got %v", m.Clients)
	}

	r.InsertAfter(s, b)
	if !sameIDs(m.Clients, []ClientID{a.ID, s.ID, b.ID, c.ID}) {
		t.Fatalf("expected b right after s, got %v", m.Clients)
	}
}

func TestSwapAndPop(t *testing.T) {
	r := newTestRegistry(t)
	m := r.Monitors[0]

	a := manageOn(r, m, 1)
	b := manageOn(r, m, 2)
	c := manageOn(r, m, 3)

	r.Swap(a, c)
	if !sameIDs(m.Clients, []ClientID{c.ID, b.ID, a.ID}) {
		t.Fatalf("expected swapped order, got %v", m.Clients)
	}

	r.Pop(a)
	if !sameIDs(m.Clients, []ClientID{a.ID, c.ID, b.ID}) {
		t.Fatalf("expected a popped to front, got %v", m.Clients)
	}
}

func TestNextVisible_Wraps(t *testing.T) {
	r := newTestRegistry(t)
	m := r.Monitors[0]

	a := manageOn(r, m, 1)
	b := manageOn(r, m, 2)
	c := manageOn(r, m, 3)
	b.Tags = 1 << 2

	visible := func(c *Client) bool { return c.Visible() }
	if got := r.NextVisible(m, a, +1, visible); got != c {
		t.Fatalf("expected next after a to skip b and return c")
	}
	if got := r.NextVisible(m, c, +1, visible); got != a {
		t.Fatalf("expected wrap around to a")
	}
	if got := r.NextVisible(m, a, -1, visible); got != c {
		t.Fatalf("expected previous of a to wrap to c")
	}
}

func TestReconcile_ShrinkMigratesClients(t *testing.T) {
	left := tiling.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := tiling.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}
	r := newTestRegistry(t, left, right)
	if len(r.Monitors) != 2 {
		t.Fatalf("expected 2 monitors, got %d", len(r.Monitors))
	}
	m0, m1 := r.Monitors[0], r.Monitors[1]

	a := manageOn(r, m0, 1)
	b := manageOn(r, m0, 2)
	c := manageOn(r, m1, 3)
	d := manageOn(r, m1, 4)
	hidden := r.NewClient(5)
	hidden.Mon = m1
	d.SwallowedBy = hidden.ID
	r.Selected = m1

	dirty, removed := r.Reconcile([]tiling.Rect{left}, tiling.Rect{Width: 3840, Height: 1080}, 20)
	if !dirty {
		t.Fatalf("expected reconcile to report dirty")
	}
	if len(removed) != 1 || removed[0] != m1 {
		t.Fatalf("expected the second monitor to be removed")
	}
	if len(r.Monitors) != 1 {
		t.Fatalf("expected 1 monitor, got %d", len(r.Monitors))
	}
	if r.Selected != m0 {
		t.Fatalf("expected selection to move to the remaining monitor")
	}

	if !sameIDs(m0.Clients, []ClientID{a.ID, b.ID, c.ID, d.ID}) {
		t.Fatalf("expected migrated clients appended in order, got %v", m0.Clients)
	}
	for _, cl := range []*Client{a, b, c, d, hidden} {
		if cl.Mon != m0 {
			t.Fatalf("expected client %d on remaining monitor", cl.ID)
		}
	}
	stack := ids(r.Stack(m0))
	if len(stack) != 4 {
		t.Fatalf("expected 4 clients in focus stack, got %v", stack)
	}
	for _, cl := range []*Client{c, d} {
		found := false
		for _, id := range stack {
			if id == cl.ID {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected client %d in focus stack", cl.ID)
		}
	}
}

func TestReconcile_GrowAndGeometryChange(t *testing.T) {
	left := tiling.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	r := newTestRegistry(t, left)

	dirty, _ := r.Reconcile([]tiling.Rect{left}, tiling.Rect{Width: 1920, Height: 1080}, 20)
	if dirty {
		t.Fatalf("expected unchanged outputs to be clean")
	}

	right := tiling.Rect{X: 1920, Y: 0, Width: 1280, Height: 1024}
	dirty, _ = r.Reconcile([]tiling.Rect{left, right, right}, tiling.Rect{Width: 3200, Height: 1080}, 20)
	if !dirty || len(r.Monitors) != 2 {
		t.Fatalf("expected a second monitor from deduplicated outputs, got %d", len(r.Monitors))
	}
	m1 := r.Monitors[1]
	if m1.Num != 1 || m1.MFact != 0.55 || m1.Gap != 10 {
		t.Fatalf("expected new monitor with defaults, got %+v", m1)
	}
	if m1.Work != (tiling.Rect{X: 1920, Y: 20, Width: 1280, Height: 1004}) {
		t.Fatalf("unexpected work area %+v", m1.Work)
	}

	wider := tiling.Rect{X: 0, Y: 0, Width: 2560, Height: 1440}
	dirty, _ = r.Reconcile([]tiling.Rect{wider, right}, tiling.Rect{Width: 3840, Height: 1440}, 20)
	if !dirty || r.Monitors[0].Bounds != wider {
		t.Fatalf("expected geometry update on first monitor")
	}
}

func TestReconcile_SyntheticFallback(t *testing.T) {
	r := New(testDefaults())
	screen := tiling.Rect{Width: 1024, Height: 768}

	dirty, _ := r.Reconcile(nil, screen, 20)
	if !dirty || len(r.Monitors) != 1 {
		t.Fatalf("expected one synthetic monitor")
	}
	if r.Monitors[0].Bounds != screen {
		t.Fatalf("expected synthetic monitor to span the screen, got %+v", r.Monitors[0].Bounds)
	}

	dirty, _ = r.Reconcile(nil, screen, 20)
	if dirty {
		t.Fatalf("expected no change when the screen is unchanged")
	}

	bigger := tiling.Rect{Width: 1280, Height: 1024}
	dirty, _ = r.Reconcile(nil, bigger, 20)
	if !dirty || r.Monitors[0].Bounds != bigger {
		t.Fatalf("expected synthetic monitor resize")
	}
}

func TestUpdateBarPos(t *testing.T) {
	m := newMonitor(testDefaults())
	m.Bounds = tiling.Rect{X: 0, Y: 0, Width: 800, Height: 600}

	m.UpdateBarPos(20)
	if m.BarY != 0 || m.Work.Y != 20 || m.Work.Height != 580 {
		t.Fatalf("unexpected top bar layout: bar=%d work=%+v", m.BarY, m.Work)
	}

	m.TopBar = false
	m.UpdateBarPos(20)
	if m.BarY != 580 || m.Work.Y != 0 || m.Work.Height != 580 {
		t.Fatalf("unexpected bottom bar layout: bar=%d work=%+v", m.BarY, m.Work)
	}

	m.ShowBar = false
	m.UpdateBarPos(20)
	if m.BarY != -20 || m.Work != m.Bounds {
		t.Fatalf("unexpected hidden bar layout: bar=%d work=%+v", m.BarY, m.Work)
	}
}
