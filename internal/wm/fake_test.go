package wm

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/1broseidon/tagwm/internal/config"
	"github.com/1broseidon/tagwm/internal/hotkeys"
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

const fakeRoot platform.WindowID = 1

type fakeWindow struct {
	geom      tiling.Rect
	border    int
	class     string
	instance  string
	hasClass  bool
	title     string
	transient platform.WindowID
	hints     tiling.NormalHints
	wmHints   platform.WMHints
	hasHints  bool
	wtype     platform.WindowType
	state     int
	hasState  bool
	protocols map[string]bool
	override  bool
	viewable  bool
	mapped    bool
	fullscr   bool
	bar       bool
}

// fakeBackend records what the manager asks of the display.
type fakeBackend struct {
	width, height int
	outputs       []tiling.Rect
	windows       map[platform.WindowID]*fakeWindow
	order         []platform.WindowID
	nextWin       platform.WindowID

	rootName   string
	focused    platform.WindowID
	active     platform.WindowID
	clientList []platform.WindowID
	protocols  []string
	killed     []platform.WindowID
	forwarded  []platform.ConfigureRequest
	notifies   map[platform.WindowID]tiling.Rect
	grabbedKey []hotkeys.Combo
	pointerX   int
	pointerY   int
	grabbed    bool
	cursor     platform.Cursor
	replayed   int
	draws      int
	keysyms    map[string]uint32
}

func newFakeBackend(w, h int) *fakeBackend {
	return &fakeBackend{
		width:    w,
		height:   h,
		windows:  make(map[platform.WindowID]*fakeWindow),
		nextWin:  0x400000,
		notifies: make(map[platform.WindowID]tiling.Rect),
		keysyms:  map[string]uint32{"j": 0x6a, "k": 0x6b, "Return": 0xff0d, "q": 0x71},
	}
}

// addWindow creates an unmanaged top-level window with a WM_CLASS.
func (b *fakeBackend) addWindow(class string, geom tiling.Rect) platform.WindowID {
	b.nextWin++
	id := b.nextWin
	b.windows[id] = &fakeWindow{geom: geom, class: class, instance: class, hasClass: true, title: class}
	b.order = append(b.order, id)
	return id
}

func (b *fakeBackend) win(id platform.WindowID) *fakeWindow {
	if w, ok := b.windows[id]; ok {
		return w
	}
	return &fakeWindow{}
}

func (b *fakeBackend) Root() platform.WindowID { return fakeRoot }
func (b *fakeBackend) ScreenSize() (int, int)  { return b.width, b.height }
func (b *fakeBackend) Outputs() ([]platform.Rect, error) {
	return b.outputs, nil
}
func (b *fakeBackend) NextEvent() (platform.Event, error) { return nil, platform.ErrClosed }
func (b *fakeBackend) Close()                             {}

func (b *fakeBackend) Children() ([]platform.WindowID, error) {
	return append([]platform.WindowID(nil), b.order...), nil
}

func (b *fakeBackend) Attributes(win platform.WindowID) (platform.Attributes, error) {
	w, ok := b.windows[win]
	if !ok {
		return platform.Attributes{}, errors.New("BadWindow")
	}
	return platform.Attributes{OverrideRedirect: w.override, Viewable: w.viewable}, nil
}

func (b *fakeBackend) Geometry(win platform.WindowID) (platform.Rect, int, error) {
	w, ok := b.windows[win]
	if !ok {
		return platform.Rect{}, 0, errors.New("BadDrawable")
	}
	return w.geom, w.border, nil
}

func (b *fakeBackend) ClassHint(win platform.WindowID) (string, string, bool) {
	w := b.win(win)
	return w.class, w.instance, w.hasClass
}

func (b *fakeBackend) Title(win platform.WindowID) string { return b.win(win).title }
func (b *fakeBackend) RootName() string                   { return b.rootName }

func (b *fakeBackend) NormalHints(win platform.WindowID) (tiling.NormalHints, bool) {
	w := b.win(win)
	return w.hints, w.hints.Flags != 0
}

func (b *fakeBackend) WMHints(win platform.WindowID) (platform.WMHints, bool) {
	w := b.win(win)
	return w.wmHints, w.hasHints
}

func (b *fakeBackend) ClearUrgency(win platform.WindowID) { b.win(win).wmHints.Urgent = false }

func (b *fakeBackend) TransientFor(win platform.WindowID) (platform.WindowID, bool) {
	w := b.win(win)
	return w.transient, w.transient != 0
}

func (b *fakeBackend) WindowType(win platform.WindowID) platform.WindowType { return b.win(win).wtype }

func (b *fakeBackend) WMState(win platform.WindowID) (int, bool) {
	w := b.win(win)
	return w.state, w.hasState
}

func (b *fakeBackend) SetWMState(win platform.WindowID, state int) {
	w := b.win(win)
	w.state, w.hasState = state, true
}

func (b *fakeBackend) SetFullscreenState(win platform.WindowID, on bool) { b.win(win).fullscr = on }
func (b *fakeBackend) SetClientList(wins []platform.WindowID) {
	b.clientList = append([]platform.WindowID(nil), wins...)
}
func (b *fakeBackend) SetActiveWindow(win platform.WindowID) { b.active = win }

func (b *fakeBackend) SupportsProtocol(win platform.WindowID, protocol string) bool {
	return b.win(win).protocols[protocol]
}

func (b *fakeBackend) SendProtocol(win platform.WindowID, protocol string) error {
	b.protocols = append(b.protocols, fmt.Sprintf("%#x:%s", win, protocol))
	return nil
}

func (b *fakeBackend) Configure(win platform.WindowID, r platform.Rect, border int) {
	w := b.win(win)
	w.geom, w.border = r, border
}

func (b *fakeBackend) Move(win platform.WindowID, x, y int) {
	w := b.win(win)
	w.geom.X, w.geom.Y = x, y
}

func (b *fakeBackend) MoveResize(win platform.WindowID, r platform.Rect) { b.win(win).geom = r }

func (b *fakeBackend) SendConfigureNotify(win platform.WindowID, r platform.Rect, border int) {
	b.notifies[win] = r
}

func (b *fakeBackend) ForwardConfigure(req platform.ConfigureRequest) {
	b.forwarded = append(b.forwarded, req)
}

func (b *fakeBackend) SetBorderWidth(win platform.WindowID, border int)  { b.win(win).border = border }
func (b *fakeBackend) SetBorderColor(win platform.WindowID, pixel uint32) {}
func (b *fakeBackend) SelectClientInput(win platform.WindowID)            {}
func (b *fakeBackend) Map(win platform.WindowID)                          { b.win(win).mapped = true }
func (b *fakeBackend) Unmap(win platform.WindowID)                        { b.win(win).mapped = false }
func (b *fakeBackend) Raise(win platform.WindowID)                        {}
func (b *fakeBackend) StackBelow(win, sibling platform.WindowID)          {}
func (b *fakeBackend) Kill(win platform.WindowID)                         { b.killed = append(b.killed, win) }
func (b *fakeBackend) Focus(win platform.WindowID)                        { b.focused = win }
func (b *fakeBackend) DiscardEnterEvents()                                {}

func (b *fakeBackend) GrabKeys(keys []hotkeys.Combo) { b.grabbedKey = keys }
func (b *fakeBackend) KeysymFor(key string) (uint32, bool) {
	sym, ok := b.keysyms[key]
	return sym, ok
}
func (b *fakeBackend) LockMask() uint16 { return hotkeys.Mod2 }
func (b *fakeBackend) RefreshKeyboard() {}
func (b *fakeBackend) GrabButtons(win platform.WindowID, focused bool, buttons []hotkeys.ButtonCombo) {
}
func (b *fakeBackend) UngrabButtons(win platform.WindowID) {}

func (b *fakeBackend) GrabPointer(cursor platform.Cursor) bool {
	b.grabbed, b.cursor = true, cursor
	return true
}
func (b *fakeBackend) UngrabPointer() { b.grabbed = false }
func (b *fakeBackend) QueryPointer() (int, int, bool) {
	return b.pointerX, b.pointerY, true
}
func (b *fakeBackend) WarpPointer(win platform.WindowID, x, y int) {
	g := b.win(win).geom
	b.pointerX, b.pointerY = g.X+x, g.Y+y
}
func (b *fakeBackend) ReplayPointer() { b.replayed++ }

func (b *fakeBackend) CreateBar(r platform.Rect) (platform.WindowID, error) {
	b.nextWin++
	b.windows[b.nextWin] = &fakeWindow{geom: r, override: true, mapped: true, bar: true}
	return b.nextWin, nil
}
func (b *fakeBackend) DestroyWindow(win platform.WindowID) { delete(b.windows, win) }
func (b *fakeBackend) DrawBar(win platform.WindowID, img *image.RGBA) {
	b.draws++
}

// fakeLauncher records launched commands.
type fakeLauncher struct {
	started [][]string
	envs    [][]string
	ran     [][]string
}

func (l *fakeLauncher) Start(argv, env []string) error {
	l.started = append(l.started, argv)
	l.envs = append(l.envs, env)
	return nil
}

func (l *fakeLauncher) Run(argv []string) error {
	l.ran = append(l.ran, argv)
	return nil
}

// testConfig is the default config without bar, gaps or borders so tile
// geometry is easy to reason about.
func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.ShowBar = false
	cfg.GapPx = 0
	cfg.BorderPx = 0
	cfg.MFact = 0.5
	cfg.Rules = nil
	return cfg
}

func newTestManager(t *testing.T, cfg *config.Config, outputs ...tiling.Rect) (*Manager, *fakeBackend, *fakeLauncher) {
	t.Helper()
	b := newFakeBackend(1000, 800)
	b.outputs = outputs
	l := &fakeLauncher{}
	m, err := New(b, Options{
		Config:   cfg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Version:  "test",
		Launcher: l,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	m.Setup()
	return m, b, l
}

// mapWindow creates a window and delivers its MapRequest.
func mapWindow(m *Manager, b *fakeBackend, class string) platform.WindowID {
	win := b.addWindow(class, tiling.Rect{X: 10, Y: 10, Width: 300, Height: 200})
	m.Handle(platform.MapRequest{Window: win})
	return win
}

// setRootName changes the root name and delivers the PropertyNotify.
func setRootName(m *Manager, b *fakeBackend, name string) {
	b.rootName = name
	m.Handle(platform.PropertyNotify{Window: fakeRoot, Atom: "WM_NAME"})
}
