// Package wm is the window manager state machine. A Manager consumes display
// events one at a time and keeps clients, monitors, swallow chains and focus
// consistent before each event returns.
package wm

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/tagwm/internal/bar"
	"github.com/1broseidon/tagwm/internal/config"
	"github.com/1broseidon/tagwm/internal/hotkeys"
	"github.com/1broseidon/tagwm/internal/movemode"
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/registry"
	"github.com/1broseidon/tagwm/internal/swallow"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// Options configures a Manager.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	// Version is shown as status text while the root window has no name.
	Version string
	// Launcher starts external programs. Nil uses detached child processes.
	Launcher Launcher
}

type keyBinding struct {
	combo  hotkeys.Combo
	keysym uint32
	action config.Action
	arg    config.Arg
}

type buttonBinding struct {
	click  config.Click
	combo  hotkeys.ButtonCombo
	action config.Action
	arg    config.Arg
}

// Manager owns all window manager state. It is not safe for concurrent use;
// every method runs on the event loop goroutine.
type Manager struct {
	backend  platform.Backend
	cfg      *config.Config
	logger   *slog.Logger
	launcher Launcher
	version  string

	reg      *registry.Registry
	swallows *swallow.Registry
	bar      *bar.Renderer
	session  movemode.Session

	keys        []keyBinding
	buttons     []buttonBinding
	clientGrabs []hotkeys.ButtonCombo
	layouts     []tiling.Layout
	tagMask     uint32
	barHeight   int
	normBorder  uint32
	selBorder   uint32
	root        platform.WindowID
	screen      tiling.Rect
	status      string
	pointerMon  *registry.Monitor
	running     bool
	restart     bool
}

// New builds a Manager on top of backend. Nothing is sent to the display
// until Setup.
func New(backend platform.Backend, opts Options) (*Manager, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	launcher := opts.Launcher
	if launcher == nil {
		launcher = execLauncher{logger: logger}
	}

	renderer, err := bar.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create bar renderer: %w", err)
	}

	layouts := cfg.TilingLayouts()
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no usable layouts configured")
	}

	m := &Manager{
		backend:  backend,
		cfg:      cfg,
		logger:   logger,
		launcher: launcher,
		version:  opts.Version,
		reg: registry.New(registry.MonitorDefaults{
			MFact:   cfg.MFact,
			NMaster: cfg.NMaster,
			Gap:     cfg.GapPx,
			ShowBar: cfg.ShowBar,
			TopBar:  cfg.TopBar,
			Layouts: layouts,
		}),
		swallows:   swallow.NewRegistry(cfg.Swallow.Decay),
		bar:        renderer,
		layouts:    layouts,
		tagMask:    cfg.TagMask(),
		barHeight:  renderer.Height(),
		normBorder: config.Pixel(cfg.Colors.Normal.Border),
		selBorder:  config.Pixel(cfg.Colors.Selected.Border),
		root:       backend.Root(),
		running:    true,
	}

	if err := m.loadBindings(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) loadBindings() error {
	ntags, nlayouts := len(m.cfg.Tags), len(m.cfg.Layouts)
	for i, k := range m.cfg.Keys {
		combo, err := hotkeys.ParseCombo(k.Key)
		if err != nil {
			return fmt.Errorf("keys.%d: %w", i, err)
		}
		arg, err := config.ParseArg(k.Action, k.Arg, ntags, nlayouts)
		if err != nil {
			return fmt.Errorf("keys.%d: %w", i, err)
		}
		m.keys = append(m.keys, keyBinding{combo: combo, action: k.Action, arg: arg})
	}
	for i, b := range m.cfg.Buttons {
		combo, err := hotkeys.ParseButton(b.Button)
		if err != nil {
			return fmt.Errorf("buttons.%d: %w", i, err)
		}
		arg, err := config.ParseArg(b.Action, b.Arg, ntags, nlayouts)
		if err != nil {
			return fmt.Errorf("buttons.%d: %w", i, err)
		}
		m.buttons = append(m.buttons, buttonBinding{click: b.Click, combo: combo, action: b.Action, arg: arg})
		if b.Click == config.ClickClientWindow {
			m.clientGrabs = append(m.clientGrabs, combo)
		}
	}
	return nil
}

// Setup discovers monitors, creates the bars, grabs the key bindings and
// focuses the root. Existing windows are adopted separately by Scan.
func (m *Manager) Setup() {
	w, h := m.backend.ScreenSize()
	m.screen = tiling.Rect{Width: w, Height: h}
	m.updateGeometry()
	m.updateBars()
	m.updateStatus()
	m.backend.SetClientList(nil)
	m.grabKeys()
	m.focus(nil)
	m.logger.Info("window manager ready", "monitors", len(m.reg.Monitors), "screen", fmt.Sprintf("%dx%d", w, h))
}

// Scan adopts windows that existed before the manager started. Transient
// windows go second so their parents are already known.
func (m *Manager) Scan() {
	wins, err := m.backend.Children()
	if err != nil {
		m.logger.Warn("failed to list existing windows", "error", err)
		return
	}

	var transients []platform.WindowID
	for _, win := range wins {
		attrs, err := m.backend.Attributes(win)
		if err != nil || attrs.OverrideRedirect {
			continue
		}
		if _, ok := m.backend.TransientFor(win); ok {
			if m.adoptable(win, attrs) {
				transients = append(transients, win)
			}
			continue
		}
		if m.adoptable(win, attrs) {
			m.adopt(win)
		}
	}
	for _, win := range transients {
		m.adopt(win)
	}
}

func (m *Manager) adoptable(win platform.WindowID, attrs platform.Attributes) bool {
	if attrs.Viewable {
		return true
	}
	state, ok := m.backend.WMState(win)
	return ok && state == platform.IconicState
}

func (m *Manager) adopt(win platform.WindowID) {
	geom, border, err := m.backend.Geometry(win)
	if err != nil {
		m.logger.Debug("window vanished before adoption", "window", win, "error", err)
		return
	}
	m.manage(win, geom, border)
}

// Running reports whether the manager still wants events.
func (m *Manager) Running() bool {
	return m.running
}

// Restart reports whether the last quit asked for an in-place restart.
func (m *Manager) Restart() bool {
	return m.restart
}

// Cleanup shows every tag, releases every client and destroys the bars.
// It is skipped on restart.
func (m *Manager) Cleanup() {
	if sel := m.reg.Selected; sel != nil {
		m.view(^uint32(0))
		sel.Layouts[sel.SelLayout] = tiling.Layout{Kind: tiling.KindFloat}
	}
	for _, mon := range m.reg.Monitors {
		for len(mon.Stack) > 0 {
			m.unmanage(m.reg.Client(mon.Stack[0]), false)
		}
	}
	m.swallows.UnqueueAll()
	m.backend.GrabKeys(nil)
	for _, mon := range m.reg.Monitors {
		if mon.BarWin != 0 {
			m.backend.DestroyWindow(mon.BarWin)
			mon.BarWin = 0
		}
	}
	m.backend.Focus(0)
	m.backend.SetActiveWindow(0)
	m.logger.Info("window manager cleaned up")
}

// Handle processes one event. While a pointer session is active only the
// events it needs are handled; the rest are replayed when it ends.
func (m *Manager) Handle(ev platform.Event) {
	if m.session.Active() {
		if !m.session.Filter(ev) {
			return
		}
		switch e := ev.(type) {
		case platform.MotionNotify:
			m.sessionMotion(e)
			return
		case platform.ButtonRelease:
			m.sessionRelease(e)
			return
		}
	}

	switch e := ev.(type) {
	case platform.MapRequest:
		m.mapRequest(e)
	case platform.DestroyNotify:
		m.destroyNotify(e)
	case platform.UnmapNotify:
		m.unmapNotify(e)
	case platform.ConfigureRequest:
		m.configureRequest(e)
	case platform.ConfigureNotify:
		m.configureNotify(e)
	case platform.PropertyNotify:
		m.propertyNotify(e)
	case platform.FullscreenRequest:
		m.fullscreenRequest(e)
	case platform.ActivateRequest:
		m.activateRequest(e)
	case platform.EnterNotify:
		m.enterNotify(e)
	case platform.FocusIn:
		m.focusIn(e)
	case platform.MotionNotify:
		m.motionNotify(e)
	case platform.ButtonPress:
		m.buttonPress(e)
	case platform.KeyPress:
		m.keyPress(e)
	case platform.Expose:
		m.expose(e)
	case platform.MappingNotify:
		m.mappingNotify(e)
	}
}

func (m *Manager) selected() *registry.Client {
	return m.reg.SelectedClient(m.reg.Selected)
}

// updateGeometry reconciles monitors with the reported outputs.
func (m *Manager) updateGeometry() bool {
	outputs, err := m.backend.Outputs()
	if err != nil {
		m.logger.Warn("failed to query outputs, using the whole screen", "error", err)
		outputs = nil
	}
	dirty, removed := m.reg.Reconcile(outputs, m.screen, m.barHeight)
	for _, mon := range removed {
		if mon.BarWin != 0 {
			m.backend.DestroyWindow(mon.BarWin)
		}
		if m.pointerMon == mon {
			m.pointerMon = nil
		}
	}
	if dirty {
		m.reg.Selected = m.pointerMonitor()
		m.logger.Debug("monitors reconciled", "monitors", len(m.reg.Monitors))
	}
	return dirty
}

// pointerMonitor returns the monitor under the pointer.
func (m *Manager) pointerMonitor() *registry.Monitor {
	if x, y, ok := m.backend.QueryPointer(); ok {
		return m.reg.RectToMonitor(tiling.Rect{X: x, Y: y, Width: 1, Height: 1})
	}
	return m.reg.Selected
}

// windowMonitor maps a window to the monitor it belongs to.
func (m *Manager) windowMonitor(win platform.WindowID) *registry.Monitor {
	if win == m.root {
		return m.pointerMonitor()
	}
	if mon := m.reg.MonitorByBar(win); mon != nil {
		return mon
	}
	if c := m.reg.Visible(win); c != nil {
		return c.Mon
	}
	return m.reg.Selected
}

func (m *Manager) updateClientList() {
	var wins []platform.WindowID
	for _, c := range m.reg.Heads() {
		for _, d := range m.reg.Chain(c) {
			wins = append(wins, d.Window)
		}
	}
	m.backend.SetClientList(wins)
}

func (m *Manager) grabKeys() {
	combos := make([]hotkeys.Combo, 0, len(m.keys))
	for i := range m.keys {
		k := &m.keys[i]
		k.keysym, _ = m.backend.KeysymFor(k.combo.Key)
		combos = append(combos, k.combo)
	}
	m.backend.GrabKeys(combos)
}

func (m *Manager) grabButtons(c *registry.Client, focused bool) {
	m.backend.GrabButtons(c.Window, focused, m.clientGrabs)
}
