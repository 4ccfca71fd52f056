//go:build linux

package platform

import (
	"fmt"
	"image"

	"github.com/1broseidon/tagwm/internal/hotkeys"
	"github.com/1broseidon/tagwm/internal/tiling"
	"github.com/1broseidon/tagwm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xcursor"
)

// LinuxBackend implements Backend on top of an X11 connection.
type LinuxBackend struct {
	conn    *x11.Connection
	grab    *hotkeys.Grabber
	check   xproto.Window
	gc      xproto.Gcontext
	cursors map[Cursor]xproto.Cursor

	enter EnterFilter
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend connects to display, becomes its window manager and
// publishes the EWMH support window under name.
func NewLinuxBackend(display, name string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, err
	}
	if err := conn.BecomeWM(); err != nil {
		conn.Close()
		return nil, err
	}

	b := &LinuxBackend{
		conn:    conn,
		grab:    hotkeys.NewGrabber(conn.XUtil, conn.Root),
		cursors: make(map[Cursor]xproto.Cursor),
	}
	for c, shape := range map[Cursor]uint16{
		CursorNormal:  xcursor.LeftPtr,
		CursorMove:    xcursor.Fleur,
		CursorResize:  xcursor.Sizing,
		CursorSwallow: xcursor.BottomSide,
	} {
		if cur, err := xcursor.CreateCursor(conn.XUtil, shape); err == nil {
			b.cursors[c] = cur
		}
	}

	gc, err := xproto.NewGcontextId(conn.XUtil.Conn())
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("allocate graphics context: %w", err)
	}
	xproto.CreateGC(conn.XUtil.Conn(), gc, xproto.Drawable(conn.Root), 0, nil)
	b.gc = gc

	check, err := conn.SetupEWMH(name)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("setup ewmh: %w", err)
	}
	b.check = check
	return b, nil
}

// Close releases server-side resources and disconnects.
func (b *LinuxBackend) Close() {
	x := b.conn.XUtil.Conn()
	for _, cur := range b.cursors {
		xproto.FreeCursor(x, cur)
	}
	xproto.FreeGC(x, b.gc)
	b.conn.TeardownEWMH(b.check)
	b.conn.Focus(0)
	b.conn.Sync()
	b.conn.Close()
}

func (b *LinuxBackend) Root() WindowID {
	return WindowID(b.conn.Root)
}

func (b *LinuxBackend) ScreenSize() (int, int) {
	return b.conn.ScreenSize()
}

// Outputs returns the physical heads in server order.
func (b *LinuxBackend) Outputs() ([]Rect, error) {
	outputs, err := b.conn.Outputs()
	if err != nil {
		return nil, err
	}
	rects := make([]Rect, 0, len(outputs))
	for _, o := range outputs {
		rects = append(rects, Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height})
	}
	return rects, nil
}

// NextEvent blocks for the next translated event.
func (b *LinuxBackend) NextEvent() (Event, error) {
	for {
		ev, xerr := b.conn.XUtil.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			return nil, ErrClosed
		}
		if xerr != nil {
			if x11.IsIgnorable(xerr) {
				continue
			}
			return nil, fmt.Errorf("x11 error: %w", xerr)
		}
		if out := b.translate(ev); out != nil {
			return out, nil
		}
	}
}

func (b *LinuxBackend) translate(ev any) Event {
	root := b.conn.Root
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		return MapRequest{Window: WindowID(e.Window)}
	case xproto.DestroyNotifyEvent:
		return DestroyNotify{Window: WindowID(e.Window)}
	case xproto.UnmapNotifyEvent:
		// The send_event bit is not exposed; the withdraw notification is
		// the copy reported to the root.
		return UnmapNotify{Window: WindowID(e.Window), Synthetic: e.Event == root && e.Window != root}
	case xproto.ConfigureRequestEvent:
		return ConfigureRequest{
			Window:    WindowID(e.Window),
			Mask:      e.ValueMask,
			X:         int(e.X),
			Y:         int(e.Y),
			Width:     int(e.Width),
			Height:    int(e.Height),
			Border:    int(e.BorderWidth),
			Sibling:   WindowID(e.Sibling),
			StackMode: e.StackMode,
		}
	case xproto.ConfigureNotifyEvent:
		return ConfigureNotify{
			Window: WindowID(e.Window),
			Geom:   Rect{X: int(e.X), Y: int(e.Y), Width: int(e.Width), Height: int(e.Height)},
		}
	case xproto.PropertyNotifyEvent:
		return PropertyNotify{
			Window:  WindowID(e.Window),
			Atom:    b.conn.AtomName(e.Atom),
			Deleted: e.State == xproto.PropertyDelete,
		}
	case xproto.ClientMessageEvent:
		return b.clientMessage(e)
	case xproto.EnterNotifyEvent:
		return EnterNotify{
			Window:   WindowID(e.Event),
			Normal:   e.Mode == xproto.NotifyModeNormal,
			Inferior: e.Detail == xproto.NotifyDetailInferior,
			Sequence: e.Sequence,
		}
	case xproto.FocusInEvent:
		return FocusIn{Window: WindowID(e.Event)}
	case xproto.MotionNotifyEvent:
		return MotionNotify{Window: WindowID(e.Event), RootX: int(e.RootX), RootY: int(e.RootY), Time: uint32(e.Time)}
	case xproto.ButtonPressEvent:
		return ButtonPress{
			Window: WindowID(e.Event),
			Button: byte(e.Detail),
			State:  e.State,
			X:      int(e.EventX),
			Y:      int(e.EventY),
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
			Time:   uint32(e.Time),
		}
	case xproto.ButtonReleaseEvent:
		return ButtonRelease{
			Window: WindowID(e.Event),
			Child:  WindowID(e.Child),
			Button: byte(e.Detail),
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
			Time:   uint32(e.Time),
		}
	case xproto.KeyPressEvent:
		return KeyPress{Keysym: b.grab.Keysym(e.Detail), State: e.State}
	case xproto.ExposeEvent:
		return Expose{Window: WindowID(e.Window), Count: int(e.Count)}
	case xproto.MappingNotifyEvent:
		if e.Request == xproto.MappingPointer {
			return MappingNotify{Keyboard: false}
		}
		return MappingNotify{Keyboard: true}
	}
	return nil
}

func (b *LinuxBackend) clientMessage(e xproto.ClientMessageEvent) Event {
	data := e.Data.Data32
	switch b.conn.AtomName(e.Type) {
	case "_NET_WM_STATE":
		if len(data) < 3 {
			return nil
		}
		full := "_NET_WM_STATE_FULLSCREEN"
		if b.conn.AtomName(xproto.Atom(data[1])) == full || b.conn.AtomName(xproto.Atom(data[2])) == full {
			return FullscreenRequest{Window: WindowID(e.Window), Action: int(data[0])}
		}
	case "_NET_ACTIVE_WINDOW":
		return ActivateRequest{Window: WindowID(e.Window)}
	}
	return nil
}

// DiscardEnterEvents syncs with the server and marks every crossing event
// generated so far as stale. They are dropped at dispatch through Stale.
func (b *LinuxBackend) DiscardEnterEvents() {
	b.enter.DiscardThrough(b.conn.Sync())
}

// Stale reports events the loop should drop instead of dispatching.
func (b *LinuxBackend) Stale(ev Event) bool {
	return b.enter.Stale(ev)
}

func (b *LinuxBackend) Children() ([]WindowID, error) {
	wins, err := b.conn.Children()
	if err != nil {
		return nil, err
	}
	out := make([]WindowID, len(wins))
	for i, w := range wins {
		out[i] = WindowID(w)
	}
	return out, nil
}

func (b *LinuxBackend) Attributes(win WindowID) (Attributes, error) {
	or, viewable, err := b.conn.Attributes(xproto.Window(win))
	if err != nil {
		return Attributes{}, err
	}
	return Attributes{OverrideRedirect: or, Viewable: viewable}, nil
}

func (b *LinuxBackend) Geometry(win WindowID) (Rect, int, error) {
	x, y, w, h, bw, err := b.conn.Geometry(xproto.Window(win))
	if err != nil {
		return Rect{}, 0, err
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, bw, nil
}

func (b *LinuxBackend) ClassHint(win WindowID) (string, string, bool) {
	class, err := icccm.WmClassGet(b.conn.XUtil, xproto.Window(win))
	if err != nil {
		return "", "", false
	}
	return class.Class, class.Instance, true
}

func (b *LinuxBackend) Title(win WindowID) string {
	return b.conn.Title(xproto.Window(win))
}

func (b *LinuxBackend) RootName() string {
	return b.conn.RootName()
}

func (b *LinuxBackend) NormalHints(win WindowID) (tiling.NormalHints, bool) {
	nh, err := icccm.WmNormalHintsGet(b.conn.XUtil, xproto.Window(win))
	if err != nil {
		return tiling.NormalHints{}, false
	}
	return tiling.NormalHints{
		Flags:        nh.Flags,
		MinWidth:     int(nh.MinWidth),
		MinHeight:    int(nh.MinHeight),
		MaxWidth:     int(nh.MaxWidth),
		MaxHeight:    int(nh.MaxHeight),
		WidthInc:     int(nh.WidthInc),
		HeightInc:    int(nh.HeightInc),
		MinAspectNum: int(nh.MinAspectNum),
		MinAspectDen: int(nh.MinAspectDen),
		MaxAspectNum: int(nh.MaxAspectNum),
		MaxAspectDen: int(nh.MaxAspectDen),
		BaseWidth:    int(nh.BaseWidth),
		BaseHeight:   int(nh.BaseHeight),
	}, true
}

func (b *LinuxBackend) WMHints(win WindowID) (WMHints, bool) {
	h, err := icccm.WmHintsGet(b.conn.XUtil, xproto.Window(win))
	if err != nil {
		return WMHints{}, false
	}
	return WMHints{
		Urgent:   h.Flags&icccm.HintUrgency != 0,
		HasInput: h.Flags&icccm.HintInput != 0,
		Input:    h.Input != 0,
	}, true
}

func (b *LinuxBackend) ClearUrgency(win WindowID) {
	h, err := icccm.WmHintsGet(b.conn.XUtil, xproto.Window(win))
	if err != nil {
		return
	}
	h.Flags &^= icccm.HintUrgency
	icccm.WmHintsSet(b.conn.XUtil, xproto.Window(win), h)
}

func (b *LinuxBackend) TransientFor(win WindowID) (WindowID, bool) {
	parent, err := icccm.WmTransientForGet(b.conn.XUtil, xproto.Window(win))
	if err != nil || parent == 0 {
		return 0, false
	}
	return WindowID(parent), true
}

func (b *LinuxBackend) WindowType(win WindowID) WindowType {
	w := xproto.Window(win)
	return WindowType{
		Dialog:     b.conn.HasWindowType(w, "_NET_WM_WINDOW_TYPE_DIALOG"),
		Fullscreen: b.conn.HasState(w, "_NET_WM_STATE_FULLSCREEN"),
	}
}

func (b *LinuxBackend) WMState(win WindowID) (int, bool) {
	st, ok := b.conn.WMState(xproto.Window(win))
	return int(st), ok
}

func (b *LinuxBackend) SetWMState(win WindowID, state int) {
	b.conn.SetWMState(xproto.Window(win), uint(state))
}

func (b *LinuxBackend) SetFullscreenState(win WindowID, on bool) {
	b.conn.SetFullscreenState(xproto.Window(win), on)
}

func (b *LinuxBackend) SetClientList(wins []WindowID) {
	list := make([]xproto.Window, len(wins))
	for i, w := range wins {
		list[i] = xproto.Window(w)
	}
	b.conn.SetClientList(list)
}

func (b *LinuxBackend) SetActiveWindow(win WindowID) {
	b.conn.SetActiveWindow(xproto.Window(win))
}

func (b *LinuxBackend) SupportsProtocol(win WindowID, protocol string) bool {
	return b.conn.SupportsProtocol(xproto.Window(win), protocol)
}

func (b *LinuxBackend) SendProtocol(win WindowID, protocol string) error {
	return b.conn.SendProtocol(xproto.Window(win), protocol, xproto.TimeCurrentTime)
}

func (b *LinuxBackend) Configure(win WindowID, r Rect, border int) {
	b.conn.ConfigureWindow(xproto.Window(win), r.X, r.Y, r.Width, r.Height, border)
}

func (b *LinuxBackend) Move(win WindowID, x, y int) {
	b.conn.Window(xproto.Window(win)).Move(x, y)
}

func (b *LinuxBackend) MoveResize(win WindowID, r Rect) {
	b.conn.Window(xproto.Window(win)).MoveResize(r.X, r.Y, r.Width, r.Height)
}

func (b *LinuxBackend) SendConfigureNotify(win WindowID, r Rect, border int) {
	b.conn.SendConfigureNotify(xproto.Window(win), r.X, r.Y, r.Width, r.Height, border)
}

// ForwardConfigure replays an unmanaged window's request unchanged.
func (b *LinuxBackend) ForwardConfigure(req ConfigureRequest) {
	var values []uint32
	fields := []struct {
		bit uint16
		val uint32
	}{
		{ConfigX, uint32(req.X)},
		{ConfigY, uint32(req.Y)},
		{ConfigWidth, uint32(req.Width)},
		{ConfigHeight, uint32(req.Height)},
		{ConfigBorder, uint32(req.Border)},
		{ConfigSibling, uint32(req.Sibling)},
		{ConfigStackMode, uint32(req.StackMode)},
	}
	for _, f := range fields {
		if req.Mask&f.bit != 0 {
			values = append(values, f.val)
		}
	}
	b.conn.ForwardConfigure(xproto.Window(req.Window), req.Mask&0x7f, values)
}

func (b *LinuxBackend) SetBorderWidth(win WindowID, border int) {
	b.conn.SetBorderWidth(xproto.Window(win), border)
}

func (b *LinuxBackend) SetBorderColor(win WindowID, pixel uint32) {
	b.conn.SetBorderColor(xproto.Window(win), pixel)
}

func (b *LinuxBackend) SelectClientInput(win WindowID) {
	b.conn.SelectInput(xproto.Window(win), x11.ClientEventMask)
}

func (b *LinuxBackend) Map(win WindowID) {
	b.conn.Window(xproto.Window(win)).Map()
}

func (b *LinuxBackend) Unmap(win WindowID) {
	b.conn.Window(xproto.Window(win)).Unmap()
}

func (b *LinuxBackend) Raise(win WindowID) {
	b.conn.Window(xproto.Window(win)).Stack(xproto.StackModeAbove)
}

func (b *LinuxBackend) StackBelow(win, sibling WindowID) {
	b.conn.Window(xproto.Window(win)).StackSibling(xproto.Window(sibling), xproto.StackModeBelow)
}

// Kill disconnects the client owning win and destroys its resources.
func (b *LinuxBackend) Kill(win WindowID) {
	x := b.conn.XUtil.Conn()
	xproto.GrabServer(x)
	xproto.SetCloseDownMode(x, xproto.CloseDownDestroyAll)
	xproto.KillClient(x, uint32(win))
	xproto.UngrabServer(x)
}

func (b *LinuxBackend) Focus(win WindowID) {
	b.conn.Focus(xproto.Window(win))
}

func (b *LinuxBackend) GrabKeys(keys []hotkeys.Combo) {
	b.grab.GrabKeys(keys)
}

func (b *LinuxBackend) KeysymFor(key string) (uint32, bool) {
	return b.grab.KeysymFor(key)
}

func (b *LinuxBackend) LockMask() uint16 {
	return b.grab.LockMask()
}

func (b *LinuxBackend) RefreshKeyboard() {
	b.grab.RefreshMapping()
}

func (b *LinuxBackend) GrabButtons(win WindowID, focused bool, buttons []hotkeys.ButtonCombo) {
	b.grab.GrabButtons(xproto.Window(win), focused, buttons)
}

func (b *LinuxBackend) UngrabButtons(win WindowID) {
	b.grab.UngrabButtons(xproto.Window(win))
}

// GrabPointer grabs the pointer on the root window for an interactive
// operation.
func (b *LinuxBackend) GrabPointer(cursor Cursor) bool {
	reply, err := xproto.GrabPointer(b.conn.XUtil.Conn(), false, b.conn.Root,
		xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		0, b.cursors[cursor], xproto.TimeCurrentTime).Reply()
	if err != nil {
		return false
	}
	return reply.Status == xproto.GrabStatusSuccess
}

func (b *LinuxBackend) UngrabPointer() {
	xproto.UngrabPointer(b.conn.XUtil.Conn(), xproto.TimeCurrentTime)
}

func (b *LinuxBackend) QueryPointer() (int, int, bool) {
	reply, err := xproto.QueryPointer(b.conn.XUtil.Conn(), b.conn.Root).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(reply.RootX), int(reply.RootY), true
}

func (b *LinuxBackend) WarpPointer(win WindowID, x, y int) {
	xproto.WarpPointer(b.conn.XUtil.Conn(), 0, xproto.Window(win), 0, 0, 0, 0, int16(x), int16(y))
}

func (b *LinuxBackend) ReplayPointer() {
	xproto.AllowEvents(b.conn.XUtil.Conn(), xproto.AllowReplayPointer, xproto.TimeCurrentTime)
}

// CreateBar creates and maps an override-redirect bar window.
func (b *LinuxBackend) CreateBar(r Rect) (WindowID, error) {
	win := b.conn.Window(0)
	id, err := xproto.NewWindowId(b.conn.XUtil.Conn())
	if err != nil {
		return 0, fmt.Errorf("allocate bar window: %w", err)
	}
	win.Id = id
	win.Create(b.conn.Root, r.X, r.Y, r.Width, r.Height,
		xproto.CwBackPixmap|xproto.CwOverrideRedirect|xproto.CwEventMask|xproto.CwCursor,
		xproto.BackPixmapParentRelative, 1,
		xproto.EventMaskButtonPress|xproto.EventMaskExposure,
		uint32(b.cursors[CursorNormal]))
	icccm.WmClassSet(b.conn.XUtil, id, &icccm.WmClass{Instance: "tagwm", Class: "tagwm"})
	win.Map()
	win.Stack(xproto.StackModeAbove)
	return WindowID(id), nil
}

func (b *LinuxBackend) DestroyWindow(win WindowID) {
	xproto.UnmapWindow(b.conn.XUtil.Conn(), xproto.Window(win))
	xproto.DestroyWindow(b.conn.XUtil.Conn(), xproto.Window(win))
}

// DrawBar uploads img as a ZPixmap, split into bands that fit the maximum
// request length.
func (b *LinuxBackend) DrawBar(win WindowID, img *image.RGBA) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	maxBytes := int(b.conn.XUtil.Setup().MaximumRequestLength)*4 - 32
	rows := max(1, min(h, maxBytes/(w*4)))

	x := b.conn.XUtil.Conn()
	for y0 := 0; y0 < h; y0 += rows {
		n := min(rows, h-y0)
		data := make([]byte, 0, w*n*4)
		for y := y0; y < y0+n; y++ {
			row := img.Pix[(y)*img.Stride : (y)*img.Stride+w*4]
			for i := 0; i < len(row); i += 4 {
				data = append(data, row[i+2], row[i+1], row[i], 0)
			}
		}
		xproto.PutImage(x, xproto.ImageFormatZPixmap, xproto.Drawable(win), b.gc,
			uint16(w), uint16(n), 0, int16(y0), 0, b.conn.Depth(), data)
	}
}
