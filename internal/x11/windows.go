package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// ClientEventMask is selected on every managed window.
const ClientEventMask = xproto.EventMaskEnterWindow |
	xproto.EventMaskFocusChange |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskStructureNotify

// Window wraps win for the xwindow helpers.
func (c *Connection) Window(win xproto.Window) *xwindow.Window {
	return xwindow.New(c.XUtil, win)
}

// ConfigureWindow sets position, size and border width in one request.
func (c *Connection) ConfigureWindow(win xproto.Window, x, y, width, height, border int) {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight |
		xproto.ConfigWindowBorderWidth)
	xproto.ConfigureWindow(c.XUtil.Conn(), win, mask, []uint32{
		uint32(x), uint32(y), uint32(max(width, 1)), uint32(max(height, 1)), uint32(border),
	})
}

// SetBorderWidth changes only the border width.
func (c *Connection) SetBorderWidth(win xproto.Window, border int) {
	xproto.ConfigureWindow(c.XUtil.Conn(), win, xproto.ConfigWindowBorderWidth, []uint32{uint32(border)})
}

// SetBorderColor changes the border pixel.
func (c *Connection) SetBorderColor(win xproto.Window, pixel uint32) {
	xproto.ChangeWindowAttributes(c.XUtil.Conn(), win, xproto.CwBorderPixel, []uint32{pixel})
}

// SendConfigureNotify tells a client its current geometry with a synthetic
// ConfigureNotify.
func (c *Connection) SendConfigureNotify(win xproto.Window, x, y, width, height, border int) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            win,
		Window:           win,
		AboveSibling:     xevent.NoWindow,
		X:                int16(x),
		Y:                int16(y),
		Width:            uint16(width),
		Height:           uint16(height),
		BorderWidth:      uint16(border),
		OverrideRedirect: false,
	}
	xproto.SendEvent(c.XUtil.Conn(), false, win, xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

// ForwardConfigure replays a configure request verbatim. values must follow
// X's value-mask order.
func (c *Connection) ForwardConfigure(win xproto.Window, mask uint16, values []uint32) {
	xproto.ConfigureWindow(c.XUtil.Conn(), win, mask, values)
}

// SelectInput sets the event mask of a window.
func (c *Connection) SelectInput(win xproto.Window, mask uint32) {
	xproto.ChangeWindowAttributes(c.XUtil.Conn(), win, xproto.CwEventMask, []uint32{mask})
}

// Children returns the root's direct children, bottom to top.
func (c *Connection) Children() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("query tree: %w", err)
	}
	return tree.Children, nil
}

// Attributes returns the override-redirect flag and whether win is viewable.
func (c *Connection) Attributes(win xproto.Window) (overrideRedirect, viewable bool, err error) {
	attr, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return false, false, err
	}
	return attr.OverrideRedirect, attr.MapState == xproto.MapStateViewable, nil
}

// Geometry returns position, size and border width of win.
func (c *Connection) Geometry(win xproto.Window) (x, y, width, height, border int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}
	return int(geom.X), int(geom.Y), int(geom.Width), int(geom.Height), int(geom.BorderWidth), nil
}

// WMState reads the ICCCM WM_STATE value.
func (c *Connection) WMState(win xproto.Window) (uint, bool) {
	st, err := icccm.WmStateGet(c.XUtil, win)
	if err != nil {
		return 0, false
	}
	return st.State, true
}

// SetWMState writes the ICCCM WM_STATE value.
func (c *Connection) SetWMState(win xproto.Window, state uint) {
	icccm.WmStateSet(c.XUtil, win, &icccm.WmState{State: state})
}

// SupportsProtocol reports whether win lists name in WM_PROTOCOLS.
func (c *Connection) SupportsProtocol(win xproto.Window, name string) bool {
	protocols, err := icccm.WmProtocolsGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, p := range protocols {
		if p == name {
			return true
		}
	}
	return false
}

// SendProtocol delivers a WM_PROTOCOLS client message such as
// WM_DELETE_WINDOW or WM_TAKE_FOCUS.
func (c *Connection) SendProtocol(win xproto.Window, name string, time xproto.Timestamp) error {
	protocols, err := xprop.Atm(c.XUtil, "WM_PROTOCOLS")
	if err != nil {
		return err
	}
	atom, err := xprop.Atm(c.XUtil, name)
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   protocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(atom), uint32(time), 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		win,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}

// Focus gives input focus to win, or to the pointer root when win is zero.
func (c *Connection) Focus(win xproto.Window) {
	if win == 0 {
		xproto.SetInputFocus(c.XUtil.Conn(), xproto.InputFocusPointerRoot, xproto.InputFocusPointerRoot, xproto.TimeCurrentTime)
		return
	}
	xproto.SetInputFocus(c.XUtil.Conn(), xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime)
}

// Sync waits for the server to process every request sent so far and returns
// the sequence number of the round trip.
func (c *Connection) Sync() uint16 {
	cookie := xproto.GetInputFocus(c.XUtil.Conn())
	cookie.Reply()
	return cookie.Sequence
}
