package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xcursor"
)

// ErrOtherWM is returned when substructure redirection on the root window is
// already owned by another client.
var ErrOtherWM = errors.New("another window manager is already running")

// RootEventMask is what a window manager listens to on the root window.
const RootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskButtonPress |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection establishes a connection to the X11 server. An empty display
// uses $DISPLAY.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("cannot open display: %w", err)
	}

	// Key and modifier maps are needed for bindings.
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// BecomeWM claims substructure redirection on the root window and installs
// the default cursor.
func (c *Connection) BecomeWM() error {
	err := xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), c.Root,
		xproto.CwEventMask, []uint32{RootEventMask}).Check()
	if err != nil {
		var access xproto.AccessError
		if errors.As(err, &access) {
			return ErrOtherWM
		}
		return fmt.Errorf("select root input: %w", err)
	}

	if cur, err := xcursor.CreateCursor(c.XUtil, xcursor.LeftPtr); err == nil {
		xproto.ChangeWindowAttributes(c.XUtil.Conn(), c.Root, xproto.CwCursor, []uint32{uint32(cur)})
	}
	return nil
}

// ScreenSize returns the virtual screen dimensions from the connection setup.
func (c *Connection) ScreenSize() (int, int) {
	s := c.XUtil.Screen()
	return int(s.WidthInPixels), int(s.HeightInPixels)
}

// Depth returns the default screen depth.
func (c *Connection) Depth() byte {
	return c.XUtil.Screen().RootDepth
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
