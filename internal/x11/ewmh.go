package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Supported is the _NET_SUPPORTED list advertised on the root window.
var Supported = []string{
	"_NET_SUPPORTED",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_CLIENT_LIST",
}

// SetupEWMH creates the supporting-WM check window and announces the
// supported hints. The check window is returned for teardown.
func (c *Connection) SetupEWMH(name string) (xproto.Window, error) {
	check, err := xwindow.Create(c.XUtil, c.Root)
	if err != nil {
		return 0, fmt.Errorf("create check window: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, check.Id, check.Id); err != nil {
		return 0, err
	}
	if err := ewmh.WmNameSet(c.XUtil, check.Id, name); err != nil {
		return 0, err
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.Root, check.Id); err != nil {
		return 0, err
	}
	if err := ewmh.SupportedSet(c.XUtil, Supported); err != nil {
		return 0, err
	}
	xproto.DeleteProperty(c.XUtil.Conn(), c.Root, c.atom("_NET_CLIENT_LIST"))
	return check.Id, nil
}

// TeardownEWMH removes what SetupEWMH and the manager published.
func (c *Connection) TeardownEWMH(check xproto.Window) {
	if check != 0 {
		c.Window(check).Destroy()
	}
	xproto.DeleteProperty(c.XUtil.Conn(), c.Root, c.atom("_NET_ACTIVE_WINDOW"))
}

// SetClientList replaces _NET_CLIENT_LIST.
func (c *Connection) SetClientList(wins []xproto.Window) {
	ewmh.ClientListSet(c.XUtil, wins)
}

// SetActiveWindow updates _NET_ACTIVE_WINDOW. Zero removes the property.
func (c *Connection) SetActiveWindow(win xproto.Window) {
	if win == 0 {
		xproto.DeleteProperty(c.XUtil.Conn(), c.Root, c.atom("_NET_ACTIVE_WINDOW"))
		return
	}
	ewmh.ActiveWindowSet(c.XUtil, win)
}

// SetFullscreenState writes or clears _NET_WM_STATE_FULLSCREEN.
func (c *Connection) SetFullscreenState(win xproto.Window, on bool) {
	if on {
		ewmh.WmStateSet(c.XUtil, win, []string{"_NET_WM_STATE_FULLSCREEN"})
		return
	}
	ewmh.WmStateSet(c.XUtil, win, []string{})
}

// HasState reports whether win's _NET_WM_STATE contains state.
func (c *Connection) HasState(win xproto.Window, state string) bool {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}

// HasWindowType reports whether win's _NET_WM_WINDOW_TYPE contains typ.
func (c *Connection) HasWindowType(win xproto.Window, typ string) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == typ {
			return true
		}
	}
	return false
}

// Title returns _NET_WM_NAME, falling back to WM_NAME.
func (c *Connection) Title(win xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, win); err == nil && title != "" {
		return title
	}
	if title, err := icccm.WmNameGet(c.XUtil, win); err == nil {
		return title
	}
	return ""
}

// RootName returns the root window's WM_NAME.
func (c *Connection) RootName() string {
	name, err := icccm.WmNameGet(c.XUtil, c.Root)
	if err != nil {
		return ""
	}
	return name
}

// SetRootName writes the root window's WM_NAME.
func (c *Connection) SetRootName(name string) error {
	return icccm.WmNameSet(c.XUtil, c.Root, name)
}

// AtomName resolves an atom through xgbutil's cache.
func (c *Connection) AtomName(atom xproto.Atom) string {
	name, err := xprop.AtomName(c.XUtil, atom)
	if err != nil {
		return ""
	}
	return name
}

func (c *Connection) atom(name string) xproto.Atom {
	a, err := xprop.Atm(c.XUtil, name)
	if err != nil {
		return xproto.AtomNone
	}
	return a
}
