package hotkeys

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Grabber owns the passive key and button grabs of the window manager.
type Grabber struct {
	xu    *xgbutil.XUtil
	root  xproto.Window
	locks uint16
}

// NewGrabber reads the modifier map and prepares lock-modifier handling.
func NewGrabber(xu *xgbutil.XUtil, root xproto.Window) *Grabber {
	g := &Grabber{xu: xu, root: root}
	g.configureIgnoreMods()
	return g
}

// LockMask is the union of the NumLock and ScrollLock modifiers.
func (g *Grabber) LockMask() uint16 {
	return g.locks
}

// RefreshMapping reloads the keyboard and modifier maps after a
// MappingNotify.
func (g *Grabber) RefreshMapping() {
	keyMap, modMap := keybind.MapsGet(g.xu)
	keybind.KeyMapSet(g.xu, keyMap)
	keybind.ModMapSet(g.xu, modMap)
	g.configureIgnoreMods()
}

// GrabKeys replaces every key grab on the root window.
func (g *Grabber) GrabKeys(combos []Combo) {
	xproto.UngrabKey(g.xu.Conn(), xproto.GrabAny, g.root, xproto.ModMaskAny)
	for _, c := range combos {
		for _, kc := range keybind.StrToKeycodes(g.xu, c.Key) {
			keybind.Grab(g.xu, g.root, c.Mods, kc)
		}
	}
}

// GrabButtons installs the client-window button grabs. Unfocused windows
// additionally grab every button so a click can focus them.
func (g *Grabber) GrabButtons(win xproto.Window, focused bool, buttons []ButtonCombo) {
	g.UngrabButtons(win)
	if !focused {
		xproto.GrabButton(g.xu.Conn(), false, win,
			xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease,
			xproto.GrabModeSync, xproto.GrabModeSync, 0, 0,
			xproto.ButtonIndexAny, xproto.ModMaskAny)
	}
	for _, b := range buttons {
		mousebind.Grab(g.xu, win, b.Mods, xproto.Button(b.Button), false)
	}
}

// UngrabButtons drops every button grab on win.
func (g *Grabber) UngrabButtons(win xproto.Window) {
	xproto.UngrabButton(g.xu.Conn(), xproto.ButtonIndexAny, win, xproto.ModMaskAny)
}

// Keysym returns the unshifted keysym of a keycode.
func (g *Grabber) Keysym(code xproto.Keycode) uint32 {
	return uint32(keybind.KeysymGet(g.xu, code, 0))
}

// KeysymFor resolves a key name to the unshifted keysym of its first keycode.
func (g *Grabber) KeysymFor(key string) (uint32, bool) {
	codes := keybind.StrToKeycodes(g.xu, key)
	if len(codes) == 0 {
		return 0, false
	}
	return g.Keysym(codes[0]), true
}

func (g *Grabber) configureIgnoreMods() {
	numLock := g.modMaskForKeysym("Num_Lock")
	scrollLock := g.modMaskForKeysym("Scroll_Lock")
	if scrollLock == numLock {
		scrollLock = 0
	}
	g.locks = numLock | scrollLock

	// CapsLock is always ignored.
	xevent.IgnoreMods = IgnoreMasks(ModLock, numLock, scrollLock)
}

func (g *Grabber) modMaskForKeysym(keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(g.xu, keysym) {
		if mask := keybind.ModGet(g.xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
