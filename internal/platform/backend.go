package platform

import (
	"errors"
	"image"

	"github.com/1broseidon/tagwm/internal/hotkeys"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect = tiling.Rect

// ErrClosed is returned by NextEvent once the display connection is gone.
var ErrClosed = errors.New("display connection closed")

// ICCCM WM_STATE values.
const (
	WithdrawnState = 0
	NormalState    = 1
	IconicState    = 3
)

// Cursor selects one of the pointer shapes used during interaction.
type Cursor int

const (
	CursorNormal Cursor = iota
	CursorMove
	CursorResize
	CursorSwallow
)

// Attributes is the subset of window attributes the manager inspects.
type Attributes struct {
	OverrideRedirect bool
	Viewable         bool
}

// WMHints is the decoded ICCCM WM_HINTS property.
type WMHints struct {
	Urgent bool
	// HasInput is set when the client provided the input field.
	HasInput bool
	Input    bool
}

// WindowType carries the EWMH type and state bits acted on at manage time.
type WindowType struct {
	Dialog     bool
	Fullscreen bool
}

// Screen is the connection level part of the display service.
type Screen interface {
	Root() WindowID
	ScreenSize() (int, int)
	// Outputs lists the physical heads. An empty list means none are known.
	Outputs() ([]Rect, error)
	// NextEvent blocks until the next event. Expected asynchronous errors are
	// dropped; anything else is returned.
	NextEvent() (Event, error)
	Close()
}

// Properties reads and writes window properties.
type Properties interface {
	Children() ([]WindowID, error)
	Attributes(win WindowID) (Attributes, error)
	Geometry(win WindowID) (Rect, int, error)
	// ClassHint returns WM_CLASS. ok is false when the property is absent.
	ClassHint(win WindowID) (class, instance string, ok bool)
	// Title returns _NET_WM_NAME, falling back to WM_NAME.
	Title(win WindowID) string
	RootName() string
	NormalHints(win WindowID) (tiling.NormalHints, bool)
	WMHints(win WindowID) (WMHints, bool)
	ClearUrgency(win WindowID)
	TransientFor(win WindowID) (WindowID, bool)
	WindowType(win WindowID) WindowType
	WMState(win WindowID) (int, bool)
	SetWMState(win WindowID, state int)
	SetFullscreenState(win WindowID, on bool)
	SetClientList(wins []WindowID)
	SetActiveWindow(win WindowID)
	SupportsProtocol(win WindowID, protocol string) bool
	SendProtocol(win WindowID, protocol string) error
}

// Windows changes geometry, visibility and stacking.
type Windows interface {
	// Configure sets position, size and border width.
	Configure(win WindowID, r Rect, border int)
	Move(win WindowID, x, y int)
	MoveResize(win WindowID, r Rect)
	SendConfigureNotify(win WindowID, r Rect, border int)
	ForwardConfigure(req ConfigureRequest)
	SetBorderWidth(win WindowID, border int)
	SetBorderColor(win WindowID, pixel uint32)
	SelectClientInput(win WindowID)
	Map(win WindowID)
	Unmap(win WindowID)
	Raise(win WindowID)
	StackBelow(win, sibling WindowID)
	Kill(win WindowID)
	// Focus gives input focus to win, or to the root when win is zero.
	Focus(win WindowID)
	// DiscardEnterEvents drops crossing events caused by requests issued so
	// far.
	DiscardEnterEvents()
}

// Input manages grabs and pointer state.
type Input interface {
	GrabKeys(keys []hotkeys.Combo)
	KeysymFor(key string) (uint32, bool)
	// LockMask is the union of the lock modifiers stripped before matching.
	LockMask() uint16
	RefreshKeyboard()
	GrabButtons(win WindowID, focused bool, buttons []hotkeys.ButtonCombo)
	UngrabButtons(win WindowID)
	GrabPointer(cursor Cursor) bool
	UngrabPointer()
	QueryPointer() (x, y int, ok bool)
	WarpPointer(win WindowID, x, y int)
	// ReplayPointer releases a click frozen by a synchronous button grab.
	ReplayPointer()
}

// Bars owns the status bar windows.
type Bars interface {
	CreateBar(r Rect) (WindowID, error)
	DestroyWindow(win WindowID)
	DrawBar(win WindowID, img *image.RGBA)
}

// Backend is the complete display service consumed by the window manager.
type Backend interface {
	Screen
	Properties
	Windows
	Input
	Bars
}
