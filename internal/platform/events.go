package platform

// Event is one inbound display event.
type Event interface {
	isEvent()
}

// ConfigureRequest value-mask bits, in X protocol order.
const (
	ConfigX uint16 = 1 << iota
	ConfigY
	ConfigWidth
	ConfigHeight
	ConfigBorder
	ConfigSibling
	ConfigStackMode
)

// Fullscreen request actions from _NET_WM_STATE.
const (
	StateRemove = 0
	StateAdd    = 1
	StateToggle = 2
)

type MapRequest struct {
	Window WindowID
}

type DestroyNotify struct {
	Window WindowID
}

// UnmapNotify reports a window leaving the screen. Synthetic is set for the
// ICCCM withdraw notification delivered through the root window.
type UnmapNotify struct {
	Window    WindowID
	Synthetic bool
}

type ConfigureRequest struct {
	Window    WindowID
	Mask      uint16
	X, Y      int
	Width     int
	Height    int
	Border    int
	Sibling   WindowID
	StackMode byte
}

type ConfigureNotify struct {
	Window WindowID
	Geom   Rect
}

// PropertyNotify names the changed property by atom name.
type PropertyNotify struct {
	Window  WindowID
	Atom    string
	Deleted bool
}

// FullscreenRequest is a _NET_WM_STATE client message naming
// _NET_WM_STATE_FULLSCREEN.
type FullscreenRequest struct {
	Window WindowID
	Action int
}

// ActivateRequest is a _NET_ACTIVE_WINDOW client message.
type ActivateRequest struct {
	Window WindowID
}

type EnterNotify struct {
	Window WindowID
	// Normal is false for grab and ungrab crossings.
	Normal bool
	// Inferior is set when the pointer left a child for its parent.
	Inferior bool
	// Sequence is the request sequence the server had reached.
	Sequence uint16
}

type FocusIn struct {
	Window WindowID
}

type MotionNotify struct {
	Window       WindowID
	RootX, RootY int
	Time         uint32
}

type ButtonPress struct {
	Window       WindowID
	Button       uint8
	State        uint16
	X, Y         int
	RootX, RootY int
	Time         uint32
}

// ButtonRelease carries Child, the top-level window under the pointer when
// the release happened on the root.
type ButtonRelease struct {
	Window       WindowID
	Child        WindowID
	Button       uint8
	RootX, RootY int
	Time         uint32
}

type KeyPress struct {
	Keysym uint32
	State  uint16
}

type Expose struct {
	Window WindowID
	Count  int
}

// MappingNotify reports a keyboard remap. Keyboard is false for pointer
// mapping changes.
type MappingNotify struct {
	Keyboard bool
}

func (MapRequest) isEvent()        {}
func (DestroyNotify) isEvent()     {}
func (UnmapNotify) isEvent()       {}
func (ConfigureRequest) isEvent()  {}
func (ConfigureNotify) isEvent()   {}
func (PropertyNotify) isEvent()    {}
func (FullscreenRequest) isEvent() {}
func (ActivateRequest) isEvent()   {}
func (EnterNotify) isEvent()       {}
func (FocusIn) isEvent()           {}
func (MotionNotify) isEvent()      {}
func (ButtonPress) isEvent()       {}
func (ButtonRelease) isEvent()     {}
func (KeyPress) isEvent()          {}
func (Expose) isEvent()            {}
func (MappingNotify) isEvent()     {}
