package registry

import (
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// ClientID is a stable arena key. Zero means no client.
type ClientID uint64

// Client is one managed top-level window.
type Client struct {
	ID     ClientID
	Window platform.WindowID

	// Name is the label shown in the bar.
	Name     string
	Class    string
	Instance string
	Title    string

	Geom      tiling.Rect
	Old       tiling.Rect
	Border    int
	OldBorder int
	Hints     tiling.SizeHints
	CFact     float64
	Tags      uint32

	Floating    bool
	Urgent      bool
	NeverFocus  bool
	Fullscreen  bool
	WasFloating bool

	Mon *Monitor

	// SwallowedBy is the client hidden behind this one.
	SwallowedBy ClientID
}

// Visible reports whether the client is on one of its monitor's shown tags.
func (c *Client) Visible() bool {
	return c != nil && c.Mon != nil && c.Tags&c.Mon.Tags() != 0
}

// OuterWidth is the width including both borders.
func (c *Client) OuterWidth() int {
	return c.Geom.Width + 2*c.Border
}

// OuterHeight is the height including both borders.
func (c *Client) OuterHeight() int {
	return c.Geom.Height + 2*c.Border
}

// SetGeometry stores g as the current geometry and keeps the previous one.
func (c *Client) SetGeometry(g tiling.Rect) {
	c.Old = c.Geom
	c.Geom = g
}

// Kind classifies a window handle with respect to swallowing.
type Kind int

const (
	KindNone Kind = iota
	// KindRegular is a visible client that hides nothing.
	KindRegular
	// KindSwallowee is a visible chain head hiding another client.
	KindSwallowee
	// KindSwallower is a hidden member somewhere down a chain.
	KindSwallower
)

// String returns a log friendly name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindRegular:
		return "regular"
	case KindSwallowee:
		return "swallowee"
	case KindSwallower:
		return "swallower"
	default:
		return "unknown"
	}
}
