package tiling

import (
	"fmt"
	"strings"
)

// Rect represents a window position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersect returns the area shared by r and o, or 0 when they do not overlap.
func (r Rect) Intersect(o Rect) int {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.Width, o.X+o.Width)
	y2 := min(r.Y+r.Height, o.Y+o.Height)
	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	return (x2 - x1) * (y2 - y1)
}

// Kind selects one of the built-in arrange algorithms.
type Kind int

const (
	KindTile Kind = iota
	KindFloat
	KindMonocle
)

// String returns the config name of the layout kind
func (k Kind) String() string {
	switch k {
	case KindTile:
		return "tile"
	case KindFloat:
		return "float"
	case KindMonocle:
		return "monocle"
	default:
		return "unknown"
	}
}

// ParseKind resolves a layout name from configuration.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tile", "tiled":
		return KindTile, nil
	case "float", "floating":
		return KindFloat, nil
	case "monocle":
		return KindMonocle, nil
	default:
		return 0, fmt.Errorf("unknown layout %q", name)
	}
}

// Layout is a named arrange algorithm as listed in the layout table.
type Layout struct {
	Symbol string
	Kind   Kind
}

// Arranges reports whether the layout imposes geometry on tiled clients.
// A layout without an arrange function behaves as pure floating.
func (l Layout) Arranges() bool {
	return l.Arrange() != nil
}

// Arrange returns the arrange function for the layout, or nil for floating.
func (l Layout) Arrange() ArrangeFunc {
	switch l.Kind {
	case KindTile:
		return MasterStack
	case KindMonocle:
		return Monocle
	default:
		return nil
	}
}

// Master factor bounds, shared by configuration and setmfact.
const (
	MinMFact = 0.1
	MaxMFact = 0.9
)

// Area is the monitor state an arrange function needs.
type Area struct {
	Work    Rect
	MFact   float64
	NMaster int
	Gap     int
}

// Tile is one visible, non-floating client in tiling order.
type Tile struct {
	CFact  float64
	Border int
}

// Placer moves tile i to r (client area, borders excluded) and returns the
// outer height the tile occupies after size hints were applied.
type Placer func(i int, r Rect) int

// ArrangeFunc places every tile of a monitor.
type ArrangeFunc func(a Area, tiles []Tile, place Placer)

// MasterStack arranges tiles into a master column and a stack column. Heights
// within a column are proportioned by cfact with gaps between and around
// every window.
func MasterStack(a Area, tiles []Tile, place Placer) {
	n := len(tiles)
	if n == 0 {
		return
	}

	var mfacts, sfacts float64
	for i, t := range tiles {
		if i < a.NMaster {
			mfacts += t.CFact
		} else {
			sfacts += t.CFact
		}
	}

	w := a.Work
	gap := a.Gap

	var mw int
	if n > a.NMaster {
		if a.NMaster > 0 {
			mw = int(float64(w.Width) * a.MFact)
		}
	} else {
		mw = w.Width - gap
	}

	my, ty := gap, gap
	for i, t := range tiles {
		bw := 2 * t.Border
		if i < a.NMaster {
			h := int(float64(w.Height-my)*(t.CFact/mfacts)) - gap
			r := Rect{X: w.X + gap, Y: w.Y + my, Width: mw - bw - gap, Height: h - bw}
			my += place(i, r) + gap
			mfacts -= t.CFact
		} else {
			h := int(float64(w.Height-ty)*(t.CFact/sfacts)) - gap
			r := Rect{X: w.X + mw + gap, Y: w.Y + ty, Width: w.Width - mw - bw - 2*gap, Height: h - bw}
			ty += place(i, r) + gap
			sfacts -= t.CFact
		}
	}
}

// Monocle gives every tile the whole work area.
func Monocle(a Area, tiles []Tile, place Placer) {
	w := a.Work
	for i, t := range tiles {
		place(i, Rect{X: w.X, Y: w.Y, Width: w.Width - 2*t.Border, Height: w.Height - 2*t.Border})
	}
}

// Rects runs fn with a placer that accepts every rectangle unchanged.
func Rects(fn ArrangeFunc, a Area, tiles []Tile) []Rect {
	out := make([]Rect, len(tiles))
	if fn == nil {
		return out
	}
	fn(a, tiles, func(i int, r Rect) int {
		out[i] = r
		return r.Height + 2*tiles[i].Border
	})
	return out
}
