package movemode

import "github.com/1broseidon/tagwm/internal/tiling"

// MovePosition returns where a dragged client goes for the pointer at
// (px, py). Edges within snap pixels of the work area stick to it.
func (s *Session) MovePosition(px, py int, work tiling.Rect, outerW, outerH, snap int) (int, int) {
	nx := s.Origin.X + (px - s.PointerX)
	ny := s.Origin.Y + (py - s.PointerY)

	if abs(work.X-nx) < snap {
		nx = work.X
	} else if abs((work.X+work.Width)-(nx+outerW)) < snap {
		nx = work.X + work.Width - outerW
	}
	if abs(work.Y-ny) < snap {
		ny = work.Y
	} else if abs((work.Y+work.Height)-(ny+outerH)) < snap {
		ny = work.Y + work.Height - outerH
	}
	return nx, ny
}

// ResizeSize returns the client size for the pointer at (px, py), never
// smaller than 1x1.
func (s *Session) ResizeSize(px, py, border int) (int, int) {
	w := max(px-s.Origin.X-2*border+1, 1)
	h := max(py-s.Origin.Y-2*border+1, 1)
	return w, h
}

// BeyondSnap reports whether either delta exceeds the snap distance. A tiled
// client dragged that far becomes floating.
func BeyondSnap(dx, dy, snap int) bool {
	return abs(dx) > snap || abs(dy) > snap
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
