package tiling

// WM_NORMAL_HINTS flag bits (ICCCM 4.1.2.3).
const (
	HintMinSize   uint = 1 << 4
	HintMaxSize   uint = 1 << 5
	HintResizeInc uint = 1 << 6
	HintAspect    uint = 1 << 7
	HintBaseSize  uint = 1 << 8
)

// NormalHints mirrors the raw WM_NORMAL_HINTS property.
type NormalHints struct {
	Flags                      uint
	MinWidth, MinHeight        int
	MaxWidth, MaxHeight        int
	WidthInc, HeightInc        int
	MinAspectNum, MinAspectDen int
	MaxAspectNum, MaxAspectDen int
	BaseWidth, BaseHeight      int
}

// SizeHints are the resolved constraints of a client.
type SizeHints struct {
	BaseW, BaseH int
	IncW, IncH   int
	MaxW, MaxH   int
	MinW, MinH   int
	MinAspect    float64
	MaxAspect    float64
	Fixed        bool
}

// SizeHintsFromNormal resolves raw hints. Base size falls back to min size
// and vice versa.
func SizeHintsFromNormal(nh NormalHints) SizeHints {
	var h SizeHints

	switch {
	case nh.Flags&HintBaseSize != 0:
		h.BaseW, h.BaseH = nh.BaseWidth, nh.BaseHeight
	case nh.Flags&HintMinSize != 0:
		h.BaseW, h.BaseH = nh.MinWidth, nh.MinHeight
	}

	if nh.Flags&HintResizeInc != 0 {
		h.IncW, h.IncH = nh.WidthInc, nh.HeightInc
	}

	if nh.Flags&HintMaxSize != 0 {
		h.MaxW, h.MaxH = nh.MaxWidth, nh.MaxHeight
	}

	switch {
	case nh.Flags&HintMinSize != 0:
		h.MinW, h.MinH = nh.MinWidth, nh.MinHeight
	case nh.Flags&HintBaseSize != 0:
		h.MinW, h.MinH = nh.BaseWidth, nh.BaseHeight
	}

	if nh.Flags&HintAspect != 0 && nh.MinAspectNum != 0 && nh.MaxAspectDen != 0 {
		h.MinAspect = float64(nh.MinAspectDen) / float64(nh.MinAspectNum)
		h.MaxAspect = float64(nh.MaxAspectNum) / float64(nh.MaxAspectDen)
	}

	h.Fixed = h.MaxW > 0 && h.MaxH > 0 && h.MaxW == h.MinW && h.MaxH == h.MinH
	return h
}

// HintRequest is the input to ApplySizeHints.
type HintRequest struct {
	// Candidate geometry, borders excluded.
	Want Rect
	// Geometry currently stored for the client.
	Current Rect
	Border  int
	Hints   SizeHints

	// Interactive is set for pointer driven moves and resizes.
	Interactive bool
	Screen      Rect
	Work        Rect
	BarHeight   int

	// RespectHints is the global resizehints switch.
	RespectHints bool
	Floating     bool
	Arranged     bool
}

// ApplySizeHints corrects a candidate geometry and reports whether the result
// differs from the client's current geometry.
func ApplySizeHints(req HintRequest) (Rect, bool) {
	x, y := req.Want.X, req.Want.Y
	w := max(1, req.Want.Width)
	h := max(1, req.Want.Height)
	bw := req.Border
	cur := req.Current
	outerW := cur.Width + 2*bw
	outerH := cur.Height + 2*bw

	if req.Interactive {
		sw, sh := req.Screen.X+req.Screen.Width, req.Screen.Y+req.Screen.Height
		if x > sw {
			x = sw - outerW
		}
		if y > sh {
			y = sh - outerH
		}
		if x+w+2*bw < req.Screen.X {
			x = req.Screen.X
		}
		if y+h+2*bw < req.Screen.Y {
			y = req.Screen.Y
		}
	} else {
		wa := req.Work
		if x >= wa.X+wa.Width {
			x = wa.X + wa.Width - outerW
		}
		if y >= wa.Y+wa.Height {
			y = wa.Y + wa.Height - outerH
		}
		if x+w+2*bw <= wa.X {
			x = wa.X
		}
		if y+h+2*bw <= wa.Y {
			y = wa.Y
		}
	}

	if h < req.BarHeight {
		h = req.BarHeight
	}
	if w < req.BarHeight {
		w = req.BarHeight
	}

	if req.RespectHints || req.Floating || !req.Arranged {
		w, h = constrain(req.Hints, w, h)
	}

	r := Rect{X: x, Y: y, Width: w, Height: h}
	return r, r != cur
}

func constrain(s SizeHints, w, h int) (int, int) {
	baseIsMin := s.BaseW == s.MinW && s.BaseH == s.MinH
	if !baseIsMin {
		w -= s.BaseW
		h -= s.BaseH
	}

	if s.MinAspect > 0 && s.MaxAspect > 0 && w > 0 && h > 0 {
		if s.MaxAspect < float64(w)/float64(h) {
			w = int(float64(h)*s.MaxAspect + 0.5)
		} else if s.MinAspect < float64(h)/float64(w) {
			h = int(float64(w)*s.MinAspect + 0.5)
		}
	}

	if baseIsMin {
		w -= s.BaseW
		h -= s.BaseH
	}

	if s.IncW > 0 {
		w -= w % s.IncW
	}
	if s.IncH > 0 {
		h -= h % s.IncH
	}

	w = max(w+s.BaseW, s.MinW)
	h = max(h+s.BaseH, s.MinH)
	if s.MaxW > 0 {
		w = min(w, s.MaxW)
	}
	if s.MaxH > 0 {
		h = min(h, s.MaxH)
	}
	return w, h
}
