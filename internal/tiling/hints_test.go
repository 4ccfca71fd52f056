package tiling

import "testing"

func TestSizeHintsFromNormal_BaseFallsBackToMin(t *testing.T) {
	h := SizeHintsFromNormal(NormalHints{
		Flags:     HintMinSize | HintMaxSize,
		MinWidth:  200,
		MinHeight: 100,
		MaxWidth:  200,
		MaxHeight: 100,
	})

	if h.BaseW != 200 || h.BaseH != 100 {
		t.Fatalf("expected base 200x100 from min, got %dx%d", h.BaseW, h.BaseH)
	}
	if !h.Fixed {
		t.Fatalf("expected fixed size when max == min")
	}
}

func TestSizeHintsFromNormal_MinFallsBackToBase(t *testing.T) {
	h := SizeHintsFromNormal(NormalHints{
		Flags:      HintBaseSize | HintResizeInc,
		BaseWidth:  4,
		BaseHeight: 6,
		WidthInc:   8,
		HeightInc:  16,
	})

	if h.MinW != 4 || h.MinH != 6 {
		t.Fatalf("expected min 4x6 from base, got %dx%d", h.MinW, h.MinH)
	}
	if h.IncW != 8 || h.IncH != 16 {
		t.Fatalf("expected inc 8x16, got %dx%d", h.IncW, h.IncH)
	}
	if h.Fixed {
		t.Fatalf("expected non-fixed hints without max size")
	}
}

func TestSizeHintsFromNormal_Aspect(t *testing.T) {
	h := SizeHintsFromNormal(NormalHints{
		Flags:        HintAspect,
		MinAspectNum: 4, MinAspectDen: 3,
		MaxAspectNum: 16, MaxAspectDen: 9,
	})
	if h.MinAspect != 0.75 {
		t.Fatalf("expected min aspect 0.75, got %v", h.MinAspect)
	}
	if h.MaxAspect != 16.0/9.0 {
		t.Fatalf("expected max aspect 16/9, got %v", h.MaxAspect)
	}
}

func baseRequest() HintRequest {
	return HintRequest{
		Current:   Rect{X: 0, Y: 0, Width: 100, Height: 100},
		Border:    1,
		Screen:    Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
		Work:      Rect{X: 0, Y: 20, Width: 1920, Height: 1060},
		BarHeight: 20,
		Arranged:  true,
	}
}

func TestApplySizeHints_Idempotent(t *testing.T) {
	req := baseRequest()
	req.Floating = true
	req.Hints = SizeHintsFromNormal(NormalHints{
		Flags:    HintResizeInc | HintBaseSize | HintMinSize,
		WidthInc: 7, HeightInc: 13,
		BaseWidth: 2, BaseHeight: 2,
		MinWidth: 30, MinHeight: 30,
	})
	req.Want = Rect{X: 40, Y: 60, Width: 333, Height: 222}

	first, changed := ApplySizeHints(req)
	if !changed {
		t.Fatalf("expected first application to change geometry")
	}

	req.Current = first
	second, changed := ApplySizeHints(req)
	if changed {
		t.Fatalf("expected second application to report no change, got %+v", second)
	}
	if first != second {
		t.Fatalf("expected identical geometry, got %+v then %+v", first, second)
	}
}

func TestApplySizeHints_IncrementsOnlyWhenRespected(t *testing.T) {
	req := baseRequest()
	req.Hints = SizeHints{IncW: 10, IncH: 10}
	req.Want = Rect{X: 10, Y: 30, Width: 105, Height: 107}

	got, _ := ApplySizeHints(req)
	if got.Width != 105 || got.Height != 107 {
		t.Fatalf("expected hints ignored for tiled client, got %dx%d", got.Width, got.Height)
	}

	req.RespectHints = true
	got, _ = ApplySizeHints(req)
	if got.Width != 100 || got.Height != 100 {
		t.Fatalf("expected 100x100 after increments, got %dx%d", got.Width, got.Height)
	}
}

func TestApplySizeHints_MinimumIsBarHeight(t *testing.T) {
	req := baseRequest()
	req.Want = Rect{X: 10, Y: 30, Width: 0, Height: 3}

	got, _ := ApplySizeHints(req)
	if got.Width != 20 || got.Height != 20 {
		t.Fatalf("expected 20x20 minimum, got %dx%d", got.Width, got.Height)
	}
}

func TestApplySizeHints_ClampsToWorkArea(t *testing.T) {
	req := baseRequest()
	req.Want = Rect{X: 5000, Y: 5000, Width: 100, Height: 100}

	got, _ := ApplySizeHints(req)
	// outer size of the current geometry is 102x102
	if got.X != 1920-102 || got.Y != 20+1060-102 {
		t.Fatalf("expected window pulled back into work area, got %+v", got)
	}

	req.Want = Rect{X: -500, Y: -500, Width: 100, Height: 100}
	got, _ = ApplySizeHints(req)
	if got.X != 0 || got.Y != 20 {
		t.Fatalf("expected window pushed to work area origin, got %+v", got)
	}
}

func TestApplySizeHints_InteractiveUsesScreen(t *testing.T) {
	req := baseRequest()
	req.Interactive = true
	req.Want = Rect{X: 10, Y: 0, Width: 100, Height: 100}

	got, _ := ApplySizeHints(req)
	if got.Y != 0 {
		t.Fatalf("expected interactive move to allow the bar area, got y=%d", got.Y)
	}
}

func TestApplySizeHints_FixedClampsToMax(t *testing.T) {
	req := baseRequest()
	req.Floating = true
	req.Hints = SizeHintsFromNormal(NormalHints{
		Flags:    HintMinSize | HintMaxSize,
		MinWidth: 300, MinHeight: 200,
		MaxWidth: 300, MaxHeight: 200,
	})
	req.Want = Rect{X: 50, Y: 50, Width: 800, Height: 600}

	got, _ := ApplySizeHints(req)
	if got.Width != 300 || got.Height != 200 {
		t.Fatalf("expected fixed 300x200, got %dx%d", got.Width, got.Height)
	}
}
