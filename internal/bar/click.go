package bar

import "github.com/1broseidon/tagwm/internal/config"

// Hit describes what a click on the bar landed on.
type Hit struct {
	Click config.Click
	// Tag is the mask of the clicked tag for ClickTagBar.
	Tag uint32
	// Index is the character offset into the status text for
	// ClickStatusText.
	Index int
}

// HitTest classifies a click at bar-relative x.
func (r *Renderer) HitTest(s State, x int) Hit {
	pos := 0
	for i, tag := range r.tags {
		pos += r.TextWidth(tag)
		if x < pos {
			return Hit{Click: config.ClickTagBar, Tag: 1 << i}
		}
	}
	if x < pos+r.TextWidth(s.Symbol) {
		return Hit{Click: config.ClickLayoutSymbol}
	}

	start := s.Width - r.statusWidth(s.Status) + r.lrpad/2
	at := x - start
	if at >= 0 {
		if i := r.charIndex(s.Status, at); i >= 0 {
			return Hit{Click: config.ClickStatusText, Index: i}
		}
	}
	// The padding left of the status belongs to the title.
	return Hit{Click: config.ClickWindowTitle}
}

// charIndex returns the rune index of status drawn at pixel offset at, or -1.
func (r *Renderer) charIndex(status string, at int) int {
	x := 0
	for i, ch := range []rune(status) {
		adv, _ := r.face.GlyphAdvance(ch)
		x += adv.Ceil()
		if at < x {
			return i
		}
	}
	return -1
}
