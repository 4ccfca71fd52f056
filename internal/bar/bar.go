// Package bar renders the per-monitor status bar into an RGBA image and maps
// pointer positions back to click regions.
package bar

import (
	"image"
	"image/color"
	"image/draw"
	"unicode/utf8"

	"github.com/1broseidon/tagwm/internal/config"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type scheme struct {
	fg, bg color.RGBA
}

// Renderer draws bars with a fixed bitmap font.
type Renderer struct {
	face      font.Face
	fontH     int
	ascent    int
	height    int
	lrpad     int
	statusPad int
	tags      []string
	swallow   string
	norm      scheme
	sel       scheme
}

// State is everything one bar shows.
type State struct {
	Width int
	// Active is the monitor's shown tag set.
	Active   uint32
	Occupied uint32
	Urgent   uint32
	// SelTags marks the tags of the focused client with filled boxes. It is
	// zero on unfocused monitors.
	SelTags uint32
	Symbol  string
	// Swallowing is set when the monitor's selected client hides another.
	Swallowing bool
	HasSel     bool
	Title      string
	// Focused bars show the status text; the others leave it blank.
	Focused bool
	Status  string
}

// New builds a renderer from the configured tags, colours and paddings.
func New(cfg *config.Config) (*Renderer, error) {
	norm, err := newScheme(cfg.Colors.Normal)
	if err != nil {
		return nil, err
	}
	sel, err := newScheme(cfg.Colors.Selected)
	if err != nil {
		return nil, err
	}

	face := basicfont.Face7x13
	m := face.Metrics()
	fontH := m.Height.Ceil()
	return &Renderer{
		face:      face,
		fontH:     fontH,
		ascent:    m.Ascent.Ceil(),
		height:    fontH + cfg.BarPadding,
		lrpad:     fontH,
		statusPad: cfg.StatusPadding,
		tags:      cfg.Tags,
		swallow:   cfg.Swallow.Symbol,
		norm:      norm,
		sel:       sel,
	}, nil
}

func newScheme(s config.Scheme) (scheme, error) {
	fg, err := config.ParseColor(s.FG)
	if err != nil {
		return scheme{}, err
	}
	bg, err := config.ParseColor(s.BG)
	if err != nil {
		return scheme{}, err
	}
	return scheme{fg: fg, bg: bg}, nil
}

// Height is the bar height in pixels.
func (r *Renderer) Height() int {
	return r.height
}

// TextWidth is the width of s plus the horizontal padding.
func (r *Renderer) TextWidth(s string) int {
	return font.MeasureString(r.face, s).Ceil() + r.lrpad
}

func (r *Renderer) statusWidth(status string) int {
	return r.TextWidth(status) - r.lrpad/2 + r.statusPad
}

// Draw renders s into a new image of s.Width by Height pixels.
func (r *Renderer) Draw(s State) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(s.Width, 1), r.height))

	sw := r.statusWidth(s.Status)
	if s.Focused {
		r.text(img, s.Width-sw, sw, r.lrpad/2, s.Status, r.norm, false)
	} else {
		r.fill(img, s.Width-sw, sw, r.norm.bg)
	}

	boxs := r.fontH / 9
	boxw := r.fontH/6 + 2
	x := 0
	for i, tag := range r.tags {
		bit := uint32(1) << i
		w := r.TextWidth(tag)
		sc := r.norm
		if s.Active&bit != 0 {
			sc = r.sel
		}
		urgent := s.Urgent&bit != 0
		r.text(img, x, w, r.lrpad/2, tag, sc, urgent)
		if s.Occupied&bit != 0 {
			r.box(img, x+boxs, boxs, boxw, s.SelTags&bit != 0, sc, urgent)
		}
		x += w
	}

	w := r.TextWidth(s.Symbol)
	x = r.text(img, x, w, r.lrpad/2, s.Symbol, r.norm, false)

	if s.Swallowing {
		w = r.TextWidth(r.swallow)
		x = r.text(img, x, w, r.lrpad/2, r.swallow, r.norm, false)
	}

	if w = s.Width - sw - x; w > r.height {
		if s.HasSel {
			pad := max(r.lrpad/2, (s.Width-r.TextWidth(s.Title))/2-x)
			r.text(img, x, w, pad, s.Title, r.norm, false)
		} else {
			r.fill(img, x, w, r.norm.bg)
		}
	}
	return img
}

// text fills [x, x+w) with the background and draws s after lpad pixels,
// dropping characters that do not fit. It returns x+w.
func (r *Renderer) text(img *image.RGBA, x, w, lpad int, s string, sc scheme, invert bool) int {
	fg, bg := sc.fg, sc.bg
	if invert {
		fg, bg = bg, fg
	}
	r.fill(img, x, w, bg)
	if w <= lpad || s == "" {
		return x + w
	}

	avail := w - lpad
	for font.MeasureString(r.face, s).Ceil() > avail && s != "" {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: r.face,
		Dot: fixed.Point26_6{
			X: fixed.I(x + lpad),
			Y: fixed.I((r.height-r.fontH)/2 + r.ascent),
		},
	}
	d.DrawString(s)
	return x + w
}

func (r *Renderer) fill(img *image.RGBA, x, w int, c color.RGBA) {
	if w <= 0 {
		return
	}
	rect := image.Rect(x, 0, x+w, r.height).Intersect(img.Bounds())
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Renderer) box(img *image.RGBA, x, y, size int, filled bool, sc scheme, invert bool) {
	c := sc.fg
	if invert {
		c = sc.bg
	}
	if filled {
		draw.Draw(img, image.Rect(x, y, x+size, y+size), image.NewUniform(c), image.Point{}, draw.Src)
		return
	}
	for i := 0; i < size; i++ {
		img.SetRGBA(x+i, y, c)
		img.SetRGBA(x+i, y+size-1, c)
		img.SetRGBA(x, y+i, c)
		img.SetRGBA(x+size-1, y+i, c)
	}
}
