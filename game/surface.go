package game

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Surface is the drawing target of a tick. Size is re-read every frame
// because the underlying window or terminal may be resized at any time.
type Surface interface {
	Size() (w, h float64)
	Clear()
	FillCircle(x, y, r float64, clr color.RGBA)
	StrokeCircle(x, y, r, width float64, clr, glow color.RGBA)
	DrawText(s string, x, y float64, g Gradient)
}

// Popup is shown once all circles are popped.
type Popup interface {
	Show()
}

// Listener receives game events, e.g. to play sounds.
type Listener interface {
	OnPop(c *Circle, popped int)
	OnWin()
}

// Gradient is a horizontal colour ramp spanning the full surface width.
type Gradient struct {
	From color.RGBA
	To   color.RGBA
}

// At returns the gradient colour at x for a surface of the given width.
func (g Gradient) At(x, width float64) color.RGBA {
	t := 0.0
	if width > 0 {
		t = x / width
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	from, _ := colorful.MakeColor(g.From)
	to, _ := colorful.MakeColor(g.To)
	r, gr, b := from.BlendRgb(to, t).Clamped().RGB255()

	return color.RGBA{R: r, G: gr, B: b, A: 0xff}
}

// EachGlyph walks s from x, stepping by advance, and hands every glyph its
// pen position and its colour on the gradient.
func (g Gradient) EachGlyph(s string, x, width float64, advance func(glyph string) float64, fn func(glyph string, x float64, clr color.RGBA)) {
	for _, r := range s {
		glyph := string(r)
		fn(glyph, x, g.At(x, width))
		x += advance(glyph)
	}
}
