package pkg

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/mircot/bubble-popper/game"
)

const glowLayers = 5

// screenSurface draws a tick onto the ebiten screen image.
type screenSurface struct {
	dst  *ebiten.Image
	bg   color.RGBA
	face text.Face
}

func (s *screenSurface) Size() (float64, float64) {
	b := s.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *screenSurface) Clear() {
	s.dst.Fill(s.bg)
}

func (s *screenSurface) FillCircle(x, y, r float64, clr color.RGBA) {
	vector.FillCircle(s.dst, float32(x), float32(y), float32(r), clr, true)
}

// StrokeCircle approximates a canvas shadow blur with wider, fainter rings
// drawn under the stroke.
func (s *screenSurface) StrokeCircle(x, y, r, width float64, clr, glow color.RGBA) {
	for i := glowLayers; i > 0; i-- {
		spread := float32(game.GlowBlur) * float32(i) / glowLayers
		alpha := uint8(160 / (i + 1))
		vector.StrokeCircle(s.dst, float32(x), float32(y), float32(r), float32(width)+spread,
			color.NRGBA{R: glow.R, G: glow.G, B: glow.B, A: alpha}, true)
	}

	vector.StrokeCircle(s.dst, float32(x), float32(y), float32(r), float32(width), clr, true)
}

// DrawText draws s with its baseline at y, colouring each glyph by its
// position on the gradient like a canvas linear gradient fill.
func (s *screenSurface) DrawText(str string, x, y float64, g game.Gradient) {
	w, _ := s.Size()
	top := y - s.face.Metrics().HAscent

	advance := func(glyph string) float64 { return text.Advance(glyph, s.face) }
	g.EachGlyph(str, x, w, advance, func(glyph string, gx float64, clr color.RGBA) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(gx, top)
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(s.dst, glyph, s.face, op)
	})
}
