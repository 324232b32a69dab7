package term

import (
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/mircot/bubble-popper/game"
)

// A terminal cell stands for a CellWidth x CellHeight block of pixels, which
// keeps circles round on the usual 1:2 character cells.
const (
	CellWidth  = 8
	CellHeight = 16
)

const (
	fillRune = '█'
	ringRune = '○'
)

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// cellSurface rasterises a tick onto a tcell screen.
type cellSurface struct {
	screen tcell.Screen
	bg     tcell.Style
}

func (s *cellSurface) Size() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols * CellWidth), float64(rows * CellHeight)
}

func (s *cellSurface) Clear() {
	s.screen.Fill(' ', s.bg)
}

// cellCenter returns the pixel centre of cell (col, row).
func cellCenter(col, row int) (float64, float64) {
	return float64(col*CellWidth) + CellWidth/2, float64(row*CellHeight) + CellHeight/2
}

// visit calls fn for every on-screen cell whose centre lies within reach
// of (x, y).
func (s *cellSurface) visit(x, y, reach float64, fn func(col, row int, dist float64)) {
	cols, rows := s.screen.Size()

	c0 := max(0, int(math.Floor((x-reach)/CellWidth)))
	c1 := min(cols-1, int(math.Floor((x+reach)/CellWidth)))
	r0 := max(0, int(math.Floor((y-reach)/CellHeight)))
	r1 := min(rows-1, int(math.Floor((y+reach)/CellHeight)))

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cx, cy := cellCenter(col, row)
			fn(col, row, math.Hypot(cx-x, cy-y))
		}
	}
}

func (s *cellSurface) FillCircle(x, y, r float64, clr color.RGBA) {
	style := s.bg.Foreground(toTcell(clr))

	drawn := false
	s.visit(x, y, r, func(col, row int, dist float64) {
		if dist < r {
			s.screen.SetContent(col, row, fillRune, nil, style)
			drawn = true
		}
	})

	// Small circles still cover the cell they sit in.
	if !drawn && r > 0 {
		col, row := int(x/CellWidth), int(y/CellHeight)
		cols, rows := s.screen.Size()
		if x >= 0 && y >= 0 && col < cols && row < rows {
			s.screen.SetContent(col, row, '•', nil, style)
		}
	}
}

func (s *cellSurface) StrokeCircle(x, y, r, width float64, clr, glow color.RGBA) {
	band := math.Max(width, CellWidth/2)
	halo := s.bg.Foreground(toTcell(glow)).Dim(true)
	ring := s.bg.Foreground(toTcell(clr)).Bold(true)

	s.visit(x, y, r+game.GlowBlur/2, func(col, row int, dist float64) {
		switch {
		case math.Abs(dist-r) <= band:
			s.screen.SetContent(col, row, ringRune, nil, ring)
		case dist > r && dist <= r+game.GlowBlur/2:
			s.screen.SetContent(col, row, '·', nil, halo)
		}
	})
}

func (s *cellSurface) DrawText(str string, x, y float64, g game.Gradient) {
	w, _ := s.Size()
	col := int(x / CellWidth)
	row := int(y/CellHeight) - 1
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}

	cols, _ := s.screen.Size()
	start, _ := cellCenter(col, row)
	advance := func(string) float64 { return CellWidth }
	g.EachGlyph(str, start, w, advance, func(glyph string, px float64, clr color.RGBA) {
		if c := int(px / CellWidth); c < cols {
			r, _ := utf8.DecodeRuneInString(glyph)
			s.screen.SetContent(c, row, r, nil, s.bg.Foreground(toTcell(clr)))
		}
	})
}
