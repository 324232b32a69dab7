package game

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionSpawnsInsideBounds(t *testing.T) {
	palette := []color.RGBA{{0x87, 0xce, 0xeb, 0xff}, {0xff, 0x69, 0xb4, 0xff}}
	s := newTestSession(640, 480, WithPalette(palette))

	require.Len(t, s.Circles(), InitialCount)
	assert.Equal(t, 0, s.Popped())
	assert.Equal(t, InitialCount, s.Remaining())
	assert.False(t, s.Won())

	for _, c := range s.Circles() {
		assert.False(t, c.Static)
		assert.False(t, c.Shrinking)
		assert.Equal(t, CircleRadius, c.Radius)
		assert.GreaterOrEqual(t, c.X, CircleRadius)
		assert.LessOrEqual(t, c.X, 640-CircleRadius)
		assert.GreaterOrEqual(t, c.Y, CircleRadius)
		assert.LessOrEqual(t, c.Y, 480-CircleRadius)
		assert.GreaterOrEqual(t, c.DX, -MaxSpeed)
		assert.Less(t, c.DX, MaxSpeed)
		assert.GreaterOrEqual(t, c.DY, -MaxSpeed)
		assert.Less(t, c.DY, MaxSpeed)
		assert.Contains(t, palette, c.Color)
	}

	p := s.Player()
	assert.True(t, p.Static)
	assert.GreaterOrEqual(t, p.X, CircleRadius)
	assert.LessOrEqual(t, p.X, 640-CircleRadius)
}

func TestTickDrawOrder(t *testing.T) {
	s := newTestSession(800, 600)
	surface := newRecorder(800, 600)

	s.MovePlayer(-100, -100)
	s.Tick(surface)

	require.Len(t, surface.ops, 2+InitialCount+1)
	assert.Equal(t, "clear", surface.ops[0].kind)

	text := surface.ops[1]
	assert.Equal(t, "text", text.kind)
	assert.Equal(t, "Ball Count: 25", text.text)
	assert.Equal(t, 800-ScoreOffsetX, text.x)
	assert.Equal(t, ScoreY, text.y)

	last := surface.ops[len(surface.ops)-1]
	assert.Equal(t, "stroke", last.kind, "the player ring is drawn on top")
	assert.Equal(t, InitialCount, surface.count("fill"))
}

func TestTickPopsOncePerCircle(t *testing.T) {
	popup := &countingPopup{}
	listener := &countingListener{}
	s := newTestSession(800, 600, WithPopup(popup), WithListener(listener))
	surface := newRecorder(800, 600)

	target := s.Circles()[0]
	target.DX, target.DY = 0, 0
	for _, c := range s.Circles()[1:] {
		c.SetPosition(2000, 2000)
		c.DX, c.DY = 0, 0
	}

	s.MovePlayer(target.X, target.Y)
	for i := 0; i < 5; i++ {
		s.Tick(surface)
	}

	assert.True(t, target.Shrinking)
	assert.Equal(t, 1, s.Popped())
	assert.Equal(t, []int{1}, listener.pops)
	assert.InDelta(t, CircleRadius-5*ShrinkRate, target.Radius, 1e-9)
	assert.Zero(t, popup.shows)
}

func TestTickCompactsPreservingOrder(t *testing.T) {
	s := newTestSession(800, 600)
	surface := newRecorder(800, 600)
	s.MovePlayer(-100, -100)

	var want []*Circle
	for i, c := range s.Circles() {
		if i%3 == 0 {
			c.Shrinking = true
			c.Radius = ShrinkRate
			continue
		}
		want = append(want, c)
	}

	s.Tick(surface)

	identity := cmp.Comparer(func(a, b *Circle) bool { return a == b })
	if diff := cmp.Diff(want, s.Circles(), identity); diff != "" {
		t.Errorf("survivors mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, s.Popped(), "forced shrinking does not count as a pop")
}

func TestPlayToWinAndReset(t *testing.T) {
	popup := &countingPopup{}
	listener := &countingListener{}
	s := newTestSession(800, 600, WithPopup(popup), WithListener(listener))
	surface := newRecorder(800, 600)
	player := s.Player()
	firstID := s.ID()

	prev := 0
	for ticks := 0; len(s.Circles()) > 0; ticks++ {
		require.Less(t, ticks, InitialCount*(int(CircleRadius/ShrinkRate)+5), "game did not finish")

		target := s.Circles()[0]
		s.MovePlayer(target.X, target.Y)
		s.Tick(surface)

		require.GreaterOrEqual(t, s.Popped(), prev)
		require.LessOrEqual(t, s.Popped(), InitialCount)
		prev = s.Popped()
	}

	assert.True(t, s.Won())
	assert.Equal(t, InitialCount, s.Popped())
	assert.Equal(t, 0, s.Remaining())
	assert.Empty(t, s.Circles())
	assert.Len(t, listener.pops, InitialCount)
	assert.Equal(t, 1, popup.shows)
	assert.Equal(t, 1, listener.wins)

	for i := 0; i < 10; i++ {
		s.Tick(surface)
	}
	assert.Equal(t, 1, popup.shows, "win is signalled once")
	assert.Equal(t, 1, listener.wins)

	s.Reset(800, 600)

	assert.Len(t, s.Circles(), InitialCount)
	assert.Equal(t, 0, s.Popped())
	assert.False(t, s.Won())
	assert.Same(t, player, s.Player())
	assert.NotEqual(t, firstID, s.ID())
}

func TestWinFiresAgainAfterReset(t *testing.T) {
	popup := &countingPopup{}
	s := newTestSession(800, 600, WithPopup(popup))
	surface := newRecorder(800, 600)

	popAll := func() {
		for _, c := range s.Circles() {
			c.SetPosition(400, 300)
			c.DX, c.DY = 0, 0
		}
		s.MovePlayer(400, 300)
		for i := 0; i < int(CircleRadius/ShrinkRate); i++ {
			s.Tick(surface)
		}
	}

	popAll()
	require.True(t, s.Won())
	require.Empty(t, s.Circles())

	s.Reset(800, 600)
	popAll()

	assert.True(t, s.Won())
	assert.Equal(t, 2, popup.shows)
}

func TestResetRepositionsPlayerInsideNewBounds(t *testing.T) {
	s := newTestSession(800, 600)
	s.MovePlayer(5000, 5000)

	s.Reset(200, 100)

	p := s.Player()
	assert.GreaterOrEqual(t, p.X, CircleRadius)
	assert.LessOrEqual(t, p.X, 200-CircleRadius)
	assert.GreaterOrEqual(t, p.Y, CircleRadius)
	assert.LessOrEqual(t, p.Y, 100-CircleRadius)
}

func TestWithPlayerColors(t *testing.T) {
	stroke := color.RGBA{0x10, 0x20, 0x30, 0xff}
	glow := color.RGBA{0x40, 0x50, 0x60, 0xff}
	s := newTestSession(800, 600, WithPlayerColors(stroke, glow))

	assert.Equal(t, stroke, s.Player().Color)
	assert.Equal(t, glow, s.Player().Glow)
}

func TestGradientAt(t *testing.T) {
	g := Gradient{
		From: color.RGBA{0x00, 0x00, 0x00, 0xff},
		To:   color.RGBA{0xff, 0xff, 0xff, 0xff},
	}

	assert.Equal(t, g.From, g.At(0, 100))
	assert.Equal(t, g.To, g.At(100, 100))
	assert.Equal(t, g.From, g.At(-20, 100))
	assert.Equal(t, g.To, g.At(500, 100))
	assert.Equal(t, g.From, g.At(50, 0))

	mid := g.At(50, 100)
	assert.InDelta(t, 0x80, int(mid.R), 1)
	assert.Equal(t, mid.R, mid.G)
}

func TestGradientEachGlyph(t *testing.T) {
	g := Gradient{
		From: color.RGBA{0x00, 0x00, 0x00, 0xff},
		To:   color.RGBA{0xff, 0xff, 0xff, 0xff},
	}

	// Wide glyphs advance further than narrow ones.
	advance := func(glyph string) float64 {
		if glyph == "W" {
			return 20
		}
		return 10
	}

	var xs []float64
	var glyphs []string
	var colors []color.RGBA
	g.EachGlyph("aWb", 0, 40, advance, func(glyph string, x float64, clr color.RGBA) {
		glyphs = append(glyphs, glyph)
		xs = append(xs, x)
		colors = append(colors, clr)
	})

	assert.Equal(t, []string{"a", "W", "b"}, glyphs)
	assert.Equal(t, []float64{0, 10, 30}, xs)
	assert.Equal(t, g.From, colors[0])
	assert.Equal(t, g.At(10, 40), colors[1])
	assert.Equal(t, g.At(30, 40), colors[2])
}

func TestGradientEachGlyphMultibyte(t *testing.T) {
	var glyphs []string
	Gradient{}.EachGlyph("é○", 0, 100, func(string) float64 { return 1 }, func(glyph string, _ float64, _ color.RGBA) {
		glyphs = append(glyphs, glyph)
	})

	assert.Equal(t, []string{"é", "○"}, glyphs)
}
