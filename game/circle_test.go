package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollidesWithIsSymmetric(t *testing.T) {
	cases := []struct {
		name string
		a, b Circle
		want bool
	}{
		{"same centre", Circle{X: 10, Y: 10, Radius: 15}, Circle{X: 10, Y: 10, Radius: 15}, true},
		{"overlapping", Circle{X: 0, Y: 0, Radius: 15}, Circle{X: 20, Y: 0, Radius: 15}, true},
		{"touching is not colliding", Circle{X: 0, Y: 0, Radius: 15}, Circle{X: 30, Y: 0, Radius: 15}, false},
		{"apart", Circle{X: 0, Y: 0, Radius: 15}, Circle{X: 100, Y: 100, Radius: 15}, false},
		{"diagonal overlap", Circle{X: 0, Y: 0, Radius: 10}, Circle{X: 12, Y: 12, Radius: 10}, true},
		{"uneven radii", Circle{X: 0, Y: 0, Radius: 2}, Circle{X: 0, Y: 20, Radius: 19}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, b := tc.a, tc.b
			assert.Equal(t, tc.want, a.CollidesWith(&b))
			assert.Equal(t, a.CollidesWith(&b), b.CollidesWith(&a))
		})
	}
}

func TestCollidesWithUsesCurrentRadius(t *testing.T) {
	player := &Circle{X: 0, Y: 0, Radius: 15, Static: true}
	c := &Circle{X: 25, Y: 0, Radius: 15, Shrinking: true}
	surface := newRecorder(800, 600)

	require.True(t, player.CollidesWith(c))

	// 20 ticks take 10 off the radius: 15 + 5 < 25.
	for i := 0; i < 20; i++ {
		require.True(t, c.Update(surface))
	}

	assert.InDelta(t, 5.0, c.Radius, 1e-9)
	assert.False(t, player.CollidesWith(c))
}

func TestUpdateReflectsAtEdges(t *testing.T) {
	surface := newRecorder(800, 600)

	t.Run("left", func(t *testing.T) {
		c := &Circle{X: -0.01, Y: 300, Radius: 15, DX: -2}
		require.True(t, c.Update(surface))
		assert.Equal(t, 2.0, c.DX)
		assert.InDelta(t, 1.99, c.X, 1e-9)
	})

	t.Run("right", func(t *testing.T) {
		c := &Circle{X: 790, Y: 300, Radius: 15, DX: 1.5}
		c.Update(surface)
		assert.Equal(t, -1.5, c.DX)
		assert.InDelta(t, 788.5, c.X, 1e-9)
	})

	t.Run("top and bottom", func(t *testing.T) {
		top := &Circle{X: 400, Y: 5, Radius: 15, DY: -1}
		bottom := &Circle{X: 400, Y: 599, Radius: 15, DY: 3}
		top.Update(surface)
		bottom.Update(surface)
		assert.Equal(t, 1.0, top.DY)
		assert.Equal(t, -3.0, bottom.DY)
	})

	t.Run("inside does not reflect", func(t *testing.T) {
		c := &Circle{X: 400, Y: 300, Radius: 15, DX: -3, DY: 3}
		c.Update(surface)
		assert.Equal(t, -3.0, c.DX)
		assert.Equal(t, 3.0, c.DY)
		assert.Equal(t, 397.0, c.X)
		assert.Equal(t, 303.0, c.Y)
	})
}

func TestUpdateReadsSizeEveryTick(t *testing.T) {
	surface := newRecorder(800, 600)
	c := &Circle{X: 500, Y: 300, Radius: 15, DX: 1}

	c.Update(surface)
	assert.Equal(t, 1.0, c.DX)

	surface.w = 400
	c.Update(surface)
	assert.Equal(t, -1.0, c.DX)
}

func TestUpdateRemovesShrunkCircle(t *testing.T) {
	surface := newRecorder(800, 600)
	c := &Circle{X: 100, Y: 100, Radius: 0.4, Shrinking: true}

	assert.False(t, c.Update(surface))
	assert.LessOrEqual(t, c.Radius, 0.0)
	assert.Empty(t, surface.ops, "a removed circle is not drawn")
}

func TestShrinkIsMonotonic(t *testing.T) {
	surface := newRecorder(800, 600)
	c := &Circle{X: 100, Y: 100, Radius: CircleRadius, DX: 2, DY: -1, Shrinking: true}

	ticks := 0
	prev := c.Radius
	for c.Update(surface) {
		ticks++
		require.LessOrEqual(t, c.Radius, prev)
		prev = c.Radius
	}

	assert.Equal(t, int(CircleRadius/ShrinkRate)-1, ticks)
}

func TestStaticCircle(t *testing.T) {
	surface := newRecorder(800, 600)
	p := &Circle{X: -50, Y: 900, Radius: CircleRadius, DX: 3, Static: true, Shrinking: true}

	for i := 0; i < 100; i++ {
		require.True(t, p.Update(surface))
	}

	assert.Equal(t, -50.0, p.X)
	assert.Equal(t, 900.0, p.Y)
	assert.Equal(t, CircleRadius, p.Radius)
	assert.Equal(t, 100, surface.count("stroke"))
	assert.Zero(t, surface.count("fill"))
}

func TestSetPositionDoesNotClamp(t *testing.T) {
	c := &Circle{}
	c.SetPosition(-10, 1e6)
	assert.Equal(t, -10.0, c.X)
	assert.Equal(t, 1e6, c.Y)
}

func TestUpdateOutsideShrunkBoundsJitters(t *testing.T) {
	s := newRecorder(400, 300)
	c := &Circle{X: 900, Y: 150, Radius: CircleRadius, DX: 1}

	for i := 0; i < 6; i++ {
		require.True(t, c.Update(s))
		assert.Contains(t, []float64{899, 900}, c.X, "tick %d", i)
	}
}
