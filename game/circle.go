package game

import "image/color"

type Circle struct {
	X, Y      float64
	Radius    float64
	DX, DY    float64
	Color     color.RGBA
	Glow      color.RGBA // ring glow, static circles only
	Static    bool       // the player ring: no motion, never shrinks
	Shrinking bool       // set once on collision with the player, never cleared
}

// Update advances the circle by one tick and draws it. Returns false when
// the circle has shrunk away and must be dropped from the live collection.
func (c *Circle) Update(s Surface) bool {
	if !c.Static {
		w, h := s.Size()

		if c.X+c.Radius > w || c.X-c.Radius < 0 {
			c.DX = -c.DX
		}
		if c.Y+c.Radius > h || c.Y-c.Radius < 0 {
			c.DY = -c.DY
		}

		c.X += c.DX
		c.Y += c.DY

		if c.Shrinking {
			c.Radius -= ShrinkRate
			if c.Radius <= 0 {
				return false
			}
		}
	}

	c.Draw(s)

	return true
}

func (c *Circle) Draw(s Surface) {
	if c.Static {
		s.StrokeCircle(c.X, c.Y, c.Radius, StrokeWidth, c.Color, c.Glow)
		return
	}

	s.FillCircle(c.X, c.Y, c.Radius, c.Color)
}

func (c *Circle) SetPosition(x, y float64) {
	c.X = x
	c.Y = y
}

// CollidesWith reports whether the two discs overlap, using their current radii.
func (c *Circle) CollidesWith(o *Circle) bool {
	dx := c.X - o.X
	dy := c.Y - o.Y
	sum := c.Radius + o.Radius

	return dx*dx+dy*dy < sum*sum
}
