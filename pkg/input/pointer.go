// Package input decides which pointer drives the player ring and when a
// round may be restarted. It has no ebiten dependency so it can be tested
// without a display.
package input

type Point struct {
	X, Y int
}

// Pointer follows touches and the mouse cursor. The first touch always
// wins; the cursor only takes over once it has moved, so the ring stays
// where the last touch left it on devices without a mouse.
type Pointer struct {
	lastCursor Point
}

// NewPointer starts tracking from the current cursor position.
func NewPointer(cursor Point) *Pointer {
	return &Pointer{lastCursor: cursor}
}

// Follow returns the position the player should move to, and false when
// nothing moved this frame.
func (p *Pointer) Follow(touches []Point, cursor Point) (Point, bool) {
	if len(touches) > 0 {
		return touches[0], true
	}

	if cursor != p.lastCursor {
		p.lastCursor = cursor
		return cursor, true
	}

	return Point{}, false
}

// Restart is one frame of restart requests.
type Restart struct {
	Key   bool // R or Enter just pressed
	Click bool
	Tap   bool
}

// Requested reports whether the round should restart. Requests are only
// honoured while the win popup is up.
func (r Restart) Requested(popupVisible bool) bool {
	return popupVisible && (r.Key || r.Click || r.Tap)
}
