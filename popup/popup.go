// Package popup implements the "all popped" overlay shared by the front ends.
package popup

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	DefaultMessage = "You popped them all!"
	DefaultHint    = "Click or press R to play again"
	FadeDuration   = 0.35 // seconds
)

// Popup is shown at most once per round. Show is idempotent while the
// popup is visible; Hide rearms it.
type Popup struct {
	Message string
	Hint    string

	visible bool
	shows   int
	alpha   float32
	fade    *gween.Tween
}

func New() *Popup {
	return &Popup{
		Message: DefaultMessage,
		Hint:    DefaultHint,
	}
}

func (p *Popup) Show() {
	if p.visible {
		return
	}

	p.visible = true
	p.shows++
	p.alpha = 0
	p.fade = gween.New(0, 1, FadeDuration, ease.OutCubic)
}

func (p *Popup) Hide() {
	p.visible = false
	p.alpha = 0
	p.fade = nil
}

// Update advances the fade-in by dt seconds.
func (p *Popup) Update(dt float32) {
	if !p.visible || p.fade == nil {
		return
	}

	alpha, finished := p.fade.Update(dt)
	p.alpha = alpha
	if finished {
		p.alpha = 1
		p.fade = nil
	}
}

func (p *Popup) Visible() bool {
	return p.visible
}

// Alpha is the overlay opacity in [0, 1].
func (p *Popup) Alpha() float32 {
	return p.alpha
}

// Shows counts the times the popup actually became visible.
func (p *Popup) Shows() int {
	return p.shows
}
