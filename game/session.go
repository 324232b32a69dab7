package game

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}

	defaultGradient = Gradient{
		From: color.RGBA{0x00, 0xff, 0xff, 0xff},
		To:   color.RGBA{0xff, 0x69, 0xb4, 0xff},
	}
)

// Session owns the live circles, the player ring and the pop counter of
// one game. It is not safe for concurrent use: input and ticks must be
// delivered from the same goroutine.
type Session struct {
	id        uuid.UUID
	player    *Circle
	circles   []*Circle
	popped    int
	won       bool
	rng       *rand.Rand
	palette   []color.RGBA
	score     Gradient
	popup     Popup
	listeners []Listener
	logger    *zap.Logger
}

type Option func(*Session)

func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithPalette sets the colours new circles pick from. An empty palette is ignored.
func WithPalette(p []color.RGBA) Option {
	return func(s *Session) {
		if len(p) > 0 {
			s.palette = append([]color.RGBA(nil), p...)
		}
	}
}

func WithPlayerColors(stroke, glow color.RGBA) Option {
	return func(s *Session) {
		s.player.Color = stroke
		s.player.Glow = glow
	}
}

func WithScoreGradient(g Gradient) Option {
	return func(s *Session) { s.score = g }
}

func WithPopup(p Popup) Option {
	return func(s *Session) { s.popup = p }
}

func WithListener(l Listener) Option {
	return func(s *Session) { s.listeners = append(s.listeners, l) }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session sized for a w x h surface and spawns the
// first round of circles.
func NewSession(w, h float64, opts ...Option) *Session {
	s := &Session{
		player: &Circle{
			Radius: CircleRadius,
			Color:  white,
			Glow:   white,
			Static: true,
		},
		palette: []color.RGBA{white},
		score:   defaultGradient,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	s.Reset(w, h)

	return s
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Player() *Circle {
	return s.player
}

// Circles returns the live non-player circles. The slice is owned by the
// session and is only valid until the next Tick or Reset.
func (s *Session) Circles() []*Circle {
	return s.circles
}

func (s *Session) Popped() int {
	return s.popped
}

func (s *Session) Remaining() int {
	return InitialCount - s.popped
}

func (s *Session) Won() bool {
	return s.won
}

// MovePlayer follows pointer or touch input. Coordinates are not clamped.
func (s *Session) MovePlayer(x, y float64) {
	s.player.SetPosition(x, y)
}

// Reset starts a new round: fresh circles, zeroed counter and the same
// player ring moved to a random spot.
func (s *Session) Reset(w, h float64) {
	s.id = uuid.New()
	s.popped = 0
	s.won = false

	s.circles = make([]*Circle, 0, InitialCount)
	for i := 0; i < InitialCount; i++ {
		s.circles = append(s.circles, s.spawn(w, h))
	}

	s.player.SetPosition(
		s.rng.Float64()*(w-2*CircleRadius)+CircleRadius,
		s.rng.Float64()*(h-2*CircleRadius)+CircleRadius,
	)

	s.logger.Info("Round started",
		zap.String("session", s.id.String()),
		zap.Float64("width", w),
		zap.Float64("height", h),
	)
}

func (s *Session) spawn(w, h float64) *Circle {
	return &Circle{
		X:      s.rng.Float64()*(w-2*CircleRadius) + CircleRadius,
		Y:      s.rng.Float64()*(h-2*CircleRadius) + CircleRadius,
		Radius: CircleRadius,
		DX:     (s.rng.Float64() - 0.5) * 2 * MaxSpeed,
		DY:     (s.rng.Float64() - 0.5) * 2 * MaxSpeed,
		Color:  s.palette[s.rng.IntN(len(s.palette))],
	}
}

// Tick runs one frame: clear, score, collision pass, update-and-compact
// pass, win check.
func (s *Session) Tick(surface Surface) {
	w, _ := surface.Size()

	surface.Clear()
	surface.DrawText(fmt.Sprintf(ScoreLabel, s.Remaining()), w-ScoreOffsetX, ScoreY, s.score)

	for _, c := range s.circles {
		if c.Shrinking || !s.player.CollidesWith(c) {
			continue
		}

		c.Shrinking = true
		s.popped++

		s.logger.Debug("Circle popped",
			zap.String("session", s.id.String()),
			zap.Int("popped", s.popped),
		)

		for _, l := range s.listeners {
			l.OnPop(c, s.popped)
		}
	}

	live := s.circles[:0]
	for _, c := range s.circles {
		if c.Update(surface) {
			live = append(live, c)
		}
	}
	for i := len(live); i < len(s.circles); i++ {
		s.circles[i] = nil
	}
	s.circles = live

	s.player.Update(surface)

	if s.popped >= InitialCount && !s.won {
		s.won = true

		s.logger.Info("All circles popped", zap.String("session", s.id.String()))

		if s.popup != nil {
			s.popup.Show()
		}
		for _, l := range s.listeners {
			l.OnWin()
		}
	}
}
