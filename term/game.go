// Package term plays the game in a terminal, driven by the mouse.
package term

import (
	"context"
	"image/color"
	"math/rand/v2"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/mircot/bubble-popper/game"
	"github.com/mircot/bubble-popper/pkg/input"
	"github.com/mircot/bubble-popper/popup"
	"github.com/mircot/bubble-popper/script"
)

const FrameInterval = 16 * time.Millisecond // ~60 FPS

var popupPanel = color.RGBA{0x18, 0x18, 0x20, 0xff}

type Options struct {
	Theme  script.Theme
	Rand   *rand.Rand
	Logger *zap.Logger
}

// Game owns a screen and a session. All of its methods run on the
// goroutine that called Run.
type Game struct {
	screen  tcell.Screen
	session *game.Session
	popup   *popup.Popup
	surface *cellSurface
	theme   script.Theme
	logger  *zap.Logger
}

// New wraps an initialised screen.
func New(screen tcell.Screen, opts Options) *Game {
	g := &Game{
		screen: screen,
		popup:  popup.New(),
		surface: &cellSurface{
			screen: screen,
			bg:     tcell.StyleDefault.Background(toTcell(opts.Theme.Background)),
		},
		theme:  opts.Theme,
		logger: opts.Logger,
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	g.popup.Hint = "Press r to play again, q to quit"

	sessionOpts := []game.Option{
		game.WithPalette(opts.Theme.Palette),
		game.WithPlayerColors(opts.Theme.Player, opts.Theme.Glow),
		game.WithScoreGradient(opts.Theme.Gradient()),
		game.WithPopup(g.popup),
		game.WithLogger(g.logger),
	}
	if opts.Rand != nil {
		sessionOpts = append(sessionOpts, game.WithRand(opts.Rand))
	}

	w, h := g.surface.Size()
	g.session = game.NewSession(w, h, sessionOpts...)

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	return g
}

func (g *Game) Session() *game.Session {
	return g.session
}

func (g *Game) Popup() *popup.Popup {
	return g.popup
}

// handleEvent applies one input event. Returns false when the player quits.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == 'r'):
			if (input.Restart{Key: true}).Requested(g.popup.Visible()) {
				g.reset()
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		g.session.MovePlayer(cellCenter(col, row))

		restart := input.Restart{Click: ev.Buttons()&tcell.Button1 != 0}
		if restart.Requested(g.popup.Visible()) {
			g.reset()
		}

	case *tcell.EventResize:
		g.screen.Sync()
	}

	return true
}

func (g *Game) reset() {
	g.popup.Hide()
	w, h := g.surface.Size()
	g.session.Reset(w, h)
}

// frame runs one tick and presents it.
func (g *Game) frame(dt float32) {
	g.session.Tick(g.surface)
	g.popup.Update(dt)
	g.drawPopup()
	g.screen.Show()
}

func (g *Game) drawPopup() {
	if !g.popup.Visible() {
		return
	}

	cols, rows := g.screen.Size()
	// The panel fades in from the background colour.
	panel := game.Gradient{From: g.theme.Background, To: popupPanel}.At(float64(g.popup.Alpha()), 1)
	style := tcell.StyleDefault.
		Background(toTcell(panel)).
		Foreground(tcell.ColorWhite).
		Bold(true)

	lines := []string{"", g.popup.Message, g.popup.Hint, ""}
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l)+4)
	}

	top := rows/2 - len(lines)/2
	left := (cols - width) / 2
	for i, l := range lines {
		row := top + i
		for col := left; col < left+width; col++ {
			g.screen.SetContent(col, row, ' ', nil, style)
		}

		col := left + (width-utf8.RuneCountInString(l))/2
		for _, r := range l {
			g.screen.SetContent(col, row, r, nil, style)
			col++
		}
	}
}

// Run polls input and ticks until ctx is cancelled or the player quits.
// The screen is finalised before Run returns.
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	stop := make(chan struct{})
	polled := make(chan struct{})

	go func() {
		defer close(polled)
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	defer func() {
		close(stop)
		g.screen.Fini()
		<-polled
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	g.logger.Info("Terminal game started", zap.String("session", g.session.ID().String()))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !g.handleEvent(ev) {
				g.logger.Info("Player quit", zap.Int("popped", g.session.Popped()))
				return nil
			}

		case <-ticker.C:
			g.frame(float32(FrameInterval.Seconds()))
		}
	}
}
