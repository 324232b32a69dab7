package pkg

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/mircot/bubble-popper/game"
	"github.com/mircot/bubble-popper/pkg/input"
	"github.com/mircot/bubble-popper/popup"
	"github.com/mircot/bubble-popper/script"
	"github.com/mircot/bubble-popper/sound"
)

const (
	StatusBarDelay = 60
	statusBarH     = 28
)

var (
	mplusNormalFont text.Face
	mplusScoreFont  text.Face
	mplusBigFont    text.Face
)

type statusBarMsg struct {
	msg   string
	delay int
}

type Options struct {
	Width      int
	Height     int
	Title      string
	Fullscreen bool
	Debug      bool
	Theme      script.Theme
	Rand       *rand.Rand
	Sounds     *sound.Bank // nil mutes the game
	Logger     *zap.Logger
}

// Renderer is the ebiten.Game driving a session in a window.
type Renderer struct {
	session *game.Session
	popup   *popup.Popup
	theme   script.Theme
	logger  *zap.Logger

	w        int
	h        int
	pointer  *input.Pointer
	keys     []ebiten.Key
	touches  []ebiten.TouchID
	touchPts []input.Point

	guiDebug       bool
	statusBarMsgs  []statusBarMsg
	statusBarDelay int
	statusBarMsg   string
}

func newFace(tt *opentype.Font, size float64) (text.Face, error) {
	const dpi = 72

	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	return text.NewGoXFace(face), nil
}

func (r *Renderer) initFonts() error {
	tt, err := opentype.Parse(fonts.MPlus1pRegular_ttf)
	if err != nil {
		return err
	}

	if mplusNormalFont, err = newFace(tt, 12); err != nil {
		return err
	}
	if mplusScoreFont, err = newFace(tt, game.ScoreFontSize); err != nil {
		return err
	}
	if mplusBigFont, err = newFace(tt, 36); err != nil {
		return err
	}

	return nil
}

func (r *Renderer) Init(opts Options) error {
	if err := r.initFonts(); err != nil {
		return fmt.Errorf("loading fonts: %w", err)
	}

	r.logger = opts.Logger
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	r.theme = opts.Theme
	r.w = opts.Width
	r.h = opts.Height
	r.guiDebug = opts.Debug
	r.popup = popup.New()
	r.popup.Hint = "Click, tap or press R to play again"

	sessionOpts := []game.Option{
		game.WithPalette(opts.Theme.Palette),
		game.WithPlayerColors(opts.Theme.Player, opts.Theme.Glow),
		game.WithScoreGradient(opts.Theme.Gradient()),
		game.WithPopup(r.popup),
		game.WithLogger(r.logger),
	}
	if opts.Rand != nil {
		sessionOpts = append(sessionOpts, game.WithRand(opts.Rand))
	}
	if opts.Sounds != nil {
		sessionOpts = append(sessionOpts, game.WithListener(newAudioListener(opts.Sounds)))
	}

	r.session = game.NewSession(float64(r.w), float64(r.h), sessionOpts...)

	cx, cy := ebiten.CursorPosition()
	r.pointer = input.NewPointer(input.Point{X: cx, Y: cy})
	r.statusBarMsgs = make([]statusBarMsg, 0)
	r.statusBarDelay = StatusBarDelay
	r.statusBarMsg = ""

	return nil
}

func (r *Renderer) reset() {
	r.popup.Hide()
	r.session.Reset(float64(r.w), float64(r.h))
	r.statusBarMsgs = append(r.statusBarMsgs, statusBarMsg{"New round!", StatusBarDelay})
}

func (r *Renderer) followInput() {
	r.touches = ebiten.AppendTouchIDs(r.touches[:0])
	r.touchPts = r.touchPts[:0]
	for _, id := range r.touches {
		tx, ty := ebiten.TouchPosition(id)
		r.touchPts = append(r.touchPts, input.Point{X: tx, Y: ty})
	}

	mx, my := ebiten.CursorPosition()
	if p, moved := r.pointer.Follow(r.touchPts, input.Point{X: mx, Y: my}); moved {
		r.session.MovePlayer(float64(p.X), float64(p.Y))
	}
}

func (r *Renderer) Update() error {
	r.followInput()

	var restart input.Restart

	r.keys = inpututil.AppendPressedKeys(r.keys[:0])

	for _, p := range r.keys {
		if !inpututil.IsKeyJustPressed(p) {
			continue
		}

		switch p {
		case ebiten.KeyR, ebiten.KeyEnter:
			restart.Key = true
		case ebiten.KeyD:
			r.guiDebug = !r.guiDebug
			if r.guiDebug {
				r.statusBarMsgs = append(r.statusBarMsgs, statusBarMsg{"Debug overlay on", StatusBarDelay})
			} else {
				r.statusBarMsgs = append(r.statusBarMsgs, statusBarMsg{"Debug overlay off", StatusBarDelay})
			}
		case ebiten.KeyF:
			ebiten.SetFullscreen(!ebiten.IsFullscreen())
		}
	}

	restart.Click = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	restart.Tap = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0

	if restart.Requested(r.popup.Visible()) {
		r.reset()
	}

	r.popup.Update(float32(1.0 / float64(ebiten.TPS())))

	return nil
}

func (r *Renderer) drawPopup(screen *ebiten.Image) {
	if !r.popup.Visible() {
		return
	}

	alpha := r.popup.Alpha()
	w, h := float32(r.w), float32(r.h)

	vector.FillRect(screen, 0, 0, w, h, color.NRGBA{0, 0, 0, uint8(160 * alpha)}, false)

	boxW, boxH := float32(480), float32(160)
	if boxW > w-20 {
		boxW = w - 20
	}
	bx, by := (w-boxW)/2, (h-boxH)/2
	vector.FillRect(screen, bx, by, boxW, boxH, color.NRGBA{24, 24, 32, uint8(230 * alpha)}, true)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 2, color.NRGBA{r.theme.ScoreTo.R, r.theme.ScoreTo.G, r.theme.ScoreTo.B, uint8(255 * alpha)}, true)

	r.drawCentered(screen, r.popup.Message, mplusBigFont, float64(h)/2-24, alpha)
	r.drawCentered(screen, r.popup.Hint, mplusNormalFont, float64(h)/2+32, alpha)
}

func (r *Renderer) drawCentered(screen *ebiten.Image, msg string, face text.Face, y float64, alpha float32) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(r.w)/2, y)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleAlpha(alpha)
	text.Draw(screen, msg, face, op)
}

func (r *Renderer) drawStatusBar(screen *ebiten.Image) {
	if r.statusBarMsg != "" {
		vector.FillRect(screen, 0, float32(r.h-statusBarH), float32(r.w), statusBarH, color.RGBA{48, 48, 48, 196}, false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(6, float64(r.h-statusBarH+6))
		text.Draw(screen, r.statusBarMsg, mplusNormalFont, op)
	}

	if len(r.statusBarMsgs) > 0 && r.statusBarMsg == "" {
		curMsg := r.statusBarMsgs[0]
		r.statusBarMsg = curMsg.msg
		r.statusBarDelay = curMsg.delay
		r.statusBarMsgs = r.statusBarMsgs[1:]
	}

	if r.statusBarDelay > 0 {
		r.statusBarDelay -= 1
	} else {
		r.statusBarMsg = ""
		r.statusBarDelay = StatusBarDelay
	}
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	r.session.Tick(&screenSurface{dst: screen, bg: r.theme.Background, face: mplusScoreFont})

	r.drawPopup(screen)

	if r.guiDebug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %0.2f\nFPS: %0.2f\nLive: %d\nPopped: %d\nSession: %s",
			ebiten.ActualTPS(), ebiten.ActualFPS(), len(r.session.Circles()), r.session.Popped(), r.session.ID()))
	}

	r.drawStatusBar(screen)
}

// Layout follows the window size so the play field grows and shrinks with it.
func (r *Renderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.w, r.h = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
