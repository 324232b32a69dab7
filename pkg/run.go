package pkg

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens the game window and blocks until it is closed.
func Run(opts Options) error {
	r := &Renderer{}
	if err := r.Init(opts); err != nil {
		return err
	}

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(opts.Fullscreen)

	return ebiten.RunGame(r)
}
