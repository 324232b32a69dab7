// Package app assembles the pieces every front end needs from a Config.
package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mircot/bubble-popper/internal/config"
	"github.com/mircot/bubble-popper/internal/observability"
	"github.com/mircot/bubble-popper/script"
	"github.com/mircot/bubble-popper/sound"
)

type App struct {
	Config *config.Config
	Logger *zap.Logger
	Theme  script.Theme
	Seed   uint64
	Rand   *rand.Rand
	Sounds *sound.Bank // nil when muted or unsupported by the backend
}

// New initialises logging, runs the theme script and renders the sounds.
func New(ctx context.Context, cfg *config.Config, console zapcore.WriteSyncer) (*App, error) {
	logger := observability.Initialize(cfg.Logger, console)

	a := &App{
		Config: cfg,
		Logger: logger,
		Seed:   cfg.Game.Seed,
	}

	if a.Seed == 0 {
		a.Seed = uint64(time.Now().UnixNano())
	}
	a.Rand = rand.New(rand.NewPCG(a.Seed, a.Seed^0x9e3779b97f4a7c15))

	var engine script.Engine
	if err := engine.Load(cfg.Game.Theme); err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}

	theme, err := engine.Theme(ctx)
	if err != nil {
		return nil, err
	}
	a.Theme = theme

	logger.Info("Theme loaded",
		zap.String("source", engine.Source()),
		zap.Int("colors", len(theme.Palette)),
	)

	if cfg.Audio.Enabled && cfg.Window.Backend == config.BackendWindow {
		a.Sounds, err = sound.NewBank(sound.Config{
			SampleRate: cfg.Audio.SampleRate,
			Volume:     cfg.Audio.Volume,
		})
		if err != nil {
			return nil, fmt.Errorf("preparing sounds: %w", err)
		}
	} else {
		logger.Debug("Audio disabled", zap.String("backend", cfg.Window.Backend))
	}

	logger.Info("Game configured",
		zap.String("backend", cfg.Window.Backend),
		zap.Uint64("seed", a.Seed),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	return a, nil
}
