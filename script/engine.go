// Package script runs the tengo theme script that picks the colours of a game.
package script

import (
	"context"
	"fmt"
	"image/color"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/mircot/bubble-popper/assets"
	"github.com/mircot/bubble-popper/game"
)

type Theme struct {
	Palette    []color.RGBA
	Background color.RGBA
	Player     color.RGBA
	Glow       color.RGBA
	ScoreFrom  color.RGBA
	ScoreTo    color.RGBA
}

// Gradient returns the score text gradient of the theme.
func (t Theme) Gradient() game.Gradient {
	return game.Gradient{From: t.ScoreFrom, To: t.ScoreTo}
}

type Engine struct {
	path        string
	themeScript *tengo.Script
}

// Load prepares the theme script at path, or the embedded default theme
// when path is empty.
func (e *Engine) Load(path string) error {
	src := assets.Theme

	if path != "" {
		fData, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading theme script: %w", err)
		}
		src = fData
	}

	themeScript := tengo.NewScript(src)
	themeScript.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	if err := themeScript.Add("count", game.InitialCount); err != nil {
		return err
	}

	e.path = path
	e.themeScript = themeScript

	return nil
}

// Source names the loaded script for logs.
func (e *Engine) Source() string {
	if e.path == "" {
		return "embedded"
	}

	return e.path
}

// Theme runs the script and reads the theme variables it defines. Only
// palette is required; the other colours fall back to the defaults.
func (e *Engine) Theme(ctx context.Context) (Theme, error) {
	if e.themeScript == nil {
		if err := e.Load(""); err != nil {
			return Theme{}, err
		}
	}

	compiled, err := e.themeScript.Compile()
	if err != nil {
		return Theme{}, fmt.Errorf("compiling theme script %s: %w", e.Source(), err)
	}

	if err := compiled.RunContext(ctx); err != nil {
		return Theme{}, fmt.Errorf("running theme script %s: %w", e.Source(), err)
	}

	theme := Theme{
		Background: color.RGBA{0x00, 0x00, 0x00, 0xff},
		Player:     color.RGBA{0xff, 0xff, 0xff, 0xff},
		Glow:       color.RGBA{0xff, 0xff, 0xff, 0xff},
		ScoreFrom:  color.RGBA{0x00, 0xff, 0xff, 0xff},
		ScoreTo:    color.RGBA{0xff, 0x69, 0xb4, 0xff},
	}

	if !compiled.IsDefined("palette") {
		return Theme{}, fmt.Errorf("theme script %s: palette is not defined", e.Source())
	}

	palette := compiled.Get("palette")
	if palette.ValueType() != "array" {
		return Theme{}, fmt.Errorf("theme script %s: palette must be an array, got %s", e.Source(), palette.ValueType())
	}

	entries := palette.Array()
	if len(entries) == 0 {
		return Theme{}, fmt.Errorf("theme script %s: palette is empty", e.Source())
	}

	for i, entry := range entries {
		s, ok := entry.(string)
		if !ok {
			return Theme{}, fmt.Errorf("theme script %s: palette[%d] is not a string", e.Source(), i)
		}

		clr, err := parseHex(s)
		if err != nil {
			return Theme{}, fmt.Errorf("theme script %s: palette[%d]: %w", e.Source(), i, err)
		}

		theme.Palette = append(theme.Palette, clr)
	}

	for _, v := range []struct {
		name string
		dst  *color.RGBA
	}{
		{"background", &theme.Background},
		{"player", &theme.Player},
		{"glow", &theme.Glow},
		{"score_from", &theme.ScoreFrom},
		{"score_to", &theme.ScoreTo},
	} {
		if !compiled.IsDefined(v.name) {
			continue
		}

		clr, err := parseHex(compiled.Get(v.name).String())
		if err != nil {
			return Theme{}, fmt.Errorf("theme script %s: %s: %w", e.Source(), v.name, err)
		}

		*v.dst = clr
	}

	return theme, nil
}

func parseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}

	r, g, b := c.RGB255()

	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
