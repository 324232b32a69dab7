package pkg

import (
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/mircot/bubble-popper/game"
	"github.com/mircot/bubble-popper/sound"
)

// audioContext can only be created once per process.
var audioContext *audio.Context

// audioListener plays the pre-rendered effects of a sound bank.
type audioListener struct {
	bank *sound.Bank
}

func newAudioListener(bank *sound.Bank) *audioListener {
	if audioContext == nil {
		audioContext = audio.NewContext(bank.SampleRate())
	}

	return &audioListener{bank: bank}
}

func (a *audioListener) OnPop(_ *game.Circle, _ int) {
	a.play(a.bank.Pop())
}

func (a *audioListener) OnWin() {
	a.play(a.bank.Win())
}

func (a *audioListener) play(pcm []byte) {
	audioContext.NewPlayerFromBytes(pcm).Play()
}
