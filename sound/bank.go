// Package sound synthesises the game's sound effects as raw PCM.
package sound

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	PopDuration     = 90 * time.Millisecond
	PopAttack       = 4 * time.Millisecond
	PopRelease      = 60 * time.Millisecond
	ChimeNote       = 110 * time.Millisecond
	ChimeLastNote   = 320 * time.Millisecond
	ChimeAttack     = 6 * time.Millisecond
	ChimeRelease    = 80 * time.Millisecond
	BytesPerFrame   = 4 // 16-bit little-endian stereo
	maxEncodeLength = 5 * time.Second
)

var ErrTooLong = errors.New("sound: streamer exceeds maximum length")

type Config struct {
	SampleRate int
	Volume     float64 // linear, 0 mutes
}

// Bank holds pre-rendered effects ready to be handed to an audio player.
type Bank struct {
	rate beep.SampleRate
	pop  []byte
	win  []byte
}

func NewBank(cfg Config) (*Bank, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sound: invalid sample rate %d", cfg.SampleRate)
	}

	b := &Bank{rate: beep.SampleRate(cfg.SampleRate)}

	var err error
	if b.pop, err = Encode(newVolume(b.popStreamer(), cfg.Volume), b.rate); err != nil {
		return nil, fmt.Errorf("rendering pop: %w", err)
	}
	if b.win, err = Encode(newVolume(b.winStreamer(), cfg.Volume), b.rate); err != nil {
		return nil, fmt.Errorf("rendering win chime: %w", err)
	}

	return b, nil
}

func (b *Bank) SampleRate() int { return int(b.rate) }

func (b *Bank) Pop() []byte { return b.pop }

func (b *Bank) Win() []byte { return b.win }

func (b *Bank) popStreamer() beep.Streamer {
	osc := newSweep(880, 220, PopDuration, b.rate)
	return newEnvelope(osc, PopDuration, PopAttack, PopRelease, b.rate)
}

// winStreamer plays a C-E-G-C arpeggio.
func (b *Bank) winStreamer() beep.Streamer {
	notes := []float64{1046.50, 1318.51, 1567.98, 2093.00}
	parts := make([]beep.Streamer, 0, len(notes))

	for i, freq := range notes {
		d := ChimeNote
		if i == len(notes)-1 {
			d = ChimeLastNote
		}
		osc := newSweep(freq, freq, d, b.rate)
		parts = append(parts, newEnvelope(osc, d, ChimeAttack, ChimeRelease, b.rate))
	}

	return beep.Seq(parts...)
}

// newVolume maps a linear volume onto beep's logarithmic scale; 0 is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}

	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Encode drains a finite streamer into 16-bit little-endian stereo PCM.
func Encode(s beep.Streamer, rate beep.SampleRate) ([]byte, error) {
	limit := rate.N(maxEncodeLength)
	buf := make([][2]float64, 512)
	out := make([]byte, 0, 4096)
	frames := 0

	for {
		n, ok := s.Stream(buf)
		for _, sample := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(sample[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(sample[1])))
		}

		frames += n
		if frames > limit {
			return nil, ErrTooLong
		}
		if !ok {
			break
		}
	}

	if err := s.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}
