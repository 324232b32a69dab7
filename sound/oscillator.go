package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// sweep is a sine oscillator gliding linearly from one frequency to another.
type sweep struct {
	from, to float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

func newSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}

		t := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*t

		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}

	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope fades a finite stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 1.0

		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}

		if remaining := e.total - e.position; remaining < e.release && e.release > 0 {
			vol = math.Max(0, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
