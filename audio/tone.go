package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/fixed-engine/fixed"
)

// Tone streams a sine wave read from the fixed-point sine table. The phase is
// a fixed-point angle in degrees, so what you hear is exactly the table the
// simulation uses, rounding steps included.
type Tone[F fixed.AngularFormat] struct {
	phase     fixed.Fixed[F]
	step      fixed.Fixed[F] // degrees per sample
	remaining int            // samples left, negative for endless
}

// NewTone creates a tone of freq Hz. A non-positive duration streams forever.
func NewTone[F fixed.AngularFormat](freq float64, duration time.Duration, rate beep.SampleRate) *Tone[F] {
	remaining := -1
	if duration > 0 {
		remaining = rate.N(duration)
	}
	return &Tone[F]{
		step:      fixed.FromFloat[F](360 * freq / float64(rate)),
		remaining: remaining,
	}
}

func (t *Tone[F]) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.remaining == 0 {
			return i, i > 0
		}
		val := fixed.Sin(t.phase).ToFloat()
		samples[i][0] = val
		samples[i][1] = val

		t.phase = fixed.WrapAngle360(t.phase.Add(t.step))
		if t.remaining > 0 {
			t.remaining--
		}
	}
	return len(samples), true
}

func (t *Tone[F]) Err() error { return nil }

// Step is the phase increment per sample after quantization into F
func (t *Tone[F]) Step() fixed.Fixed[F] { return t.step }

// newVolume wraps s with linear gain; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Cue is a short enveloped tone at linear gain vol
func Cue[F fixed.AngularFormat](freq float64, duration time.Duration, vol float64, rate beep.SampleRate) beep.Streamer {
	tone := NewTone[F](freq, duration, rate)
	shaped := NewEnvelope(tone, duration, duration/10, duration/3, rate)
	return newVolume(shaped, vol)
}

// Drone is an endless tone at linear gain vol
func Drone[F fixed.AngularFormat](freq, vol float64, rate beep.SampleRate) beep.Streamer {
	return newVolume(NewTone[F](freq, 0, rate), vol)
}
