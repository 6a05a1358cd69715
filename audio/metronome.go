package audio

import (
	"errors"
	"fmt"

	"github.com/gopxl/beep"
)

// ErrInvalidInterval is returned for a metronome beat of less than one tick
var ErrInvalidInterval = errors.New("beat interval must be at least one tick")

const beatsPerBar = 4

// Metronome plays a cue every N logical ticks, accenting the first beat of
// each bar. It is a scheduler listener, so beats stay locked to simulation
// time whatever the frame rate.
type Metronome struct {
	every uint64
	cue   func(accent bool) beep.Streamer
	play  func(beep.Streamer)
	beats uint64
}

func NewMetronome(every int, cue func(accent bool) beep.Streamer, play func(beep.Streamer)) (*Metronome, error) {
	if every < 1 {
		return nil, fmt.Errorf("metronome: %d: %w", every, ErrInvalidInterval)
	}
	return &Metronome{every: uint64(every), cue: cue, play: play}, nil
}

func (m *Metronome) FixedTick(tick uint64) {
	if tick%m.every != 0 {
		return
	}
	accent := m.beats%beatsPerBar == 0
	m.beats++
	m.play(m.cue(accent))
}

func (m *Metronome) Beats() uint64 { return m.beats }
