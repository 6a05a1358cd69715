package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player owns the speaker and a mixer that cues are added to.
// Safe for concurrent use.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	drone       *beep.Ctrl
	initialized bool
	muted       bool
}

func NewPlayer(sampleRate int) *Player {
	return &Player{
		rate:  beep.SampleRate(sampleRate),
		mixer: &beep.Mixer{},
	}
}

func (p *Player) SampleRate() beep.SampleRate { return p.rate }

// Initialize opens the audio device with a 100ms buffer
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play mixes s in unless the player is muted or not initialized
func (p *Player) Play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// StartDrone loops s until StopDrone. A running drone is left alone.
func (p *Player) StartDrone(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	if p.drone != nil {
		return
	}
	ctrl := &beep.Ctrl{Streamer: s, Paused: p.muted}
	speaker.Lock()
	p.drone = ctrl
	p.mixer.Add(ctrl)
	speaker.Unlock()
}

func (p *Player) StopDrone() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.drone == nil {
		return
	}
	// A Ctrl without a streamer drains, so the mixer drops it
	speaker.Lock()
	p.drone.Streamer = nil
	speaker.Unlock()
	p.drone = nil
}

// ToggleMute flips mute and reports the new state. Muting pauses the drone.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.drone != nil {
		speaker.Lock()
		p.drone.Paused = p.muted
		speaker.Unlock()
	}
	return p.muted
}

func (p *Player) IsMuted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Cleanup silences everything. The speaker itself stays open for the process lifetime.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.drone = nil
	p.initialized = false
}
