package engine

import (
	"sync"
	"time"
)

// FrameClock measures host frame deltas, excluding time spent paused.
// Pause and Resume may be called from an input goroutine while the
// host loop calls Delta.
type FrameClock struct {
	mu     sync.Mutex
	source TimeProvider

	last time.Time

	// Pause state
	paused      bool
	pauseStart  time.Time
	pendingSkip time.Duration // paused time not yet removed from a delta
	totalPaused time.Duration
}

func NewFrameClock(source TimeProvider) *FrameClock {
	return &FrameClock{source: source, last: source.Now()}
}

// Delta returns seconds of unpaused time since the previous call (or construction)
func (c *FrameClock) Delta() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.source.Now()
	if c.paused {
		span := now.Sub(c.pauseStart)
		c.pendingSkip += span
		c.totalPaused += span
		c.pauseStart = now
	}

	d := now.Sub(c.last) - c.pendingSkip
	c.last = now
	c.pendingSkip = 0
	if d < 0 {
		d = 0
	}
	return d.Seconds()
}

func (c *FrameClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

func (c *FrameClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resumeLocked()
}

// Toggle flips the pause state and reports the new state
func (c *FrameClock) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		c.resumeLocked()
	} else {
		c.pauseLocked()
	}
	return c.paused
}

func (c *FrameClock) pauseLocked() {
	if !c.paused {
		c.paused = true
		c.pauseStart = c.source.Now()
	}
}

func (c *FrameClock) resumeLocked() {
	if c.paused {
		span := c.source.Now().Sub(c.pauseStart)
		c.pendingSkip += span
		c.totalPaused += span
		c.paused = false
	}
}

func (c *FrameClock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// TotalPaused includes the pause in progress, if any
func (c *FrameClock) TotalPaused() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.totalPaused
	if c.paused {
		total += c.source.Now().Sub(c.pauseStart)
	}
	return total
}
