package engine

import (
	"fmt"
	"log/slog"

	"github.com/lixenwraith/fixed-engine/fixed"
)

// Timer counts fixed-point seconds supplied by its owner through Update.
// It never reads a clock.
//
// Loop with RepeatCount 0 repeats forever. Otherwise RepeatCount is the
// number of extra runs after the first, looping or not.
type Timer[F fixed.Format] struct {
	Label       string
	OnFinish    func()
	Loop        bool
	RepeatCount int

	duration    fixed.Fixed[F]
	elapsed     fixed.Fixed[F]
	lastElapsed fixed.Fixed[F]
	repeatsLeft int

	paused        bool
	finished      bool
	doneThisFrame bool
	justLooped    bool
}

// NewTimer warns but does not fail on a non-positive duration.
// Such a timer ignores Update until SetDuration gives it a positive one.
func NewTimer[F fixed.Format](duration fixed.Fixed[F], loop bool, repeatCount int, label string) *Timer[F] {
	t := &Timer[F]{
		Label:       label,
		Loop:        loop,
		RepeatCount: repeatCount,
		duration:    duration,
		repeatsLeft: repeatCount,
	}
	if !t.IsInitialized() {
		t.warn("timer created with non-positive duration")
	}
	return t
}

func (t *Timer[F]) warn(msg string) {
	fixed.Logger().Warn(msg, slog.String("timer", t.Label), slog.String("duration", t.duration.String()))
}

// --- Update ---

// Update advances elapsed by dt unless paused or finished. Crossing the duration
// fires OnFinish once, then loops, repeats or finishes.
func (t *Timer[F]) Update(dt fixed.Fixed[F]) {
	t.doneThisFrame = false
	t.justLooped = false

	if !t.IsInitialized() {
		t.warn("timer updated without positive duration")
		return
	}
	if t.paused || t.finished {
		return
	}

	t.lastElapsed = t.elapsed
	t.elapsed = t.elapsed.Add(dt)
	if t.elapsed.Lt(t.duration) {
		return
	}

	t.doneThisFrame = true
	if t.OnFinish != nil {
		t.OnFinish()
	}

	switch {
	case t.Loop && t.RepeatCount == 0:
		t.rewind()
	case t.repeatsLeft > 0:
		t.repeatsLeft--
		t.rewind()
	default:
		t.finished = true
	}
}

func (t *Timer[F]) rewind() {
	t.elapsed = fixed.Zero[F]()
	t.justLooped = true
}

// Listener returns a scheduler listener advancing t by step every tick
func (t *Timer[F]) Listener(step fixed.Fixed[F]) Listener {
	return ListenerFunc(func(uint64) { t.Update(step) })
}

// --- Commands ---

// Reset rewinds to zero, refills repeats and clears pause and finish
func (t *Timer[F]) Reset() {
	t.elapsed = fixed.Zero[F]()
	t.lastElapsed = t.elapsed
	t.repeatsLeft = t.RepeatCount
	t.paused = false
	t.finished = false
	t.doneThisFrame = false
	t.justLooped = false
}

func (t *Timer[F]) Restart() { t.Reset() }

// RestartWith sets a new duration, then resets
func (t *Timer[F]) RestartWith(duration fixed.Fixed[F]) {
	t.SetDuration(duration)
	t.Reset()
}

// Stop jumps to the end and finishes without firing OnFinish
func (t *Timer[F]) Stop() {
	t.paused = true
	t.elapsed = t.duration
	t.finished = true
}

func (t *Timer[F]) Pause()  { t.paused = true }
func (t *Timer[F]) Resume() { t.paused = false }

func (t *Timer[F]) SetDuration(d fixed.Fixed[F]) {
	t.duration = d
	if !t.IsInitialized() {
		t.warn("timer duration set to non-positive value")
	}
}

// --- State ---

func (t *Timer[F]) IsInitialized() bool { return t.duration.Gt(fixed.Zero[F]()) }
func (t *Timer[F]) IsFinished() bool    { return t.finished }
func (t *Timer[F]) IsPaused() bool      { return t.paused }
func (t *Timer[F]) IsRunning() bool     { return !t.paused && !t.finished }

// DoneThisFrame is true only for the Update call that crossed the duration
func (t *Timer[F]) DoneThisFrame() bool { return t.doneThisFrame }

// HasJustLooped is true for the Update call that crossed the duration and rewound
func (t *Timer[F]) HasJustLooped() bool { return t.justLooped }

func (t *Timer[F]) Elapsed() fixed.Fixed[F]  { return t.elapsed }
func (t *Timer[F]) Duration() fixed.Fixed[F] { return t.duration }
func (t *Timer[F]) RepeatsLeft() int         { return t.repeatsLeft }

// Remaining never goes below zero
func (t *Timer[F]) Remaining() fixed.Fixed[F] {
	return fixed.Max(t.duration.Sub(t.elapsed), fixed.Zero[F]())
}

// Progress is elapsed/duration clamped to [0,1], for display only
func (t *Timer[F]) Progress() float64 {
	if !t.IsInitialized() {
		return 0
	}
	return min(max(t.elapsed.ToFloat()/t.duration.ToFloat(), 0), 1)
}

// Triggered reports whether the last Update crossed threshold
func (t *Timer[F]) Triggered(threshold fixed.Fixed[F]) bool {
	return !t.paused && t.elapsed.Ge(threshold) && t.lastElapsed.Lt(threshold)
}

func (t *Timer[F]) String() string {
	return fmt.Sprintf("timer %q: %s/%s loop=%t paused=%t repeats=%d",
		t.Label, t.elapsed, t.duration, t.Loop, t.paused, t.repeatsLeft)
}
