package engine

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/lixenwraith/fixed-engine/fixed"
)

type q16 = fixed.Q16_16

func secs(f float64) fixed.Fixed[q16] { return fixed.FromFloat[q16](f) }

func TestTimerFinishesOnce(t *testing.T) {
	timer := NewTimer(secs(2.0), false, 0, "once")
	fired := 0
	timer.OnFinish = func() { fired++ }

	deltas := []float64{1.0, 0.9, 0.2}
	for i, d := range deltas {
		timer.Update(secs(d))
		done := timer.DoneThisFrame()
		if want := i == 2; done != want {
			t.Errorf("Update %d: expected DoneThisFrame=%t, got %t", i, want, done)
		}
	}

	if !timer.IsFinished() {
		t.Errorf("Expected timer finished")
	}
	if p := timer.Progress(); p != 1.0 {
		t.Errorf("Expected progress clamped to 1.0, got %v", p)
	}
	if !timer.Remaining().IsZero() {
		t.Errorf("Expected zero remaining, got %v", timer.Remaining())
	}

	timer.Update(secs(1))
	if timer.DoneThisFrame() || !timer.IsFinished() || fired != 1 {
		t.Errorf("Expected finished timer to stay quiet, done=%t fired=%d", timer.DoneThisFrame(), fired)
	}
	if timer.IsRunning() {
		t.Errorf("Expected finished timer not running")
	}
}

func TestTimerInfiniteLoop(t *testing.T) {
	timer := NewTimer(secs(1), true, 0, "loop")
	fired := 0
	timer.OnFinish = func() { fired++ }

	for i := 1; i <= 8; i++ {
		timer.Update(secs(0.5))
		crossed := i%2 == 0
		if timer.DoneThisFrame() != crossed || timer.HasJustLooped() != crossed {
			t.Errorf("Update %d: expected crossing=%t, got done=%t looped=%t", i, crossed, timer.DoneThisFrame(), timer.HasJustLooped())
		}
	}
	if fired != 4 {
		t.Errorf("Expected 4 completions, got %d", fired)
	}
	if timer.IsFinished() || !timer.IsRunning() {
		t.Errorf("Expected infinite loop to keep running")
	}
	if !timer.Elapsed().IsZero() {
		t.Errorf("Expected elapsed rewound to zero, got %v", timer.Elapsed())
	}
}

func TestTimerRepeatCount(t *testing.T) {
	timer := NewTimer(secs(1), false, 2, "repeat")
	fired := 0
	timer.OnFinish = func() { fired++ }

	for range 3 {
		timer.Update(secs(1))
		if !timer.DoneThisFrame() {
			t.Errorf("Expected completion each run")
		}
	}
	if fired != 3 || !timer.IsFinished() {
		t.Errorf("Expected 3 runs then finish, got fired=%d finished=%t", fired, timer.IsFinished())
	}
	if timer.HasJustLooped() {
		t.Errorf("Expected final run not to loop")
	}
	if timer.RepeatsLeft() != 0 {
		t.Errorf("Expected no repeats left, got %d", timer.RepeatsLeft())
	}
}

func TestTimerPause(t *testing.T) {
	timer := NewTimer(secs(1), false, 0, "pause")
	timer.Update(secs(0.25))
	timer.Pause()
	timer.Update(secs(5))
	if timer.Elapsed() != secs(0.25) {
		t.Errorf("Expected paused timer to hold 0.25, got %v", timer.Elapsed())
	}
	if !timer.IsPaused() || timer.IsRunning() {
		t.Errorf("Expected paused state")
	}
	timer.Resume()
	timer.Update(secs(0.25))
	if timer.Elapsed() != secs(0.5) {
		t.Errorf("Expected 0.5 after resume, got %v", timer.Elapsed())
	}
	if timer.Remaining() != secs(0.5) {
		t.Errorf("Expected 0.5 remaining, got %v", timer.Remaining())
	}
	if p := timer.Progress(); p != 0.5 {
		t.Errorf("Expected progress 0.5, got %v", p)
	}
}

func TestTimerStopAndReset(t *testing.T) {
	timer := NewTimer(secs(1), true, 3, "stop")
	fired := 0
	timer.OnFinish = func() { fired++ }

	timer.Update(secs(0.5))
	timer.Stop()
	if !timer.IsFinished() || fired != 0 {
		t.Errorf("Expected stop to finish silently, finished=%t fired=%d", timer.IsFinished(), fired)
	}
	if !timer.Remaining().IsZero() {
		t.Errorf("Expected zero remaining after stop")
	}

	timer.Restart()
	if timer.IsFinished() || timer.IsPaused() || !timer.Elapsed().IsZero() || timer.RepeatsLeft() != 3 {
		t.Errorf("Expected restart to clear state, got %s", timer)
	}

	timer.RestartWith(secs(4))
	if timer.Duration() != secs(4) || !timer.IsRunning() {
		t.Errorf("Expected new duration 4, got %v", timer.Duration())
	}
}

func TestTimerNonPositiveDuration(t *testing.T) {
	var buf bytes.Buffer
	fixed.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { fixed.SetLogger(nil) })

	timer := NewTimer(secs(0), false, 0, "empty")
	if timer.IsInitialized() {
		t.Errorf("Expected zero duration timer uninitialized")
	}
	if !strings.Contains(buf.String(), "non-positive duration") {
		t.Errorf("Expected creation warning, got %q", buf.String())
	}

	timer.Update(secs(1))
	if timer.DoneThisFrame() || timer.IsFinished() || !timer.Elapsed().IsZero() {
		t.Errorf("Expected update to be ignored")
	}
	if timer.Progress() != 0 {
		t.Errorf("Expected zero progress, got %v", timer.Progress())
	}

	buf.Reset()
	timer.SetDuration(secs(-1))
	if !strings.Contains(buf.String(), "non-positive value") {
		t.Errorf("Expected SetDuration warning, got %q", buf.String())
	}

	timer.SetDuration(secs(1))
	timer.Update(secs(1))
	if !timer.DoneThisFrame() {
		t.Errorf("Expected timer usable after positive duration")
	}
}

func TestTimerTriggered(t *testing.T) {
	timer := NewTimer(secs(10), false, 0, "trigger")
	threshold := secs(1)

	timer.Update(secs(0.75))
	if timer.Triggered(threshold) {
		t.Errorf("Expected threshold not yet crossed")
	}
	timer.Update(secs(0.5))
	if !timer.Triggered(threshold) {
		t.Errorf("Expected threshold crossed on this update")
	}
	timer.Update(secs(0.5))
	if timer.Triggered(threshold) {
		t.Errorf("Expected trigger only on crossing update")
	}
}

func TestTimerOnScheduler(t *testing.T) {
	s, err := NewScheduler(4)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	timer := NewTimer(secs(1), false, 0, "ticked")
	s.Register(timer.Listener(IntervalOf[q16](s)))

	s.Advance(0.75)
	if timer.IsFinished() {
		t.Errorf("Expected timer still running after 3 ticks")
	}
	s.Advance(0.25)
	if !timer.IsFinished() || !timer.DoneThisFrame() {
		t.Errorf("Expected timer finished on 4th tick")
	}
}

func TestTimerString(t *testing.T) {
	timer := NewTimer(secs(1.5), true, 0, "label")
	if s := timer.String(); !strings.Contains(s, `"label"`) || !strings.Contains(s, "1.5000") {
		t.Errorf("Unexpected string %q", s)
	}
}
