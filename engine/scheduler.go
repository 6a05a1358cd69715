package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/lixenwraith/fixed-engine/fixed"
)

// ErrInvalidRate is returned by NewScheduler for a non-positive tick rate
var ErrInvalidRate = errors.New("ticks per second must be positive")

// Q32.32 tick accumulator
const (
	accShift = 32
	accOne   = int64(1) << accShift

	// Remainders this close below a whole tick count as the tick, absorbing
	// float error when a host's deltas sum to an exact tick boundary
	accSnap = int64(1) << 12

	// Largest single delta honoured, in ticks, keeping the accumulator inside int64
	maxDeltaTicks = 1 << 30
)

// Listener receives one call per logical tick
type Listener interface {
	FixedTick(tick uint64)
}

// ListenerFunc adapts a plain function to Listener
type ListenerFunc func(tick uint64)

func (f ListenerFunc) FixedTick(tick uint64) { f(tick) }

// ListenerID identifies a registration; zero is never issued
type ListenerID uint64

type slot struct {
	id ListenerID
	l  Listener
}

// Scheduler turns host frame deltas into fixed logical ticks.
// Not safe for concurrent use: drive it and register from the host loop's goroutine.
type Scheduler struct {
	tps int

	acc     int64 // ticks owed, Q32.32
	tick    uint64
	dropped uint64

	// Replaced, never mutated in place, so a running tick keeps its snapshot
	slots  []slot
	nextID ListenerID

	maxCatchUp int
}

type Option func(*Scheduler)

// WithMaxCatchUp bounds ticks run by one Advance call. Surplus whole ticks are
// dropped and counted, the fractional remainder is kept. Zero means unbounded.
func WithMaxCatchUp(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.maxCatchUp = n
		}
	}
}

func NewScheduler(ticksPerSecond int, opts ...Option) (*Scheduler, error) {
	if ticksPerSecond <= 0 {
		return nil, fmt.Errorf("scheduler: %d: %w", ticksPerSecond, ErrInvalidRate)
	}
	s := &Scheduler{tps: ticksPerSecond, nextID: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register appends l to the tick order and returns its handle.
// Registering during a tick takes effect from the next tick.
func (s *Scheduler) Register(l Listener) ListenerID {
	if l == nil {
		return 0
	}
	id := s.nextID
	s.nextID++

	next := make([]slot, len(s.slots), len(s.slots)+1)
	copy(next, s.slots)
	s.slots = append(next, slot{id: id, l: l})
	return id
}

// Unregister removes the listener registered under id, reporting whether it was present
func (s *Scheduler) Unregister(id ListenerID) bool {
	for i, sl := range s.slots {
		if sl.id != id {
			continue
		}
		next := make([]slot, 0, len(s.slots)-1)
		next = append(next, s.slots[:i]...)
		next = append(next, s.slots[i+1:]...)
		s.slots = next
		return true
	}
	return false
}

// Advance adds deltaSeconds of host time and runs every whole tick owed,
// each invoking all listeners in registration order. Returns ticks run.
// Negative and NaN deltas add nothing.
func (s *Scheduler) Advance(deltaSeconds float64) int {
	if deltaSeconds > 0 {
		ticks := math.Min(deltaSeconds*float64(s.tps), maxDeltaTicks)
		s.acc += int64(math.Round(ticks * float64(accOne)))
	}

	owed := (s.acc + accSnap) >> accShift
	if s.maxCatchUp > 0 && owed > int64(s.maxCatchUp) {
		drop := owed - int64(s.maxCatchUp)
		s.acc -= drop << accShift
		s.dropped += uint64(drop)
		owed = int64(s.maxCatchUp)
		fixed.Logger().Warn("scheduler: catch-up capped",
			slog.Int64("dropped", drop),
			slog.Uint64("tick", s.tick),
			slog.Int("max", s.maxCatchUp))
	}

	for i := int64(0); i < owed; i++ {
		s.tick++
		for _, sl := range s.slots {
			sl.l.FixedTick(s.tick)
		}
		s.acc -= accOne
	}
	return int(owed)
}

// Alpha is the unconsumed fraction of a tick in [0,1), for render interpolation
func (s *Scheduler) Alpha() float64 {
	if s.acc <= 0 {
		return 0
	}
	return float64(s.acc) / float64(accOne)
}

// Accumulator is the unconsumed host time in seconds
func (s *Scheduler) Accumulator() float64 {
	return s.Alpha() / float64(s.tps)
}

// Interval is the fixed tick length in seconds
func (s *Scheduler) Interval() float64 { return 1 / float64(s.tps) }

func (s *Scheduler) TicksPerSecond() int  { return s.tps }
func (s *Scheduler) TickCount() uint64    { return s.tick }
func (s *Scheduler) DroppedTicks() uint64 { return s.dropped }
func (s *Scheduler) Len() int             { return len(s.slots) }

// IntervalOf is the tick length quantized into F, the step to feed timers
func IntervalOf[F fixed.Format](s *Scheduler) fixed.Fixed[F] {
	return fixed.FromFloat[F](s.Interval())
}
