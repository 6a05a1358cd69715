package input

import (
	"math"
	"sync"

	"github.com/lixenwraith/fixed-engine/fixed"
	"github.com/lixenwraith/fixed-engine/vmath"
)

// Provider is the deterministic view of player input a simulation reads.
// Values only change inside UpdateState, called once at the start of each tick.
type Provider[F fixed.Format] interface {
	UpdateState()
	Button(action string) bool
	ButtonDown(action string) bool // pressed this tick
	ButtonUp(action string) bool   // released this tick
	Axis(action string) fixed.Fixed[F]
	Vector2(action string) vmath.Vec2[F]
	Vector3(action string) vmath.Vec3[F]
}

type vec3raw struct{ x, y, z float64 }

// State is a Provider fed by a host through Press, Release, Tap and the Set*
// methods. Host writes may come from another goroutine; reads are only
// consistent from the goroutine calling UpdateState.
type State[F fixed.Format] struct {
	deadzone float64

	mu       sync.Mutex
	held     map[string]bool
	tapped   map[string]bool
	rawAxis  map[string]float64
	rawVec2  map[string][2]float64
	rawVec3  map[string]vec3raw
	ticks    uint64

	prev map[string]bool
	cur  map[string]bool
	axes map[string]fixed.Fixed[F]
	vec2 map[string]vmath.Vec2[F]
	vec3 map[string]vmath.Vec3[F]
}

var _ Provider[fixed.Q8_4] = (*State[fixed.Q8_4])(nil)

// NewState creates an empty state. deadzone applies to Vector2 readings.
func NewState[F fixed.Format](deadzone float64) *State[F] {
	return &State[F]{
		deadzone: deadzone,
		held:     make(map[string]bool),
		tapped:   make(map[string]bool),
		rawAxis:  make(map[string]float64),
		rawVec2:  make(map[string][2]float64),
		rawVec3:  make(map[string]vec3raw),
		prev:     make(map[string]bool),
		cur:      make(map[string]bool),
		axes:     make(map[string]fixed.Fixed[F]),
		vec2:     make(map[string]vmath.Vec2[F]),
		vec3:     make(map[string]vmath.Vec3[F]),
	}
}

// --- Host side ---

func (s *State[F]) Press(action string) {
	s.mu.Lock()
	s.held[action] = true
	s.mu.Unlock()
}

func (s *State[F]) Release(action string) {
	s.mu.Lock()
	delete(s.held, action)
	s.mu.Unlock()
}

// Tap holds action down for exactly the next UpdateState.
// Terminal hosts use it since they see key presses but never releases.
func (s *State[F]) Tap(action string) {
	s.mu.Lock()
	s.tapped[action] = true
	s.mu.Unlock()
}

func (s *State[F]) SetAxis(action string, v float64) {
	s.mu.Lock()
	s.rawAxis[action] = v
	s.mu.Unlock()
}

func (s *State[F]) SetVector2(action string, x, y float64) {
	s.mu.Lock()
	s.rawVec2[action] = [2]float64{x, y}
	s.mu.Unlock()
}

func (s *State[F]) SetVector3(action string, x, y, z float64) {
	s.mu.Lock()
	s.rawVec3[action] = vec3raw{x, y, z}
	s.mu.Unlock()
}

// --- Tick side ---

// UpdateState latches pending host input into the values read this tick
func (s *State[F]) UpdateState() {
	s.prev, s.cur = s.cur, s.prev
	clear(s.cur)

	s.mu.Lock()
	defer s.mu.Unlock()

	for a := range s.held {
		s.cur[a] = true
	}
	for a := range s.tapped {
		s.cur[a] = true
	}
	clear(s.tapped)

	for a, v := range s.rawAxis {
		q := Quantize[F](clampUnit(v))
		s.axes[a] = q
		// A fully deflected axis also reads as a held button
		if q.Gt(fixed.Half[F]()) {
			s.cur[a] = true
		}
	}
	for a, v := range s.rawVec2 {
		s.vec2[a] = QuantizeVec2[F](v[0], v[1], s.deadzone)
	}
	for a, v := range s.rawVec3 {
		s.vec3[a] = QuantizeVec3[F](v.x, v.y, v.z)
	}
	s.ticks++
}

// Ticks counts UpdateState calls
func (s *State[F]) Ticks() uint64 { return s.ticks }

// FixedTick lets a scheduler drive UpdateState when registered ahead of readers
func (s *State[F]) FixedTick(uint64) { s.UpdateState() }

func (s *State[F]) Button(action string) bool     { return s.cur[action] }
func (s *State[F]) ButtonDown(action string) bool { return s.cur[action] && !s.prev[action] }
func (s *State[F]) ButtonUp(action string) bool   { return !s.cur[action] && s.prev[action] }

func (s *State[F]) Axis(action string) fixed.Fixed[F]   { return s.axes[action] }
func (s *State[F]) Vector2(action string) vmath.Vec2[F] { return s.vec2[action] }
func (s *State[F]) Vector3(action string) vmath.Vec3[F] { return s.vec3[action] }

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, -1), 1)
}
