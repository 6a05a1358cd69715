// Package orbit is the demo scene shared by the sandbox hosts: a sun, a
// planet and its moon on parented transforms, and a ship moved on a tile grid
// from quantized input. All state changes happen in FixedTick.
package orbit

import (
	"github.com/lixenwraith/fixed-engine/config"
	"github.com/lixenwraith/fixed-engine/engine"
	"github.com/lixenwraith/fixed-engine/fixed"
	"github.com/lixenwraith/fixed-engine/input"
	"github.com/lixenwraith/fixed-engine/render"
	"github.com/lixenwraith/fixed-engine/transform"
	"github.com/lixenwraith/fixed-engine/vmath"
)

type Q = fixed.Q16_16

// Actions read from the input provider
const (
	ActionLeft    = "left"
	ActionRight   = "right"
	ActionUp      = "up"
	ActionDown    = "down"
	ActionMove    = "move" // analog stick, Vector2
	ActionSnap    = "snap"
	ActionRestart = "restart"
)

const historyTicks = 32

type Scene struct {
	Sun, Planet, Moon, Ship *transform.Transform[Q]
	ShipMover               *transform.Mover2D[Q]

	sunAngle, planetAngle fixed.Fixed[Q]
	orbitStep, moonStep   fixed.Fixed[Q]
	moveStep              fixed.Fixed[Q]
	OrbitRadius           fixed.Fixed[Q]

	input   input.Provider[Q]
	History *input.Buffer[Q]

	Pulse   *engine.Timer[Q]
	pulseOn bool

	PlanetView, MoonView, ShipView *render.Interpolator[Q]
}

func New(sb config.Sandbox, in input.Provider[Q]) (*Scene, error) {
	s := &Scene{
		Sun:         transform.New[Q]("sun"),
		Planet:      transform.New[Q]("planet"),
		Moon:        transform.New[Q]("moon"),
		Ship:        transform.New[Q]("ship"),
		orbitStep:   fixed.FromFloat[Q](sb.OrbitDegreesPerTick),
		moonStep:    fixed.FromFloat[Q](sb.MoonDegreesPerTick),
		moveStep:    fixed.FromFloat[Q](sb.MoveSpeed),
		OrbitRadius: fixed.FromFloat[Q](sb.OrbitRadius),
		input:       in,
		History:     input.NewBuffer[Q](historyTicks),
	}

	if err := s.Planet.SetParent(s.Sun); err != nil {
		return nil, err
	}
	if err := s.Moon.SetParent(s.Planet); err != nil {
		return nil, err
	}
	zero := fixed.Zero[Q]()
	s.Planet.LocalPosition = vmath.V3(s.OrbitRadius, zero, zero)
	s.Moon.LocalPosition = vmath.V3(fixed.FromFloat[Q](sb.MoonRadius), zero, zero)

	mover, err := transform.NewMover2D(s.Ship, 1)
	if err != nil {
		return nil, err
	}
	s.ShipMover = mover
	s.ShipMover.SnapToCell(0, -int(sb.OrbitRadius)-2)

	s.Pulse = engine.NewTimer(fixed.FromFloat[Q](sb.PulseSeconds), true, 0, "pulse")
	s.Pulse.OnFinish = func() { s.pulseOn = !s.pulseOn }

	s.PlanetView = render.NewInterpolator(s.Planet)
	s.MoonView = render.NewInterpolator(s.Moon)
	s.ShipView = render.NewInterpolator(s.Ship)
	return s, nil
}

// Register wires listeners in dependency order: input latch (when the
// provider is a listener), simulation, timers, then the interpolators
// capturing the result
func (s *Scene) Register(sched *engine.Scheduler) {
	if l, ok := s.input.(engine.Listener); ok {
		sched.Register(l)
	}
	sched.Register(s)
	sched.Register(s.Pulse.Listener(engine.IntervalOf[Q](sched)))
	sched.Register(s.PlanetView)
	sched.Register(s.MoonView)
	sched.Register(s.ShipView)
}

func (s *Scene) FixedTick(uint64) {
	zero := fixed.Zero[Q]()

	s.sunAngle = fixed.WrapAngle360(s.sunAngle.Add(s.orbitStep))
	s.Sun.LocalRotation = vmath.QuatFromEuler(zero, zero, s.sunAngle)
	s.planetAngle = fixed.WrapAngle360(s.planetAngle.Add(s.moonStep))
	s.Planet.LocalRotation = vmath.QuatFromEuler(zero, zero, s.planetAngle)

	move := s.input.Vector2(ActionMove)
	one := fixed.One[Q]()
	if s.input.Button(ActionLeft) {
		move.X = move.X.Sub(one)
	}
	if s.input.Button(ActionRight) {
		move.X = move.X.Add(one)
	}
	if s.input.Button(ActionUp) {
		move.Y = move.Y.Add(one)
	}
	if s.input.Button(ActionDown) {
		move.Y = move.Y.Sub(one)
	}
	move = move.Sign()
	s.History.Record(move)
	s.ShipMover.Move(move.Scale(s.moveStep))

	if s.input.ButtonDown(ActionSnap) {
		s.ShipMover.SnapToTileCenter()
		s.ShipView.Reset()
	}
	if s.input.ButtonDown(ActionRestart) {
		s.Pulse.Restart()
	}
}

func (s *Scene) PulseOn() bool { return s.pulseOn }

// SunAngle is the accumulated orbit angle in [0,360)
func (s *Scene) SunAngle() fixed.Fixed[Q] { return s.sunAngle }

// RecentMoves counts non-idle inputs in the history window
func (s *Scene) RecentMoves() int {
	n := 0
	for back := range s.History.Len() {
		if !s.History.Get(back).IsZero() {
			n++
		}
	}
	return n
}

// OrbitPath samples the planet's orbit circle from the sine table
func (s *Scene) OrbitPath(points int) []vmath.Vec3[Q] {
	if points <= 0 {
		return nil
	}
	step := fixed.FromInt[Q](360 / points)
	if step.IsZero() {
		step = fixed.One[Q]()
	}
	var path []vmath.Vec3[Q]
	for deg := fixed.Zero[Q](); deg.Lt(fixed.Deg360[Q]()); deg = deg.Add(step) {
		dir := vmath.FromHeading2(deg).Scale(s.OrbitRadius)
		path = append(path, vmath.V3From2D(dir, fixed.Zero[Q]()))
	}
	return path
}
