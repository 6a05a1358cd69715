// fixed-window runs the orbit scene in a desktop window. Unlike the terminal
// sandbox it sees real key releases and gamepad sticks, so movement uses held
// buttons and the analog move vector.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/fixed-engine/config"
	"github.com/lixenwraith/fixed-engine/engine"
	"github.com/lixenwraith/fixed-engine/fixed"
	"github.com/lixenwraith/fixed-engine/input"
	"github.com/lixenwraith/fixed-engine/orbit"
	"github.com/lixenwraith/fixed-engine/render"
	"github.com/lixenwraith/fixed-engine/vmath"
)

const (
	screenW       = 640
	screenH       = 480
	pixelsPerUnit = 20
	orbitDots     = 90
)

var (
	colorSun    = color.RGBA{0xff, 0xd0, 0x40, 0xff}
	colorPath   = color.RGBA{0x50, 0x50, 0x60, 0xff}
	colorPlanet = color.RGBA{0x40, 0x80, 0xff, 0xff}
	colorMoon   = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	colorShip   = color.RGBA{0x40, 0xff, 0x70, 0xff}
	colorPulse  = color.RGBA{0xff, 0x40, 0x40, 0xff}
)

// heldKeys map to actions that stay down while the key is held
var heldKeys = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:  orbit.ActionLeft,
	ebiten.KeyArrowRight: orbit.ActionRight,
	ebiten.KeyArrowUp:    orbit.ActionUp,
	ebiten.KeyArrowDown:  orbit.ActionDown,
	ebiten.KeyA:          orbit.ActionLeft,
	ebiten.KeyD:          orbit.ActionRight,
	ebiten.KeyW:          orbit.ActionUp,
	ebiten.KeyS:          orbit.ActionDown,
	ebiten.KeyC:          orbit.ActionSnap,
	ebiten.KeyR:          orbit.ActionRestart,
}

type game struct {
	log   *slog.Logger
	clock *engine.FrameClock
	sched *engine.Scheduler
	in    *input.State[orbit.Q]
	scene *orbit.Scene
	vp    render.Viewport
}

func newGame(cfg *config.Config, log *slog.Logger) (*game, error) {
	sched, err := engine.NewScheduler(cfg.Simulation.TicksPerSecond, engine.WithMaxCatchUp(cfg.Simulation.MaxCatchUp))
	if err != nil {
		return nil, err
	}
	in := input.NewState[orbit.Q](cfg.Sandbox.Deadzone)
	sc, err := orbit.New(cfg.Sandbox, in)
	if err != nil {
		return nil, err
	}
	sc.Register(sched)

	return &game{
		log:   log,
		clock: engine.NewFrameClock(engine.NewMonotonicTimeProvider()),
		sched: sched,
		in:    in,
		scene: sc,
		vp: render.Viewport{
			Origin:        render.Center(screenW, screenH),
			CellsPerUnitX: pixelsPerUnit,
			CellsPerUnitY: pixelsPerUnit,
		},
	}, nil
}

func (g *game) pollInput() {
	// Several keys share an action, so collect before pressing or releasing
	held := make(map[string]bool, len(heldKeys))
	for key, action := range heldKeys {
		held[action] = held[action] || ebiten.IsKeyPressed(key)
	}
	for action, down := range held {
		if down {
			g.in.Press(action)
		} else {
			g.in.Release(action)
		}
	}

	// First connected pad drives the analog move vector, screen Y flipped
	var x, y float64
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		id := ids[0]
		x = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y = -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	}
	g.in.SetVector2(orbit.ActionMove, x, y)
}

// Update runs at ebiten's TPS, which need not match the simulation rate.
// Ticks are owed from measured wall time like any other host.
func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		paused := g.clock.Toggle()
		g.log.Info("pause toggled", slog.Bool("paused", paused), slog.Uint64("tick", g.sched.TickCount()))
	}

	g.pollInput()
	if ticks := g.sched.Advance(g.clock.Delta()); ticks > 1 {
		g.log.Debug("frame ran catch-up ticks", slog.Int("ticks", ticks))
	}
	return nil
}

func (g *game) point(world vmath.Vec3[orbit.Q]) (float32, float32) {
	pt := render.Project(g.vp, world)
	return float32(pt.X), float32(pt.Y)
}

func (g *game) Draw(screen *ebiten.Image) {
	sc := g.scene
	alpha := g.sched.Alpha()

	path := sc.OrbitPath(orbitDots)
	for i, p := range path {
		x0, y0 := g.point(p)
		x1, y1 := g.point(path[(i+1)%len(path)])
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, colorPath, true)
	}

	x, y := g.point(sc.Sun.WorldPosition())
	vector.DrawFilledCircle(screen, x, y, 12, colorSun, true)
	x, y = g.point(sc.PlanetView.Sample(alpha))
	vector.DrawFilledCircle(screen, x, y, 7, colorPlanet, true)
	x, y = g.point(sc.MoonView.Sample(alpha))
	vector.DrawFilledCircle(screen, x, y, 3, colorMoon, true)

	shipColor := colorShip
	if sc.PulseOn() {
		shipColor = colorPulse
	}
	x, y = g.point(sc.ShipView.Sample(alpha))
	vector.DrawFilledRect(screen, x-5, y-5, 10, 10, shipColor, false)

	cx, cy := sc.ShipMover.Cell()
	planet := sc.Planet.WorldPosition()
	status := ""
	if g.clock.IsPaused() {
		status = "PAUSED\n"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%stick %d  alpha %.2f  dropped %d  fps %.0f\nship (%d,%d)  moves %d/%d  planet heading %s\narrows/wasd move  c snap  r pulse  space pause  q quit",
		status, g.sched.TickCount(), alpha, g.sched.DroppedTicks(), ebiten.ActualFPS(),
		cx, cy, sc.RecentMoves(), sc.History.Cap(), vmath.Heading2(planet.XY())))
}

func (g *game) Layout(int, int) (int, int) { return screenW, screenH }

func main() {
	configPath := flag.String("config", "", "YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	lvl, err := cfg.SlogLevel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	fixed.SetLogger(log)

	g, err := newGame(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowTitle("fixed-engine orbit")
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetTPS(cfg.Sandbox.FrameRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "Window failed: %v\n", err)
		os.Exit(1)
	}
	log.Info("window closed", slog.Uint64("ticks", g.sched.TickCount()), slog.Uint64("dropped", g.sched.DroppedTicks()))
}
