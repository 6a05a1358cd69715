// fixed-sandbox drives the orbit scene through the fixed-step scheduler in
// the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"

	"github.com/lixenwraith/fixed-engine/audio"
	"github.com/lixenwraith/fixed-engine/config"
	"github.com/lixenwraith/fixed-engine/engine"
	"github.com/lixenwraith/fixed-engine/fixed"
	"github.com/lixenwraith/fixed-engine/input"
	"github.com/lixenwraith/fixed-engine/orbit"
	"github.com/lixenwraith/fixed-engine/render"
	"github.com/lixenwraith/fixed-engine/vmath"
)

type sim = orbit.Q

const (
	hudRows   = 2
	orbitDots = 60
	cueLength = 60 * time.Millisecond
)

var (
	styleSun   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePath  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	stylePlan  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleMoon  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleShip  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHUD   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	stylePause = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

type sandbox struct {
	screen tcell.Screen
	cfg    *config.Config
	log    *slog.Logger

	clock *engine.FrameClock
	sched *engine.Scheduler
	in    *input.State[sim]
	scene *orbit.Scene

	player *audio.Player
	drone  bool
}

func newSandbox(cfg *config.Config, log *slog.Logger) (*sandbox, error) {
	sched, err := engine.NewScheduler(cfg.Simulation.TicksPerSecond, engine.WithMaxCatchUp(cfg.Simulation.MaxCatchUp))
	if err != nil {
		return nil, err
	}

	in := input.NewState[sim](cfg.Sandbox.Deadzone)
	sc, err := orbit.New(cfg.Sandbox, in)
	if err != nil {
		return nil, err
	}
	sc.Register(sched)

	sb := &sandbox{
		cfg:   cfg,
		log:   log,
		clock: engine.NewFrameClock(engine.NewMonotonicTimeProvider()),
		sched: sched,
		in:    in,
		scene: sc,
	}

	if cfg.Audio.Enabled {
		if err := sb.initAudio(); err != nil {
			// Non-fatal, the sandbox runs silent
			log.Warn("audio initialization failed", slog.Any("error", err))
		}
	}
	return sb, nil
}

func (sb *sandbox) initAudio() error {
	player := audio.NewPlayer(sb.cfg.Audio.SampleRate)
	if err := player.Initialize(); err != nil {
		return err
	}

	ac := sb.cfg.Audio
	rate := player.SampleRate()
	cue := func(accent bool) beep.Streamer {
		freq := ac.ToneHz
		if accent {
			freq *= 2
		}
		return audio.Cue[sim](freq, cueLength, ac.Volume, rate)
	}
	metronome, err := audio.NewMetronome(ac.CueEveryTicks, cue, player.Play)
	if err != nil {
		return err
	}
	sb.sched.Register(metronome)
	sb.player = player
	return nil
}

func (sb *sandbox) toggleDrone() {
	if sb.player == nil {
		return
	}
	sb.drone = !sb.drone
	if sb.drone {
		sb.player.StartDrone(audio.Drone[sim](sb.cfg.Audio.ToneHz/2, sb.cfg.Audio.Volume/2, sb.player.SampleRate()))
	} else {
		sb.player.StopDrone()
	}
}

// handleKey reports false when the sandbox should exit
func (sb *sandbox) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		sb.in.Tap(orbit.ActionLeft)
	case tcell.KeyRight:
		sb.in.Tap(orbit.ActionRight)
	case tcell.KeyUp:
		sb.in.Tap(orbit.ActionUp)
	case tcell.KeyDown:
		sb.in.Tap(orbit.ActionDown)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'h':
			sb.in.Tap(orbit.ActionLeft)
		case 'l':
			sb.in.Tap(orbit.ActionRight)
		case 'k':
			sb.in.Tap(orbit.ActionUp)
		case 'j':
			sb.in.Tap(orbit.ActionDown)
		case 's':
			sb.in.Tap(orbit.ActionSnap)
		case 'r':
			sb.in.Tap(orbit.ActionRestart)
		case ' ':
			paused := sb.clock.Toggle()
			sb.log.Info("pause toggled", slog.Bool("paused", paused), slog.Uint64("tick", sb.sched.TickCount()))
		case 'm':
			if sb.player != nil {
				sb.player.ToggleMute()
			}
		case 'd':
			sb.toggleDrone()
		}
	}
	return true
}

func (sb *sandbox) run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	sb.screen = screen
	defer screen.Fini()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(sb.cfg.Sandbox.FrameRate))
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !sb.handleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			ticks := sb.sched.Advance(sb.clock.Delta())
			if ticks > 1 {
				sb.log.Debug("frame ran catch-up ticks", slog.Int("ticks", ticks))
			}
			sb.draw()
		}
	}
}

func (sb *sandbox) draw() {
	s := sb.screen
	s.Clear()
	w, h := s.Size()
	vp := render.Viewport{Origin: render.Center(w, h-hudRows), CellsPerUnitX: 2, CellsPerUnitY: 1}
	alpha := sb.sched.Alpha()
	sc := sb.scene

	put := func(world vmath.Vec3[sim], r rune, style tcell.Style) {
		pt := render.Project(vp, world)
		if render.Contains(pt, w, h-hudRows) {
			s.SetContent(pt.X, pt.Y, r, nil, style)
		}
	}

	for _, p := range sc.OrbitPath(orbitDots) {
		put(p, '·', stylePath)
	}

	put(sc.Sun.WorldPosition(), '*', styleSun)
	put(sc.PlanetView.Sample(alpha), 'o', stylePlan)
	put(sc.MoonView.Sample(alpha), '.', styleMoon)

	shipStyle := styleShip
	if sc.PulseOn() {
		shipStyle = shipStyle.Reverse(true)
	}
	put(sc.ShipView.Sample(alpha), '@', shipStyle)

	sb.drawHUD(w, h)
	s.Show()
}

func (sb *sandbox) drawHUD(w, h int) {
	sc := sb.scene
	planet := sc.Planet.WorldPosition()
	moon := sc.Moon.WorldPosition()
	cx, cy := sc.ShipMover.Cell()

	status := ""
	if sb.clock.IsPaused() {
		status = "PAUSED "
	}
	if sb.player != nil && sb.player.IsMuted() {
		status += "MUTED "
	}

	line1 := fmt.Sprintf("tick %d  alpha %.2f  dropped %d  ship (%d,%d)  moves %d/%d  pulse %.0f%%",
		sb.sched.TickCount(), sb.sched.Alpha(), sb.sched.DroppedTicks(),
		cx, cy, sc.RecentMoves(), sc.History.Cap(), sc.Pulse.Progress()*100)
	line2 := fmt.Sprintf("planet heading %s°  planet-moon angle %s°  arrows/hjkl move  s snap  r pulse  space pause  m mute  d drone  q quit",
		vmath.Heading2(planet.XY()), vmath.AngleDeg3(planet, moon))

	drawText(sb.screen, 0, h-2, w, status+line1, styleHUD)
	drawText(sb.screen, 0, h-1, w, line2, styleHUD)
	if status != "" {
		drawText(sb.screen, 0, h-2, w, status, stylePause)
	}
}

func drawText(s tcell.Screen, x, y, maxW int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= maxW {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// setupLogger never writes to stderr since tcell owns the terminal
func setupLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	lvl, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Logging.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})), func() { f.Close() }, nil
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	writeDefault := flag.Bool("write-default-config", false, "print the default config as YAML and exit")
	flag.Parse()

	if *writeDefault {
		data, err := config.Default().Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render config: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, closeLog, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	fixed.SetLogger(log)
	log.Info("sandbox starting",
		slog.Int("tps", cfg.Simulation.TicksPerSecond),
		slog.Int("max_catch_up", cfg.Simulation.MaxCatchUp),
		slog.Bool("audio", cfg.Audio.Enabled))

	sb, err := newSandbox(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if sb.player != nil {
		defer sb.player.Cleanup()
	}

	if err := sb.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Sandbox failed: %v\n", err)
		os.Exit(1)
	}
	log.Info("sandbox stopped", slog.Uint64("ticks", sb.sched.TickCount()), slog.Uint64("dropped", sb.sched.DroppedTicks()))
}
