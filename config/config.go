// Package config loads sandbox and simulation settings from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Simulation Simulation `yaml:"simulation"`
	Sandbox    Sandbox    `yaml:"sandbox"`
	Audio      Audio      `yaml:"audio"`
	Logging    Logging    `yaml:"logging"`
}

type Simulation struct {
	TicksPerSecond int `yaml:"ticks_per_second"`
	MaxCatchUp     int `yaml:"max_catch_up"` // 0 disables the cap
}

type Sandbox struct {
	FrameRate           int     `yaml:"frame_rate"`
	OrbitRadius         float64 `yaml:"orbit_radius"`
	OrbitDegreesPerTick float64 `yaml:"orbit_degrees_per_tick"`
	MoonRadius          float64 `yaml:"moon_radius"`
	MoonDegreesPerTick  float64 `yaml:"moon_degrees_per_tick"`
	PulseSeconds        float64 `yaml:"pulse_seconds"`
	MoveSpeed           float64 `yaml:"move_speed"` // units per tick
	Deadzone            float64 `yaml:"deadzone"`
}

type Audio struct {
	Enabled       bool    `yaml:"enabled"`
	SampleRate    int     `yaml:"sample_rate"`
	ToneHz        float64 `yaml:"tone_hz"`
	CueEveryTicks int     `yaml:"cue_every_ticks"`
	Volume        float64 `yaml:"volume"`
}

type Logging struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty discards
}

func Default() *Config {
	return &Config{
		Simulation: Simulation{
			TicksPerSecond: 60,
			MaxCatchUp:     8,
		},
		Sandbox: Sandbox{
			FrameRate:           30,
			OrbitRadius:         8,
			OrbitDegreesPerTick: 1,
			MoonRadius:          3,
			MoonDegreesPerTick:  4,
			PulseSeconds:        1.5,
			MoveSpeed:           0.25,
			Deadzone:            0.1,
		},
		Audio: Audio{
			Enabled:       false,
			SampleRate:    44100,
			ToneHz:        440,
			CueEveryTicks: 30,
			Volume:        0.3,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Load overlays the YAML file at path onto Default, applies environment
// overrides and validates. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv reads FIXED_ENGINE_* overrides. Unparseable values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("FIXED_ENGINE_TPS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Simulation.TicksPerSecond = n
		}
	}
	if v, ok := lookup("FIXED_ENGINE_AUDIO_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}
	// 0-100 like a mixer fader
	if v, ok := lookup("FIXED_ENGINE_VOLUME"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.Volume = min(max(float64(n)/100, 0), 1)
		}
	}
	if v, ok := lookup("FIXED_ENGINE_LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup("FIXED_ENGINE_LOG_FILE"); ok {
		c.Logging.File = v
	}
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Simulation.TicksPerSecond > 0, "simulation.ticks_per_second %d must be positive", c.Simulation.TicksPerSecond)
	check(c.Simulation.MaxCatchUp >= 0, "simulation.max_catch_up %d must not be negative", c.Simulation.MaxCatchUp)
	check(c.Sandbox.FrameRate > 0, "sandbox.frame_rate %d must be positive", c.Sandbox.FrameRate)
	check(c.Sandbox.PulseSeconds > 0, "sandbox.pulse_seconds %g must be positive", c.Sandbox.PulseSeconds)
	check(c.Sandbox.Deadzone >= 0 && c.Sandbox.Deadzone < 1, "sandbox.deadzone %g must be in [0,1)", c.Sandbox.Deadzone)
	check(c.Audio.SampleRate > 0, "audio.sample_rate %d must be positive", c.Audio.SampleRate)
	check(c.Audio.CueEveryTicks >= 1, "audio.cue_every_ticks %d must be at least 1", c.Audio.CueEveryTicks)
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume %g must be in [0,1]", c.Audio.Volume)
	_, err := c.SlogLevel()
	check(err == nil, "logging.level %q unknown", c.Logging.Level)

	return errors.Join(errs...)
}

// SlogLevel maps Logging.Level onto slog
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(strings.ToUpper(c.Logging.Level)))
	return lvl, err
}

// Marshal renders c as YAML, for writing a starter file
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
