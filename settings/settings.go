package settings

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/oomph-ac/xpbd/xpbd"
	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
)

// Settings contains everything that can be configured for a headless simulation run.
type Settings struct {
	Simulation struct {
		// TickRate is the amount of fixed steps simulated per second.
		TickRate float64
		// Substeps is the amount of position solve iterations per step.
		Substeps int
		// SafetyMargin scales the broad phase margin.
		SafetyMargin float64
		// MaxTicksPerFrame limits the amount of steps a single frame may run before ticks are dropped.
		MaxTicksPerFrame int
		// OverrideGravity forces GravityX and GravityY onto every scene.
		OverrideGravity bool
		GravityX        float64
		GravityY        float64
	}
	Log struct {
		// Level is one of the logrus level names, such as "info" or "debug".
		Level string
	}
	Stats struct {
		Enabled bool
		Addr    string
	}
	Sentry struct {
		// DSN is left empty to disable error reporting.
		DSN         string
		Environment string
	}
	Run struct {
		// Scenes is the list of scenes to run. An empty list runs every registered scene.
		Scenes []string
		// Duration is the amount of simulated seconds each scene runs for.
		Duration float64
		Seed     int64
		// Realtime paces the simulation against the wall clock instead of stepping as fast as possible.
		Realtime bool
	}
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{}
	s.Simulation.TickRate = 1 / xpbd.DefaultDeltaTime
	s.Simulation.Substeps = xpbd.DefaultSubsteps
	s.Simulation.SafetyMargin = xpbd.DefaultSafetyMargin
	s.Simulation.MaxTicksPerFrame = 8
	s.Simulation.GravityX = xpbd.DefaultGravityX
	s.Simulation.GravityY = xpbd.DefaultGravityY

	s.Log.Level = "info"

	s.Stats.Addr = "localhost:8080"

	s.Sentry.Environment = "development"

	s.Run.Duration = 5
	s.Run.Seed = 1
	return s
}

// Validate checks the settings for values the simulation cannot run with.
func (s Settings) Validate() error {
	if s.Simulation.TickRate <= 0 || math.IsNaN(s.Simulation.TickRate) || math.IsInf(s.Simulation.TickRate, 0) {
		return fmt.Errorf("tick rate must be positive, got %v", s.Simulation.TickRate)
	}
	if s.Simulation.MaxTicksPerFrame < 1 {
		return fmt.Errorf("max ticks per frame must be at least 1, got %v", s.Simulation.MaxTicksPerFrame)
	}
	if s.Run.Duration < 0 {
		return fmt.Errorf("run duration must not be negative, got %v", s.Run.Duration)
	}
	if _, err := s.LogLevel(); err != nil {
		return err
	}
	return s.SimulatorOptions().Validate()
}

// SimulatorOptions converts the simulation section into options for an xpbd.Simulator.
func (s Settings) SimulatorOptions() xpbd.Options {
	opts := xpbd.DefaultOptions()
	opts.DeltaTime = 1 / s.Simulation.TickRate
	opts.Substeps = s.Simulation.Substeps
	opts.SafetyMargin = s.Simulation.SafetyMargin
	return opts
}

// Gravity returns the configured gravity override and whether it should be applied.
func (s Settings) Gravity() (x, y float64, ok bool) {
	return s.Simulation.GravityX, s.Simulation.GravityY, s.Simulation.OverrideGravity
}

// LogLevel parses the configured log level.
func (s Settings) LogLevel() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(s.Log.Level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level: %v", err)
	}
	return lvl, nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if data, err := toml.Marshal(s); err != nil {
			return fmt.Errorf("failed encoding default settings: %v", err)
		} else if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed creating settings file: %v", err)
		}
		return nil
	}
	return errors.New("settings file already exists")
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Values missing from the file keep their defaults.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %v", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %v", err)
	}
	if err = settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %v", err)
	}
	return settings, nil
}
