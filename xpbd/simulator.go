package xpbd

import (
	"math"

	"github.com/oomph-ac/xpbd/oerror"
)

// Options define the fixed tick and solver settings of a Simulator.
type Options struct {
	// DeltaTime is the duration of a single tick in seconds.
	DeltaTime float64
	// Substeps is the number of position solver passes run per tick.
	Substeps int
	// SafetyMargin scales the velocity-based margin used by the broad phase. It must be at least 1.
	SafetyMargin float64

	// Debugf receives internal simulation trace logs for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// DefaultOptions returns 60 ticks per second with ten substeps.
func DefaultOptions() Options {
	return Options{
		DeltaTime:    DefaultDeltaTime,
		Substeps:     DefaultSubsteps,
		SafetyMargin: DefaultSafetyMargin,
	}
}

// Validate returns an error if the options cannot drive a simulation.
func (o Options) Validate() error {
	if !(o.DeltaTime > 0) || math.IsInf(o.DeltaTime, 0) {
		return oerror.New("xpbd: delta time must be positive, got %v", o.DeltaTime)
	}
	if o.Substeps < 1 {
		return oerror.New("xpbd: at least one substep is required, got %d", o.Substeps)
	}
	if !(o.SafetyMargin >= 1) {
		return oerror.New("xpbd: safety margin must be at least 1, got %v", o.SafetyMargin)
	}
	return nil
}

// Simulator steps worlds. It holds no particles itself and may step any number of worlds, one at a
// time.
type Simulator struct {
	Options Options
	// Forces are applied to every dynamic particle on top of the world's gravity.
	Forces []ForceField
}

// NewSimulator validates the options and returns a Simulator.
func NewSimulator(opts Options, forces ...ForceField) (*Simulator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{Options: opts, Forces: forces}, nil
}

func (s *Simulator) debugf(format string, args ...any) {
	if s.Options.Debugf != nil {
		s.Options.Debugf(format, args...)
	}
}
