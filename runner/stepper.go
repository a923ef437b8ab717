package runner

import (
	"sync"
	"time"

	"github.com/oomph-ac/xpbd/utils"
	"github.com/oomph-ac/xpbd/xpbd"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// DefaultMaxTicksPerFrame bounds the number of fixed ticks a single frame may run.
const DefaultMaxTicksPerFrame = 8

// tickHistorySize is the number of tick durations kept for statistics.
const tickHistorySize = 256

// TickFunc is called after every fixed tick, before transforms are synced. It may spawn or despawn
// particles.
type TickFunc func(w *xpbd.World, tick uint64)

// Stepper turns variable frame times into fixed simulation ticks. Leftover time is carried over to
// the next frame and used to interpolate transforms.
type Stepper struct {
	sim   *xpbd.Simulator
	world *xpbd.World
	log   *logrus.Logger

	// MaxTicksPerFrame caps the ticks run by a single Advance call. Time beyond the cap is dropped.
	MaxTicksPerFrame int
	// OnTick, if set, is called after every tick.
	OnTick TickFunc

	accumulator float64

	ticks          atomic.Uint64
	droppedTicks   atomic.Uint64
	contacts       atomic.Uint64
	staticContacts atomic.Uint64
	penetration    atomic.Float64

	historyMu sync.Mutex
	history   *utils.CircularQueue[time.Duration]
}

// NewStepper returns a Stepper driving world with sim.
func NewStepper(sim *xpbd.Simulator, world *xpbd.World, log *logrus.Logger) *Stepper {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Stepper{
		sim:              sim,
		world:            world,
		log:              log,
		MaxTicksPerFrame: DefaultMaxTicksPerFrame,
		history:          utils.NewCircularQueue[time.Duration](tickHistorySize),
	}
}

// World returns the world driven by the stepper.
func (s *Stepper) World() *xpbd.World {
	return s.world
}

// Advance adds frame to the accumulator, runs as many fixed ticks as fit in it and syncs transforms
// with the leftover fraction of a tick. It returns the number of ticks run.
func (s *Stepper) Advance(frame time.Duration) int {
	dt := s.sim.Options.DeltaTime
	if frame > 0 {
		s.accumulator += frame.Seconds()
	}

	ran := 0
	for s.accumulator >= dt {
		if s.MaxTicksPerFrame > 0 && ran >= s.MaxTicksPerFrame {
			dropped := uint64(s.accumulator / dt)
			s.droppedTicks.Add(dropped)
			s.log.Warnf("simulation is falling behind: dropping %d ticks", dropped)
			s.accumulator = max(0, s.accumulator-float64(dropped)*dt)
			break
		}
		s.tick()
		s.accumulator -= dt
		ran++
	}

	xpbd.SyncTransforms(s.world, s.Alpha())
	return ran
}

// Step runs exactly one tick, ignoring the accumulator, and syncs transforms to the resulting
// state.
func (s *Stepper) Step() {
	s.tick()
	xpbd.SyncTransforms(s.world, 1)
}

// Alpha returns the fraction of a tick currently held in the accumulator.
func (s *Stepper) Alpha() float64 {
	return s.accumulator / s.sim.Options.DeltaTime
}

func (s *Stepper) tick() {
	start := time.Now()
	result := s.sim.Simulate(s.world)
	elapsed := time.Since(start)

	tick := s.ticks.Inc()
	s.contacts.Add(uint64(result.Contacts))
	s.staticContacts.Add(uint64(result.StaticContacts))
	s.penetration.Store(result.Penetration)
	if result.Coincident > 0 {
		s.log.Debugf("tick %d: skipped %d coincident pair checks", tick, result.Coincident)
	}

	s.historyMu.Lock()
	_ = s.history.Append(elapsed)
	s.historyMu.Unlock()

	if s.OnTick != nil {
		s.OnTick(s.world, tick)
	}
}

// Stats is a snapshot of a Stepper's counters.
type Stats struct {
	Ticks          uint64
	DroppedTicks   uint64
	Contacts       uint64
	StaticContacts uint64
	// Penetration is the residual penetration of the most recent tick.
	Penetration float64

	LastTickTime time.Duration
	MeanTickTime time.Duration
	P99TickTime  time.Duration
	MaxTickTime  time.Duration
	// TickJitter is the standard deviation of recent tick durations.
	TickJitter time.Duration
}

// Stats returns the current counters. It is safe to call from any goroutine.
func (s *Stepper) Stats() Stats {
	s.historyMu.Lock()
	last, _ := s.history.Last()
	samples := make([]float64, 0, s.history.Len())
	for d := range s.history.Iter() {
		samples = append(samples, float64(d))
	}
	s.historyMu.Unlock()

	return Stats{
		Ticks:          s.ticks.Load(),
		DroppedTicks:   s.droppedTicks.Load(),
		Contacts:       s.contacts.Load(),
		StaticContacts: s.staticContacts.Load(),
		Penetration:    s.penetration.Load(),
		LastTickTime:   last,
		MeanTickTime:   time.Duration(utils.Mean(samples)),
		P99TickTime:    time.Duration(utils.Percentile(samples, 99)),
		MaxTickTime:    time.Duration(utils.Max(samples)),
		TickJitter:     time.Duration(utils.StandardDeviation(samples)),
	}
}
