package xpbd

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/xpbd/assert"
	"github.com/oomph-ac/xpbd/oerror"
	"github.com/zeebo/xxh3"
)

// Handle identifies a particle in a World. Handles of despawned particles never resolve again, even
// after their slot has been reused.
type Handle struct {
	index      uint32
	generation uint32
}

func (h Handle) String() string {
	return fmt.Sprintf("%d#%d", h.index, h.generation)
}

type slot struct {
	p          Particle
	generation uint32
	alive      bool
}

// World is a flat arena of particles addressed by Handle, together with the per-tick collision
// buffers the simulator fills. A World must not be stepped from more than one goroutine at a time.
type World struct {
	// Gravity is applied to every dynamic particle during integration.
	Gravity mgl64.Vec2

	slots []slot
	free  []uint32
	count int

	pairs          []CollisionPair
	contacts       *contactSet
	staticContacts *contactSet
}

// NewWorld returns an empty world with the default gravity.
func NewWorld() *World {
	return &World{
		Gravity:        mgl64.Vec2{DefaultGravityX, DefaultGravityY},
		contacts:       newContactSet(),
		staticContacts: newContactSet(),
	}
}

// Spawn validates the particle and inserts it into the world.
func (w *World) Spawn(p Particle) (Handle, error) {
	if err := p.validate(); err != nil {
		return Handle{}, err
	}

	var index uint32
	if n := len(w.free); n > 0 {
		index = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		w.slots = append(w.slots, slot{})
		index = uint32(len(w.slots) - 1)
	}

	s := &w.slots[index]
	s.p = p
	s.alive = true
	w.count++
	return Handle{index: index, generation: s.generation}, nil
}

// MustSpawn is like Spawn but panics if the particle is invalid.
func (w *World) MustSpawn(p Particle) Handle {
	h, err := w.Spawn(p)
	if err != nil {
		panic(err)
	}
	return h
}

// Despawn removes the particle. It returns an error if the handle does not resolve.
func (w *World) Despawn(h Handle) error {
	s, ok := w.slot(h)
	if !ok {
		return oerror.New("xpbd: despawn of unknown particle %v", h)
	}
	s.p = Particle{}
	s.alive = false
	s.generation++
	w.free = append(w.free, h.index)
	w.count--
	return nil
}

// Particle returns the particle behind the handle. The pointer stays valid until the particle is
// despawned or another particle is spawned.
func (w *World) Particle(h Handle) (*Particle, bool) {
	s, ok := w.slot(h)
	if !ok {
		return nil, false
	}
	return &s.p, true
}

// Len returns the number of live particles.
func (w *World) Len() int {
	return w.count
}

// All iterates over every live particle in slot order.
func (w *World) All() iter.Seq2[Handle, *Particle] {
	return func(yield func(Handle, *Particle) bool) {
		for i := range w.slots {
			s := &w.slots[i]
			if !s.alive {
				continue
			}
			if !yield(Handle{index: uint32(i), generation: s.generation}, &s.p) {
				return
			}
		}
	}
}

// CollisionPairs returns the broad-phase candidates of the last tick. The slice is reused by the
// next tick.
func (w *World) CollisionPairs() []CollisionPair {
	return w.pairs
}

// Contacts returns the dynamic-dynamic contacts of the last tick in the order they were found.
func (w *World) Contacts() []Contact {
	return slices.Collect(w.contacts.each())
}

// StaticContacts returns the dynamic-static contacts of the last tick in the order they were found.
func (w *World) StaticContacts() []Contact {
	return slices.Collect(w.staticContacts.each())
}

// Checksum hashes the position and velocity of every live particle. Two worlds stepped through the
// same inputs always produce the same checksum.
func (w *World) Checksum() uint64 {
	h := xxh3.New()
	var buf [8]byte
	write := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	for handle, p := range w.All() {
		binary.LittleEndian.PutUint64(buf[:], uint64(handle.index)<<32|uint64(handle.generation))
		_, _ = h.Write(buf[:])
		write(p.Pos.X())
		write(p.Pos.Y())
		write(p.Vel.X())
		write(p.Vel.Y())
	}
	return h.Sum64()
}

func (w *World) slot(h Handle) (*slot, bool) {
	if int(h.index) >= len(w.slots) {
		return nil, false
	}
	s := &w.slots[h.index]
	if !s.alive || s.generation != h.generation {
		return nil, false
	}
	return s, true
}

func (w *World) mustParticle(h Handle) *Particle {
	p, ok := w.Particle(h)
	assert.IsTrue(ok, "xpbd: particle %v does not exist", h)
	return p
}

// pair resolves both handles at once. a and b point into distinct slots of the arena.
func (w *World) pair(a, b Handle) (*Particle, *Particle) {
	assert.IsTrue(a.index != b.index, "xpbd: particle %v paired with itself", a)
	return w.mustParticle(a), w.mustParticle(b)
}
