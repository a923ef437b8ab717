package xpbd

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/xpbd/oerror"
)

// Particle holds the simulated state of a single body. A Mass of zero marks the particle as static:
// static particles are never integrated and never receive a correction from any solver.
type Particle struct {
	Pos, PrevPos mgl64.Vec2
	Vel          mgl64.Vec2
	// PreSolveVel is the velocity right after integration, before any constraint was solved. The
	// velocity solver uses it to compute the bounce.
	PreSolveVel mgl64.Vec2

	Mass        float64
	Restitution float64
	Collider    Collider

	// Transform is the renderable translation written by SyncTransforms.
	Transform mgl32.Vec3
}

// NewParticle returns a dynamic particle with the default mass, radius and restitution.
func NewParticle(pos, vel mgl64.Vec2) Particle {
	return NewParticleWithMassRadius(pos, vel, DefaultMass, DefaultRadius)
}

// NewParticleWithMassRadius returns a dynamic circle particle with the given mass and radius.
func NewParticleWithMassRadius(pos, vel mgl64.Vec2, mass, radius float64) Particle {
	return Particle{
		Pos:         pos,
		PrevPos:     pos,
		Vel:         vel,
		PreSolveVel: vel,
		Mass:        mass,
		Restitution: DefaultRestitution,
		Collider:    Circle(radius),
		Transform:   vec64To32(pos).Vec3(0),
	}
}

// NewStaticBox returns an immovable box with the given full size.
func NewStaticBox(pos, size mgl64.Vec2) Particle {
	return Particle{
		Pos:         pos,
		PrevPos:     pos,
		Restitution: DefaultRestitution,
		Collider:    Box(size),
		Transform:   vec64To32(pos).Vec3(0),
	}
}

// NewStaticCircle returns an immovable circle with the given radius.
func NewStaticCircle(pos mgl64.Vec2, radius float64) Particle {
	return Particle{
		Pos:         pos,
		PrevPos:     pos,
		Restitution: DefaultRestitution,
		Collider:    Circle(radius),
		Transform:   vec64To32(pos).Vec3(0),
	}
}

// Static returns true if the particle has no mass.
func (p *Particle) Static() bool {
	return p.Mass == 0
}

// InverseMass returns 1/mass, or zero for static particles.
func (p *Particle) InverseMass() float64 {
	if p.Static() {
		return 0
	}
	return 1 / p.Mass
}

// SetPos moves the particle, remembering the old position as the previous one.
func (p *Particle) SetPos(newPos mgl64.Vec2) {
	p.PrevPos = p.Pos
	p.Pos = newPos
}

// SetVel overwrites both the velocity and its pre-solve snapshot.
func (p *Particle) SetVel(newVel mgl64.Vec2) {
	p.Vel = newVel
	p.PreSolveVel = newVel
}

func (p *Particle) validate() error {
	if math.IsNaN(p.Mass) || math.IsInf(p.Mass, 0) || p.Mass < 0 {
		return oerror.New("xpbd: invalid mass %v", p.Mass)
	}
	if math.IsNaN(p.Restitution) || p.Restitution < 0 || p.Restitution > 1 {
		return oerror.New("xpbd: restitution %v outside [0, 1]", p.Restitution)
	}

	switch p.Collider.Kind {
	case ColliderNone:
		if p.Static() {
			return oerror.New("xpbd: static particle requires a collider")
		}
	case ColliderCircle:
		if !(p.Collider.Radius > 0) {
			return oerror.New("xpbd: circle radius must be positive, got %v", p.Collider.Radius)
		}
	case ColliderBox:
		if !p.Static() {
			return oerror.New("xpbd: box colliders are only supported on static particles")
		}
		if !(p.Collider.HalfExtents.X() > 0) || !(p.Collider.HalfExtents.Y() > 0) {
			return oerror.New("xpbd: box half-extents must be positive, got %v", p.Collider.HalfExtents)
		}
	default:
		return oerror.New("xpbd: unknown collider kind %v", p.Collider.Kind)
	}
	return nil
}
