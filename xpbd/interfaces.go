package xpbd

import "github.com/go-gl/mathgl/mgl64"

// ForceField contributes an external force to dynamic particles during integration, in addition to
// the world's gravity.
type ForceField interface {
	Force(p *Particle) mgl64.Vec2
}

// ForceFunc adapts a plain function to a ForceField.
type ForceFunc func(p *Particle) mgl64.Vec2

// Force ...
func (f ForceFunc) Force(p *Particle) mgl64.Vec2 {
	return f(p)
}
