package xpbd

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/xpbd/assert"
)

// solvePositions runs a single position correction pass over the broad-phase pairs and every
// dynamic/static combination. It returns the deepest penetration it corrected.
func (s *Simulator) solvePositions(w *World, result *StepResult) (deepest float64) {
	for _, pair := range w.pairs {
		a, b := w.pair(pair.A, pair.B)

		n, depth, hit, coincident := circleContact(a.Pos, b.Pos, a.Collider.Radius, b.Collider.Radius)
		if coincident {
			result.Coincident++
			s.debugf("skipping coincident particles %v and %v", pair.A, pair.B)
			continue
		}
		if !hit {
			continue
		}

		wA, wB := a.InverseMass(), b.InverseMass()
		wSum := wA + wB
		a.Pos = a.Pos.Sub(n.Mul(depth * wA / wSum))
		b.Pos = b.Pos.Add(n.Mul(depth * wB / wSum))

		w.contacts.add(pair.A, pair.B, n)
		deepest = math.Max(deepest, depth)
	}

	for i := range w.slots {
		dyn := &w.slots[i]
		if !dyn.alive || dyn.p.Static() || dyn.p.Collider.Kind == ColliderNone {
			continue
		}
		assert.IsTrue(dyn.p.Collider.Kind == ColliderCircle, "xpbd: dynamic particle %d has a %v collider", i, dyn.p.Collider.Kind)
		a := &dyn.p

		for j := range w.slots {
			st := &w.slots[j]
			if !st.alive || !st.p.Static() {
				continue
			}
			b := &st.p

			var (
				n     mgl64.Vec2
				depth float64
				hit   bool
			)
			switch b.Collider.Kind {
			case ColliderCircle:
				var coincident bool
				n, depth, hit, coincident = circleContact(a.Pos, b.Pos, a.Collider.Radius, b.Collider.Radius)
				if coincident {
					result.Coincident++
					continue
				}
			case ColliderBox:
				n, depth, hit = boxContact(a.Pos, a.Collider.Radius, b.Pos, b.Collider.HalfExtents)
			default:
				assert.IsTrue(false, "xpbd: static particle %d has no usable collider (%v)", j, b.Collider.Kind)
			}
			if !hit {
				continue
			}

			a.Pos = a.Pos.Sub(n.Mul(depth))
			w.staticContacts.add(
				Handle{index: uint32(i), generation: dyn.generation},
				Handle{index: uint32(j), generation: st.generation},
				n,
			)
			deepest = math.Max(deepest, depth)
		}
	}
	return deepest
}

// circleContact tests two circles for overlap. The normal points from a to b. coincident is set when
// both centres are at the same position, in which case no normal can be derived.
func circleContact(a, b mgl64.Vec2, radiusA, radiusB float64) (n mgl64.Vec2, depth float64, hit, coincident bool) {
	ab := b.Sub(a)
	distSqr := lenSqr(ab)
	combined := radiusA + radiusB
	if distSqr >= combined*combined {
		return n, 0, false, false
	}
	if distSqr == 0 {
		return n, 0, false, true
	}

	dist := math.Sqrt(distSqr)
	return ab.Mul(1 / dist), combined - dist, true, false
}

// boxContact tests a circle against an axis-aligned box. The normal points from the circle towards
// the box, so moving the circle by -n*depth separates the two.
func boxContact(circle mgl64.Vec2, radius float64, box, halfExtents mgl64.Vec2) (n mgl64.Vec2, depth float64, hit bool) {
	boxToCircle := circle.Sub(box)
	cornerToCenter := absVec(boxToCircle).Sub(halfExtents)
	if cornerToCenter.X() >= radius || cornerToCenter.Y() >= radius {
		return n, 0, false
	}

	s := signVec(boxToCircle)
	switch {
	case cornerToCenter.X() > 0 && cornerToCenter.Y() > 0:
		// Nearest feature is a corner.
		distSqr := lenSqr(cornerToCenter)
		if distSqr >= radius*radius {
			return n, 0, false
		}
		dist := math.Sqrt(distSqr)
		n = mgl64.Vec2{-s.X() * cornerToCenter.X() / dist, -s.Y() * cornerToCenter.Y() / dist}
		return n, radius - dist, true
	case cornerToCenter.X() > cornerToCenter.Y():
		// Vertical edge.
		return mgl64.Vec2{-s.X(), 0}, radius - cornerToCenter.X(), true
	default:
		// Horizontal edge.
		return mgl64.Vec2{0, -s.Y()}, radius - cornerToCenter.Y(), true
	}
}
