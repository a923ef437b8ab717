package xpbd

import "math"

// collectPairs gathers every pair of dynamic circles that could touch before the end of the tick.
// The contact radius is widened by a margin proportional to how far both particles may travel, so
// the position solver never misses a contact the broad phase rejected.
func (s *Simulator) collectPairs(w *World, dt float64) {
	w.pairs = w.pairs[:0]
	k := s.Options.SafetyMargin

	for i := range w.slots {
		a := &w.slots[i]
		if !collidesDynamically(a) {
			continue
		}
		for j := i + 1; j < len(w.slots); j++ {
			b := &w.slots[j]
			if !collidesDynamically(b) {
				continue
			}

			margin := k * dt * math.Sqrt(lenSqr(a.p.Vel)+lenSqr(b.p.Vel))
			r := a.p.Collider.Radius + b.p.Collider.Radius + margin
			if lenSqr(b.p.Pos.Sub(a.p.Pos)) <= r*r {
				w.pairs = append(w.pairs, CollisionPair{
					A: Handle{index: uint32(i), generation: a.generation},
					B: Handle{index: uint32(j), generation: b.generation},
				})
			}
		}
	}
}

func collidesDynamically(s *slot) bool {
	return s.alive && !s.p.Static() && s.p.Collider.Kind == ColliderCircle
}
