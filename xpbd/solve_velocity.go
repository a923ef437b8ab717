package xpbd

// updateVelocities derives the velocity of every dynamic particle from the distance it actually
// travelled this tick, including all corrections made by the position solver.
func (s *Simulator) updateVelocities(w *World, dt float64) {
	for i := range w.slots {
		sl := &w.slots[i]
		if !sl.alive || sl.p.Static() {
			continue
		}
		sl.p.Vel = sl.p.Pos.Sub(sl.p.PrevPos).Mul(1 / dt)
	}
}

// solveVelocities applies restitution along the normal of every contact found this tick. The
// correction is split by inverse mass for dynamic pairs and applied entirely to the dynamic particle
// for static contacts.
func (s *Simulator) solveVelocities(w *World) {
	for c := range w.contacts.each() {
		a, b := w.pair(c.A, c.B)
		n := c.Normal

		preSolveNormalVel := a.PreSolveVel.Sub(b.PreSolveVel).Dot(n)
		normalVel := a.Vel.Sub(b.Vel).Dot(n)
		restitution := (a.Restitution + b.Restitution) / 2

		wA, wB := a.InverseMass(), b.InverseMass()
		wSum := wA + wB
		impulse := n.Mul(-normalVel - restitution*preSolveNormalVel)
		a.Vel = a.Vel.Add(impulse.Mul(wA / wSum))
		b.Vel = b.Vel.Sub(impulse.Mul(wB / wSum))
	}

	for c := range w.staticContacts.each() {
		a, b := w.pair(c.A, c.B)
		n := c.Normal

		preSolveNormalVel := a.PreSolveVel.Dot(n)
		normalVel := a.Vel.Dot(n)
		restitution := (a.Restitution + b.Restitution) / 2
		a.Vel = a.Vel.Add(n.Mul(-normalVel - restitution*preSolveNormalVel))
	}
}
