package xpbd

// integrate applies external forces and advances every dynamic particle with semi-implicit Euler:
// velocity first, then position from the new velocity.
func (s *Simulator) integrate(w *World, dt float64) {
	for i := range w.slots {
		sl := &w.slots[i]
		if !sl.alive || sl.p.Static() {
			continue
		}
		p := &sl.p

		force := w.Gravity.Mul(p.Mass)
		for _, f := range s.Forces {
			force = force.Add(f.Force(p))
		}

		p.PrevPos = p.Pos
		p.Vel = p.Vel.Add(force.Mul(dt / p.Mass))
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		p.PreSolveVel = p.Vel
	}
}
