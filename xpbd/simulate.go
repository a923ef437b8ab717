package xpbd

// Simulate advances the world by one fixed tick: broad phase, integration, the substepped position
// solver and the velocity solver, in that order. Transforms are left untouched; use Step or
// SyncTransforms to update them.
func (s *Simulator) Simulate(w *World) StepResult {
	if w == nil {
		return StepResult{}
	}
	dt := s.Options.DeltaTime

	s.collectPairs(w, dt)
	s.integrate(w, dt)

	w.contacts.reset()
	w.staticContacts.reset()

	result := StepResult{Pairs: len(w.pairs)}
	for range s.Options.Substeps {
		result.Penetration = s.solvePositions(w, &result)
	}

	s.updateVelocities(w, dt)
	s.solveVelocities(w)

	result.Contacts = w.contacts.len()
	result.StaticContacts = w.staticContacts.len()
	s.debugf("step: pairs=%d contacts=%d static=%d penetration=%.6f", result.Pairs, result.Contacts, result.StaticContacts, result.Penetration)
	return result
}

// Step simulates a tick and copies the final positions into the transforms.
func (s *Simulator) Step(w *World) StepResult {
	result := s.Simulate(w)
	SyncTransforms(w, 1)
	return result
}
