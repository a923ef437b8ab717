package xpbd

// StepResult summarises a single tick.
type StepResult struct {
	// Pairs is the number of broad-phase candidates.
	Pairs int
	// Contacts and StaticContacts count the distinct contacts found over all substeps.
	Contacts       int
	StaticContacts int
	// Penetration is the deepest overlap corrected during the final substep. It approaches zero as
	// the solver converges.
	Penetration float64
	// Coincident counts pair checks skipped because both centres were at the same position.
	Coincident int
}
