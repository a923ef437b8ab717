package xpbd

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBoxContactHorizontalEdge(t *testing.T) {
	halfExtents := mgl64.Vec2{25, 25}

	// Directly above the box, well within its half-width.
	n, depth, hit := boxContact(mgl64.Vec2{5, 30}, 10, mgl64.Vec2{}, halfExtents)
	if !hit {
		t.Fatalf("expected a contact")
	}
	if n != (mgl64.Vec2{0, -1}) {
		t.Fatalf("expected normal (0, -1) towards the box, got %v", n)
	}
	if !approx(depth, 5, 1e-12) {
		t.Fatalf("expected depth 5, got %v", depth)
	}

	// Directly below.
	n, depth, hit = boxContact(mgl64.Vec2{-24, -33}, 10, mgl64.Vec2{}, halfExtents)
	if !hit || n != (mgl64.Vec2{0, 1}) || !approx(depth, 2, 1e-12) {
		t.Fatalf("expected contact below the box, got hit=%v n=%v depth=%v", hit, n, depth)
	}
}

func TestBoxContactVerticalEdge(t *testing.T) {
	n, depth, hit := boxContact(mgl64.Vec2{-32, 100}, 10, mgl64.Vec2{0, 95}, mgl64.Vec2{25, 25})
	if !hit {
		t.Fatalf("expected a contact")
	}
	if n != (mgl64.Vec2{1, 0}) {
		t.Fatalf("expected normal (1, 0) towards the box, got %v", n)
	}
	if !approx(depth, 3, 1e-12) {
		t.Fatalf("expected depth 3, got %v", depth)
	}
}

func TestBoxContactCorner(t *testing.T) {
	// Corner at (25, 25); the circle centre is 3 units right and 4 units above it.
	n, depth, hit := boxContact(mgl64.Vec2{28, 29}, 10, mgl64.Vec2{}, mgl64.Vec2{25, 25})
	if !hit {
		t.Fatalf("expected a contact")
	}
	if !n.ApproxEqualThreshold(mgl64.Vec2{-0.6, -0.8}, 1e-12) {
		t.Fatalf("expected normal towards the corner, got %v", n)
	}
	if !approx(depth, 5, 1e-12) {
		t.Fatalf("expected depth 5, got %v", depth)
	}

	// Within the early-out on both axes, but too far from the corner itself.
	if _, _, hit := boxContact(mgl64.Vec2{33, 33}, 10, mgl64.Vec2{}, mgl64.Vec2{25, 25}); hit {
		t.Fatalf("expected no contact beyond the corner radius")
	}
}

func TestBoxContactEarlyOut(t *testing.T) {
	for _, circle := range []mgl64.Vec2{{0, 36}, {-36, 0}, {0, 35}, {100, 100}} {
		if _, _, hit := boxContact(circle, 10, mgl64.Vec2{}, mgl64.Vec2{25, 25}); hit {
			t.Errorf("expected no contact for circle at %v", circle)
		}
	}
}

func TestCircleContact(t *testing.T) {
	n, depth, hit, coincident := circleContact(mgl64.Vec2{0, 0}, mgl64.Vec2{0, 15}, 10, 10)
	if !hit || coincident {
		t.Fatalf("expected a contact")
	}
	if n != (mgl64.Vec2{0, 1}) || !approx(depth, 5, 1e-12) {
		t.Fatalf("expected normal (0, 1) and depth 5, got %v and %v", n, depth)
	}

	if _, _, hit, _ := circleContact(mgl64.Vec2{0, 0}, mgl64.Vec2{20, 0}, 10, 10); hit {
		t.Fatalf("expected touching circles not to be in contact")
	}
	if _, _, hit, coincident := circleContact(mgl64.Vec2{3, 3}, mgl64.Vec2{3, 3}, 1, 1); hit || !coincident {
		t.Fatalf("expected coincident centres to be reported and skipped")
	}
}

func TestStaticCircleTakesNoCorrection(t *testing.T) {
	sim := newTestSimulator(t)
	w := NewWorld()
	w.Gravity = mgl64.Vec2{}

	dyn := w.MustSpawn(NewParticleWithMassRadius(mgl64.Vec2{0, 0}, mgl64.Vec2{}, 1, 10))
	st := w.MustSpawn(NewStaticCircle(mgl64.Vec2{15, 0}, 10))

	var result StepResult
	if got := sim.solvePositions(w, &result); !approx(got, 5, 1e-12) {
		t.Fatalf("expected a penetration of 5, got %v", got)
	}
	pd, _ := w.Particle(dyn)
	ps, _ := w.Particle(st)
	if !approx(pd.Pos.X(), -5, 1e-12) {
		t.Fatalf("expected dynamic particle to take the full correction, now at %v", pd.Pos)
	}
	if ps.Pos != (mgl64.Vec2{15, 0}) {
		t.Fatalf("expected static particle to stay put, now at %v", ps.Pos)
	}
	contacts := w.StaticContacts()
	if len(contacts) != 1 || contacts[0].A != dyn || contacts[0].B != st {
		t.Fatalf("expected one static contact from the dynamic particle, got %v", contacts)
	}
}

func TestStaticRestitution(t *testing.T) {
	sim := newTestSimulator(t)
	w := NewWorld()
	w.Gravity = mgl64.Vec2{}

	ball := NewParticleWithMassRadius(mgl64.Vec2{0, 11}, mgl64.Vec2{0, -120}, 1, 10)
	ball.Restitution = 0.5
	floor := NewStaticBox(mgl64.Vec2{0, -25}, mgl64.Vec2{200, 50})
	floor.Restitution = 0.5
	h := w.MustSpawn(ball)
	w.MustSpawn(floor)

	if result := sim.Step(w); result.StaticContacts != 1 {
		t.Fatalf("expected a static contact, got %d", result.StaticContacts)
	}
	p, _ := w.Particle(h)
	if !approx(p.Vel.Y(), 60, 1e-9) {
		t.Fatalf("expected the ball to bounce with half its speed, got %v", p.Vel)
	}
}

func TestSelfPairPanics(t *testing.T) {
	w := NewWorld()
	h := w.MustSpawn(NewParticle(mgl64.Vec2{}, mgl64.Vec2{}))

	defer func() {
		if recover() == nil {
			t.Fatalf("expected pairing a particle with itself to panic")
		}
	}()
	w.pair(h, h)
}
