package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/xpbd/xpbd"
)

func init() {
	Register(Scene{Name: "simple", Description: "a single default particle thrown sideways under gravity", Build: simple})
	Register(Scene{Name: "collision", Description: "two particles colliding head-on without gravity", Build: collision})
	Register(Scene{Name: "tower", Description: "three circles stacked on a static floor", Build: tower})
	Register(Scene{Name: "stacking", Description: "five columns of fifteen circles on a static box", Build: stacking})
	Register(Scene{Name: "pour", Description: "marbles poured onto a static floor and despawned below it", Build: pour})
}

func simple(w *xpbd.World, _ Config) (Hook, error) {
	return nil, spawnAll(w, xpbd.NewParticle(mgl64.Vec2{}, mgl64.Vec2{60, 0}))
}

func collision(w *xpbd.World, _ Config) (Hook, error) {
	w.Gravity = mgl64.Vec2{}
	return nil, spawnAll(w,
		xpbd.NewParticle(mgl64.Vec2{-100, 0}, mgl64.Vec2{60, 0}),
		xpbd.NewParticle(mgl64.Vec2{100, 0}, mgl64.Vec2{-60, 0}),
	)
}

func tower(w *xpbd.World, _ Config) (Hook, error) {
	const radius = 10.0
	w.Gravity = mgl64.Vec2{0, -100}

	particles := []xpbd.Particle{xpbd.NewStaticBox(mgl64.Vec2{0, -25}, mgl64.Vec2{200, 50})}
	for i := range 3 {
		pos := mgl64.Vec2{0, radius + 1 + float64(i)*(2*radius+1)}
		particles = append(particles, xpbd.NewParticleWithMassRadius(pos, mgl64.Vec2{}, 1, radius))
	}
	return nil, spawnAll(w, particles...)
}

func stacking(w *xpbd.World, _ Config) (Hook, error) {
	const (
		radius = 10.0
		stacks = 5
		rows   = 15
	)
	particles := []xpbd.Particle{xpbd.NewStaticBox(mgl64.Vec2{0, -62}, mgl64.Vec2{350, 100})}
	for i := range rows {
		for j := range stacks {
			pos := mgl64.Vec2{
				(float64(j) - stacks/2.0) * 2.5 * radius,
				2*radius*float64(i) - 2,
			}
			particles = append(particles, xpbd.NewParticleWithMassRadius(pos, mgl64.Vec2{}, 10, radius))
		}
	}
	return nil, spawnAll(w, particles...)
}
