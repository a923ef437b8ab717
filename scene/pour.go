package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/xpbd/xpbd"
)

const (
	// MarbleInterval is the simulated time between two marbles, in seconds.
	MarbleInterval = 0.25
	MarbleRadius   = 2.5
	// DespawnHeight is the height below which marbles are removed.
	DespawnHeight = -360.0
)

func pour(w *xpbd.World, conf Config) (Hook, error) {
	if err := spawnAll(w, xpbd.NewStaticBox(mgl64.Vec2{0, -355}, mgl64.Vec2{350, 100})); err != nil {
		return nil, err
	}

	spawned := 0
	return func(w *xpbd.World, tick uint64) {
		due := int(math.Floor(float64(tick)*conf.DeltaTime/MarbleInterval + 1e-9))
		for ; spawned < due; spawned++ {
			pos := mgl64.Vec2{conf.Rand.Float64() - 0.5, conf.Rand.Float64() - 0.5}.Mul(25).Add(mgl64.Vec2{0, 3})
			vel := mgl64.Vec2{conf.Rand.Float64() - 0.5, conf.Rand.Float64() - 0.5}
			h, err := w.Spawn(xpbd.NewParticleWithMassRadius(pos, vel, 1, MarbleRadius))
			if err != nil {
				conf.Log.Errorf("unable to spawn marble: %v", err)
				continue
			}
			conf.Log.Debugf("spawned marble %v at %v", h, pos)
		}

		var fallen []xpbd.Handle
		for h, p := range w.All() {
			if !p.Static() && p.Pos.Y() < DespawnHeight {
				fallen = append(fallen, h)
			}
		}
		for _, h := range fallen {
			if err := w.Despawn(h); err != nil {
				conf.Log.Errorf("unable to despawn marble %v: %v", h, err)
				continue
			}
			conf.Log.Debugf("despawned marble %v", h)
		}
	}, nil
}
