package scene

import (
	"math/rand"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/xpbd/oerror"
	"github.com/oomph-ac/xpbd/xpbd"
	"github.com/sirupsen/logrus"
)

// Config is passed to a scene when it is built.
type Config struct {
	// DeltaTime is the fixed tick duration the world will be stepped with.
	DeltaTime float64
	// Rand is the source of randomness for scenes that need one.
	Rand *rand.Rand
	// Log receives the spawn and despawn events of scenes that change while running.
	Log logrus.FieldLogger
}

// Hook is called after every tick of a built scene.
type Hook func(w *xpbd.World, tick uint64)

// Scene builds a populated world.
type Scene struct {
	Name        string
	Description string
	Build       func(w *xpbd.World, conf Config) (Hook, error)
}

var registry = orderedmap.NewOrderedMap[string, Scene]()

// Register adds a scene to the registry. Registering the same name twice panics.
func Register(s Scene) {
	if _, ok := registry.Get(s.Name); ok {
		panic(oerror.New("scene: %q registered twice", s.Name))
	}
	registry.Set(s.Name, s)
}

// Lookup returns the scene registered under name.
func Lookup(name string) (Scene, bool) {
	return registry.Get(name)
}

// Names returns the names of all registered scenes in registration order.
func Names() []string {
	return registry.Keys()
}

// Build creates a new world and populates it with the scene registered under name. The returned
// hook is nil for scenes that do not change after setup.
func Build(name string, conf Config) (*xpbd.World, Hook, error) {
	s, ok := Lookup(name)
	if !ok {
		return nil, nil, oerror.New("scene: unknown scene %q", name)
	}
	if conf.DeltaTime <= 0 {
		conf.DeltaTime = xpbd.DefaultDeltaTime
	}
	if conf.Rand == nil {
		conf.Rand = rand.New(rand.NewSource(1))
	}
	if conf.Log == nil {
		conf.Log = logrus.StandardLogger()
	}

	w := xpbd.NewWorld()
	hook, err := s.Build(w, conf)
	if err != nil {
		return nil, nil, oerror.New("scene: build %q: %v", name, err)
	}
	return w, hook, nil
}

// spawnAll spawns every particle, stopping at the first invalid one.
func spawnAll(w *xpbd.World, particles ...xpbd.Particle) error {
	for _, p := range particles {
		if _, err := w.Spawn(p); err != nil {
			return err
		}
	}
	return nil
}
