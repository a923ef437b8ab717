package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/xpbd/runner"
	"github.com/oomph-ac/xpbd/scene"
	"github.com/oomph-ac/xpbd/settings"
	"github.com/oomph-ac/xpbd/worker"
	"github.com/oomph-ac/xpbd/xpbd"
	"github.com/sirupsen/logrus"
)

var (
	configPath = flag.String("config", "settings.toml", "path to the settings file, created with defaults if missing")
	sceneName  = flag.String("scene", "", "run a single scene instead of the configured list")
	duration   = flag.Float64("duration", 0, "simulated seconds per scene, overrides the settings file when positive")
	realtime   = flag.Bool("realtime", false, "pace the simulation against the wall clock")
)

// The following program runs registered scenes without a renderer and reports their statistics.
// Run it with "list" as the only argument to print the registered scenes.
func main() {
	flag.Parse()
	if flag.Arg(0) == "list" {
		for _, name := range scene.Names() {
			s, _ := scene.Lookup(name)
			fmt.Printf("%-10s %s\n", name, s.Description)
		}
		return
	}

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"}

	conf, err := readConfig(*configPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.Level, _ = conf.LogLevel()
	if *sceneName != "" {
		conf.Run.Scenes = []string{*sceneName}
	}
	if *duration > 0 {
		conf.Run.Duration = *duration
	}
	if *realtime {
		conf.Run.Realtime = true
	}
	if len(conf.Run.Scenes) == 0 {
		conf.Run.Scenes = scene.Names()
	}

	if conf.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         conf.Sentry.DSN,
			Environment: conf.Sentry.Environment,
		}); err != nil {
			log.Fatalf("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(5 * time.Second)
	}

	if conf.Stats.Enabled || os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(conf.Stats.Addr))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Infof("serving runtime statistics on http://%s/debug/statsview", conf.Stats.Addr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var wg sync.WaitGroup
	for i, name := range conf.Run.Scenes {
		wg.Add(1)
		seed := conf.Run.Seed + int64(i)
		worker.Submit(func() {
			defer wg.Done()
			if err := runScene(ctx, log.WithField("scene", name), conf, name, seed); err != nil {
				log.Errorf("scene %s: %v", name, err)
			}
		})
	}
	wg.Wait()
}

// runScene builds the scene under name and simulates it for the configured duration.
func runScene(ctx context.Context, log *logrus.Entry, conf settings.Settings, name string, seed int64) error {
	opts := conf.SimulatorOptions()
	opts.Debugf = log.Tracef

	sim, err := xpbd.NewSimulator(opts)
	if err != nil {
		return err
	}
	w, hook, err := scene.Build(name, scene.Config{
		DeltaTime: opts.DeltaTime,
		Rand:      rand.New(rand.NewSource(seed)),
		Log:       log,
	})
	if err != nil {
		return err
	}
	if x, y, ok := conf.Gravity(); ok {
		w.Gravity = mgl64.Vec2{x, y}
	}

	stepper := runner.NewStepper(sim, w, log.Logger)
	stepper.MaxTicksPerFrame = conf.Simulation.MaxTicksPerFrame
	stepper.OnTick = runner.TickFunc(hook)

	ticks := int(math.Round(conf.Run.Duration / opts.DeltaTime))
	log.Infof("running %d ticks with %d particles", ticks, w.Len())

	start := time.Now()
	if conf.Run.Realtime {
		frame := time.Duration(opts.DeltaTime * float64(time.Second))
		runCtx, cancel := context.WithTimeout(ctx, time.Duration(conf.Run.Duration*float64(time.Second)))
		defer cancel()

		if err := runner.New(stepper, frame, log.Logger).Run(runCtx); err != nil && ctx.Err() != nil {
			return err
		}
	} else {
		for i := 0; i < ticks; i++ {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			stepper.Step()
		}
	}

	stats := stepper.Stats()
	log.WithFields(logrus.Fields{
		"ticks":           stats.Ticks,
		"pairs":           len(w.CollisionPairs()),
		"dropped":         stats.DroppedTicks,
		"contacts":        stats.Contacts,
		"static_contacts": stats.StaticContacts,
		"particles":       w.Len(),
		"penetration":     fmt.Sprintf("%.6f", stats.Penetration),
		"checksum":        fmt.Sprintf("%016x", w.Checksum()),
	}).Infof("finished in %v (tick last %v, mean %v, p99 %v, max %v, jitter %v)", time.Since(start).Round(time.Millisecond), stats.LastTickTime, stats.MeanTickTime, stats.P99TickTime, stats.MaxTickTime, stats.TickJitter)
	return nil
}

// readConfig reads the settings from path, or creates the file with default settings if it does
// not yet exist.
func readConfig(path string) (settings.Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := settings.SaveDefault(path); err != nil {
			return settings.Settings{}, fmt.Errorf("create default settings: %v", err)
		}
	}
	return settings.Load(path)
}
