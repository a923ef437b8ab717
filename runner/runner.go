package runner

import (
	"context"
	"time"

	"github.com/oomph-ac/xpbd/oerror"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// Runner drives a Stepper in real time from a ticker. All world access happens on the goroutine
// calling Run.
type Runner struct {
	stepper   *Stepper
	log       *logrus.Logger
	frameRate time.Duration

	closing chan struct{}
	closed  atomic.Bool
}

// New returns a Runner advancing stepper once every frameRate.
func New(stepper *Stepper, frameRate time.Duration, log *logrus.Logger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{
		stepper:   stepper,
		log:       log,
		frameRate: frameRate,
		closing:   make(chan struct{}),
	}
}

// Run advances the stepper on every frame until ctx is cancelled or the Runner is closed. It returns
// ctx.Err() when stopped through the context and nil when closed.
func (r *Runner) Run(ctx context.Context) error {
	if r.frameRate <= 0 {
		return oerror.New("runner: frame rate must be positive, got %v", r.frameRate)
	}
	if r.closed.Load() {
		return oerror.New("runner: already closed")
	}

	ticker := time.NewTicker(r.frameRate)
	defer ticker.Stop()

	last := time.Now()
	r.log.Debugf("runner started at %v per frame", r.frameRate)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.closing:
			return nil
		case now := <-ticker.C:
			r.stepper.Advance(now.Sub(last))
			last = now
		}
	}
}

// Stats returns the statistics of the underlying Stepper.
func (r *Runner) Stats() Stats {
	return r.stepper.Stats()
}

// Close stops a running Run call. Closing twice returns an error.
func (r *Runner) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return oerror.New("runner: already closed")
	}
	close(r.closing)
	return nil
}
