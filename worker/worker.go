package worker

import (
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/xpbd/oerror"
	"github.com/sirupsen/logrus"
)

var workerQueue = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	for f := range workerQueue {
		run(f)
	}
}

// run executes a single task. A panicking task is reported to sentry and logged, and the worker
// moves on to the next task.
func run(f func()) {
	defer func() {
		if err := recover(); err != nil {
			logrus.Errorf("worker task panicked: %v", err)
			hub := sentry.CurrentHub().Clone()
			hub.Recover(oerror.New("worker task crashed: %v", err))
			hub.Flush(time.Second * 5)
		}
	}()
	f()
}

// Submit queues f on the shared worker pool. To be used by work that may be CPU intensive, such as
// stepping a world for many ticks.
func Submit(f func()) {
	workerQueue <- f
}
