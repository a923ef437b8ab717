package worker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"
)

func TestSubmitSurvivesPanics(t *testing.T) {
	var (
		wg   sync.WaitGroup
		done atomic.Int64
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		Submit(func() {
			defer wg.Done()
			if i%4 == 0 {
				panic("boom")
			}
			done.Inc()
		})
	}
	wg.Wait()
	assert.Equal(t, int64(24), done.Load())
}
