package scheduler_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/slok/wellhub/internal/scheduler"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestClockEvery(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{})

	timer := scheduler.Clock.Every(time.Millisecond, func() {
		if calls.Add(1) == 3 {
			close(done)
		}
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timer didn't tick")
	}

	timer.Stop()
	timer.Stop() // Stopping again is a noop.
	stopped := calls.Load()

	time.Sleep(20 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), stopped+1)
}

func TestClockAfter(t *testing.T) {
	done := make(chan struct{})
	scheduler.Clock.After(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timer didn't fire")
	}
}

func TestClockAfterStopped(t *testing.T) {
	var called atomic.Bool
	timer := scheduler.Clock.After(20*time.Millisecond, func() { called.Store(true) })
	timer.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.False(t, called.Load())
}
