package scheduler

import (
	"sync"
	"time"
)

// Timer is a scheduled callback.
type Timer interface {
	// Stop cancels future executions. It can be called more than once and from
	// inside the callback itself.
	Stop()
}

// Scheduler knows how to run callbacks in the future.
type Scheduler interface {
	// Every runs fn repeatedly every interval until the returned timer is stopped.
	// Executions of the same timer never overlap.
	Every(interval time.Duration, fn func()) Timer
	// After runs fn once after delay unless the returned timer is stopped before.
	After(delay time.Duration, fn func()) Timer
}

// Clock is the wall clock based scheduler.
var Clock Scheduler = clock{}

type clock struct{}

func (clock) Every(interval time.Duration, fn func()) Timer {
	t := &tickerTimer{
		ticker: time.NewTicker(interval),
		stopC:  make(chan struct{}),
	}

	go func() {
		defer t.ticker.Stop()
		for {
			select {
			case <-t.stopC:
				return
			case <-t.ticker.C:
			}

			// Don't run if we were stopped while waiting for the tick.
			select {
			case <-t.stopC:
				return
			default:
			}
			fn()
		}
	}()

	return t
}

func (clock) After(delay time.Duration, fn func()) Timer {
	return afterTimer{t: time.AfterFunc(delay, fn)}
}

type tickerTimer struct {
	ticker *time.Ticker
	stopC  chan struct{}
	once   sync.Once
}

func (t *tickerTimer) Stop() {
	t.once.Do(func() { close(t.stopC) })
}

type afterTimer struct {
	t *time.Timer
}

func (a afterTimer) Stop() { a.t.Stop() }
