// Package fake has a manually driven scheduler so time based logic can be
// tested deterministically.
package fake

import (
	"sync"
	"time"

	"github.com/slok/wellhub/internal/scheduler"
)

// Scheduler is a scheduler.Scheduler that only moves when Advance is called.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*timer
}

// NewScheduler returns a new fake scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

var _ scheduler.Scheduler = &Scheduler{}

type timer struct {
	s        *Scheduler
	next     time.Duration
	interval time.Duration // 0 for one shot timers.
	fn       func()
	stopped  bool
}

func (t *timer) Stop() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.stopped = true
}

// Every satisfies scheduler.Scheduler.
func (s *Scheduler) Every(interval time.Duration, fn func()) scheduler.Timer {
	if interval <= 0 {
		interval = 1
	}
	return s.add(interval, interval, fn)
}

// After satisfies scheduler.Scheduler.
func (s *Scheduler) After(delay time.Duration, fn func()) scheduler.Timer {
	return s.add(delay, 0, fn)
}

func (s *Scheduler) add(delay, interval time.Duration, fn func()) *timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &timer{s: s, next: s.now + delay, interval: interval, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the fake time forward running every due callback in order.
// Callbacks run on the caller goroutine.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		t := s.nextDue(target)
		if t == nil {
			s.now = target
			s.mu.Unlock()
			return
		}

		s.now = t.next
		if t.interval > 0 {
			t.next += t.interval
		} else {
			t.stopped = true
		}
		fn := t.fn
		s.mu.Unlock()

		fn()
	}
}

// Active returns the number of timers that can still fire.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (s *Scheduler) nextDue(target time.Duration) *timer {
	var due *timer
	for _, t := range s.timers {
		if t.stopped || t.next > target {
			continue
		}
		if due == nil || t.next < due.next {
			due = t
		}
	}
	return due
}
