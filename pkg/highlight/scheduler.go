package highlight

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiescence window between the last change
// notification and the analysis run it triggers.
const DefaultDebounce = 100 * time.Millisecond

// Scheduler coalesces rapid change notifications into a single analysis
// run. Each Trigger cancels any pending run and starts the delay over, so
// only the last notification in a burst fires.
type Scheduler struct {
	mu     sync.Mutex
	delay  time.Duration
	run    func()
	timer  *time.Timer
	closed bool
}

func NewScheduler(delay time.Duration, run func()) *Scheduler {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Scheduler{delay: delay, run: run}
}

// Trigger schedules a run after the quiescence window, superseding any run
// already pending.
func (s *Scheduler) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.run)
}

// Close cancels any pending run. Triggers after Close are ignored.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
