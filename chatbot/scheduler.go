package chatbot

import (
	"sync"
	"time"
)

// Scheduler runs fn once after d without blocking the caller
type Scheduler interface {
	After(d time.Duration, fn func())
}

// TimerScheduler schedules continuations on wall-clock timers
type TimerScheduler struct{}

// After runs fn on its own goroutine once d has elapsed
func (TimerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

type scheduledTask struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// ManualScheduler is a virtual clock. Tasks only run when the clock is
// advanced, in due-time order, ties broken by scheduling order.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []scheduledTask
}

// NewManualScheduler returns a virtual clock at time zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After queues fn to run once the clock passes d from now
func (s *ManualScheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.tasks = append(s.tasks, scheduledTask{at: s.now + d, seq: s.seq, fn: fn})
}

// Now returns the elapsed virtual time
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of queued tasks
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// next pops the earliest task due at or before limit
func (s *ManualScheduler) next(limit time.Duration) (scheduledTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.tasks {
		if t.at > limit {
			continue
		}
		if idx < 0 || t.at < s.tasks[idx].at || (t.at == s.tasks[idx].at && t.seq < s.tasks[idx].seq) {
			idx = i
		}
	}
	if idx < 0 {
		return scheduledTask{}, false
	}

	task := s.tasks[idx]
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	if task.at > s.now {
		s.now = task.at
	}
	return task, true
}

// Advance moves the clock forward by d, running every task that falls due,
// including tasks scheduled by tasks run during the advance
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	limit := s.now + d
	s.mu.Unlock()

	for {
		task, ok := s.next(limit)
		if !ok {
			break
		}
		task.fn()
	}

	s.mu.Lock()
	if limit > s.now {
		s.now = limit
	}
	s.mu.Unlock()
}

// Flush runs queued tasks until none remain, advancing the clock as needed
func (s *ManualScheduler) Flush() {
	for {
		task, ok := s.next(1<<63 - 1)
		if !ok {
			return
		}
		task.fn()
	}
}
