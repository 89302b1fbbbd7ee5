// internal/sched/sched.go
// Package sched provides the timer machinery for the trainer: a clock
// abstraction plus named, cancellable deferred actions fired from a periodic
// tick. Production drives ticks from a real ticker; tests drive them from a
// manual clock, so every timing path is deterministic.
package sched

import (
	"context"
	"sort"
	"sync"
	"time"
)

// DefaultInterval is the production tick period, display-refresh granularity.
const DefaultInterval = 16 * time.Millisecond

// action is a one-shot deferred function with its due time. seq preserves
// arming order so same-instant actions fire deterministically.
type action struct {
	due time.Time
	fn  func()
	seq uint64
}

// repeat is a per-tick job.
type repeat struct {
	fn  func(now time.Time)
	seq uint64
}

// Scheduler owns a set of named timers. Arming a name that is already armed
// first cancels the existing entry, so a timer identity never fires twice.
// Callbacks run outside the scheduler lock and may re-arm or cancel timers.
type Scheduler struct {
	mu      sync.Mutex
	clock   Clock
	seq     uint64
	actions map[string]*action
	repeats map[string]*repeat
}

// New creates a scheduler on the given clock. A nil clock means wall time.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = WallClock
	}
	return &Scheduler{
		clock:   clock,
		actions: make(map[string]*action),
		repeats: make(map[string]*repeat),
	}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Schedule arms the named one-shot to fire once delay has elapsed, replacing
// any armed entry with the same name.
func (s *Scheduler) Schedule(name string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.actions[name] = &action{
		due: s.clock.Now().Add(delay),
		fn:  fn,
		seq: s.seq,
	}
}

// Repeat registers the named job to run on every tick until cancelled.
func (s *Scheduler) Repeat(name string, fn func(now time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.repeats[name] = &repeat{fn: fn, seq: s.seq}
}

// Cancel disarms the named timer, one-shot or repeating. It reports whether
// anything was armed; cancelling an idle name is a no-op.
func (s *Scheduler) Cancel(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.actions[name]; ok {
		delete(s.actions, name)
		return true
	}
	if _, ok := s.repeats[name]; ok {
		delete(s.repeats, name)
		return true
	}
	return false
}

// Scheduled reports whether the named timer is currently armed.
func (s *Scheduler) Scheduled(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.actions[name]; ok {
		return true
	}
	_, ok := s.repeats[name]
	return ok
}

// Tick fires every one-shot due at the current clock reading, in due-time
// order, then runs the repeating jobs in registration order. Due one-shots
// are collected before any callback runs; a callback re-arming the same name
// schedules a fresh entry for a later tick.
func (s *Scheduler) Tick() {
	now := s.clock.Now()

	s.mu.Lock()
	var due []*action
	for name, a := range s.actions {
		if !a.due.After(now) {
			due = append(due, a)
			delete(s.actions, name)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	jobs := make([]struct {
		name string
		job  *repeat
	}, 0, len(s.repeats))
	for name, r := range s.repeats {
		jobs = append(jobs, struct {
			name string
			job  *repeat
		}{name, r})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].job.seq < jobs[j].job.seq })
	s.mu.Unlock()

	for _, a := range due {
		a.fn()
	}
	for _, j := range jobs {
		// a one-shot fired above may have cancelled this job
		s.mu.Lock()
		current, ok := s.repeats[j.name]
		s.mu.Unlock()
		if !ok || current != j.job {
			continue
		}
		j.job.fn(now)
	}
}

// Run drives Tick from a real ticker until the context is cancelled. Call it
// on its own goroutine; timer callbacks execute on that goroutine.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}
