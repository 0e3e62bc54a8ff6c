// Package sched defines the scheduling capability used by the round engine.
// Timer callbacks are explicit tasks owned by whoever scheduled them, so a
// state transition can cancel exactly the callbacks it started.
package sched

import "time"

// Task is a scheduled recurring callback.
type Task interface {
	// Stop cancels the task. A stopped task never fires again.
	// Stop is safe to call more than once.
	Stop()
}

// Scheduler runs recurring callbacks on the host's event loop.
// Implementations must never run two callbacks concurrently.
type Scheduler interface {
	// Every schedules fn to run every interval, first after one interval.
	Every(interval time.Duration, fn func()) Task
}

// Manual is a Scheduler driven by a virtual clock.
// Nothing fires until Advance is called, which makes timer behavior
// deterministic in tests and lets simulations run faster than real time.
type Manual struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	m       *Manual
	seq     int
	every   time.Duration
	next    time.Duration
	fn      func()
	stopped bool
}

// NewManual creates a manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Every schedules fn to run every interval of virtual time.
// Non-positive intervals are treated as one millisecond.
func (m *Manual) Every(interval time.Duration, fn func()) Task {
	if interval <= 0 {
		interval = time.Millisecond
	}
	m.seq++
	t := &manualTask{
		m:     m,
		seq:   m.seq,
		every: interval,
		next:  m.now + interval,
		fn:    fn,
	}
	m.tasks = append(m.tasks, t)
	return t
}

// Stop cancels the task.
func (t *manualTask) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	t.m.prune()
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Active returns the number of tasks that have not been stopped.
func (m *Manual) Active() int {
	return len(m.tasks)
}

// Advance moves the virtual clock forward by d, firing every task that
// comes due in chronological order. Tasks due at the same instant fire in
// the order they were scheduled. Callbacks may stop or schedule tasks.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.now = t.next
		t.next += t.every
		t.fn()
	}
	m.now = target
}

// nextDue returns the earliest live task due at or before target.
func (m *Manual) nextDue(target time.Duration) *manualTask {
	var best *manualTask
	for _, t := range m.tasks {
		if t.stopped || t.next > target {
			continue
		}
		if best == nil || t.next < best.next || (t.next == best.next && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// prune drops stopped tasks, keeping registration order.
func (m *Manual) prune() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.tasks); i++ {
		m.tasks[i] = nil
	}
	m.tasks = live
}

// After runs fn once after d on s. Stopping the returned task before it
// fires cancels it.
func After(s Scheduler, d time.Duration, fn func()) Task {
	o := &once{fn: fn}
	o.task = s.Every(d, o.fire)
	return o
}

type once struct {
	task Task
	fn   func()
	done bool
}

func (o *once) fire() {
	if o.done {
		return
	}
	o.done = true
	o.task.Stop()
	o.fn()
}

func (o *once) Stop() {
	o.done = true
	o.task.Stop()
}
