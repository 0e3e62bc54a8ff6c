// Package tui provides the Bubble Tea integration for Sweet Catch.
// It handles the terminal UI loop, the screen flow, input mapping and
// SSH serving.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sweet-catch/internal/sched"
)

// FrameMsg is sent to redraw animations. Gen identifies the loop that
// produced it so a restarted loop does not run twice as fast.
type FrameMsg struct {
	Gen  int
	Time time.Time
}

// TickFunc arms a one-shot timer with the signature of tea.Tick.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// frameCmd returns a command that sends one FrameMsg after a frame at the
// given rate.
func frameCmd(tick TickFunc, gen, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 20
	}
	interval := time.Second / time.Duration(tickRate)
	return tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Gen: gen, Time: t}
	})
}

// schedFireMsg delivers a scheduled task on the program's event loop.
type schedFireMsg struct{ id int }

// Scheduler implements sched.Scheduler on top of a TickFunc. Callbacks run
// inside Update, so they never race with rendering or input.
//
// Every and task callbacks only queue commands; the owner must return
// Flush() from Update for them to start.
type Scheduler struct {
	tick    TickFunc
	next    int
	tasks   map[int]*teaTask
	pending []tea.Cmd
}

var _ sched.Scheduler = (*Scheduler)(nil)

type teaTask struct {
	s        *Scheduler
	id       int
	interval time.Duration
	fn       func()
}

// NewScheduler creates an empty scheduler armed by tea.Tick.
func NewScheduler() *Scheduler {
	return newScheduler(tea.Tick)
}

func newScheduler(tick TickFunc) *Scheduler {
	if tick == nil {
		tick = tea.Tick
	}
	return &Scheduler{tick: tick, tasks: make(map[int]*teaTask)}
}

// Every schedules fn to run every interval.
func (s *Scheduler) Every(interval time.Duration, fn func()) sched.Task {
	if interval <= 0 {
		interval = time.Millisecond
	}
	s.next++
	t := &teaTask{s: s, id: s.next, interval: interval, fn: fn}
	s.tasks[t.id] = t
	s.pending = append(s.pending, t.arm())
	return t
}

func (t *teaTask) arm() tea.Cmd {
	id := t.id
	return t.s.tick(t.interval, func(time.Time) tea.Msg {
		return schedFireMsg{id: id}
	})
}

// Stop cancels the task. A tick already in flight is dropped on arrival.
func (t *teaTask) Stop() {
	delete(t.s.tasks, t.id)
}

// Emit queues a command to run with the next Flush. Task callbacks use it
// to trigger navigation.
func (s *Scheduler) Emit(cmd tea.Cmd) {
	if cmd != nil {
		s.pending = append(s.pending, cmd)
	}
}

// Active returns the number of live tasks.
func (s *Scheduler) Active() int {
	return len(s.tasks)
}

// handle runs the task behind msg and re-arms it unless it was stopped.
func (s *Scheduler) handle(msg schedFireMsg) tea.Cmd {
	t, ok := s.tasks[msg.id]
	if !ok {
		return s.Flush()
	}
	t.fn()
	if _, live := s.tasks[t.id]; live {
		s.pending = append(s.pending, t.arm())
	}
	return s.Flush()
}

// Flush returns every queued command as one batch.
func (s *Scheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
