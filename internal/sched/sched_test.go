package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualFiresOnInterval(t *testing.T) {
	m := NewManual()
	fired := 0
	m.Every(time.Second, func() { fired++ })

	m.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, fired)

	m.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)

	m.Advance(5 * time.Second)
	assert.Equal(t, 6, fired)
	assert.Equal(t, 6*time.Second, m.Now())
}

func TestManualChronologicalOrder(t *testing.T) {
	m := NewManual()
	var order []string
	m.Every(1500*time.Millisecond, func() { order = append(order, "spawn") })
	m.Every(time.Second, func() { order = append(order, "tick") })

	m.Advance(3 * time.Second)

	// tick@1s, spawn@1.5s, tick@2s, spawn@3s, tick@3s (spawn registered first)
	require.Equal(t, []string{"tick", "spawn", "tick", "spawn", "tick"}, order)
}

func TestManualStop(t *testing.T) {
	m := NewManual()
	fired := 0
	task := m.Every(time.Second, func() { fired++ })

	m.Advance(2 * time.Second)
	task.Stop()
	task.Stop()
	m.Advance(10 * time.Second)

	assert.Equal(t, 2, fired)
	assert.Equal(t, 0, m.Active())
}

func TestManualStopFromCallback(t *testing.T) {
	m := NewManual()
	ticks := 0
	other := 0

	var otherTask Task
	var tickTask Task
	otherTask = m.Every(time.Second, func() { other++ })
	tickTask = m.Every(time.Second, func() {
		ticks++
		if ticks == 3 {
			tickTask.Stop()
			otherTask.Stop()
		}
	})

	m.Advance(time.Minute)

	assert.Equal(t, 3, ticks)
	assert.Equal(t, 3, other)
	assert.Equal(t, 0, m.Active())
}

func TestManualScheduleFromCallback(t *testing.T) {
	m := NewManual()
	inner := 0
	var outer Task
	outer = m.Every(time.Second, func() {
		outer.Stop()
		m.Every(time.Second, func() { inner++ })
	})

	m.Advance(4 * time.Second)

	// Scheduled at 1s, fires at 2s, 3s, 4s.
	assert.Equal(t, 3, inner)
	assert.Equal(t, 1, m.Active())
}

func TestManualNonPositiveInterval(t *testing.T) {
	m := NewManual()
	fired := 0
	m.Every(0, func() { fired++ })

	m.Advance(5 * time.Millisecond)
	assert.Equal(t, 5, fired)
}

func TestAfterFiresOnce(t *testing.T) {
	m := NewManual()
	fired := 0
	After(m, 3*time.Second, func() { fired++ })

	m.Advance(2 * time.Second)
	assert.Equal(t, 0, fired)

	m.Advance(10 * time.Second)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, m.Active())
}

func TestAfterStopCancels(t *testing.T) {
	m := NewManual()
	fired := false
	task := After(m, time.Second, func() { fired = true })
	task.Stop()
	task.Stop()

	m.Advance(time.Minute)
	assert.False(t, fired)
	assert.Equal(t, 0, m.Active())
}
