package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_Basic(t *testing.T) {
	c := NewManualClock(epoch)
	var got []int

	d := NewDebouncer(c, 50*time.Millisecond, func(v int) { got = append(got, v) })

	for i := 1; i <= 10; i++ {
		d.Call(i)
		c.Advance(10 * time.Millisecond)
	}
	assert.Empty(t, got, "quiet period never elapsed")

	c.Advance(50 * time.Millisecond)
	assert.Equal(t, []int{10}, got)
	assert.False(t, d.Pending())
}

func TestDebouncer_SpacedCalls(t *testing.T) {
	c := NewManualClock(epoch)
	var got []int

	d := NewDebouncer(c, 50*time.Millisecond, func(v int) { got = append(got, v) })

	d.Call(1)
	c.Advance(100 * time.Millisecond)
	d.Call(2)
	c.Advance(100 * time.Millisecond)
	d.Call(3)
	c.Advance(100 * time.Millisecond)

	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestDebouncer_ExactDeadline(t *testing.T) {
	c := NewManualClock(epoch)
	count := 0

	d := NewDebouncer(c, 50*time.Millisecond, func(int) { count++ })
	d.Call(0)

	c.Advance(49 * time.Millisecond)
	assert.Zero(t, count)
	c.Advance(time.Millisecond)
	assert.Equal(t, 1, count)
}

func TestDebouncer_Cancel(t *testing.T) {
	c := NewManualClock(epoch)
	count := 0

	d := NewDebouncer(c, 50*time.Millisecond, func(int) { count++ })
	d.Call(0)
	d.Cancel()
	c.Advance(time.Second)

	assert.Zero(t, count)
	assert.False(t, d.Pending())
	assert.Zero(t, c.Pending())
}

func TestDebouncer_Flush(t *testing.T) {
	c := NewManualClock(epoch)
	var got []string

	d := NewDebouncer(c, 50*time.Millisecond, func(v string) { got = append(got, v) })

	d.Flush()
	assert.Empty(t, got, "nothing pending")

	d.Call("a")
	d.Flush()
	assert.Equal(t, []string{"a"}, got)

	c.Advance(time.Second)
	assert.Equal(t, []string{"a"}, got, "scheduled call was cleared")
}

func TestDebouncer_StaleLoopCallback(t *testing.T) {
	// A LoopClock may deliver a callback that was posted before the
	// debouncer was rescheduled; it must be ignored.
	posted := make(chan func(), 4)
	loop := NewLoopClock(func(fn func()) { posted <- fn })
	var got []int

	d := NewDebouncer[int](loop, time.Millisecond, func(v int) { got = append(got, v) })
	d.Call(1)

	var stale func()
	select {
	case stale = <-posted:
	case <-time.After(time.Second):
		t.Fatal("first callback was not posted")
	}

	d.Call(2)
	stale()
	assert.Empty(t, got, "stale callback ran")

	select {
	case fn := <-posted:
		fn()
	case <-time.After(time.Second):
		t.Fatal("second callback was not posted")
	}
	assert.Equal(t, []int{2}, got)
}
