package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_DeliversInOrder(t *testing.T) {
	c := NewChannel[int]("test")
	var got []string

	c.Subscribe(func(v int) { got = append(got, "a") })
	c.Subscribe(func(v int) { got = append(got, "b") })
	c.Subscribe(func(v int) { got = append(got, "c") })

	c.Publish(1)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 3, c.Len())
}

func TestChannel_Cancel(t *testing.T) {
	c := NewChannel[int]("test")
	count := 0

	sub := c.Subscribe(func(int) { count++ })
	require.True(t, sub.IsActive())
	require.NotEmpty(t, sub.ID())

	c.Publish(1)
	sub.Cancel()
	sub.Cancel()
	c.Publish(2)

	assert.Equal(t, 1, count)
	assert.False(t, sub.IsActive())
	assert.Zero(t, c.Len())
}

func TestChannel_SnapshotDuringPublish(t *testing.T) {
	c := NewChannel[int]("test")
	var got []string
	var second Subscription

	c.Subscribe(func(int) {
		got = append(got, "first")
		// Subscribing during delivery takes effect on the next publish.
		c.Subscribe(func(int) { got = append(got, "late") })
		second.Cancel()
	})
	second = c.Subscribe(func(int) { got = append(got, "second") })

	c.Publish(1)
	assert.Equal(t, []string{"first"}, got, "cancelled subscriber skipped, late subscriber deferred")

	got = nil
	c.Publish(2)
	assert.Contains(t, got, "late")
}

func TestChannel_Dispose(t *testing.T) {
	c := NewChannel[int]("test")
	count := 0

	sub := c.Subscribe(func(int) { count++ })
	c.Dispose()
	c.Dispose()
	c.Publish(1)

	assert.Zero(t, count)
	assert.False(t, sub.IsActive())
	assert.True(t, c.IsDisposed())

	late := c.Subscribe(func(int) { count++ })
	assert.False(t, late.IsActive())
	c.Publish(2)
	assert.Zero(t, count)
}

func TestChannel_NilHandler(t *testing.T) {
	c := NewChannel[int]("test")
	sub := c.Subscribe(nil)

	assert.False(t, sub.IsActive())
	assert.NotPanics(t, func() { c.Publish(1) })
}

func TestChannel_PanicRecovery(t *testing.T) {
	var reported []any
	c := NewChannel[int]("wheel", WithPanicHandler(func(channel, id string, r any) {
		assert.Equal(t, "wheel", channel)
		assert.NotEmpty(t, id)
		reported = append(reported, r)
	}))
	after := false

	c.Subscribe(func(int) { panic("boom") })
	c.Subscribe(func(int) { after = true })

	assert.NotPanics(t, func() { c.Publish(1) })
	assert.True(t, after, "delivery continues after a panic")
	assert.Equal(t, []any{"boom"}, reported)
}
