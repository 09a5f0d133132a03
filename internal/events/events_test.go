package events

import (
	"testing"
	"time"

	"staffdir/config"

	"github.com/stretchr/testify/assert"
)

// A bus without a cache client drops events instead of failing, so the
// directory keeps working when Valkey is not configured.

func TestPublish_NilClient(t *testing.T) {
	bus := New(nil, config.Config{})

	err := bus.Publish(ChannelEmployees, Event{
		ID:        "evt-1",
		Type:      "created",
		Channel:   ChannelEmployees,
		Timestamp: time.Now(),
	})
	assert.NoError(t, err)
}

func TestSubscribe_NilClient(t *testing.T) {
	bus := New(nil, config.Config{})

	called := false
	bus.Subscribe(ChannelEmployees, func(Event) { called = true })

	assert.NoError(t, bus.Publish(ChannelEmployees, Event{Type: "created"}))
	assert.False(t, called)
}

func TestClose(t *testing.T) {
	bus := New(nil, config.Config{})
	assert.NoError(t, bus.Close())
	// Close is safe to call again after the cancel list is drained.
	assert.NoError(t, bus.Close())
}
